package service

import "errors"

var (
	ErrEmptyFile          = errors.New("file is missing or empty")
	ErrUnsupportedFile    = errors.New("only .txt files are supported")
	ErrMissingFields      = errors.New("student_id and assignment_id are required")
	ErrSubmissionNotFound = errors.New("submission not found")
)
