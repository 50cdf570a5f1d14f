package service

import "errors"

// Типизированные ошибки для маппинга на HTTP-коды в delivery-слое.
var (
	// Ошибки валидации/состояния домена.
	ErrValidation     = errors.New("validation error")
	ErrReportNotFound = errors.New("report not found")

	// Ошибки внешних зависимостей.
	ErrFileService = errors.New("file service error")
)
