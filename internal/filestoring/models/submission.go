package models

import "time"

// TimeLayout — формат хранения временных меток в БД: ISO-8601 в UTC с
// фиксированной шириной.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Submission — один загруженный текстовый файл. Создаётся ровно один раз при
// загрузке, не изменяется и не удаляется.
type Submission struct {
	FileID       string    `json:"file_id" db:"file_id"`
	WorkID       string    `json:"work_id" db:"work_id"`
	StudentID    string    `json:"student_id" db:"student_id"`
	StudentName  string    `json:"student_name" db:"student_name"`
	AssignmentID string    `json:"assignment_id" db:"assignment_id"`
	UploadedAt   time.Time `json:"uploaded_at" db:"uploaded_at"`

	// StorageLocation — ключ объекта в MinIO. Принадлежит file-storing,
	// наружу отдаётся только в метаданных.
	StorageLocation string `json:"storage_location" db:"storage_location"`
}
