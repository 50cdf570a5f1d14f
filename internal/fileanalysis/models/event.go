package models

import "time"

// ReportCreatedEvent публикуется в RabbitMQ после успешной записи отчёта.
// Доставка best-effort: сбой публикации не влияет на результат запроса.
type ReportCreatedEvent struct {
	ReportID     string    `json:"report_id"`
	WorkID       string    `json:"work_id"`
	StudentID    string    `json:"student_id"`
	FileID       string    `json:"file_id"`
	IsPlagiarism bool      `json:"is_plagiarism"`
	CreatedAt    time.Time `json:"created_at"`
}
