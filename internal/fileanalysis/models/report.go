package models

import "time"

// TimeLayout — формат хранения временных меток в БД: ISO-8601 в UTC с
// фиксированной шириной, чтобы сортировка по тексту совпадала с сортировкой
// по времени.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Report — результат анализа одной сдачи. Запись неизменяема: вердикт
// фиксируется в момент создания и задним числом не пересчитывается.
type Report struct {
	ReportID     string    `json:"report_id" db:"report_id"`
	WorkID       string    `json:"work_id" db:"work_id"`
	StudentID    string    `json:"student_id" db:"student_id"`
	FileID       string    `json:"file_id" db:"file_id"`
	ContentHash  string    `json:"content_hash" db:"content_hash"`
	IsPlagiarism bool      `json:"is_plagiarism" db:"is_plagiarism"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
