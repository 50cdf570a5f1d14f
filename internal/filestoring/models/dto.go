package models

import "time"

type UploadResponse struct {
	FileID   string    `json:"file_id"`
	WorkID   string    `json:"work_id"`
	StoredAt time.Time `json:"stored_at"`
}
