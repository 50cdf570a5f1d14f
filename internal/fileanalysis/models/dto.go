package models

type CreateReportRequest struct {
	FileID    string `json:"file_id"`
	WorkID    string `json:"work_id"`
	StudentID string `json:"student_id"`
}

type WordCloudResponse struct {
	URL string `json:"url"`
}
