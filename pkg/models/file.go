package models

import (
	"time"

	"github.com/google/uuid"
)

type FileMetadata struct {
	ID           uuid.UUID `json:"id"`
	Key          string    `json:"key"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	UploadedBy   *int64    `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}
