package storage

import (
	"github.com/google/uuid"
)

type (
	SignUploadResponse struct {
		UploadURL string    `json:"uploadUrl"`
		ObjectKey string    `json:"objectKey"`
		DocID     uuid.UUID `json:"docId"`
	}
	SignDownloadResponse struct {
		URL string `json:"url"`
	}
)
