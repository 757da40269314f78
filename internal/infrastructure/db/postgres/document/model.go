package document

import (
	"time"

	"github.com/google/uuid"
)

type (
	Document struct {
		ID          uuid.UUID
		PatientID   uuid.UUID
		OwnerUserID string

		Bucket           string
		ObjectKey        string
		ContentType      string
		OriginalFilename string
		Status           string
		SizeBytes        *uint64
		SHA256           *string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
)
