package document

import (
	"time"

	"github.com/google/uuid"

	"clinic-storage-api/internal/domain/patient"
)

const (
	StatusPending = "pending"
	StatusStored  = "stored"
)

type (
	ID       = uuid.UUID
	Document struct {
		ID          ID
		PatientID   patient.ID
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
	Documents []*Document
)
