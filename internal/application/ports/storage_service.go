package ports

import (
	"context"

	"clinic-storage-api/internal/domain/document"
	"clinic-storage-api/internal/domain/patient"
)

type UploadGrant struct {
	UploadURL string
	ObjectKey string
	DocID     document.ID
}

type StorageService interface {
	AuthorizeUpload(ctx context.Context, userID, filename, contentType string, patientID patient.ID) (*UploadGrant, error)
	FinalizeUpload(ctx context.Context, userID string, docID document.ID, sizeBytes uint64, sha256 *string) error
	// AuthorizeDownload resolves the target by docID when given, otherwise by
	// the avatar object key, and mints a read URL.
	AuthorizeDownload(ctx context.Context, userID string, docID *document.ID, objectKey string) (string, error)
}
