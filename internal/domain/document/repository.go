package document

import (
	"context"
)

type Repository interface {
	FetchDocumentByID(ctx context.Context, id ID) (*Document, error)
	CreateDocument(ctx context.Context, req *Document) (*Document, error)
	// MarkStored flips the row to the stored status with the declared size
	// and optional digest. The predicate is scoped to ownerUserID unless the
	// caller is privileged; it reports how many rows matched.
	MarkStored(ctx context.Context, id ID, ownerUserID string, privileged bool, sizeBytes uint64, sha256 *string) (int64, error)
}
