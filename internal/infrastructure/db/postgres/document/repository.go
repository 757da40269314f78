package document

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "clinic-storage-api/internal/domain/document"
	"clinic-storage-api/internal/infrastructure/db/postgres"
)

var ErrObjectKeyAlreadyExists = errors.New("object key already exists")

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchDocumentByID(ctx context.Context, id domain.ID) (*domain.Document, error) {
	d := new(Document)
	err := r.db.QueryRow(ctx, SelectDocumentByID, id).Scan(
		&d.ID,
		&d.PatientID,
		&d.OwnerUserID,

		&d.Bucket,
		&d.ObjectKey,
		&d.ContentType,
		&d.OriginalFilename,
		&d.Status,
		&d.SizeBytes,
		&d.SHA256,

		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(d), err
}

func (r *Repository) CreateDocument(ctx context.Context, req *domain.Document) (*domain.Document, error) {
	d := new(Document)

	err := r.db.QueryRow(
		ctx,
		InsertDocument,
		req.PatientID, req.OwnerUserID, req.Bucket, req.ObjectKey, req.ContentType, req.OriginalFilename, req.Status,
	).Scan(
		&d.ID,
		&d.PatientID,
		&d.OwnerUserID,

		&d.Bucket,
		&d.ObjectKey,
		&d.ContentType,
		&d.OriginalFilename,
		&d.Status,
		&d.SizeBytes,
		&d.SHA256,

		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrObjectKeyAlreadyExists
		}
		return nil, err
	}

	return fromDBModel(d), err
}

func (r *Repository) MarkStored(ctx context.Context, id domain.ID, ownerUserID string, privileged bool, sizeBytes uint64, sha256 *string) (int64, error) {
	if privileged {
		tag, err := r.db.Exec(ctx, MarkStoredAny, id, sizeBytes, sha256)
		if err != nil {
			return 0, err
		}
		return tag.RowsAffected(), nil
	}

	tag, err := r.db.Exec(ctx, MarkStoredByOwner, id, sizeBytes, sha256, ownerUserID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
