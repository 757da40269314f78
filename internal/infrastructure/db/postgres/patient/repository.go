package patient

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "clinic-storage-api/internal/domain/patient"
	"clinic-storage-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchPatientByID(ctx context.Context, id domain.ID) (*domain.Patient, error) {
	p := new(Patient)
	err := r.db.QueryRow(ctx, SelectPatientByID, id).Scan(
		&p.ID,
		&p.CreatedBy,
		&p.FirstName,
		&p.LastName,
		&p.ProfileURL,

		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(p), err
}

func (r *Repository) FetchPatientByProfileURL(ctx context.Context, key string) (*domain.Patient, error) {
	p := new(Patient)
	err := r.db.QueryRow(ctx, SelectPatientByProfileURL, key).Scan(
		&p.ID,
		&p.CreatedBy,
		&p.FirstName,
		&p.LastName,
		&p.ProfileURL,

		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(p), err
}

func (r *Repository) FetchPatientsByOwner(ctx context.Context, ownerUserID string) (domain.Patients, error) {
	rows, err := r.db.Query(ctx, SelectPatientsByOwner, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ps Patients
	for rows.Next() {
		p := new(Patient)

		if err = rows.Scan(
			&p.ID,
			&p.CreatedBy,
			&p.FirstName,
			&p.LastName,
			&p.ProfileURL,

			&p.CreatedAt,
		); err != nil {
			return nil, err
		}

		ps = append(ps, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&ps), nil
}
