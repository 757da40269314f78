package patient

import (
	"context"
)

type Repository interface {
	FetchPatientByID(ctx context.Context, id ID) (*Patient, error)
	FetchPatientByProfileURL(ctx context.Context, key string) (*Patient, error)
	FetchPatientsByOwner(ctx context.Context, ownerUserID string) (Patients, error)
}
