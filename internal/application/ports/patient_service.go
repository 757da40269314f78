package ports

import (
	"context"

	"clinic-storage-api/internal/domain/patient"
)

type PatientService interface {
	FindPatientsByOwner(ctx context.Context, userID string) (patient.Patients, error)
}
