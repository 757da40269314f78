package services

import (
	"context"

	"clinic-storage-api/internal/application/ports"
	domain "clinic-storage-api/internal/domain/patient"
)

type PatientService struct {
	patientRepository domain.Repository
}

func NewPatientService(
	patientRepository domain.Repository,
) ports.PatientService {
	return &PatientService{
		patientRepository: patientRepository,
	}
}

func (ps *PatientService) FindPatientsByOwner(ctx context.Context, userID string) (domain.Patients, error) {
	pats, err := ps.patientRepository.FetchPatientsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	return pats, nil
}
