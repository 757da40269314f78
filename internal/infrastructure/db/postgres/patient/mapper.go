package patient

import (
	domain "clinic-storage-api/internal/domain/patient"
)

func fromDBModel(model *Patient) *domain.Patient {
	var p = &domain.Patient{
		ID:         model.ID,
		CreatedBy:  model.CreatedBy,
		FirstName:  model.FirstName,
		LastName:   model.LastName,
		ProfileURL: model.ProfileURL,

		CreatedAt: model.CreatedAt,
	}

	return p
}

func fromDBModels(models *Patients) domain.Patients {
	ps := make(domain.Patients, len(*models))
	for idx, p := range *models {
		ps[idx] = fromDBModel(p)
	}

	return ps
}
