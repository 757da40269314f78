package patient

import (
	domain "clinic-storage-api/internal/domain/patient"
)

func ToResponsePatient(pDomain domain.Patient) Patient {
	var p = Patient{
		ID:         pDomain.ID,
		CreatedBy:  pDomain.CreatedBy,
		FirstName:  pDomain.FirstName,
		LastName:   pDomain.LastName,
		ProfileURL: pDomain.ProfileURL,
		CreatedAt:  pDomain.CreatedAt,
	}

	return p
}

func ToResponsePatients(pDomain domain.Patients) Patients {
	ps := make(Patients, len(pDomain))
	for idx, p := range pDomain {
		ps[idx] = ToResponsePatient(*p)
	}

	return ps
}
