package patient

import (
	"time"

	"github.com/google/uuid"
)

type (
	Patient struct {
		ID         uuid.UUID
		CreatedBy  string
		FirstName  string
		LastName   string
		ProfileURL *string

		CreatedAt time.Time
	}
	Patients []*Patient
)
