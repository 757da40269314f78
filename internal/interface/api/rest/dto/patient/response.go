package patient

import (
	"time"

	"github.com/google/uuid"
)

type (
	Patient struct {
		ID         uuid.UUID `json:"id"`
		CreatedBy  string    `json:"created_by"`
		FirstName  string    `json:"first_name"`
		LastName   string    `json:"last_name"`
		ProfileURL *string   `json:"profile_url"`
		CreatedAt  time.Time `json:"created_at"`
	}
	Patients []Patient
)
