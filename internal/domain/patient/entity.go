package patient

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID      = uuid.UUID
	Patient struct {
		ID        ID
		CreatedBy string
		FirstName string
		LastName  string
		// ProfileURL is the storage key of the avatar image, when one
		// has been uploaded.
		ProfileURL *string

		CreatedAt time.Time
	}
	Patients []*Patient
)
