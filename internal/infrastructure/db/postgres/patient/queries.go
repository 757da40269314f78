package patient

const (
	SelectPatientByID = `
		SELECT id, created_by, first_name, last_name, profile_url, created_at
		FROM patients
		WHERE id = $1
	`
	SelectPatientByProfileURL = `
		SELECT id, created_by, first_name, last_name, profile_url, created_at
		FROM patients
		WHERE profile_url = $1
	`
	SelectPatientsByOwner = `
		SELECT id, created_by, first_name, last_name, profile_url, created_at
		FROM patients
		WHERE created_by = $1
		ORDER BY last_name ASC
	`
)
