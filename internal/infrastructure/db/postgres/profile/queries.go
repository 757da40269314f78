package profile

const (
	SelectRoleByUserID = `
		SELECT role
		FROM profiles
		WHERE user_id = $1
	`
)
