package profile

type (
	// Profile is the role record the authorization layer reads. Rows are
	// provisioned by the identity provider's onboarding flow, never by this
	// service.
	Profile struct {
		UserID string
		Role   string
	}
)
