package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// storage
	RouteSignUpload     = RouteApiV1 + "/sign-upload"
	RouteFinalizeUpload = RouteApiV1 + "/finalize-upload"
	RouteSignDownload   = RouteApiV1 + "/sign-download"

	RouteWhoami   = RouteApiV1 + "/whoami"
	RoutePatients = RouteApiV1 + "/patients"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
