package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	PatientSessionStartedSuccessMessage   = "patient session started"
	PatientSessionGetSuccessMessage       = "get patient session successfully"
	PatientSessionUpdatedSuccessMessage   = "patient form updated"
	PatientSessionSubmittedSuccessMessage = "patient form submitted"
	PatientSessionResetSuccessMessage     = "patient form reset"
	PatientSessionEndedSuccessMessage     = "patient session ended"
	StaffListPatientsSuccessMessage       = "get patients successfully"
	HealthCheckSuccessMessage             = "service is healthy"
)
