package constvars

const (
	URLParamPatientID = "patient_id"
)

const (
	URLQueryParamQuery = "q"
)
