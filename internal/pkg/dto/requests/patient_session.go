package requests

// UpdatePatientFields carries one or more field edits; each entry is applied
// as a separate edit event.
type UpdatePatientFields struct {
	Fields map[string]string `json:"fields"`
}
