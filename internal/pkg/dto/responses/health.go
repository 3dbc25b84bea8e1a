package responses

type Health struct {
	Status          string `json:"status"`
	RealtimeDriver  string `json:"realtimeDriver"`
	ActiveSessions  int    `json:"activeSessions"`
	TrackedPatients int    `json:"trackedPatients"`
}
