package constvars

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientPatientSessionNotFound        = "patient session not found"
	ErrClientUnknownFormField              = "unknown form field"
	ErrClientFormValidationFailed          = "please correct the highlighted fields"
	ErrClientRequestBodyTooLarge           = "request body too large"
)

// Error messages for developers
const (
	ErrDevInvalidInput              = "invalid input"
	ErrDevCannotParseJSON           = "cannot parse JSON"
	ErrDevCannotMarshalJSON         = "cannot marshal JSON"
	ErrDevServerProcess             = "server failed to process request"
	ErrDevServerDeadlineExceeded    = "server deadline exceeded"
	ErrDevURLParamMissing           = "url param %s is missing"
	ErrDevPatientSessionNotFound    = "patient session %s not found"
	ErrDevPatientSessionClosed      = "patient session %s already closed"
	ErrDevUnknownFormField          = "form field %s is not recognised"
	ErrDevFormValidationFailed      = "patient form validation failed"
	ErrDevWebsocketUpgrade          = "failed to upgrade staff stream connection"
	ErrDevRealtimeDecodePayload     = "failed to decode realtime payload"
	ErrDevRealtimeEmptyPatientID    = "realtime payload has empty patientId"
	ErrDevRealtimeTransportDisabled = "realtime transport unavailable"
)
