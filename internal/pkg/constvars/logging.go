package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingErrorTypeKey      = "error_type"
	LoggingPatientIDKey      = "patient_id"
	LoggingPatientStatusKey  = "patient_status"
	LoggingFieldNameKey      = "field_name"
	LoggingFieldCountKey     = "field_count"
	LoggingValidationKey     = "validation_errors"
	LoggingRealtimeDriverKey = "realtime_driver"
	LoggingChannelKey        = "channel"
	LoggingOutboxSizeKey     = "outbox_size"
	LoggingSubscriberKey     = "subscriber_id"
	LoggingEntryCountKey     = "entry_count"
	LoggingVisibleCountKey   = "visible_count"
	LoggingSessionCountKey   = "session_count"
)
