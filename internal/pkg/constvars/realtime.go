package constvars

// RealtimeChannelName is the pub/sub channel shared by patient and staff roles.
const RealtimeChannelName = "patient-form-realtime"

const (
	RealtimeDriverLocal    = "local"
	RealtimeDriverRedis    = "redis"
	RealtimeDriverRabbitMQ = "rabbitmq"
	RealtimeDriverMQTT     = "mqtt"
	RealtimeDriverNone     = "none"
)

const (
	RabbitMQExchangeKindFanout = "fanout"
)

const (
	StaffStreamMessageSnapshot = "snapshot"
)
