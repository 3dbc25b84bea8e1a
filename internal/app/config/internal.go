package config

type InternalConfig struct {
	App      App
	Realtime AppRealtime
	Patient  AppPatient
	Staff    AppStaff
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Timezone                   string
	EndpointPrefix             string
	AllowedOrigins             []string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	RequestBodyLimitInMegabyte int
}

// AppRealtime selects and tunes the pub/sub transport.
type AppRealtime struct {
	// Driver is one of local, redis, rabbitmq or none
	Driver      string
	ChannelName string
	// OutboxSize bounds pending publishes for network drivers
	OutboxSize              int
	PublishTimeoutInSeconds int
}

type AppPatient struct {
	DebounceInMilliseconds        int
	SessionIdleTTLInMinutes       int
	SessionSweepIntervalInSeconds int
}

type AppStaff struct {
	TickIntervalInSeconds           int
	InactivityThresholdInSeconds    int
	StreamMinIntervalInMilliseconds int
	StreamPingIntervalInSeconds     int
}
