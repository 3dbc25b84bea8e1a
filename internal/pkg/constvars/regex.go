package constvars

const (
	RegexIntakePhoneNumber = `^\+?[0-9\s\-]{10,15}$`
	RegexIntakeEmail       = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
)
