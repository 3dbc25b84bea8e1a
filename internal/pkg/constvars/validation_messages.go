package constvars

// Form validation tags registered on the validator
const (
	ValidationTagRequired    = "required"
	ValidationTagIntakePhone = "intake_phone"
	ValidationTagIntakeEmail = "intake_email"
)

// Required-field messages keyed by json field name
var IntakeRequiredFieldMessages = map[string]string{
	"firstName":         "First name is required",
	"lastName":          "Last name is required",
	"dateOfBirth":       "Date of birth is required",
	"gender":            "Gender is required",
	"phoneNumber":       "Phone number is required",
	"email":             "Email is required",
	"address":           "Address is required",
	"preferredLanguage": "Preferred language is required",
	"nationality":       "Nationality is required",
}

// Format messages keyed by validation tag
var IntakeFormatMessages = map[string]string{
	ValidationTagIntakePhone: "Please enter a valid phone number",
	ValidationTagIntakeEmail: "Please enter a valid email address",
}

const IntakeFieldInvalidMessage = "is invalid"
