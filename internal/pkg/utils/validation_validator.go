package utils

import (
	"patient-intake-service/internal/pkg/constvars"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	intakePhonePattern = regexp.MustCompile(constvars.RegexIntakePhoneNumber)
	intakeEmailPattern = regexp.MustCompile(constvars.RegexIntakeEmail)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation(constvars.ValidationTagIntakePhone, validateIntakePhone)
	validate.RegisterValidation(constvars.ValidationTagIntakeEmail, validateIntakeEmail)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// jsonFieldName makes validation errors report the json key of a field.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func validateIntakePhone(fl validator.FieldLevel) bool {
	return intakePhonePattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateIntakeEmail(fl validator.FieldLevel) bool {
	return intakeEmailPattern.MatchString(strings.ToLower(strings.TrimSpace(fl.Field().String())))
}
