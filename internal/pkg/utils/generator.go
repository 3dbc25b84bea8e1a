package utils

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const fallbackPatientIDLength = 8

// GeneratePatientID returns a random UUID, or a pseudo-random
// "patient-xxxxxxxx" id when the system entropy source fails.
func GeneratePatientID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fallbackPatientID()
	}
	return id.String()
}

func fallbackPatientID() string {
	var builder strings.Builder
	builder.WriteString("patient-")
	for builder.Len() < len("patient-")+fallbackPatientIDLength {
		builder.WriteString(strconv.FormatInt(rand.Int63(), 36))
	}
	return builder.String()[:len("patient-")+fallbackPatientIDLength]
}

func GenerateRequestID() string {
	return uuid.NewString()
}
