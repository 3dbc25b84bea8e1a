package staff

import (
	"patient-intake-service/internal/app/models"
	"patient-intake-service/internal/pkg/utils"
	"strconv"
	"strings"
	"time"
)

const shortIDLength = 6

// ComputeStatus derives the badge status of a payload at now. Submitted is
// sticky, a missing timestamp means idle, and an active payload older than
// threshold is shown as inactive. An unparsable timestamp keeps the raw status.
func ComputeStatus(payload models.PatientRealtimePayload, now time.Time, threshold time.Duration) models.StaffStatus {
	if payload.Status == models.PatientStatusSubmitted {
		return models.StaffStatusSubmitted
	}
	if payload.LastUpdatedAt == "" {
		return models.StaffStatusIdle
	}

	if payload.Status == models.PatientStatusActive {
		lastUpdatedAt, err := utils.ParseTimestamp(payload.LastUpdatedAt)
		if err == nil && now.Sub(lastUpdatedAt) > threshold {
			return models.StaffStatusInactive
		}
	}
	return models.StaffStatus(payload.Status)
}

// DisplayName is the card title: the patient's name, or "Patient N" for the
// 1-based position when no name has been entered yet.
func DisplayName(data models.PatientFormData, position int) string {
	if name := data.FullName(); name != "" {
		return name
	}
	return "Patient " + strconv.Itoa(position)
}

func ShortID(patientID string) string {
	if len(patientID) <= shortIDLength {
		return patientID
	}
	return patientID[:shortIDLength]
}

// NormalizeQuery trims and lowercases a search term.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// MatchesQuery reports whether a normalized term is a substring of the entry's
// display name or id. The empty term matches everything.
func MatchesQuery(entry models.StaffViewEntry, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(entry.DisplayName), term) ||
		strings.Contains(strings.ToLower(entry.PatientID), term)
}

func buildEntry(payload models.PatientRealtimePayload, position int, now time.Time, threshold time.Duration) models.StaffViewEntry {
	computed := ComputeStatus(payload, now, threshold)
	return models.StaffViewEntry{
		PatientID:      payload.PatientID,
		ShortID:        ShortID(payload.PatientID),
		Position:       position,
		DisplayName:    DisplayName(payload.Data, position),
		Data:           payload.Data,
		Status:         payload.Status,
		ComputedStatus: computed,
		StatusLabel:    computed.Label(),
		LastUpdatedAt:  payload.LastUpdatedAt,
		HasBasicData:   payload.Data.HasBasicData(),
	}
}
