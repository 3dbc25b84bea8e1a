package controllers

import (
	"net/http"
	"patient-intake-service/internal/app/contracts"
	"patient-intake-service/internal/pkg/constvars"
	"patient-intake-service/internal/pkg/dto/responses"
	"patient-intake-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type HealthController struct {
	Log                   *zap.Logger
	Transport             contracts.RealtimeTransport
	PatientSessionUsecase contracts.PatientSessionUsecase
	StaffViewUsecase      contracts.StaffViewUsecase
}

func NewHealthController(
	logger *zap.Logger,
	transport contracts.RealtimeTransport,
	patientSessionUsecase contracts.PatientSessionUsecase,
	staffViewUsecase contracts.StaffViewUsecase,
) *HealthController {
	return &HealthController{
		Log:                   logger,
		Transport:             transport,
		PatientSessionUsecase: patientSessionUsecase,
		StaffViewUsecase:      staffViewUsecase,
	}
}

func (ctrl *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	result := &responses.Health{
		Status:          constvars.ResponseSuccess,
		RealtimeDriver:  ctrl.Transport.Driver(),
		ActiveSessions:  ctrl.PatientSessionUsecase.ActiveSessions(),
		TrackedPatients: ctrl.StaffViewUsecase.TrackedPatients(),
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, result)
}
