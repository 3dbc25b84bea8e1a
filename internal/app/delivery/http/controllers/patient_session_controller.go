package controllers

import (
	"context"
	"io"
	"net/http"
	"patient-intake-service/internal/app/contracts"
	"patient-intake-service/internal/pkg/constvars"
	"patient-intake-service/internal/pkg/dto/requests"
	"patient-intake-service/internal/pkg/exceptions"
	"patient-intake-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type PatientSessionController struct {
	Log                   *zap.Logger
	PatientSessionUsecase contracts.PatientSessionUsecase
}

func NewPatientSessionController(logger *zap.Logger, patientSessionUsecase contracts.PatientSessionUsecase) *PatientSessionController {
	return &PatientSessionController{
		Log:                   logger,
		PatientSessionUsecase: patientSessionUsecase,
	}
}

func (ctrl *PatientSessionController) StartSession(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("PatientSessionController.StartSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.PatientSessionUsecase.StartSession(ctx)
	if err != nil {
		ctrl.Log.Error("PatientSessionController.StartSession error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PatientSessionStartedSuccessMessage, result)
}

func (ctrl *PatientSessionController) GetSession(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.PatientSessionUsecase.GetSession(ctx, patientID)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientSessionGetSuccessMessage, result)
}

func (ctrl *PatientSessionController) UpdateFields(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		ctrl.Log.Error("PatientSessionController.UpdateFields error reading body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildDecodeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdatePatientFields)
	if err := json.Unmarshal(bodyBytes, request); err != nil {
		ctrl.Log.Error("PatientSessionController.UpdateFields error parsing body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildDecodeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.PatientSessionUsecase.UpdateFields(ctx, patientID, request)
	if err != nil {
		ctrl.Log.Error("PatientSessionController.UpdateFields error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientSessionUpdatedSuccessMessage, result)
}

func (ctrl *PatientSessionController) Submit(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.PatientSessionUsecase.Submit(ctx, patientID)
	if err != nil {
		ctrl.Log.Info("PatientSessionController.Submit rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientSessionSubmittedSuccessMessage, result)
}

func (ctrl *PatientSessionController) Reset(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.PatientSessionUsecase.Reset(ctx, patientID)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientSessionResetSuccessMessage, result)
}

func (ctrl *PatientSessionController) EndSession(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	if patientID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamMissing(constvars.URLParamPatientID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := ctrl.PatientSessionUsecase.EndSession(ctx, patientID); err != nil {
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientSessionEndedSuccessMessage, nil)
}
