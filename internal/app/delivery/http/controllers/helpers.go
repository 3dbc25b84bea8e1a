package controllers

import (
	"context"
	"errors"
	"net/http"
	"patient-intake-service/internal/pkg/exceptions"
	"patient-intake-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

func buildUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

func buildDecodeError(log *zap.Logger, w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		utils.BuildErrorResponse(log, w, exceptions.ErrRequestBodyTooLarge(err))
		return
	}
	utils.BuildErrorResponse(log, w, exceptions.ErrCannotParseJSON(err))
}
