package controllers

import (
	"context"
	"net/http"
	"patient-intake-service/internal/app/config"
	"patient-intake-service/internal/app/contracts"
	"patient-intake-service/internal/pkg/constvars"
	"patient-intake-service/internal/pkg/dto/responses"
	"patient-intake-service/internal/pkg/utils"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultStreamMinInterval   = 250 * time.Millisecond
	defaultStreamPingInterval  = 30 * time.Second
	streamWriteTimeout         = 10 * time.Second
	streamReadLimitInBytes     = 512
	streamPongWaitMultiplier   = 2
	streamCloseMessageDeadline = time.Second
)

type StaffController struct {
	Log              *zap.Logger
	StaffViewUsecase contracts.StaffViewUsecase
	Upgrader         websocket.Upgrader

	minInterval  time.Duration
	pingInterval time.Duration
}

func NewStaffController(logger *zap.Logger, staffViewUsecase contracts.StaffViewUsecase, internalConfig *config.InternalConfig) *StaffController {
	allowedOrigins := internalConfig.App.AllowedOrigins
	return &StaffController{
		Log:              logger,
		StaffViewUsecase: staffViewUsecase,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(allowedOrigins, r.Header.Get("Origin"))
			},
		},
		minInterval:  utils.DurationFromMilliseconds(internalConfig.Staff.StreamMinIntervalInMilliseconds, defaultStreamMinInterval),
		pingInterval: utils.DurationFromSeconds(internalConfig.Staff.StreamPingIntervalInSeconds, defaultStreamPingInterval),
	}
}

func (ctrl *StaffController) ListPatients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get(constvars.URLQueryParamQuery)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result := ctrl.StaffViewUsecase.ListPatients(ctx, query)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.StaffListPatientsSuccessMessage, result)
}

// Stream upgrades to a websocket and pushes the filtered board whenever the
// view changes, at most once per minInterval. Client messages are ignored.
func (ctrl *StaffController) Stream(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	query := r.URL.Query().Get(constvars.URLQueryParamQuery)

	conn, err := ctrl.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		ctrl.Log.Warn(constvars.ErrDevWebsocketUpgrade,
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}
	defer conn.Close()

	changes, cancelWatch := ctrl.StaffViewUsecase.Watch()
	defer cancelWatch()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctrl.readUntilClosed(conn, cancel)

	ctrl.Log.Info("StaffController.Stream connected",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, query),
	)

	if err := ctrl.writeSnapshot(ctx, conn, query); err != nil {
		ctrl.logStreamEnd(requestID, err)
		return
	}

	limiter := rate.NewLimiter(rate.Every(ctrl.minInterval), 1)
	ping := time.NewTicker(ctrl.pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			ctrl.logStreamEnd(requestID, nil)
			return
		case _, ok := <-changes:
			if !ok {
				deadline := time.Now().Add(streamCloseMessageDeadline)
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "staff view stopped"), deadline)
				ctrl.logStreamEnd(requestID, nil)
				return
			}
			if err := limiter.Wait(ctx); err != nil {
				ctrl.logStreamEnd(requestID, nil)
				return
			}
			if err := ctrl.writeSnapshot(ctx, conn, query); err != nil {
				ctrl.logStreamEnd(requestID, err)
				return
			}
		case <-ping.C:
			deadline := time.Now().Add(streamWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				ctrl.logStreamEnd(requestID, err)
				return
			}
		}
	}
}

// readUntilClosed drains client frames so control messages are processed,
// and cancels the stream once the connection fails or closes.
func (ctrl *StaffController) readUntilClosed(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	pongWait := ctrl.pingInterval * streamPongWaitMultiplier
	conn.SetReadLimit(streamReadLimitInBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (ctrl *StaffController) writeSnapshot(ctx context.Context, conn *websocket.Conn, query string) error {
	message := responses.StaffStreamMessage{
		Type:             constvars.StaffStreamMessageSnapshot,
		StaffPatientList: *ctrl.StaffViewUsecase.ListPatients(ctx, query),
	}
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, body)
}

func (ctrl *StaffController) logStreamEnd(requestID string, err error) {
	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		ctrl.Log.Warn("StaffController.Stream closed with error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}
	ctrl.Log.Info("StaffController.Stream disconnected",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
}

func originAllowed(allowedOrigins []string, origin string) bool {
	if origin == "" {
		return true
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}
