package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/helpify-project/roomscan/internal/attendance"
	"github.com/helpify-project/roomscan/internal/cctx"
	"github.com/helpify-project/roomscan/internal/metrics"
	"github.com/helpify-project/roomscan/internal/router"
)

var _ router.Controller = (*ScanController)(nil)

const msgAttendanceRecorded = "Attendance recorded."

type ScanController struct {
	Service *attendance.Service
}

func (c *ScanController) handleScan(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(metrics.ScanDuration)
	defer timer.ObserveDuration()

	resp, outcome := c.scan(r)
	metrics.ScansTotal.WithLabelValues(outcome).Inc()

	writeJSON(w, resp)
}

func (c *ScanController) scan(r *http.Request) (resp scanResponse, outcome string) {
	log := cctx.Logger(r.Context())

	defer func() {
		if v := recover(); v != nil {
			log.Error("panic while recording scan", zap.Any("panic", v), zap.Stack("stack"))
			resp = errorResponse("Server error: " + fmt.Sprint(v))
			outcome = metrics.OutcomeServerError
		}
	}()

	req := attendance.ScanRequest{
		UserCode: r.PostFormValue("user_code"),
		RoomCode: r.PostFormValue("room_code"),
		Role:     r.PostFormValue("role"),
	}

	log.Debug("received scan",
		zap.String("user_code", req.UserCode),
		zap.String("room_code", req.RoomCode),
		zap.String("role", req.Role),
	)

	result, err := c.Service.Scan(r.Context(), req)
	if err != nil {
		return failure(log, err)
	}

	log.Info("attendance recorded",
		zap.String("user_code", req.UserCode),
		zap.String("room_code", req.RoomCode),
		zap.Stringer("attendance_status", result.Status),
		zap.Uint("record_id", result.RecordID),
	)

	outcome = metrics.OutcomeLogin
	if result.Status == attendance.Logout {
		outcome = metrics.OutcomeLogout
	}

	resp = scanResponse{
		Status:           statusSuccess,
		Message:          msgAttendanceRecorded,
		RoomName:         &result.RoomName,
		AttendanceStatus: result.Status,
	}
	return
}

func failure(log *zap.Logger, err error) (resp scanResponse, outcome string) {
	var scanErr *attendance.Error
	if !errors.As(err, &scanErr) {
		log.Error("unhandled scan error", zap.Error(err))
		return errorResponse("Server error: " + err.Error()), metrics.OutcomeServerError
	}

	switch scanErr.Kind {
	case attendance.KindValidation:
		log.Info("rejected scan", zap.String("reason", scanErr.Message), zap.NamedError("cause", scanErr.Err))
		outcome = metrics.OutcomeValidationError
	case attendance.KindNotFound:
		log.Info("rejected scan", zap.String("reason", scanErr.Message))
		outcome = metrics.OutcomeNotFound
	default:
		log.Error("failed to record scan", zap.Stringer("kind", scanErr.Kind), zap.Error(scanErr.Err))
		outcome = metrics.OutcomeStoreError
	}

	return errorResponse(scanErr.Message), outcome
}

func (c *ScanController) Register(router *mux.Router) {
	// scan_room.php is the path older scanner builds post to.
	for _, path := range []string{"/scan_room", "/scan_room.php"} {
		router.HandleFunc(path, c.handleScan).
			Methods(http.MethodPost)
	}
}
