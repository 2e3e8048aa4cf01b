package controllers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/helpify-project/roomscan/internal/attendance"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type scanResponse struct {
	Status           string            `json:"status"`
	Message          string            `json:"message"`
	RoomName         *string           `json:"room_name,omitempty"`
	AttendanceStatus attendance.Status `json:"attendance_status,omitempty"`
}

func errorResponse(message string) scanResponse {
	return scanResponse{
		Status:  statusError,
		Message: message,
	}
}

// writeJSON always answers 200; scanner clients only look at the status field.
func writeJSON(w http.ResponseWriter, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
		body = []byte(`{"status":"error","message":"Server error: failed to encode response"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
