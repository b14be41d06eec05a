package server

import (
	"net/http"

	go_json "github.com/goccy/go-json"
	"github.com/jfparis/home-assistant-garmin-connect/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = go_json.NewEncoder(w).Encode(data)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	if appErr := apperr.AsError(err); appErr != nil {
		writeJSON(w, appErr.StatusCode, errorResponse{
			Error: errorBody{Code: appErr.Code, Message: appErr.Message},
		})
		return
	}
	writeJSON(w, http.StatusBadGateway, errorResponse{
		Error: errorBody{Code: "upstream_error", Message: err.Error()},
	})
}
