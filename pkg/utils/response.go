package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	respond(w, statusCode, Response{OK: true, Data: payload})
}

func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	respond(w, statusCode, Response{OK: false, Error: message})
}

// RespondWithErrorData is RespondWithError with a structured payload
// alongside the message, e.g. the retry hint on throttled requests.
func RespondWithErrorData(w http.ResponseWriter, statusCode int, message string, payload interface{}) {
	respond(w, statusCode, Response{OK: false, Error: message, Data: payload})
}

func respond(w http.ResponseWriter, statusCode int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		zap.L().Error("failed to write response", zap.Error(err))
	}
}
