// Package respond writes JSON bodies for the API.  Every error body has the
// same shape so the landing page needs one decoder:
//
//	{"error": {"code": "rate_limited", "message": "…", "request_id": "…"},
//	 "fields": {"email": "E-mail inválido"}}
//
// "fields" appears only on validation failures.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// APIError is the error envelope.
type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// JSON writes v with status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the error envelope.
func Error(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	Fields(w, r, status, code, message, nil)
}

// Fields writes the error envelope with per-field messages.
func Fields(w http.ResponseWriter, r *http.Request, status int, code, message string, fields map[string]string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = middleware.GetReqID(r.Context())
	e.Fields = fields
	JSON(w, status, e)
}
