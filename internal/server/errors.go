package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Error codes returned in the error envelope.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeBadRequest  = "BAD_REQUEST"
	CodeRateLimited = "RATE_LIMITED"
	CodeInternal    = "INTERNAL_ERROR"
)

// apiError is an error with a client-safe message. Cause is logged only.
type apiError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

func (e *apiError) Error() string { return e.Message }

func (e *apiError) Unwrap() error { return e.Cause }

// ErrorEnvelope is the body of every error response.
type ErrorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func validationError(msg string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: CodeValidation, Message: msg}
}

func badRequest(msg string, cause error) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: CodeBadRequest, Message: msg, Cause: cause}
}

func notFound(resource string) *apiError {
	return &apiError{Status: http.StatusNotFound, Code: CodeNotFound, Message: resource + " not found"}
}

func internalError(cause error) *apiError {
	return &apiError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "An unexpected error occurred", Cause: cause}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError converts err into the error envelope. Errors that are not
// *apiError become INTERNAL_ERROR.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		apiErr = internalError(err)
	}

	if apiErr.Status >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "api_server_error",
			slog.String("code", apiErr.Code),
			slog.String("request_id", chimw.GetReqID(r.Context())),
			slog.Any("cause", apiErr.Cause),
		)
	}

	writeJSON(w, apiErr.Status, ErrorEnvelope{Error: apiErr.Message, Code: apiErr.Code})
}
