package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/streamhive/streamhive/internal/domain"
	"go.uber.org/zap"
)

// Every response uses one of two envelope shapes. Success carries the
// payload; errors carry a message and an optional detail list. Status codes
// are duplicated into the body so SPA clients can branch without touching
// transport metadata.

type successResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

type errorResponse struct {
	StatusCode int      `json:"statusCode"`
	Data       any      `json:"data"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func respond(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// respondError is the single error responder: a recognized AppError maps
// straight onto the envelope, anything else becomes an opaque 500.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	details := []string{}

	if appErr, ok := domain.AsAppError(err); ok {
		status = appErr.Status
		message = appErr.Message
		if appErr.Details != nil {
			details = appErr.Details
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		StatusCode: status,
		Data:       nil,
		Message:    message,
		Success:    false,
		Errors:     details,
	})
}

// Reject wraps the error envelope writer for use outside this package,
// notably by the auth middleware.
func Reject(logger *zap.Logger) func(w http.ResponseWriter, err error) {
	return func(w http.ResponseWriter, err error) {
		respondError(w, logger, err)
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate decodes a JSON body and runs struct tag validation.
// Failures come back as 400s carrying per-field messages.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.BadRequest("invalid request body")
	}
	return validateStruct(dst)
}

func validateStruct(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fmt.Sprintf("field '%s' %s", fe.Field(), msgForTag(fe)))
		}
		return domain.BadRequest("validation failed", details...)
	}
	return domain.BadRequest("validation failed")
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}
