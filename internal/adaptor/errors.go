package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"kickstreet/internal/usecase"
	"kickstreet/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// handleServiceError maps a service failure to its status code. Upstream failures keep
// their service message; unknown failures are answered with a generic 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var svcErr *usecase.Error
	message := err.Error()
	var fields any
	if errors.As(err, &svcErr) {
		message = svcErr.Message
		if len(svcErr.Fields) > 0 {
			fields = svcErr.Fields
		}
	}

	switch {
	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrConflict),
		errors.Is(err, usecase.ErrLimitExceeded),
		errors.Is(err, usecase.ErrInsufficientStock),
		errors.Is(err, usecase.ErrAlreadyVerified),
		errors.Is(err, usecase.ErrInvalidOrExpiredCode),
		errors.Is(err, usecase.ErrNotVerified):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, message, fields)

	case errors.Is(err, usecase.ErrUnauthorized),
		errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, message)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, message)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, message)

	case errors.Is(err, usecase.ErrUpstream):
		log.Error(operation+" failed - upstream", zap.Error(err))
		if svcErr == nil {
			message = "Service temporarily unavailable, please try again"
		}
		utils.ResponseInternalError(w, message)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags. It writes the
// 400 itself and reports false when the request must stop.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			utils.ResponseBadRequest(w, "Request body is required", nil)
			return false
		}
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

// pathUUID parses the {name} route parameter, answering 400 when it is not a UUID.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+name, map[string]string{name: "Must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// caller returns the identity set by the auth middleware, or nil for a guest.
func caller(r *http.Request) *utils.Identity {
	id, ok := utils.GetIdentity(r.Context())
	if !ok {
		return nil
	}
	return &id
}
