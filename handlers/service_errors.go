package handlers

import (
	"errors"
	"net/http"

	"github.com/elinonga/company-service/services"
	"github.com/elinonga/company-service/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses.
// Only the domain message is written; wrapped causes are logged, never returned.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	message := ""
	var domainErr *services.DomainError
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}

	var writeErr error
	switch {
	case services.IsNotFoundError(err):
		writeErr = utils.WriteNotFound(w, message)

	case services.IsValidationError(err):
		details := services.GetErrorDetails(err)
		if len(details) == 0 {
			details = nil
		}
		writeErr = utils.WriteBadRequest(w, message, details)

	case services.IsUnauthorizedError(err):
		writeErr = utils.WriteUnauthorized(w, message)

	case services.IsConflictError(err):
		writeErr = utils.WriteConflict(w, message, nil)

	case services.IsInternalError(err):
		// Log internal errors but return generic message
		logger.Error("internal server error",
			zap.String("request_id", requestID(r)),
			zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, "")

	default:
		// Unknown error type - log and return internal error
		logger.Error("unhandled error type",
			zap.String("request_id", requestID(r)),
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		writeErr = utils.WriteInternalServerError(w, "")
	}

	if writeErr != nil {
		logger.Error("failed to write error response", zap.Error(writeErr))
	}

	if domainErr != nil {
		logger.Debug("handled service error",
			zap.String("request_id", requestID(r)),
			zap.String("type", string(domainErr.Type)),
			zap.String("message", domainErr.Message),
			zap.Any("details", domainErr.Details))
	}
}

// HandleDecodeError answers a request whose body could not be decoded
func HandleDecodeError(w http.ResponseWriter, err error, logger *zap.Logger) {
	logger.Debug("invalid request body", zap.Error(err))
	if err := utils.WriteBadRequest(w, "Invalid JSON body", nil); err != nil {
		logger.Error("failed to write bad request response", zap.Error(err))
	}
}
