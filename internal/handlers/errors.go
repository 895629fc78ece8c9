package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	"github.com/SscSPs/campaign_ledger/internal/dto"
	"github.com/SscSPs/campaign_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps a service error to the HTTP status returned to the client.
func statusFor(err error) int {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr) && appErr.Code >= http.StatusInternalServerError:
		return http.StatusInternalServerError
	case errors.Is(err, apperrors.ErrInvariant):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.As(err, &appErr) && appErr.Code >= http.StatusBadRequest:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body. Unexpected failures are logged with their cause and
// answered with fallback unless they already carry a user facing message.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			msg = fallback
		}
	} else {
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, dto.ErrorResponse{Code: status, Error: msg})
}

// respondBindError answers a request whose body or query could not be bound.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: http.StatusBadRequest, Error: "Invalid request format: " + err.Error()})
}

// requireActor returns the authenticated actor or answers 401.
func requireActor(c *gin.Context, logger *slog.Logger) (string, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Code: http.StatusUnauthorized, Error: "Unauthorized"})
		return "", false
	}
	return actor, true
}
