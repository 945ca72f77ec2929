package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/smartchef/backend/internal/common"
	"github.com/pageza/smartchef/backend/internal/logging"
	"github.com/pageza/smartchef/backend/internal/service"
)

const offlineMessage = "Database connection timeout. Please check your internet."

// statusFor maps an error kind to an HTTP status and a user-facing message.
// Unclassified errors become a 500 with fallback as the message.
func statusFor(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, common.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, offlineMessage
	case errors.Is(err, common.ErrDuplicateUsername):
		return http.StatusConflict, "Username already exists"
	case errors.Is(err, common.ErrDuplicateEmail):
		return http.StatusConflict, "Email already exists"
	case errors.Is(err, common.ErrUserNotFound):
		return http.StatusUnauthorized, "User not found"
	case errors.Is(err, common.ErrInvalidPassword):
		return http.StatusUnauthorized, "Invalid password"
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenRevoked):
		return http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, "You can only edit your own recipes"
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, "Recipe not found"
	case errors.Is(err, common.ErrNoChanges):
		return http.StatusBadRequest, "Nothing to update"
	default:
		return http.StatusInternalServerError, fallback
	}
}

// respondError writes {"error": message} with the status of err's kind.
func respondError(c *gin.Context, err error, fallback string) {
	status, msg := statusFor(err, fallback)
	if status >= http.StatusInternalServerError {
		logging.For("api").WithError(err).WithField("path", c.Request.URL.Path).Error(fallback)
	}
	c.JSON(status, gin.H{"error": msg})
}
