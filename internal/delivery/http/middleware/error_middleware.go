package middleware

import (
	"net/http"

	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/logger"
	"job-portal-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached with c.Error as the JSON
// envelope. 401 and 403 are also reported to the security log.
func ErrorHandler(secLogger *security.SecurityLogger) gin.HandlerFunc {
	if secLogger == nil {
		secLogger = security.NewNopSecurityLogger()
	}
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		reqID := response.RequestID(c)
		appErr, ok := apperror.As(err)
		if !ok || appErr.Code >= http.StatusInternalServerError {
			// Never expose internal error details to clients
			logger.Log.Error("Internal Server Error",
				"error", err,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", reqID,
			)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			return
		}

		switch appErr.Code {
		case http.StatusUnauthorized:
			secLogger.LogUnauthorizedAccess(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"), reqID, c.Request.URL.Path, appErr.Message)
		case http.StatusForbidden:
			identity := IdentityFrom(c)
			secLogger.LogAccessDenied(c.Request.Context(), identity.ID, string(identity.Role), c.ClientIP(), reqID, c.Request.URL.Path)
		}
		response.Error(c, appErr.Code, appErr.Message, appErr.Details)
	}
}
