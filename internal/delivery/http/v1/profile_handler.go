package v1

import (
	"context"
	"crypto/sha256"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"job-portal-backend/internal/delivery/http/middleware"
	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/logger"
	"job-portal-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// profileBodySlack covers the data URL prefix and every non-resume field.
const profileBodySlack = 64 << 10

// UploadQuota meters resume uploads per user. *security.UploadLimiter
// implements it.
type UploadQuota interface {
	AllowUpload(ctx context.Context, ip, userID string) (bool, int, error)
}

// ProfileHandler serves the student profile.
type ProfileHandler struct {
	profileUC    domain.StudentProfileUsecase
	uploads      UploadQuota
	secLogger    *security.SecurityLogger
	maxBodyBytes int64
}

// NewProfileHandler caps PUT bodies at the base64 size of maxResumeBytes plus
// slack. A non-positive maxResumeBytes leaves bodies uncapped.
func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.StudentProfileUsecase, uploads UploadQuota, maxResumeBytes int, secLogger *security.SecurityLogger) {
	if secLogger == nil {
		secLogger = security.NewNopSecurityLogger()
	}
	handler := &ProfileHandler{profileUC: profileUC, uploads: uploads, secLogger: secLogger}
	if maxResumeBytes > 0 {
		handler.maxBodyBytes = int64(maxResumeBytes)*4/3 + profileBodySlack
	}

	protected.GET("/profile", handler.Get)
	protected.PUT("/profile", handler.Upsert)
}

// GetProfile godoc
// @Summary      Get my student profile
// @Description  Returns a default profile when none has been saved yet
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.StudentProfile}
// @Failure      403  {object}  response.Response
// @Router       /profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileUC.GetProfile(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// UpsertProfile godoc
// @Summary      Create or replace my student profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      domain.StudentProfile  true  "Profile"
// @Success      200   {object}  response.Response{data=domain.StudentProfile}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      413   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) Upsert(c *gin.Context) {
	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	var profile domain.StudentProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Error(apperror.New(http.StatusRequestEntityTooLarge, "Request body too large", err))
			return
		}
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	identity := middleware.IdentityFrom(c)
	if identity.Role == domain.RoleStudent && strings.TrimSpace(profile.ResumeBlob) != "" {
		// The client resends the stored resume on every save; only a new one is metered
		changed, err := h.resumeChanged(c.Request.Context(), identity, profile.ResumeBlob)
		if err != nil {
			c.Error(err)
			return
		}
		if changed && !h.allowUpload(c, identity) {
			return
		}
	}

	saved, err := h.profileUC.UpsertProfile(c.Request.Context(), identity, &profile)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile saved", saved)
}

func (h *ProfileHandler) resumeChanged(ctx context.Context, identity domain.Identity, blob string) (bool, error) {
	current, err := h.profileUC.GetProfile(ctx, identity)
	if err != nil {
		return false, err
	}
	return sha256.Sum256([]byte(strings.TrimSpace(current.ResumeBlob))) != sha256.Sum256([]byte(strings.TrimSpace(blob))), nil
}

// allowUpload writes the 429 and reports false when the quota is spent.
func (h *ProfileHandler) allowUpload(c *gin.Context, identity domain.Identity) bool {
	if h.uploads == nil {
		return true
	}
	allowed, retryAfter, err := h.uploads.AllowUpload(c.Request.Context(), c.ClientIP(), identity.ID)
	if err != nil {
		logger.Log.Warn("Resume upload limiter unavailable", "error", err)
	}
	if allowed {
		return true
	}
	h.secLogger.LogUploadThrottled(c.Request.Context(), identity.ID, c.ClientIP(), response.RequestID(c), retryAfter)
	c.Header("Retry-After", strconv.Itoa(retryAfter))
	c.Error(apperror.TooManyRequests("Too many resume uploads. Please try again later."))
	return false
}
