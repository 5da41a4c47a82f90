package v1

import (
	"net/http"
	"strings"

	"job-portal-backend/internal/delivery/http/middleware"
	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/logger"
	"job-portal-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC    domain.AuthUsecase
	tracker   *security.LoginTracker
	secLogger *security.SecurityLogger
}

func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, tracker *security.LoginTracker, secLogger *security.SecurityLogger) {
	if secLogger == nil {
		secLogger = security.NewNopSecurityLogger()
	}
	if tracker == nil {
		tracker = security.NewLoginTracker(nil, security.DefaultLoginTrackerConfig(), secLogger)
	}
	handler := &AuthHandler{
		authUC:    authUC,
		tracker:   tracker,
		secLogger: secLogger,
	}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/register", handler.Register)
		publicAuth.POST("/login", handler.Login)
	}

	protected.GET("/auth/me", handler.Me)
}

// RegisterRequest carries company for recruiters and skills for students.
type RegisterRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     string   `json:"role"`
	Company  string   `json:"company"`
	Skills   []string `json:"skills"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register godoc
// @Summary      Register a user
// @Description  Create a student or recruiter account and return a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "Registration details"
// @Success      201   {object}  response.Response{data=domain.AuthResult}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	if strings.TrimSpace(req.Role) == "" {
		c.Error(apperror.Validation("Please add all fields", []string{"Role is required"}))
		return
	}
	role, ok := domain.ParseRole(strings.ToLower(strings.TrimSpace(req.Role)))
	if !ok {
		c.Error(apperror.Validation("Invalid role", []string{"Role must be one of: student, recruiter"}))
		return
	}

	creds := domain.Credentials{Name: req.Name, Email: req.Email, Password: req.Password}
	var reg domain.Registration
	switch role {
	case domain.RoleRecruiter:
		reg = domain.RecruiterRegistration{Creds: creds, Company: req.Company}
	default:
		reg = domain.StudentRegistration{Creds: creds, Skills: req.Skills}
	}

	result, err := h.authUC.Register(c.Request.Context(), reg)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "User registered", result)
}

// Login godoc
// @Summary      Log in
// @Description  Exchange email and password for a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  response.Response{data=domain.AuthResult}
// @Failure      400   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	ctx := c.Request.Context()
	ip, ua, reqID := c.ClientIP(), c.GetHeader("User-Agent"), response.RequestID(c)

	blocked, err := h.tracker.IsBlocked(ctx, req.Email, ip)
	if err != nil {
		logger.Log.Warn("Login tracker unavailable", "error", err)
	}
	if blocked {
		h.secLogger.LogLoginBlocked(ctx, req.Email, ip, ua, reqID)
		c.Error(apperror.TooManyRequests("Too many failed login attempts. Please try again later."))
		return
	}

	result, err := h.authUC.Login(ctx, req.Email, req.Password)
	if err != nil {
		if apperror.CodeOf(err) == http.StatusBadRequest {
			if _, _, trackErr := h.tracker.RecordFailedAttempt(ctx, req.Email, ip, ua, reqID); trackErr != nil {
				logger.Log.Warn("Failed to record login attempt", "error", trackErr)
			}
		}
		c.Error(err)
		return
	}

	if err := h.tracker.ClearAttempts(ctx, req.Email, ip); err != nil {
		logger.Log.Warn("Failed to clear login attempts", "error", err)
	}
	h.secLogger.LogLoginSuccess(ctx, result.ID, ip, ua, reqID)
	response.Success(c, http.StatusOK, "Login successful", result)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User retrieved", user)
}
