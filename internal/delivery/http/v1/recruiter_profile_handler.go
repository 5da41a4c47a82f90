package v1

import (
	"net/http"

	"job-portal-backend/internal/delivery/http/middleware"
	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type RecruiterProfileHandler struct {
	profileUC domain.RecruiterProfileUsecase
}

func NewRecruiterProfileHandler(protected *gin.RouterGroup, profileUC domain.RecruiterProfileUsecase) {
	handler := &RecruiterProfileHandler{profileUC: profileUC}

	profile := protected.Group("/recruiter/profile")
	{
		profile.GET("", handler.Get)
		profile.POST("", handler.Create)
		profile.PUT("", handler.Update)
		profile.DELETE("", handler.Deactivate)
	}
}

// GetRecruiterProfile godoc
// @Summary      Get my recruiter profile
// @Tags         recruiter
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.RecruiterProfile}
// @Failure      404  {object}  response.Response
// @Router       /recruiter/profile [get]
// @Security     BearerAuth
func (h *RecruiterProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileUC.GetProfile(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recruiter profile retrieved", profile)
}

// CreateRecruiterProfile godoc
// @Summary      Create my recruiter profile
// @Description  All twelve mandatory fields are required
// @Tags         recruiter
// @Accept       json
// @Produce      json
// @Param        body  body      domain.RecruiterProfileInput  true  "Profile"
// @Success      201   {object}  response.Response{data=domain.RecruiterProfile}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /recruiter/profile [post]
// @Security     BearerAuth
func (h *RecruiterProfileHandler) Create(c *gin.Context) {
	var input domain.RecruiterProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	profile, err := h.profileUC.CreateProfile(c.Request.Context(), middleware.IdentityFrom(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Recruiter profile created", profile)
}

// UpdateRecruiterProfile godoc
// @Summary      Update my recruiter profile
// @Description  Only fields present in the body are changed
// @Tags         recruiter
// @Accept       json
// @Produce      json
// @Param        body  body      domain.RecruiterProfileInput  true  "Changed fields"
// @Success      200   {object}  response.Response{data=domain.RecruiterProfile}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /recruiter/profile [put]
// @Security     BearerAuth
func (h *RecruiterProfileHandler) Update(c *gin.Context) {
	var input domain.RecruiterProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	profile, err := h.profileUC.UpdateProfile(c.Request.Context(), middleware.IdentityFrom(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recruiter profile updated", profile)
}

// DeactivateRecruiterProfile godoc
// @Summary      Deactivate my recruiter profile
// @Tags         recruiter
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /recruiter/profile [delete]
// @Security     BearerAuth
func (h *RecruiterProfileHandler) Deactivate(c *gin.Context) {
	if err := h.profileUC.DeactivateProfile(c.Request.Context(), middleware.IdentityFrom(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recruiter profile deactivated", nil)
}
