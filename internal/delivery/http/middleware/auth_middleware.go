package middleware

import (
	"strings"

	"job-portal-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token to an Identity. The role is
// reloaded from the user store by AuthUsecase.Authenticate on every request.
func AuthMiddleware(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := authUC.Authenticate(c.Request.Context(), bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyIdentity), *identity)
		c.Set(string(domain.KeyUserID), identity.ID)
		c.Set(string(domain.KeyUserRole), string(identity.Role))
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// IdentityFrom returns the identity stored by AuthMiddleware, or the zero
// Identity for unauthenticated requests.
func IdentityFrom(c *gin.Context) domain.Identity {
	if v, ok := c.Get(string(domain.KeyIdentity)); ok {
		if identity, ok := v.(domain.Identity); ok {
			return identity
		}
	}
	return domain.Identity{}
}
