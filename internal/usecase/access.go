package usecase

import (
	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
)

// AuthorizeRole fails with Unauthorized for an empty identity and Forbidden
// when the role differs.
func AuthorizeRole(identity domain.Identity, required domain.Role) error {
	if identity.ID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	if identity.Role != required {
		return apperror.Forbidden("Access denied: " + string(required) + " role required")
	}
	return nil
}

// AuthorizeOwnership fails with Forbidden unless identity owns the resource.
func AuthorizeOwnership(identity domain.Identity, ownerID string) error {
	if identity.ID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	if ownerID == "" || identity.ID != ownerID {
		return apperror.Forbidden("Not authorized")
	}
	return nil
}
