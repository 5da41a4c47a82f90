package v1

import (
	"job-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// uuidParam reads a path id. Ids are uuids in every store, so anything
// else cannot exist and is rejected before reaching the database.
func uuidParam(c *gin.Context, name, message string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		c.Error(apperror.BadRequest(message))
		return "", false
	}
	return id, true
}
