package rest

import (
	"github.com/gin-gonic/gin"

	"file-storage-api/internal/domain/user"
	"file-storage-api/internal/interface/api/rest/middleware"
	"file-storage-api/internal/interface/api/rest/validator"
)

// requesterUUID pulls the authenticated user id the auth middleware stored on
// the request context.
func requesterUUID(c *gin.Context) (user.UUID, bool) {
	ok, id := validator.IsUUID(c.GetString(middleware.CtxUserID))
	return id, ok
}
