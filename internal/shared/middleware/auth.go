package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

const currentAuthorKey = "author"

// RequireAuthor resolves the bearer token to an active author and stores it
// in the gin context. Handlers behind it read the author via CurrentAuthor.
func RequireAuthor(resolver author.IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := resolver.ResolveCurrentAuthor(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, author.ErrUnauthenticated):
				response.Unauthorized(c, "Could not validate credentials")
			case errors.Is(err, author.ErrAccountDisabled):
				response.BadRequest(c, "Inactive author", nil)
			default:
				logger.Error("resolve current author failed", err)
				response.InternalServerError(c)
			}
			c.Abort()
			return
		}

		c.Set(currentAuthorKey, a)
		c.Next()
	}
}

// CurrentAuthor returns the author stored by RequireAuthor.
func CurrentAuthor(c *gin.Context) (*author.Author, bool) {
	v, ok := c.Get(currentAuthorKey)
	if !ok {
		return nil, false
	}
	a, ok := v.(*author.Author)
	return a, ok && a != nil
}
