package middleware

import (
	"github.com/gin-gonic/gin"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
)

// ErrorHandlerMiddleware converts errors attached to the gin context into
// the standard error envelope. Handlers call c.Error(err) and return.
func ErrorHandlerMiddleware(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}

	err := c.Errors.Last().Err
	c.AbortWithStatusJSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
}
