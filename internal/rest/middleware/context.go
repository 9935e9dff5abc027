package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/groupwarden/groupwarden/internal/types"
)

// RequestContextMiddleware stamps every request with a request id and lifts
// the tenant id (path param or header) into the request context so logs and
// errors carry both.
func RequestContextMiddleware(c *gin.Context) {
	requestID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST)
	ctx := types.SetRequestID(c.Request.Context(), requestID)
	c.Header(types.HeaderRequestID, requestID)

	tenantID := c.Param("tenant_id")
	if tenantID == "" {
		tenantID = c.GetHeader(types.HeaderTenantID)
	}
	if tenantID != "" {
		ctx = types.SetTenantID(ctx, tenantID)
	}

	c.Request = c.Request.WithContext(ctx)
	c.Next()
}
