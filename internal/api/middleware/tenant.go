package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/timmy/carmate/internal/logger"
)

// HeaderCompanyID is set by the auth layer in front of this service.
const HeaderCompanyID = "X-Company-ID"

const companyIDKey = "company_id"

// Tenant reads the acting company from the X-Company-ID header and
// rejects requests without a valid one.
func Tenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderCompanyID))
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "로그인이 필요합니다"})
			return
		}

		c.Set(companyIDKey, uint(id))
		c.Request = c.Request.WithContext(logger.SetTenantID(c.Request.Context(), uint(id)))
		c.Next()
	}
}

// CompanyID returns the company set by Tenant, 0 if none.
func CompanyID(c *gin.Context) uint {
	return c.GetUint(companyIDKey)
}
