package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendahub/scheduler/internal/models"
	"github.com/agendahub/scheduler/internal/tenant"
)

const ContextTenant = "tenant"

// TenantBySlug resolves the tenant named in the URL and binds it to the
// request context. Used by public (unauthenticated) routes; the tenants
// table itself is not tenant-owned, so the lookup needs no scope.
func TenantBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		if slug == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "tenant_not_found"})
			return
		}

		var tn models.Tenant
		if err := db.WithContext(c.Request.Context()).
			Where("slug = ?", slug).
			First(&tn).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "tenant_not_found"})
			return
		}

		c.Set(ContextTenant, &tn)
		c.Set(ContextTenantID, tn.ID)
		c.Request = c.Request.WithContext(
			tenant.WithTenant(c.Request.Context(), tn.ID),
		)

		c.Next()
	}
}
