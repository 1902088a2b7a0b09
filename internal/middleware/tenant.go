package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/usecase/tenant"
)

const ContextBarbershop = "barbershop"

// TenantMiddleware resolves, creating on first access, the barbershop of the
// authenticated user. Must run after AuthMiddleware.
func TenantMiddleware(resolver *tenant.ResolveTenant) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, err := resolver.Execute(c.Request.Context(), tenant.ResolveTenantInput{
			UserID:    UserID(c),
			FirstName: c.GetString(ContextFirstName),
		})
		if err != nil {
			c.Abort()
			httperr.Respond(c, err, nil)
			return
		}

		c.Set(ContextBarbershop, shop)
		c.Next()
	}
}

// Barbershop returns the tenant set by TenantMiddleware.
func Barbershop(c *gin.Context) *models.Barbershop {
	shop, _ := c.MustGet(ContextBarbershop).(*models.Barbershop)
	return shop
}
