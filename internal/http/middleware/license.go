package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/PayAidPayments/PayAid-V3-sub021/internal/domain"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/gate"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/modules"
)

const ginGrantKey = "accessGrant"

// RequireModule gates a route group on one module license. moduleID is a
// compile-time constant in calling code, so an unknown id panics at router
// construction rather than at request time.
func RequireModule(g *gate.Gate, moduleID string) gin.HandlerFunc {
	modules.MustKnown(moduleID)

	return func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		grant, err := g.Check(c.Request.Context(), identity, moduleID)
		if err != nil {
			status, resp := gate.Translate(err)
			c.AbortWithStatusJSON(status, resp)
			return
		}
		c.Set(ginGrantKey, grant)
		c.Next()
	}
}

// GetGrant returns the grant produced by RequireModule.
func GetGrant(c *gin.Context) (domain.Grant, bool) {
	value, ok := c.Get(ginGrantKey)
	if !ok {
		return domain.Grant{}, false
	}
	grant, ok := value.(domain.Grant)
	return grant, ok
}
