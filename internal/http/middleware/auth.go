package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PayAidPayments/PayAid-V3-sub021/internal/domain"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/gate"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/token"
)

const ginIdentityKey = "accessIdentity"

// AuthCookieName is the fallback credential cookie checked when the
// Authorization header is absent.
const AuthCookieName = "payaid_token"

type identityContextKey struct{}

// Auth verifies the bearer credential and attaches the decoded identity to
// both the gin context and the request context.
type Auth struct {
	Verifier *token.Verifier
}

// Authenticate aborts with a translated denial when no valid credential is
// presented.
func (m *Auth) Authenticate(c *gin.Context) {
	raw, err := ExtractCredential(c)
	if err != nil {
		status, resp := gate.Translate(err)
		c.AbortWithStatusJSON(status, resp)
		return
	}

	identity, err := m.Verifier.Verify(raw)
	if err != nil {
		status, resp := gate.Translate(err)
		c.AbortWithStatusJSON(status, resp)
		return
	}

	ctx := context.WithValue(c.Request.Context(), identityContextKey{}, identity)
	c.Request = c.Request.WithContext(ctx)
	c.Set(ginIdentityKey, identity)
	c.Next()
}

// ExtractCredential pulls the raw bearer token from the Authorization header,
// falling back to the auth cookie. A missing credential is an
// Unauthenticated denial; a present-but-malformed header is
// InvalidCredential.
func ExtractCredential(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", domain.Denied(domain.DenyInvalidCredential)
		}
		return strings.TrimSpace(parts[1]), nil
	}

	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", domain.Denied(domain.DenyUnauthenticated)
}

// GetIdentity returns the decoded identity from gin.
func GetIdentity(c *gin.Context) (*domain.Identity, bool) {
	value, ok := c.Get(ginIdentityKey)
	if !ok {
		return nil, false
	}
	identity, ok := value.(*domain.Identity)
	return identity, ok
}

// IdentityFromContext returns the decoded identity from a standard context.
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	value := ctx.Value(identityContextKey{})
	if value == nil {
		return nil, false
	}
	identity, ok := value.(*domain.Identity)
	return identity, ok
}
