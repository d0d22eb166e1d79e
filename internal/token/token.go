package token

import (
	"errors"
	"strconv"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"

	"github.com/PayAidPayments/PayAid-V3-sub021/internal/domain"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/modules"
)

// AccessClaims are the custom claims carried next to the standard JWT claim
// set. The module list is a hint for clients; the gate always re-checks the
// license store before allowing anything.
type AccessClaims struct {
	TenantID int64    `json:"tenant_id"`
	Plan     string   `json:"plan,omitempty"`
	Modules  []string `json:"modules,omitempty"`
}

// Verifier validates bearer credentials. It is a pure function of the
// credential, the configured secret, and the injected clock.
type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewVerifier creates a verifier. issuer is optional; when empty the iss
// claim is not checked. now defaults to time.Now.
func NewVerifier(secret []byte, issuer string, now func() time.Time) *Verifier {
	if now == nil {
		now = time.Now
	}
	return &Verifier{secret: secret, issuer: issuer, now: now}
}

// Verify decodes and validates raw, returning the request identity. Failures
// are always a *domain.Denial: DenyInvalidCredential when the token cannot
// be decoded or fails its integrity check, DenyExpiredCredential when it is
// past its expiry.
func (v *Verifier) Verify(raw string) (*domain.Identity, error) {
	if raw == "" {
		return nil, domain.Denied(domain.DenyUnauthenticated)
	}

	parsed, err := jwt.ParseSigned(raw, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return nil, domain.Denied(domain.DenyInvalidCredential)
	}

	var (
		std    jwt.Claims
		custom AccessClaims
	)
	if err := parsed.Claims(v.secret, &std, &custom); err != nil {
		return nil, domain.Denied(domain.DenyInvalidCredential)
	}

	// An expiry is part of the identity contract; a token without one never
	// becomes invalid on its own, so reject it outright.
	if std.Expiry == nil {
		return nil, domain.Denied(domain.DenyInvalidCredential)
	}

	expected := jwt.Expected{Time: v.now()}
	if v.issuer != "" {
		expected.Issuer = v.issuer
	}
	// Zero leeway: the clock is injected, so "expired" must mean expired the
	// instant exp passes, not after the library's default one-minute grace.
	if err := std.ValidateWithLeeway(expected, 0); err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, domain.Denied(domain.DenyExpiredCredential)
		}
		return nil, domain.Denied(domain.DenyInvalidCredential)
	}

	userID, err := strconv.ParseInt(std.Subject, 10, 64)
	if err != nil || custom.TenantID == 0 {
		return nil, domain.Denied(domain.DenyInvalidCredential)
	}

	return &domain.Identity{
		TenantID:  custom.TenantID,
		UserID:    userID,
		Plan:      custom.Plan,
		Modules:   modules.NewSet(custom.Modules...),
		ExpiresAt: std.Expiry.Time().UTC(),
	}, nil
}

// Issuer mints access tokens for the platform's login flows and for tests.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates a token issuer with the given lifetime.
func NewIssuer(secret []byte, issuer string, ttl time.Duration, now func() time.Time) *Issuer {
	if now == nil {
		now = time.Now
	}
	return &Issuer{secret: secret, issuer: issuer, ttl: ttl, now: now}
}

// Mint signs a token for the given identity.
func (i *Issuer) Mint(tenantID, userID int64, plan string, moduleIDs []string) (string, error) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: i.secret},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", err
	}

	issuedAt := i.now()
	std := jwt.Claims{
		Issuer:   i.issuer,
		Subject:  strconv.FormatInt(userID, 10),
		IssuedAt: jwt.NewNumericDate(issuedAt),
		Expiry:   jwt.NewNumericDate(issuedAt.Add(i.ttl)),
	}
	custom := AccessClaims{TenantID: tenantID, Plan: plan, Modules: moduleIDs}

	return jwt.Signed(signer).Claims(std).Claims(custom).Serialize()
}
