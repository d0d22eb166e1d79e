package gate

import (
	"errors"
	"net/http"

	"github.com/PayAidPayments/PayAid-V3-sub021/internal/domain"
)

// Response is the stable error payload every denied request receives.
// Clients branch on Code, never on the human-readable message.
type Response struct {
	Error    string `json:"error"`
	Code     string `json:"code"`
	ModuleID string `json:"moduleId,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

type mapping struct {
	status  int
	code    string
	message string
}

// translations is total over domain.DenialReasons; TestTranslateExhaustive
// keeps it that way.
var translations = map[domain.DenialReason]mapping{
	domain.DenyInvalidCredential: {http.StatusUnauthorized, "InvalidCredential", "Credential is malformed or failed verification."},
	domain.DenyExpiredCredential: {http.StatusUnauthorized, "ExpiredCredential", "Credential has expired."},
	domain.DenyUnauthenticated:   {http.StatusUnauthorized, "Unauthenticated", "Authentication is required."},
	domain.DenyTenantSuspended:   {http.StatusForbidden, "TenantSuspended", "Tenant account is suspended."},
	domain.DenyNotLicensed:       {http.StatusPaymentRequired, "LicenseError", "Subscription does not include this module."},
}

// Translate maps an access-check failure to its HTTP status and payload.
// Denials map one-to-one through the translation table; anything else is an
// infrastructure failure (database down, request cancelled) and still denies,
// as 503 without leaking internals.
func Translate(err error) (int, Response) {
	var denial *domain.Denial
	if !errors.As(err, &denial) {
		return http.StatusServiceUnavailable, Response{
			Error: "Access check could not be completed.",
			Code:  "Unavailable",
		}
	}

	m, ok := translations[denial.Reason]
	if !ok {
		// A reason outside the closed set means broken code, same as an
		// unknown module id.
		panic("gate: unmapped denial reason " + string(denial.Reason))
	}

	resp := Response{Error: m.message, Code: m.code}
	if denial.Reason == domain.DenyNotLicensed {
		resp.ModuleID = denial.ModuleID
		resp.Reason = denial.Detail
	}
	return m.status, resp
}
