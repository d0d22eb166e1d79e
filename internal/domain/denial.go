package domain

import "fmt"

// DenialReason enumerates every way an access check can fail. The set is
// closed: the translator in internal/gate maps each reason to exactly one
// HTTP response.
type DenialReason string

const (
	DenyInvalidCredential DenialReason = "invalid_credential"
	DenyExpiredCredential DenialReason = "expired_credential"
	DenyUnauthenticated   DenialReason = "unauthenticated"
	DenyTenantSuspended   DenialReason = "tenant_suspended"
	DenyNotLicensed       DenialReason = "not_licensed"
)

// DenialReasons lists all reasons, for exhaustiveness checks in tests.
var DenialReasons = []DenialReason{
	DenyInvalidCredential,
	DenyExpiredCredential,
	DenyUnauthenticated,
	DenyTenantSuspended,
	DenyNotLicensed,
}

// Denial is the typed failure value for a denied access check. A denial is
// terminal for the request; it is never retried.
type Denial struct {
	Reason DenialReason
	// ModuleID is set for license denials so clients can deep-link to the
	// upgrade flow for that module.
	ModuleID string
	// Detail distinguishes license sub-cases: "not_licensed" when no license
	// row covers the module, "inactive" when a row exists but is switched off.
	Detail string
}

func (d *Denial) Error() string {
	if d.Reason == DenyNotLicensed {
		return fmt.Sprintf("access denied: %s (module %s)", d.Reason, d.ModuleID)
	}
	return fmt.Sprintf("access denied: %s", d.Reason)
}

// Denied builds a denial for the given reason.
func Denied(reason DenialReason) *Denial {
	return &Denial{Reason: reason}
}

// DeniedModule builds a license denial for one module.
func DeniedModule(moduleID, detail string) *Denial {
	return &Denial{Reason: DenyNotLicensed, ModuleID: moduleID, Detail: detail}
}
