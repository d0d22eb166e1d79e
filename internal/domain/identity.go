package domain

import (
	"time"

	"github.com/PayAidPayments/PayAid-V3-sub021/internal/modules"
)

// Identity is the decoded result of a bearer credential. It lives only for
// the duration of one request and is never persisted.
type Identity struct {
	TenantID  int64
	UserID    int64
	Plan      string
	Modules   modules.Set
	ExpiresAt time.Time
}

// Grant is the successful outcome of an access check. Handlers receive it so
// they do not need to re-decode the credential.
type Grant struct {
	TenantID int64 `json:"tenant_id"`
	UserID   int64 `json:"user_id"`
}
