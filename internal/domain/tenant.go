package domain

import "time"

// Tenant status values. Tenants are never hard-deleted, only suspended.
const (
	TenantStatusActive    = "active"
	TenantStatusSuspended = "suspended"
)

// Tenant represents a logical tenant/customer organization.
type Tenant struct {
	ID        int64
	Name      string
	Slug      string
	Plan      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Suspended reports whether the tenant is blocked from all module access.
func (t Tenant) Suspended() bool {
	return t.Status == TenantStatusSuspended
}

// ModuleLicense binds a tenant to one module. At most one row exists per
// (tenant_id, module_id) pair.
type ModuleLicense struct {
	TenantID    int64
	ModuleID    string
	Active      bool
	ActivatedAt time.Time
}
