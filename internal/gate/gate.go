// Package gate holds the module-access decision every protected route runs
// before doing any work, and the translation of denials into the uniform
// HTTP error shape.
package gate

import (
	"context"
	"errors"
	"fmt"

	"github.com/PayAidPayments/PayAid-V3-sub021/internal/audit"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/domain"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/license"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/modules"
)

// License denial sub-cases carried in Denial.Detail.
const (
	DetailNotLicensed = "not_licensed"
	DetailInactive    = "inactive"
)

// Gate decides whether an identity may use a module. It is stateless per
// invocation: one tenant read, one license read, no writes.
type Gate struct {
	store license.Store
	audit audit.Recorder
}

// New creates a gate. recorder may be nil when no audit trail is wanted.
func New(store license.Store, recorder audit.Recorder) *Gate {
	return &Gate{store: store, audit: recorder}
}

// Check runs the fixed decision order: identity present, tenant not
// suspended, module licensed. The first failing check wins and the outcome
// is terminal for the request. moduleID must be a registered module
// identifier; an unknown id is a programming error and panics.
func (g *Gate) Check(ctx context.Context, identity *domain.Identity, moduleID string) (domain.Grant, error) {
	modules.MustKnown(moduleID)

	if identity == nil || identity.TenantID == 0 {
		return domain.Grant{}, g.deny(ctx, identity, moduleID, domain.Denied(domain.DenyUnauthenticated))
	}

	tenant, err := g.store.Tenant(ctx, identity.TenantID)
	if err != nil {
		if errors.Is(err, license.ErrTenantNotFound) {
			// Credential references a tenant that does not exist: fail closed.
			return domain.Grant{}, g.deny(ctx, identity, moduleID, domain.Denied(domain.DenyUnauthenticated))
		}
		return domain.Grant{}, fmt.Errorf("access check for module %s: %w", moduleID, err)
	}

	if tenant.Suspended() {
		return domain.Grant{}, g.deny(ctx, identity, moduleID, domain.Denied(domain.DenyTenantSuspended))
	}

	licensed, err := g.licensedModules(ctx, tenant)
	if err != nil {
		return domain.Grant{}, fmt.Errorf("access check for module %s: %w", moduleID, err)
	}
	if detail, ok := licensed[moduleID]; !ok || detail != "" {
		if !ok {
			detail = DetailNotLicensed
		}
		return domain.Grant{}, g.deny(ctx, identity, moduleID, domain.DeniedModule(moduleID, detail))
	}

	grant := domain.Grant{TenantID: tenant.ID, UserID: identity.UserID}
	if g.audit != nil {
		g.audit.Record(ctx, audit.Event{
			TenantID: grant.TenantID,
			UserID:   grant.UserID,
			ModuleID: moduleID,
			Allowed:  true,
		})
	}
	return grant, nil
}

// LicensedModules returns the currently usable module set for the tenant.
// Route aggregation endpoints use it to render navigation.
func (g *Gate) LicensedModules(ctx context.Context, tenantID int64) (modules.Set, error) {
	tenant, err := g.store.Tenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, license.ErrTenantNotFound) {
			return nil, domain.Denied(domain.DenyUnauthenticated)
		}
		return nil, err
	}
	if tenant.Suspended() {
		return modules.NewSet(), nil
	}
	licensed, err := g.licensedModules(ctx, tenant)
	if err != nil {
		return nil, err
	}
	set := modules.NewSet()
	for id, detail := range licensed {
		if detail == "" {
			set.Add(id)
		}
	}
	return set, nil
}

// licensedModules maps module id to a denial detail: empty string means
// usable, DetailInactive means a row exists but is switched off. Tenants
// with no explicit rows yet fall back to their plan's default bundle.
func (g *Gate) licensedModules(ctx context.Context, tenant domain.Tenant) (map[string]string, error) {
	rows, err := g.store.ModuleLicenses(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		defaults := modules.DefaultsForPlan(tenant.Plan)
		licensed := make(map[string]string, len(defaults))
		for _, id := range defaults.List() {
			licensed[id] = ""
		}
		return licensed, nil
	}

	licensed := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.Active {
			licensed[row.ModuleID] = ""
		} else {
			licensed[row.ModuleID] = DetailInactive
		}
	}
	return licensed, nil
}

func (g *Gate) deny(ctx context.Context, identity *domain.Identity, moduleID string, denial *domain.Denial) error {
	if g.audit != nil {
		event := audit.Event{ModuleID: moduleID, Allowed: false, Reason: string(denial.Reason)}
		if identity != nil {
			event.TenantID = identity.TenantID
			event.UserID = identity.UserID
		}
		g.audit.Record(ctx, event)
	}
	return denial
}
