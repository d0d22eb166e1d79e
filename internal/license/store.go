// Package license exposes the tenant/license lookup the access gate reads
// through. Any caching lives here, behind the Store interface, never in the
// gate itself.
package license

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/PayAidPayments/PayAid-V3-sub021/internal/domain"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/repository"
)

// ErrTenantNotFound is returned when no tenant row exists for the id.
var ErrTenantNotFound = errors.New("license: tenant not found")

// Store is the read-only lookup the gate depends on.
type Store interface {
	Tenant(ctx context.Context, tenantID int64) (domain.Tenant, error)
	ModuleLicenses(ctx context.Context, tenantID int64) ([]domain.ModuleLicense, error)
}

// DBStore serves lookups straight from the repositories.
type DBStore struct {
	tenants  repository.TenantRepository
	licenses repository.LicenseRepository
}

var _ Store = (*DBStore)(nil)

// NewDBStore creates a database-backed store.
func NewDBStore(tenants repository.TenantRepository, licenses repository.LicenseRepository) *DBStore {
	return &DBStore{tenants: tenants, licenses: licenses}
}

func (s *DBStore) Tenant(ctx context.Context, tenantID int64) (domain.Tenant, error) {
	tenant, err := s.tenants.GetTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tenant{}, ErrTenantNotFound
		}
		return domain.Tenant{}, fmt.Errorf("load tenant %d: %w", tenantID, err)
	}
	return tenant, nil
}

func (s *DBStore) ModuleLicenses(ctx context.Context, tenantID int64) ([]domain.ModuleLicense, error) {
	licenses, err := s.licenses.ListModuleLicenses(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load licenses for tenant %d: %w", tenantID, err)
	}
	return licenses, nil
}
