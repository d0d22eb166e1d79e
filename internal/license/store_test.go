package license_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/PayAidPayments/PayAid-V3-sub021/internal/domain"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/license"
)

type stubTenantRepo struct {
	tenant domain.Tenant
	err    error
}

func (r *stubTenantRepo) GetTenant(ctx context.Context, tenantID int64) (domain.Tenant, error) {
	if r.err != nil {
		return domain.Tenant{}, r.err
	}
	return r.tenant, nil
}

type stubLicenseRepo struct {
	licenses []domain.ModuleLicense
	err      error
}

func (r *stubLicenseRepo) ListModuleLicenses(ctx context.Context, tenantID int64) ([]domain.ModuleLicense, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.licenses, nil
}

func TestDBStoreTenant(t *testing.T) {
	store := license.NewDBStore(&stubTenantRepo{tenant: domain.Tenant{ID: 3, Name: "Acme"}}, &stubLicenseRepo{})
	tenant, err := store.Tenant(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, int64(3), tenant.ID)
}

func TestDBStoreTenantNotFound(t *testing.T) {
	repoErr := fmt.Errorf("get tenant: %w", pgx.ErrNoRows)
	store := license.NewDBStore(&stubTenantRepo{err: repoErr}, &stubLicenseRepo{})

	_, err := store.Tenant(context.Background(), 9)
	require.ErrorIs(t, err, license.ErrTenantNotFound)
}

func TestDBStoreTenantErrorWrapped(t *testing.T) {
	boom := errors.New("connection reset")
	store := license.NewDBStore(&stubTenantRepo{err: boom}, &stubLicenseRepo{})

	_, err := store.Tenant(context.Background(), 9)
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, license.ErrTenantNotFound)
}

func TestDBStoreModuleLicenses(t *testing.T) {
	store := license.NewDBStore(&stubTenantRepo{}, &stubLicenseRepo{licenses: []domain.ModuleLicense{
		{TenantID: 1, ModuleID: "crm", Active: true},
	}})

	licenses, err := store.ModuleLicenses(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, licenses, 1)
	require.Equal(t, "crm", licenses[0].ModuleID)
}
