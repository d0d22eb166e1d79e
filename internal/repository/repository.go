package repository

import (
	"context"

	"github.com/PayAidPayments/PayAid-V3-sub021/internal/domain"
)

// TenantRepository reads tenant rows.
type TenantRepository interface {
	GetTenant(ctx context.Context, tenantID int64) (domain.Tenant, error)
}

// LicenseRepository reads module license rows.
type LicenseRepository interface {
	ListModuleLicenses(ctx context.Context, tenantID int64) ([]domain.ModuleLicense, error)
}
