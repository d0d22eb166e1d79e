package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PayAidPayments/PayAid-V3-sub021/internal/domain"
)

// Compile-time interface assertions.
var (
	_ TenantRepository  = (*PostgresTenantRepo)(nil)
	_ LicenseRepository = (*PostgresLicenseRepo)(nil)
)

const getTenantSQL = `SELECT id, name, slug, plan, status, created_at, updated_at
FROM tenants
WHERE id = $1`

// PostgresTenantRepo implements TenantRepository on pgx.
type PostgresTenantRepo struct {
	db *pgxpool.Pool
}

func NewPostgresTenantRepo(db *pgxpool.Pool) *PostgresTenantRepo {
	return &PostgresTenantRepo{db: db}
}

func (r *PostgresTenantRepo) GetTenant(ctx context.Context, tenantID int64) (domain.Tenant, error) {
	row := r.db.QueryRow(ctx, getTenantSQL, tenantID)

	var tenant domain.Tenant
	if err := row.Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Slug,
		&tenant.Plan,
		&tenant.Status,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	); err != nil {
		return domain.Tenant{}, fmt.Errorf("get tenant: %w", err)
	}
	return tenant, nil
}

const listModuleLicensesSQL = `SELECT tenant_id, module_id, active, activated_at
FROM module_licenses
WHERE tenant_id = $1`

// PostgresLicenseRepo implements LicenseRepository on pgx.
type PostgresLicenseRepo struct {
	db *pgxpool.Pool
}

func NewPostgresLicenseRepo(db *pgxpool.Pool) *PostgresLicenseRepo {
	return &PostgresLicenseRepo{db: db}
}

func (r *PostgresLicenseRepo) ListModuleLicenses(ctx context.Context, tenantID int64) ([]domain.ModuleLicense, error) {
	rows, err := r.db.Query(ctx, listModuleLicensesSQL, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list module licenses: %w", err)
	}
	defer rows.Close()

	var licenses []domain.ModuleLicense
	for rows.Next() {
		var lic domain.ModuleLicense
		if err := rows.Scan(&lic.TenantID, &lic.ModuleID, &lic.Active, &lic.ActivatedAt); err != nil {
			return nil, fmt.Errorf("scan module license: %w", err)
		}
		licenses = append(licenses, lic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list module licenses: %w", err)
	}
	return licenses, nil
}
