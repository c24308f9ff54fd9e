package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yhas1984/contabilidad-personal-docker/internal/apperrors"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	portsrepo "github.com/yhas1984/contabilidad-personal-docker/internal/core/ports/repositories"
)

type PgxCompanyRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCompanyRepository creates a new repository for the company profile.
// The table holds a single row keyed by a constant id.
func NewPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{pool: pool}
}

func (r *PgxCompanyRepository) SaveCompanyInfo(ctx context.Context, info domain.CompanyInfo) error {
	query := `
		INSERT INTO company_info (id, name, address, phone, email, tax_id, logo, created_at, last_updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			tax_id = EXCLUDED.tax_id,
			logo = EXCLUDED.logo,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err := r.pool.Exec(ctx, query,
		info.Name,
		info.Address,
		info.Phone,
		info.Email,
		info.TaxID,
		info.Logo,
		info.CreatedAt,
		info.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save company info: %w", err)
	}
	return nil
}

func (r *PgxCompanyRepository) GetCompanyInfo(ctx context.Context) (*domain.CompanyInfo, error) {
	query := `
		SELECT name, address, phone, email, tax_id, logo, created_at, last_updated_at
		FROM company_info
		WHERE id = 1;
	`
	var info domain.CompanyInfo
	err := r.pool.QueryRow(ctx, query).Scan(
		&info.Name,
		&info.Address,
		&info.Phone,
		&info.Email,
		&info.TaxID,
		&info.Logo,
		&info.CreatedAt,
		&info.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company info: %w", err)
	}
	return &info, nil
}
