package repositories

import (
	"context"

	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
)

// CompanyReader defines read operations for the company profile
type CompanyReader interface {
	// GetCompanyInfo retrieves the single company profile row.
	GetCompanyInfo(ctx context.Context) (*domain.CompanyInfo, error)
}

// CompanyWriter defines write operations for the company profile
type CompanyWriter interface {
	// SaveCompanyInfo inserts or replaces the company profile.
	SaveCompanyInfo(ctx context.Context, info domain.CompanyInfo) error
}

// CompanyRepositoryFacade combines the company repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
