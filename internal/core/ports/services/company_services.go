package services

import (
	"context"

	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	"github.com/yhas1984/contabilidad-personal-docker/internal/dto"
)

// CompanyReaderSvc defines read operations for the company profile
type CompanyReaderSvc interface {
	// GetCompanyInfo retrieves the company profile.
	GetCompanyInfo(ctx context.Context) (*domain.CompanyInfo, error)
}

// CompanyWriterSvc defines write operations for the company profile
type CompanyWriterSvc interface {
	// UpdateCompanyInfo replaces the company profile.
	UpdateCompanyInfo(ctx context.Context, req dto.UpdateCompanyRequest) (*domain.CompanyInfo, error)
}

// CompanySvcFacade combines the company service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
}
