package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yhas1984/contabilidad-personal-docker/internal/apperrors"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	portsrepo "github.com/yhas1984/contabilidad-personal-docker/internal/core/ports/repositories"
	"github.com/yhas1984/contabilidad-personal-docker/internal/dto"
)

// CompanyService manages the single company profile printed on documents.
type CompanyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
}

func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// GetCompanyInfo returns the stored profile, or an empty profile when none
// has been configured yet so documents can still be generated.
func (s *CompanyService) GetCompanyInfo(ctx context.Context) (*domain.CompanyInfo, error) {
	info, err := s.companyRepo.GetCompanyInfo(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.CompanyInfo{}, nil
		}
		return nil, fmt.Errorf("failed to get company info in service: %w", err)
	}
	return info, nil
}

func (s *CompanyService) UpdateCompanyInfo(ctx context.Context, req dto.UpdateCompanyRequest) (*domain.CompanyInfo, error) {
	now := time.Now()
	info := domain.CompanyInfo{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		TaxID:   req.TaxID,
		Logo:    req.Logo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.companyRepo.SaveCompanyInfo(ctx, info); err != nil {
		return nil, fmt.Errorf("failed to save company info in service: %w", err)
	}

	s.LogInfo(ctx, "Company info updated", "company_name", info.Name)
	return &info, nil
}
