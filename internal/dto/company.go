package dto

import (
	"time"

	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
)

// UpdateCompanyRequest defines the data accepted for the company profile.
type UpdateCompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	TaxID   string `json:"taxId"`
	Logo    string `json:"logo"`
}

// CompanyResponse defines the data returned for the company profile.
type CompanyResponse struct {
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	TaxID         string    `json:"taxId"`
	Logo          string    `json:"logo,omitempty"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToCompanyResponse converts a domain.CompanyInfo to its response DTO.
func ToCompanyResponse(info *domain.CompanyInfo) CompanyResponse {
	return CompanyResponse{
		Name:          info.Name,
		Address:       info.Address,
		Phone:         info.Phone,
		Email:         info.Email,
		TaxID:         info.TaxID,
		Logo:          info.Logo,
		LastUpdatedAt: info.LastUpdatedAt,
	}
}
