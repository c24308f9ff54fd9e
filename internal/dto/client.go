package dto

import (
	"time"

	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
)

// CreateClientRequest defines the data needed to create a new client.
type CreateClientRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	DNI        string `json:"dni"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Notes      string `json:"notes"`
}

// UpdateClientRequest defines the updatable client fields. Nil pointers
// leave the stored value untouched.
type UpdateClientRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
	DNI        *string `json:"dni,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	Country    *string `json:"country,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID      string    `json:"clientID"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	DNI           string    `json:"dni,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	PostalCode    string    `json:"postalCode,omitempty"`
	Country       string    `json:"country"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ImportClientsSummary reports the outcome of a bulk client import.
type ImportClientsSummary struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// ToClientResponse converts a domain.Client to its response DTO.
func ToClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:      client.ClientID,
		Name:          client.Name,
		Email:         client.Email,
		DNI:           client.DNI,
		Phone:         client.Phone,
		Address:       client.Address,
		City:          client.City,
		PostalCode:    client.PostalCode,
		Country:       client.Country,
		Notes:         client.Notes,
		CreatedAt:     client.CreatedAt,
		LastUpdatedAt: client.LastUpdatedAt,
	}
}

// ToListClientResponse converts a slice of domain clients to response DTOs.
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i, client := range clients {
		res[i] = ToClientResponse(&client)
	}
	return res
}
