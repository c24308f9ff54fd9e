package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yhas1984/contabilidad-personal-docker/internal/apperrors"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	portsrepo "github.com/yhas1984/contabilidad-personal-docker/internal/core/ports/repositories"
	"github.com/yhas1984/contabilidad-personal-docker/internal/dto"
)

// ClientService implements client management on top of the client repository.
type ClientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
}

func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

func (s *ClientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.clientRepo.FindClientByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing client: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("client with email %s: %w", email, apperrors.ErrDuplicate)
	}

	country := strings.TrimSpace(req.Country)
	if country == "" {
		country = domain.DefaultCountry
	}

	now := time.Now()
	client := domain.Client{
		ClientID:   uuid.NewString(),
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		DNI:        strings.TrimSpace(req.DNI),
		Phone:      strings.TrimSpace(req.Phone),
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    country,
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client in service: %w", err)
	}

	s.LogInfo(ctx, "Client created", "client_id", client.ClientID)
	return &client, nil
}

func (s *ClientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client by id in service: %w", err)
	}
	return client, nil
}

func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients in service: %w", err)
	}
	if clients == nil {
		return []domain.Client{}, nil
	}
	return clients, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client for update: %w", err)
	}

	applyIf := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyIf(&client.Name, req.Name)
	applyIf(&client.DNI, req.DNI)
	applyIf(&client.Phone, req.Phone)
	applyIf(&client.Address, req.Address)
	applyIf(&client.City, req.City)
	applyIf(&client.PostalCode, req.PostalCode)
	applyIf(&client.Country, req.Country)
	applyIf(&client.Notes, req.Notes)

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != client.Email {
			other, err := s.clientRepo.FindClientByEmail(ctx, email)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("failed to check for existing client: %w", err)
			}
			if other != nil {
				return nil, fmt.Errorf("client with email %s: %w", email, apperrors.ErrDuplicate)
			}
			client.Email = email
		}
	}

	client.LastUpdatedAt = time.Now()
	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		return nil, fmt.Errorf("failed to update client in service: %w", err)
	}

	s.LogInfo(ctx, "Client updated", "client_id", clientID)
	return client, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, clientID string) error {
	if err := s.clientRepo.DeleteClient(ctx, clientID); err != nil {
		return fmt.Errorf("failed to delete client in service: %w", err)
	}
	s.LogInfo(ctx, "Client deleted", "client_id", clientID)
	return nil
}

// ImportClients bulk-creates clients. Rows whose email already exists are
// skipped, not failed, so a re-imported spreadsheet is idempotent.
func (s *ClientService) ImportClients(ctx context.Context, rows []dto.CreateClientRequest) (*dto.ImportClientsSummary, error) {
	summary := &dto.ImportClientsSummary{}

	for i, row := range rows {
		if strings.TrimSpace(row.Name) == "" || strings.TrimSpace(row.Email) == "" {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("fila %d: nombre y email son obligatorios", i+1))
			continue
		}

		_, err := s.CreateClient(ctx, row)
		switch {
		case err == nil:
			summary.Created++
		case errors.Is(err, apperrors.ErrDuplicate):
			summary.Skipped++
		default:
			return nil, fmt.Errorf("failed to import client row %d: %w", i+1, err)
		}
	}

	s.LogInfo(ctx, "Client import finished",
		"created", summary.Created, "skipped", summary.Skipped)
	return summary, nil
}
