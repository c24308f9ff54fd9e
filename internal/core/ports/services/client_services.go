package services

import (
	"context"

	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	"github.com/yhas1984/contabilidad-personal-docker/internal/dto"
)

// ClientReaderSvc defines read operations for client data
type ClientReaderSvc interface {
	// GetClientByID retrieves a specific client by its ID.
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves all clients.
	ListClients(ctx context.Context) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for client data
type ClientWriterSvc interface {
	// CreateClient persists a new client.
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error)

	// UpdateClient updates an existing client.
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)

	// DeleteClient removes a client.
	DeleteClient(ctx context.Context, clientID string) error

	// ImportClients bulk-creates clients, skipping rows whose email already
	// exists. It reports how many rows were created and skipped.
	ImportClients(ctx context.Context, rows []dto.CreateClientRequest) (*dto.ImportClientsSummary, error)
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
