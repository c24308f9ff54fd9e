package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/yhas1984/contabilidad-personal-docker/internal/apperrors"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	portssvc "github.com/yhas1984/contabilidad-personal-docker/internal/core/ports/services"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/services"
	"github.com/yhas1984/contabilidad-personal-docker/internal/dto"
)

// --- Mock ClientRepository ---
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindClientByEmail(ctx context.Context, email string) (*domain.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

// --- Test Suite ---
type ClientServiceTestSuite struct {
	suite.Suite
	mockRepo *MockClientRepository
	service  portssvc.ClientSvcFacade
}

func (suite *ClientServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockClientRepository)
	suite.service = services.NewClientService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *ClientServiceTestSuite) TestCreateClient_Success() {
	ctx := context.Background()
	req := dto.CreateClientRequest{
		Name:  "  María García ",
		Email: " Maria@Example.COM ",
	}

	suite.mockRepo.On("FindClientByEmail", ctx, "maria@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.Name == "María García" && c.Email == "maria@example.com" && c.Country == domain.DefaultCountry
	})).Return(nil).Once()

	client, err := suite.service.CreateClient(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(client)
	suite.Equal("maria@example.com", client.Email)
	suite.Equal(domain.DefaultCountry, client.Country)
	suite.NotEmpty(client.ClientID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestCreateClient_DuplicateEmail() {
	ctx := context.Background()
	req := dto.CreateClientRequest{Name: "María García", Email: "maria@example.com"}
	existing := &domain.Client{ClientID: uuid.NewString(), Email: "maria@example.com"}

	suite.mockRepo.On("FindClientByEmail", ctx, "maria@example.com").Return(existing, nil).Once()

	client, err := suite.service.CreateClient(ctx, req)

	suite.Require().Error(err)
	suite.Nil(client)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveClient")
}

func (suite *ClientServiceTestSuite) TestUpdateClient_AppliesOnlyProvidedFields() {
	ctx := context.Background()
	clientID := uuid.NewString()
	stored := &domain.Client{
		ClientID: clientID,
		Name:     "María García",
		Email:    "maria@example.com",
		City:     "Madrid",
		Country:  domain.DefaultCountry,
	}
	newPhone := "+34 600 123 456"

	suite.mockRepo.On("FindClientByID", ctx, clientID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.Phone == newPhone && c.Name == "María García" && c.City == "Madrid"
	})).Return(nil).Once()

	client, err := suite.service.UpdateClient(ctx, clientID, dto.UpdateClientRequest{Phone: &newPhone})

	suite.Require().NoError(err)
	suite.Equal(newPhone, client.Phone)
	suite.Equal("María García", client.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestUpdateClient_EmailChangeChecksDuplicates() {
	ctx := context.Background()
	clientID := uuid.NewString()
	stored := &domain.Client{ClientID: clientID, Email: "maria@example.com"}
	newEmail := "otra@example.com"
	other := &domain.Client{ClientID: uuid.NewString(), Email: newEmail}

	suite.mockRepo.On("FindClientByID", ctx, clientID).Return(stored, nil).Once()
	suite.mockRepo.On("FindClientByEmail", ctx, newEmail).Return(other, nil).Once()

	client, err := suite.service.UpdateClient(ctx, clientID, dto.UpdateClientRequest{Email: &newEmail})

	suite.Require().Error(err)
	suite.Nil(client)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateClient")
}

func (suite *ClientServiceTestSuite) TestImportClients_SkipsDuplicatesAndBlankRows() {
	ctx := context.Background()
	rows := []dto.CreateClientRequest{
		{Name: "María García", Email: "maria@example.com"},
		{Name: "", Email: "sinnombre@example.com"},
		{Name: "Pedro López", Email: "pedro@example.com"},
	}
	existing := &domain.Client{ClientID: uuid.NewString(), Email: "pedro@example.com"}

	suite.mockRepo.On("FindClientByEmail", ctx, "maria@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveClient", ctx, mock.AnythingOfType("domain.Client")).Return(nil).Once()
	suite.mockRepo.On("FindClientByEmail", ctx, "pedro@example.com").Return(existing, nil).Once()

	summary, err := suite.service.ImportClients(ctx, rows)

	suite.Require().NoError(err)
	suite.Equal(1, summary.Created)
	suite.Equal(2, summary.Skipped)
	suite.Len(summary.Errors, 1)
	suite.Contains(summary.Errors[0], "fila 2")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestImportClients_Reimport_IsIdempotent() {
	ctx := context.Background()
	rows := []dto.CreateClientRequest{
		{Name: "María García", Email: "maria@example.com"},
	}
	existing := &domain.Client{ClientID: uuid.NewString(), Email: "maria@example.com"}

	suite.mockRepo.On("FindClientByEmail", ctx, "maria@example.com").Return(existing, nil).Once()

	summary, err := suite.service.ImportClients(ctx, rows)

	suite.Require().NoError(err)
	suite.Equal(0, summary.Created)
	suite.Equal(1, summary.Skipped)
	suite.Empty(summary.Errors)
}

func TestClientServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClientServiceTestSuite))
}
