package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/yhas1984/contabilidad-personal-docker/internal/apperrors"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	portssvc "github.com/yhas1984/contabilidad-personal-docker/internal/core/ports/services"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/services"
	"github.com/yhas1984/contabilidad-personal-docker/internal/dto"
	"github.com/yhas1984/contabilidad-personal-docker/internal/handlers"
	"github.com/yhas1984/contabilidad-personal-docker/pkg/config"
)

// --- Mock ClientService ---
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) DeleteClient(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockClientService) ImportClients(ctx context.Context, rows []dto.CreateClientRequest) (*dto.ImportClientsSummary, error) {
	args := m.Called(ctx, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportClientsSummary), args.Error(1)
}

func (m *MockClientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ClientSvcFacade = (*MockClientService)(nil)

// --- Test Suite ---
type ClientHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	jwtSecret         string
	mockClientService *MockClientService
}

func (suite *ClientHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockClientService = new(MockClientService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger wiring
	}
	container := &services.Container{Client: suite.mockClientService}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ClientHandlerTestSuite) generateTestToken() string {
	claims := jwt.RegisteredClaims{
		Issuer:    "contabilidad-test",
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *ClientHandlerTestSuite) authedRequest(method, url string, body []byte) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken())
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Test Cases ---

func (suite *ClientHandlerTestSuite) TestListClients_Success() {
	expected := []domain.Client{
		{ClientID: uuid.NewString(), Name: "María García", Email: "maria@example.com", Country: domain.DefaultCountry},
	}
	suite.mockClientService.On("ListClients", mock.Anything).Return(expected, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/clients", nil))

	suite.Equal(http.StatusOK, w.Code)
	var got []dto.ClientResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Require().Len(got, 1)
	suite.Equal("María García", got[0].Name)
	suite.mockClientService.AssertExpectations(suite.T())
}

func (suite *ClientHandlerTestSuite) TestListClients_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/clients", nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockClientService.AssertNotCalled(suite.T(), "ListClients")
}

func (suite *ClientHandlerTestSuite) TestCreateClient_Success() {
	reqBody := dto.CreateClientRequest{Name: "María García", Email: "maria@example.com"}
	created := &domain.Client{
		ClientID: uuid.NewString(),
		Name:     reqBody.Name,
		Email:    reqBody.Email,
		Country:  domain.DefaultCountry,
	}
	suite.mockClientService.On("CreateClient", mock.Anything, reqBody).Return(created, nil).Once()

	body, _ := json.Marshal(reqBody)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/clients", body))

	suite.Equal(http.StatusCreated, w.Code)
	var got dto.ClientResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(created.ClientID, got.ClientID)
	suite.mockClientService.AssertExpectations(suite.T())
}

func (suite *ClientHandlerTestSuite) TestCreateClient_DuplicateEmail() {
	reqBody := dto.CreateClientRequest{Name: "María García", Email: "maria@example.com"}
	suite.mockClientService.On("CreateClient", mock.Anything, reqBody).Return(nil, apperrors.ErrDuplicate).Once()

	body, _ := json.Marshal(reqBody)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/clients", body))

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockClientService.AssertExpectations(suite.T())
}

func (suite *ClientHandlerTestSuite) TestCreateClient_MissingEmail() {
	body := []byte(`{"name":"María García"}`)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/clients", body))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockClientService.AssertNotCalled(suite.T(), "CreateClient")
}

func (suite *ClientHandlerTestSuite) TestGetClientByID_NotFound() {
	clientID := uuid.NewString()
	suite.mockClientService.On("GetClientByID", mock.Anything, clientID).Return(nil, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/clients/"+clientID, nil))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockClientService.AssertExpectations(suite.T())
}

func (suite *ClientHandlerTestSuite) TestDeleteClient_Success() {
	clientID := uuid.NewString()
	suite.mockClientService.On("DeleteClient", mock.Anything, clientID).Return(nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodDelete, "/api/v1/clients/"+clientID, nil))

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockClientService.AssertExpectations(suite.T())
}

func TestClientHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ClientHandlerTestSuite))
}
