package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/yhas1984/contabilidad-personal-docker/internal/apperrors"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	portssvc "github.com/yhas1984/contabilidad-personal-docker/internal/core/ports/services"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/services"
	"github.com/yhas1984/contabilidad-personal-docker/internal/dto"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByReceiptID(ctx context.Context, receiptID string) (*domain.Transaction, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Mock ClientReader ---
type MockClientReader struct {
	mock.Mock
}

func (m *MockClientReader) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientReader) FindClientByEmail(ctx context.Context, email string) (*domain.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientReader) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

// --- Mock TransactionExporter ---
type MockTransactionExporter struct {
	mock.Mock
}

func (m *MockTransactionExporter) AppendTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo    *MockTransactionRepository
	mockClientRepo *MockClientReader
	mockExporter   *MockTransactionExporter
	service        portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockClientRepo = new(MockClientReader)
	suite.mockExporter = new(MockTransactionExporter)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockClientRepo, suite.mockExporter)
}

func (suite *TransactionServiceTestSuite) validRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Date:            time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		ClientID:        uuid.NewString(),
		AmountReceived:  decimal.NewFromInt(100),
		AmountDelivered: decimal.NewFromInt(4500),
		Cost:            decimal.NewFromInt(90),
		ExchangeRate:    decimal.NewFromInt(45),
	}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_DerivesProfit() {
	ctx := context.Background()
	req := suite.validRequest()
	client := &domain.Client{ClientID: req.ClientID, Name: "María García", Email: "maria@example.com"}

	suite.mockClientRepo.On("FindClientByID", ctx, req.ClientID).Return(client, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Profit.Equal(decimal.NewFromInt(10)) &&
			t.ProfitPercentage.Equal(decimal.NewFromInt(10)) &&
			t.ClientID == req.ClientID
	})).Return(nil).Once()
	suite.mockExporter.On("AppendTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, "10.0.0.1")

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.True(txn.Profit.Equal(decimal.NewFromInt(10)))
	suite.True(txn.ProfitPercentage.Equal(decimal.NewFromInt(10)))
	suite.Equal("10.0.0.1", txn.IPAddress)
	suite.True(strings.HasPrefix(txn.ReceiptID, "REC-"))
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockExporter.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CostDefaultsToAmountReceived() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Cost = decimal.Zero
	client := &domain.Client{ClientID: req.ClientID, Name: "María García"}

	suite.mockClientRepo.On("FindClientByID", ctx, req.ClientID).Return(client, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Cost.Equal(req.AmountReceived) && t.Profit.IsZero() && t.ProfitPercentage.IsZero()
	})).Return(nil).Once()
	suite.mockExporter.On("AppendTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, "")

	suite.Require().NoError(err)
	suite.True(txn.Profit.IsZero())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExporterFailureIsTolerated() {
	ctx := context.Background()
	req := suite.validRequest()
	client := &domain.Client{ClientID: req.ClientID}

	suite.mockClientRepo.On("FindClientByID", ctx, req.ClientID).Return(client, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockExporter.On("AppendTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(assert.AnError).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, "")

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.mockExporter.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsNonPositiveAmounts() {
	ctx := context.Background()
	req := suite.validRequest()
	req.AmountReceived = decimal.Zero

	txn, err := suite.service.CreateTransaction(ctx, req, "")

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ClientNotFound() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockClientRepo.On("FindClientByID", ctx, req.ClientID).Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, "")

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestListTransactionsByDateRange_RejectsInvertedRange() {
	ctx := context.Background()
	start := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	txns, err := suite.service.ListTransactionsByDateRange(ctx, start, end)

	suite.Require().Error(err)
	suite.Nil(txns)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_NilBecomesEmptySlice() {
	ctx := context.Background()

	suite.mockTxnRepo.On("ListTransactions", ctx).Return([]domain.Transaction(nil), nil).Once()

	txns, err := suite.service.ListTransactions(ctx)

	suite.Require().NoError(err)
	suite.NotNil(txns)
	suite.Empty(txns)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()
	transactionID := uuid.NewString()

	suite.mockTxnRepo.On("DeleteTransaction", ctx, transactionID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, transactionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
