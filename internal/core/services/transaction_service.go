package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yhas1984/contabilidad-personal-docker/internal/apperrors"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	portsrepo "github.com/yhas1984/contabilidad-personal-docker/internal/core/ports/repositories"
	portssvc "github.com/yhas1984/contabilidad-personal-docker/internal/core/ports/services"
	"github.com/yhas1984/contabilidad-personal-docker/internal/dto"
)

var oneHundred = decimal.NewFromInt(100)

// TransactionService records exchange operations and derives their
// bookkeeping fields. An optional exporter mirrors each new transaction to
// an external sheet on a best-effort basis.
type TransactionService struct {
	BaseService
	txnRepo    portsrepo.TransactionRepositoryFacade
	clientRepo portsrepo.ClientReader
	exporter   portssvc.TransactionExporter
}

func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, clientRepo portsrepo.ClientReader, exporter portssvc.TransactionExporter) *TransactionService {
	return &TransactionService{txnRepo: txnRepo, clientRepo: clientRepo, exporter: exporter}
}

// newReceiptID builds a short human-readable receipt reference.
func newReceiptID() string {
	return "REC-" + strings.Split(uuid.NewString(), "-")[0]
}

func (s *TransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, ipAddress string) (*domain.Transaction, error) {
	if req.AmountReceived.Sign() <= 0 || req.AmountDelivered.Sign() <= 0 || req.ExchangeRate.Sign() <= 0 {
		return nil, fmt.Errorf("amounts and exchange rate must be positive: %w", apperrors.ErrValidation)
	}
	if req.Cost.Sign() < 0 {
		return nil, fmt.Errorf("cost must not be negative: %w", apperrors.ErrValidation)
	}

	client, err := s.clientRepo.FindClientByID(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client for transaction: %w", err)
	}

	// An omitted cost records the operation without a margin.
	cost := req.Cost
	if cost.IsZero() {
		cost = req.AmountReceived
	}

	profit := req.AmountReceived.Sub(cost)
	profitPct := decimal.Zero
	if req.AmountReceived.Sign() > 0 {
		profitPct = profit.Div(req.AmountReceived).Mul(oneHundred)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:    uuid.NewString(),
		Date:             req.Date,
		ClientID:         client.ClientID,
		Client:           *client,
		AmountReceived:   req.AmountReceived,
		AmountDelivered:  req.AmountDelivered,
		Cost:             cost,
		ExchangeRate:     req.ExchangeRate,
		Profit:           profit,
		ProfitPercentage: profitPct,
		ReceiptID:        newReceiptID(),
		IPAddress:        ipAddress,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction in service: %w", err)
	}

	s.LogInfo(ctx, "Transaction recorded",
		"transaction_id", txn.TransactionID,
		"receipt_id", txn.ReceiptID,
		"client_id", txn.ClientID)

	// Sheet export is best-effort: a mirror failure never undoes the
	// recorded transaction.
	if s.exporter != nil {
		if err := s.exporter.AppendTransaction(ctx, txn); err != nil {
			s.LogWarn(ctx, "Transaction sheet export failed",
				"transaction_id", txn.TransactionID, "error", err.Error())
		}
	}

	return &txn, nil
}

func (s *TransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction by id in service: %w", err)
	}
	return txn, nil
}

func (s *TransactionService) GetTransactionByReceiptID(ctx context.Context, receiptID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByReceiptID(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction by receipt id in service: %w", err)
	}
	return txn, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions in service: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

func (s *TransactionService) ListTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	if start.After(end) {
		return nil, fmt.Errorf("start date after end date: %w", apperrors.ErrValidation)
	}
	txns, err := s.txnRepo.ListTransactionsByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by range in service: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction in service: %w", err)
	}
	s.LogInfo(ctx, "Transaction deleted", "transaction_id", transactionID)
	return nil
}
