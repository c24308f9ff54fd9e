package services

import (
	"context"
	"time"

	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	"github.com/yhas1984/contabilidad-personal-docker/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction by its ID.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// GetTransactionByReceiptID retrieves the transaction behind a receipt.
	GetTransactionByReceiptID(ctx context.Context, receiptID string) (*domain.Transaction, error)

	// ListTransactions retrieves all transactions, newest first.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// ListTransactionsByDateRange retrieves transactions within [start, end].
	ListTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction records a new exchange operation. Derived fields
	// (profit, margin, receipt ID) are computed here.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, ipAddress string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
