package repositories

import (
	"context"
	"time"

	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByReceiptID retrieves the transaction behind a receipt.
	FindTransactionByReceiptID(ctx context.Context, receiptID string) (*domain.Transaction, error)

	// ListTransactions retrieves all transactions, newest first.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// ListTransactionsByDateRange retrieves transactions whose date falls in
	// [start, end], ordered by date ascending.
	ListTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
