package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yhas1984/contabilidad-personal-docker/internal/apperrors"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	portsrepo "github.com/yhas1984/contabilidad-personal-docker/internal/core/ports/repositories"
)

// transactionSelect joins the owning client so documents can be rendered
// from a single query.
const transactionSelect = `
	SELECT
		t.transaction_id, t.date, t.client_id,
		t.amount_received, t.amount_delivered, t.cost, t.exchange_rate,
		t.profit, t.profit_percentage, t.receipt_id, t.ip_address,
		t.created_at, t.last_updated_at,
		c.client_id, c.name, c.email, c.dni, c.phone, c.address,
		c.city, c.postal_code, c.country, c.notes, c.created_at, c.last_updated_at
	FROM transactions t
	JOIN clients c ON c.client_id = t.client_id`

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTransactionRepository creates a new repository for transaction data.
func NewPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.Date,
		&t.ClientID,
		&t.AmountReceived,
		&t.AmountDelivered,
		&t.Cost,
		&t.ExchangeRate,
		&t.Profit,
		&t.ProfitPercentage,
		&t.ReceiptID,
		&t.IPAddress,
		&t.CreatedAt,
		&t.LastUpdatedAt,
		&t.Client.ClientID,
		&t.Client.Name,
		&t.Client.Email,
		&t.Client.DNI,
		&t.Client.Phone,
		&t.Client.Address,
		&t.Client.City,
		&t.Client.PostalCode,
		&t.Client.Country,
		&t.Client.Notes,
		&t.Client.CreatedAt,
		&t.Client.LastUpdatedAt,
	)
	return t, err
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			transaction_id, date, client_id,
			amount_received, amount_delivered, cost, exchange_rate,
			profit, profit_percentage, receipt_id, ip_address,
			created_at, last_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.Date,
		txn.ClientID,
		txn.AmountReceived,
		txn.AmountDelivered,
		txn.Cost,
		txn.ExchangeRate,
		txn.Profit,
		txn.ProfitPercentage,
		txn.ReceiptID,
		txn.IPAddress,
		txn.CreatedAt,
		txn.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := transactionSelect + ` WHERE t.transaction_id = $1;`
	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by id %s: %w", transactionID, err)
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) FindTransactionByReceiptID(ctx context.Context, receiptID string) (*domain.Transaction, error) {
	query := transactionSelect + ` WHERE t.receipt_id = $1;`
	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, receiptID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by receipt id %s: %w", receiptID, err)
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := transactionSelect + ` ORDER BY t.date DESC, t.created_at DESC;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) ListTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	query := transactionSelect + ` WHERE t.date >= $1 AND t.date <= $2 ORDER BY t.date ASC;`
	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by range: %w", err)
	}
	defer rows.Close()

	txns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions by range: %w", err)
	}
	return txns, nil
}
