package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
)

// CreateTransactionRequest defines the data needed to record an exchange
// operation. Cost is the euros spent acquiring the delivered bolívares; if
// omitted it defaults to the amount received, which records a zero margin.
type CreateTransactionRequest struct {
	Date            time.Time       `json:"date" binding:"required"`
	ClientID        string          `json:"clientID" binding:"required"`
	AmountReceived  decimal.Decimal `json:"amountReceived" binding:"required"`
	AmountDelivered decimal.Decimal `json:"amountDelivered" binding:"required"`
	Cost            decimal.Decimal `json:"cost"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate" binding:"required"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID    string          `json:"transactionID"`
	Date             time.Time       `json:"date"`
	ClientID         string          `json:"clientID"`
	Client           *ClientResponse `json:"client,omitempty"`
	AmountReceived   decimal.Decimal `json:"amountReceived"`
	AmountDelivered  decimal.Decimal `json:"amountDelivered"`
	Cost             decimal.Decimal `json:"cost"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	Profit           decimal.Decimal `json:"profit"`
	ProfitPercentage decimal.Decimal `json:"profitPercentage"`
	ReceiptID        string          `json:"receiptId"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	res := TransactionResponse{
		TransactionID:    txn.TransactionID,
		Date:             txn.Date,
		ClientID:         txn.ClientID,
		AmountReceived:   txn.AmountReceived,
		AmountDelivered:  txn.AmountDelivered,
		Cost:             txn.Cost,
		ExchangeRate:     txn.ExchangeRate,
		Profit:           txn.Profit,
		ProfitPercentage: txn.ProfitPercentage,
		ReceiptID:        txn.ReceiptID,
		CreatedAt:        txn.CreatedAt,
	}
	if txn.Client.ClientID != "" {
		client := ToClientResponse(&txn.Client)
		res.Client = &client
	}
	return res
}

// ToListTransactionResponse converts a slice of domain transactions to DTOs.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return res
}
