package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction records a single currency exchange: euros received from a
// client and bolívares delivered in return at an agreed rate.
//
// AmountReceived and Cost are in the base currency (EUR); AmountDelivered
// is in the quote currency (VES). ExchangeRate is VES per EUR and must be
// positive. Profit and ProfitPercentage are derived at creation time.
type Transaction struct {
	TransactionID    string          `json:"transactionID"`
	Date             time.Time       `json:"date"`
	ClientID         string          `json:"clientID"`
	Client           Client          `json:"client"`
	AmountReceived   decimal.Decimal `json:"amountReceived"`
	AmountDelivered  decimal.Decimal `json:"amountDelivered"`
	Cost             decimal.Decimal `json:"cost"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	Profit           decimal.Decimal `json:"profit"`
	ProfitPercentage decimal.Decimal `json:"profitPercentage"`
	ReceiptID        string          `json:"receiptId"`
	IPAddress        string          `json:"ipAddress"`
	AuditFields
}
