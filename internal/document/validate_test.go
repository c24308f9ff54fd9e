package document_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	"github.com/yhas1984/contabilidad-personal-docker/internal/document"
)

func validTransaction() domain.Transaction {
	return domain.Transaction{
		TransactionID:   "tx-1",
		Date:            time.Date(2025, time.February, 14, 0, 0, 0, 0, time.UTC),
		Client:          validClient(),
		AmountReceived:  decimal.NewFromInt(100),
		AmountDelivered: decimal.RequireFromString("4250"),
		ExchangeRate:    decimal.RequireFromString("42.5"),
		Profit:          decimal.NewFromInt(5),
		ReceiptID:       "REC-a1b2c3d4",
	}
}

func validClient() domain.Client {
	return domain.Client{
		ClientID: "client-1",
		Name:     "María García",
		Email:    "maria@example.com",
		DNI:      "12345678Z",
		Phone:    "+34 612 345 678",
	}
}

func validCompany() domain.CompanyInfo {
	return domain.CompanyInfo{
		Name:    "Tu Envío Express C.A.",
		Address: "Calle Mayor 1, Madrid",
		Phone:   "+34 910 000 000",
		Email:   "info@tuenvio.example",
		TaxID:   "B12345678",
	}
}

func TestValidateTransaction(t *testing.T) {
	t.Run("valid transaction passes", func(t *testing.T) {
		report := document.Validate(validTransaction(), document.KindTransaction)
		assert.True(t, report.IsValid)
		assert.Empty(t, report.Errors)
	})

	t.Run("non positive amounts are errors", func(t *testing.T) {
		tx := validTransaction()
		tx.AmountReceived = decimal.Zero
		tx.ExchangeRate = decimal.NewFromInt(-1)

		report := document.Validate(tx, document.KindTransaction)

		assert.False(t, report.IsValid)
		assert.Len(t, report.Errors, 2)
	})

	t.Run("missing date and client are errors", func(t *testing.T) {
		tx := validTransaction()
		tx.Date = time.Time{}
		tx.Client = domain.Client{}
		tx.ClientID = ""

		report := document.Validate(tx, document.KindTransaction)

		assert.False(t, report.IsValid)
		assert.Len(t, report.Errors, 2)
	})

	t.Run("nil payload yields a single error", func(t *testing.T) {
		report := document.Validate((*domain.Transaction)(nil), document.KindTransaction)
		assert.False(t, report.IsValid)
		assert.Len(t, report.Errors, 1)
	})
}

func TestValidateClient(t *testing.T) {
	t.Run("bad phone and DNI are warnings only", func(t *testing.T) {
		client := validClient()
		client.Phone = "llámame"
		client.DNI = "no-es-un-dni"

		report := document.Validate(client, document.KindClient)

		assert.True(t, report.IsValid)
		assert.Len(t, report.Warnings, 2)
	})

	t.Run("missing name and email are errors", func(t *testing.T) {
		report := document.Validate(domain.Client{}, document.KindClient)
		assert.False(t, report.IsValid)
		assert.Len(t, report.Errors, 2)
	})

	t.Run("NIE format is accepted", func(t *testing.T) {
		client := validClient()
		client.DNI = "X1234567L"

		report := document.Validate(client, document.KindClient)

		assert.True(t, report.IsValid)
		assert.Empty(t, report.Warnings)
	})
}

func TestValidateCompany(t *testing.T) {
	t.Run("missing optional fields downgrade to warnings", func(t *testing.T) {
		report := document.Validate(domain.CompanyInfo{Name: "Tu Envío"}, document.KindCompany)
		assert.True(t, report.IsValid)
		assert.Len(t, report.Warnings, 4)
	})

	t.Run("unsupported logo source is a warning", func(t *testing.T) {
		company := validCompany()
		company.Logo = "ftp://example.com/logo.png"

		report := document.Validate(company, document.KindCompany)

		assert.True(t, report.IsValid)
		require.Len(t, report.Warnings, 1)
		assert.Contains(t, report.Warnings[0], "logo")
	})
}

func TestValidateReport(t *testing.T) {
	base := document.ReportRequest{
		Company:      validCompany(),
		Transactions: []domain.Transaction{validTransaction()},
		StartDate:    time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
	}

	t.Run("valid request passes", func(t *testing.T) {
		report := document.Validate(base, document.KindReport)
		assert.True(t, report.IsValid)
	})

	t.Run("inverted date range is an error", func(t *testing.T) {
		req := base
		req.StartDate, req.EndDate = req.EndDate, req.StartDate

		report := document.Validate(req, document.KindReport)

		assert.False(t, report.IsValid)
	})

	t.Run("empty transaction list is only a warning", func(t *testing.T) {
		req := base
		req.Transactions = nil

		report := document.Validate(req, document.KindReport)

		assert.True(t, report.IsValid)
		assert.NotEmpty(t, report.Warnings)
	})

	t.Run("nested company errors are prefixed", func(t *testing.T) {
		req := base
		req.Company = domain.CompanyInfo{}

		report := document.Validate(req, document.KindReport)

		assert.False(t, report.IsValid)
		require.NotEmpty(t, report.Errors)
		assert.Contains(t, report.Errors[0], "empresa: ")
	})
}

func TestValidateReceipt(t *testing.T) {
	base := document.ReceiptRequest{
		Company:     validCompany(),
		Client:      validClient(),
		Transaction: validTransaction(),
	}

	t.Run("valid receipt passes", func(t *testing.T) {
		report := document.Validate(base, document.KindReceipt)
		assert.True(t, report.IsValid)
	})

	t.Run("missing receipt id is an error", func(t *testing.T) {
		req := base
		req.Transaction.ReceiptID = ""

		report := document.Validate(req, document.KindReceipt)

		assert.False(t, report.IsValid)
	})

	t.Run("nested client errors are prefixed", func(t *testing.T) {
		req := base
		req.Client = domain.Client{}

		report := document.Validate(req, document.KindReceipt)

		assert.False(t, report.IsValid)
		require.NotEmpty(t, report.Errors)
		assert.Contains(t, report.Errors[0], "cliente: ")
	})
}

func TestSummarize(t *testing.T) {
	t.Run("empty list yields zero values", func(t *testing.T) {
		s := document.Summarize(nil)
		assert.Equal(t, 0, s.Count)
		assert.True(t, s.AvgProfitPercentage.IsZero())
		assert.True(t, s.TotalProfit.IsZero())
	})

	t.Run("totals and average", func(t *testing.T) {
		txs := []domain.Transaction{validTransaction(), validTransaction()}
		txs[1].AmountReceived = decimal.NewFromInt(200)
		txs[0].ProfitPercentage = decimal.NewFromInt(4)
		txs[1].ProfitPercentage = decimal.NewFromInt(6)

		s := document.Summarize(txs)

		assert.Equal(t, 2, s.Count)
		assert.True(t, s.TotalReceived.Equal(decimal.NewFromInt(300)))
		assert.True(t, s.TotalProfit.Equal(decimal.NewFromInt(10)))
		assert.True(t, s.AvgProfitPercentage.Equal(decimal.NewFromInt(5)))
	})
}
