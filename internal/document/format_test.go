package document_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yhas1984/contabilidad-personal-docker/internal/document"
)

func TestFormatCurrency(t *testing.T) {
	testCases := []struct {
		name     string
		amount   string
		code     string
		expected string
	}{
		{"euros with thousands", "1234.56", "EUR", "1.234,56 €"},
		{"bolivares", "45678.90", "VES", "45.678,90 Bs"},
		{"dollars keep left symbol", "99.95", "USD", "$99,95"},
		{"negative amount", "-150.25", "EUR", "-150,25 €"},
		{"zero", "0", "EUR", "0,00 €"},
		{"unknown code falls back to the code itself", "10", "GBP", "10,00 GBP"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			assert.Equal(t, tc.expected, document.FormatCurrency(amount, tc.code))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1.234.567,89", document.FormatNumber(decimal.RequireFromString("1234567.891")))
	assert.Equal(t, "0,50", document.FormatNumber(decimal.RequireFromString("0.5")))
	assert.Equal(t, "-1.000,00", document.FormatNumber(decimal.NewFromInt(-1000)))
}

func TestFormatRate(t *testing.T) {
	rate := decimal.RequireFromString("42.5")
	assert.Equal(t, "42,50 Bs/€", document.FormatRate(rate))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.March, 7, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "07/03/2025", document.FormatDate(d))
	assert.Equal(t, "07/03/2025 14:30:00", document.FormatTimestamp(d))
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "recibo-REC-a1b2c3d4.pdf", document.ReceiptFilename("REC-a1b2c3d4"))

	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "reporte-financiero-2025-01-01-a-2025-01-31.pdf", document.ReportFilename(start, end, "pdf"))
	assert.Equal(t, "reporte-financiero-2025-01-01-a-2025-01-31.json", document.ReportFilename(start, end, "json"))
}
