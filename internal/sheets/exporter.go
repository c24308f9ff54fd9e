// Package sheets mirrors recorded transactions to a Google Sheets
// spreadsheet using a service account.
package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	"github.com/yhas1984/contabilidad-personal-docker/internal/document"
)

// Config holds the spreadsheet target and service account credentials.
type Config struct {
	CredentialsFile string
	SpreadsheetID   string
	SheetName       string
}

// Exporter appends one row per transaction to the configured sheet.
type Exporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetName     string
}

// NewExporter builds a sheet exporter from a service-account JSON key. It
// returns (nil, nil) when no spreadsheet is configured so callers can treat
// the mirror as disabled.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if cfg.SpreadsheetID == "" || cfg.CredentialsFile == "" {
		return nil, nil
	}

	key, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheets credentials: %w", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(key, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheets credentials: %w", err)
	}

	service, err := sheetsapi.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	sheetName := cfg.SheetName
	if sheetName == "" {
		sheetName = "Transacciones"
	}

	return &Exporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// AppendTransaction adds a single row for the transaction. Values are
// formatted the same way the PDF report formats them.
func (e *Exporter) AppendTransaction(ctx context.Context, txn domain.Transaction) error {
	row := []interface{}{
		document.FormatDate(txn.Date),
		txn.Client.Name,
		txn.Client.Email,
		txn.AmountReceived.StringFixed(2),
		txn.AmountDelivered.StringFixed(2),
		txn.ExchangeRate.StringFixed(2),
		txn.Profit.StringFixed(2),
		txn.ReceiptID,
	}

	values := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	_, err := e.service.Spreadsheets.Values.
		Append(e.spreadsheetID, e.sheetName+"!A:H", values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row to spreadsheet: %w", err)
	}
	return nil
}
