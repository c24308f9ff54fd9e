package services

import (
	"context"

	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	"github.com/yhas1984/contabilidad-personal-docker/internal/document"
	"github.com/yhas1984/contabilidad-personal-docker/internal/dto"
)

// DocumentSvcFacade exposes the document generation operations. Results are
// never errors: generation failures are reported inside the Result so the
// transport layer can always answer with a well-formed payload.
type DocumentSvcFacade interface {
	// GenerateReport builds the financial report for a date range.
	GenerateReport(ctx context.Context, req dto.GenerateReportRequest) (document.Result, error)

	// GenerateReceipt builds the receipt PDF for an existing transaction.
	GenerateReceipt(ctx context.Context, receiptID string, req dto.GenerateReceiptRequest) (document.Result, error)

	// EmailReceipt generates the receipt and emails it to the client.
	EmailReceipt(ctx context.Context, receiptID string, req dto.EmailReceiptRequest) error
}

// ReceiptMailer sends generated documents by email.
type ReceiptMailer interface {
	// SendDocument emails a single attachment to the recipient.
	SendDocument(to, subject, body, filename string, attachment []byte) error
}

// TransactionExporter mirrors recorded transactions to an external sheet.
// Export failures must never fail the transaction itself.
type TransactionExporter interface {
	AppendTransaction(ctx context.Context, txn domain.Transaction) error
}
