// Package document implements the receipt and financial-report generation
// pipeline: validation, aggregation, page layout and artifact serialization.
//
// The pipeline is stateless: every call builds its document from the
// caller-supplied domain records and returns a Result. It never writes to
// storage and never lets an error escape as a panic.
package document

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
)

// Kind identifies the payload type being validated or rendered.
type Kind string

const (
	KindTransaction Kind = "transaction"
	KindClient      Kind = "client"
	KindCompany     Kind = "company"
	KindReport      Kind = "report"
	KindReceipt     Kind = "receipt"
)

// OutputFormat selects the envelope of the generated artifact. The document
// content is identical across formats; only the wrapping differs.
type OutputFormat string

const (
	// FormatDataURI yields a self-contained "data:<type>;base64," string.
	FormatDataURI OutputFormat = "datauri"
	// FormatBlob yields an in-memory blob with its content type attached.
	FormatBlob OutputFormat = "blob"
	// FormatRawBytes yields the raw byte buffer.
	FormatRawBytes OutputFormat = "rawbytes"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeJSON = "application/json"
)

// Options configures a single generation call.
type Options struct {
	OutputFormat OutputFormat
	// Filename overrides the deterministic default name.
	Filename string
	// AutoDownload writes the artifact into DownloadDir after serialization.
	AutoDownload bool
	DownloadDir  string
	// SkipValidation bypasses the validator; validation runs by default.
	SkipValidation bool
	// ModernDesign selects the colored-banner theme instead of the classic one.
	ModernDesign bool
	// ForceClientSide requests full rendering even when the environment
	// reports no rich-rendering support.
	ForceClientSide bool
}

// withDefaults normalizes the zero value to the documented defaults.
func (o Options) withDefaults() Options {
	if o.OutputFormat == "" {
		o.OutputFormat = FormatDataURI
	}
	return o
}

// Blob is an in-memory binary artifact with its content type, suitable for
// streaming as an HTTP response body.
type Blob struct {
	ContentType string
	Bytes       []byte
}

// Result is the single outcome shape of the pipeline. Exactly one of
// DataURI, Blob or Bytes carries the artifact on success, matching the
// requested OutputFormat.
type Result struct {
	Success      bool     `json:"success"`
	DataURI      string   `json:"dataUri,omitempty"`
	Blob         *Blob    `json:"-"`
	Bytes        []byte   `json:"-"`
	ErrorMessage string   `json:"error,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
	ContentType  string   `json:"contentType"`
	Filename     string   `json:"filename,omitempty"`
}

// ReceiptRequest carries everything needed to render a single-transaction
// receipt. All fields are read-only input owned by the caller.
type ReceiptRequest struct {
	Company     domain.CompanyInfo `json:"companyInfo"`
	Client      domain.Client      `json:"client"`
	Transaction domain.Transaction `json:"transactionData"`
}

// PeriodTotals are the aggregates of a prior period, used by the optional
// comparison block of a financial report.
type PeriodTotals struct {
	Count          int             `json:"transactionCount"`
	TotalReceived  decimal.Decimal `json:"totalReceived"`
	TotalDelivered decimal.Decimal `json:"totalDelivered"`
	TotalProfit    decimal.Decimal `json:"totalProfit"`
}

// ReportRequest carries a date range of transactions for a financial report.
type ReportRequest struct {
	Company      domain.CompanyInfo   `json:"companyInfo"`
	Transactions []domain.Transaction `json:"transactions"`
	StartDate    time.Time            `json:"startDate"`
	EndDate      time.Time            `json:"endDate"`
	// PriorPeriod enables the period-comparison block when present.
	PriorPeriod *PeriodTotals `json:"priorPeriod,omitempty"`
}

// ReceiptFilename is the deterministic name for a receipt artifact.
func ReceiptFilename(receiptID string) string {
	return fmt.Sprintf("recibo-%s.pdf", receiptID)
}

// ReportFilename is the deterministic name for a report artifact; ext is
// "pdf" on full success and "json" on the degraded path.
func ReportFilename(start, end time.Time, ext string) string {
	return fmt.Sprintf("reporte-financiero-%s-a-%s.%s",
		start.Format("2006-01-02"), end.Format("2006-01-02"), ext)
}
