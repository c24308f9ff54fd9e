package document

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// packageArtifact wraps rendered bytes in the envelope the caller asked
// for. All three envelopes carry bit-identical content; only the wrapper
// differs.
func packageArtifact(raw []byte, contentType string, opts Options) Result {
	res := Result{
		Success:     true,
		ContentType: contentType,
		Filename:    opts.Filename,
	}

	switch opts.OutputFormat {
	case FormatBlob:
		res.Blob = &Blob{ContentType: contentType, Bytes: raw}
	case FormatRawBytes:
		res.Bytes = raw
	default:
		res.DataURI = encodeDataURI(contentType, raw)
	}
	return res
}

func encodeDataURI(contentType string, raw []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

// ArtifactBytes decodes the artifact back to raw bytes regardless of which
// envelope the result carries.
func (r Result) ArtifactBytes() ([]byte, error) {
	switch {
	case r.Bytes != nil:
		return r.Bytes, nil
	case r.Blob != nil:
		return r.Blob.Bytes, nil
	case r.DataURI != "":
		_, payload, found := strings.Cut(r.DataURI, ",")
		if !found {
			return nil, fmt.Errorf("malformed data URI")
		}
		raw, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding data URI: %w", err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("result carries no artifact")
	}
}

// writeArtifact persists the artifact to dir. Used when the caller asked
// for an automatic download of the generated document.
func writeArtifact(dir, filename string, raw []byte) error {
	if dir == "" {
		return fmt.Errorf("download directory not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating download directory: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	return nil
}

// degradedTransaction is the trimmed per-transaction view included in the
// degraded JSON report preview.
type degradedTransaction struct {
	Date          string          `json:"date"`
	Client        string          `json:"client"`
	EurosReceived decimal.Decimal `json:"eurosReceived"`
	BsDelivered   decimal.Decimal `json:"bsDelivered"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	Profit        decimal.Decimal `json:"profit"`
}

// degradedReport is the JSON document substituted for the PDF when rich
// rendering is unavailable.
type degradedReport struct {
	Notice            string                `json:"notice"`
	GeneratedAt       string                `json:"generatedAt"`
	StartDate         string                `json:"startDate"`
	EndDate           string                `json:"endDate"`
	Summary           Summary               `json:"summary"`
	TotalTransactions int                   `json:"totalTransactions"`
	Preview           []degradedTransaction `json:"transactionsPreview"`
}

const degradedPreviewLimit = 5

// buildDegradedReport serializes the report data as indented JSON with the
// period summary and a short transaction preview.
func buildDegradedReport(req ReportRequest) ([]byte, error) {
	report := degradedReport{
		Notice: "Este entorno no permite generar el PDF completo; " +
			"se entrega un resumen en formato JSON en su lugar",
		GeneratedAt:       time.Now().Format(time.RFC3339),
		StartDate:         req.StartDate.Format("2006-01-02"),
		EndDate:           req.EndDate.Format("2006-01-02"),
		Summary:           Summarize(req.Transactions),
		TotalTransactions: len(req.Transactions),
	}

	limit := len(req.Transactions)
	if limit > degradedPreviewLimit {
		limit = degradedPreviewLimit
	}
	for _, tx := range req.Transactions[:limit] {
		report.Preview = append(report.Preview, degradedTransaction{
			Date:          tx.Date.Format("2006-01-02"),
			Client:        tx.Client.Name,
			EurosReceived: tx.AmountReceived,
			BsDelivered:   tx.AmountDelivered,
			ExchangeRate:  tx.ExchangeRate,
			Profit:        tx.Profit,
		})
	}

	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding degraded report: %w", err)
	}
	return raw, nil
}
