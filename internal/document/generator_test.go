package document_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	"github.com/yhas1984/contabilidad-personal-docker/internal/document"
)

// staticCapability overrides the engine's own capability check.
type staticCapability bool

func (c staticCapability) SupportsRichRendering() bool { return bool(c) }

type GeneratorTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *GeneratorTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *GeneratorTestSuite) reportRequest(txCount int) document.ReportRequest {
	txs := make([]domain.Transaction, 0, txCount)
	for i := 0; i < txCount; i++ {
		tx := validTransaction()
		tx.Date = tx.Date.AddDate(0, 0, i)
		txs = append(txs, tx)
	}
	return document.ReportRequest{
		Company:      validCompany(),
		Transactions: txs,
		StartDate:    time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
	}
}

func (s *GeneratorTestSuite) receiptRequest() document.ReceiptRequest {
	return document.ReceiptRequest{
		Company:     validCompany(),
		Client:      validClient(),
		Transaction: validTransaction(),
	}
}

func (s *GeneratorTestSuite) TestReport_FullRender() {
	gen := document.NewGenerator(document.NewEngine(), nil, nil)

	res := gen.GenerateReport(s.ctx, s.reportRequest(3), document.Options{})

	s.Require().True(res.Success, "unexpected error: %s", res.ErrorMessage)
	s.Equal(document.ContentTypePDF, res.ContentType)
	s.Equal("reporte-financiero-2025-02-01-a-2025-02-28.pdf", res.Filename)
	s.True(strings.HasPrefix(res.DataURI, "data:application/pdf;base64,"))

	raw, err := res.ArtifactBytes()
	s.Require().NoError(err)
	s.True(strings.HasPrefix(string(raw), "%PDF"))
}

func (s *GeneratorTestSuite) TestReport_ModernDesign() {
	gen := document.NewGenerator(document.NewEngine(), nil, nil)

	res := gen.GenerateReport(s.ctx, s.reportRequest(3), document.Options{ModernDesign: true})

	s.Require().True(res.Success, "unexpected error: %s", res.ErrorMessage)
	s.Equal(document.ContentTypePDF, res.ContentType)
}

func (s *GeneratorTestSuite) TestReport_OutputFormats() {
	gen := document.NewGenerator(document.NewEngine(), nil, nil)
	req := s.reportRequest(2)

	blobRes := gen.GenerateReport(s.ctx, req, document.Options{OutputFormat: document.FormatBlob})
	s.Require().True(blobRes.Success)
	s.Require().NotNil(blobRes.Blob)
	s.Empty(blobRes.DataURI)
	s.Nil(blobRes.Bytes)
	s.Equal(document.ContentTypePDF, blobRes.Blob.ContentType)

	rawRes := gen.GenerateReport(s.ctx, req, document.Options{OutputFormat: document.FormatRawBytes})
	s.Require().True(rawRes.Success)
	s.Require().NotNil(rawRes.Bytes)
	s.Nil(rawRes.Blob)
	s.Empty(rawRes.DataURI)

	blobBytes, err := blobRes.ArtifactBytes()
	s.Require().NoError(err)
	s.True(strings.HasPrefix(string(blobBytes), "%PDF"))
	s.True(strings.HasPrefix(string(rawRes.Bytes), "%PDF"))
}

func (s *GeneratorTestSuite) TestReport_ValidationFailure() {
	gen := document.NewGenerator(document.NewEngine(), nil, nil)
	req := s.reportRequest(1)
	req.StartDate, req.EndDate = req.EndDate, req.StartDate

	res := gen.GenerateReport(s.ctx, req, document.Options{})

	s.False(res.Success)
	s.Contains(res.ErrorMessage, "no son válidos")
	s.Empty(res.DataURI)
}

func (s *GeneratorTestSuite) TestReport_SkipValidation() {
	gen := document.NewGenerator(document.NewEngine(), nil, nil)
	req := s.reportRequest(1)
	req.StartDate, req.EndDate = req.EndDate, req.StartDate

	res := gen.GenerateReport(s.ctx, req, document.Options{SkipValidation: true})

	s.True(res.Success, "unexpected error: %s", res.ErrorMessage)
}

func (s *GeneratorTestSuite) TestReport_DegradedEnvironment() {
	engine := document.NewEngine(document.WithoutLayoutPrimitive())
	gen := document.NewGenerator(engine, nil, nil)
	req := s.reportRequest(8)

	res := gen.GenerateReport(s.ctx, req, document.Options{})

	s.Require().True(res.Success, "unexpected error: %s", res.ErrorMessage)
	s.Equal(document.ContentTypeJSON, res.ContentType)
	s.Equal("reporte-financiero-2025-02-01-a-2025-02-28.json", res.Filename)
	s.True(strings.HasPrefix(res.DataURI, "data:application/json;base64,"))

	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "JSON") {
			found = true
		}
	}
	s.True(found, "expected a substitution warning, got %v", res.Warnings)

	raw, err := res.ArtifactBytes()
	s.Require().NoError(err)

	var payload struct {
		TotalTransactions int `json:"totalTransactions"`
		Summary           struct {
			TransactionCount int `json:"transactionCount"`
		} `json:"summary"`
		Preview []json.RawMessage `json:"transactionsPreview"`
	}
	s.Require().NoError(json.Unmarshal(raw, &payload))
	s.Equal(8, payload.TotalTransactions)
	s.Equal(8, payload.Summary.TransactionCount)
	s.Len(payload.Preview, 5)
}

func (s *GeneratorTestSuite) TestReport_CapabilityOverride() {
	// A fully able engine still degrades when the environment says no.
	gen := document.NewGenerator(document.NewEngine(), staticCapability(false), nil)

	res := gen.GenerateReport(s.ctx, s.reportRequest(1), document.Options{})

	s.Require().True(res.Success, "unexpected error: %s", res.ErrorMessage)
	// The engine can still draw, so the fallback lands on the simple PDF.
	s.Equal(document.ContentTypePDF, res.ContentType)

	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "simplificada") {
			found = true
		}
	}
	s.True(found, "expected a simplified-render warning, got %v", res.Warnings)
}

func (s *GeneratorTestSuite) TestReport_TableFallbackTruncates() {
	engine := document.NewEngine(document.WithoutTableRenderer())
	gen := document.NewGenerator(engine, nil, nil)

	res := gen.GenerateReport(s.ctx, s.reportRequest(25), document.Options{})

	s.Require().True(res.Success, "unexpected error: %s", res.ErrorMessage)
	s.Equal(document.ContentTypePDF, res.ContentType)

	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "20") {
			found = true
		}
	}
	s.True(found, "expected a truncation warning, got %v", res.Warnings)
}

func (s *GeneratorTestSuite) TestReport_BadLogoIsWarningOnly() {
	gen := document.NewGenerator(document.NewEngine(), nil, nil)
	req := s.reportRequest(2)
	req.Company.Logo = "data:image/png;base64,@@not-base64@@"

	res := gen.GenerateReport(s.ctx, req, document.Options{})

	s.Require().True(res.Success, "unexpected error: %s", res.ErrorMessage)

	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "logo") {
			found = true
		}
	}
	s.True(found, "expected a logo warning, got %v", res.Warnings)
}

func (s *GeneratorTestSuite) TestReport_AutoDownload() {
	dir := s.T().TempDir()
	gen := document.NewGenerator(document.NewEngine(), nil, nil)

	res := gen.GenerateReport(s.ctx, s.reportRequest(2), document.Options{
		AutoDownload: true,
		DownloadDir:  dir,
	})

	s.Require().True(res.Success, "unexpected error: %s", res.ErrorMessage)

	saved, err := os.ReadFile(filepath.Join(dir, res.Filename))
	s.Require().NoError(err)

	raw, err := res.ArtifactBytes()
	s.Require().NoError(err)
	s.Equal(raw, saved)
}

func (s *GeneratorTestSuite) TestReceipt_FullRender() {
	gen := document.NewGenerator(document.NewEngine(), nil, nil)

	res := gen.GenerateReceipt(s.ctx, s.receiptRequest(), document.Options{})

	s.Require().True(res.Success, "unexpected error: %s", res.ErrorMessage)
	s.Equal("recibo-REC-a1b2c3d4.pdf", res.Filename)
	s.Equal(document.ContentTypePDF, res.ContentType)

	raw, err := res.ArtifactBytes()
	s.Require().NoError(err)
	s.True(strings.HasPrefix(string(raw), "%PDF"))
}

func (s *GeneratorTestSuite) TestReceipt_RefusedInDegradedEnvironment() {
	gen := document.NewGenerator(document.NewEngine(), staticCapability(false), nil)

	res := gen.GenerateReceipt(s.ctx, s.receiptRequest(), document.Options{})

	s.False(res.Success)
	s.Contains(res.ErrorMessage, "no está disponible")
}

func (s *GeneratorTestSuite) TestReceipt_ForcedRenderInDegradedEnvironment() {
	// The capability says no but the engine can draw; forcing succeeds.
	gen := document.NewGenerator(document.NewEngine(), staticCapability(false), nil)

	res := gen.GenerateReceipt(s.ctx, s.receiptRequest(), document.Options{ForceClientSide: true})

	s.Require().True(res.Success, "unexpected error: %s", res.ErrorMessage)
	s.Equal(document.ContentTypePDF, res.ContentType)
}

func (s *GeneratorTestSuite) TestReceipt_ForcedRenderStillFailsWithoutPrimitives() {
	engine := document.NewEngine(document.WithoutLayoutPrimitive())
	gen := document.NewGenerator(engine, nil, nil)

	res := gen.GenerateReceipt(s.ctx, s.receiptRequest(), document.Options{ForceClientSide: true})

	s.False(res.Success)
	s.Contains(res.ErrorMessage, "no está disponible")
}

func (s *GeneratorTestSuite) TestReceipt_ValidationFailure() {
	gen := document.NewGenerator(document.NewEngine(), nil, nil)
	req := s.receiptRequest()
	req.Transaction.ReceiptID = ""

	res := gen.GenerateReceipt(s.ctx, req, document.Options{})

	s.False(res.Success)
	s.Contains(res.ErrorMessage, "no son válidos")
}

func TestGeneratorTestSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTestSuite))
}
