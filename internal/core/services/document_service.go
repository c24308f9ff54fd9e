package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yhas1984/contabilidad-personal-docker/internal/apperrors"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	portsrepo "github.com/yhas1984/contabilidad-personal-docker/internal/core/ports/repositories"
	portssvc "github.com/yhas1984/contabilidad-personal-docker/internal/core/ports/services"
	"github.com/yhas1984/contabilidad-personal-docker/internal/document"
	"github.com/yhas1984/contabilidad-personal-docker/internal/dto"
)

const reportDateLayout = "2006-01-02"

// DocumentService assembles the data a document needs and hands it to the
// generation pipeline.
type DocumentService struct {
	BaseService
	generator   *document.Generator
	txnRepo     portsrepo.TransactionReader
	companyRepo portsrepo.CompanyReader
	mailer      portssvc.ReceiptMailer
	downloadDir string
}

func NewDocumentService(
	generator *document.Generator,
	txnRepo portsrepo.TransactionReader,
	companyRepo portsrepo.CompanyReader,
	mailer portssvc.ReceiptMailer,
	downloadDir string,
) *DocumentService {
	return &DocumentService{
		generator:   generator,
		txnRepo:     txnRepo,
		companyRepo: companyRepo,
		mailer:      mailer,
		downloadDir: downloadDir,
	}
}

func (s *DocumentService) GenerateReport(ctx context.Context, req dto.GenerateReportRequest) (document.Result, error) {
	start, err := time.Parse(reportDateLayout, req.StartDate)
	if err != nil {
		return document.Result{}, fmt.Errorf("invalid start date: %w", apperrors.ErrValidation)
	}
	end, err := time.Parse(reportDateLayout, req.EndDate)
	if err != nil {
		return document.Result{}, fmt.Errorf("invalid end date: %w", apperrors.ErrValidation)
	}
	// End of day so same-day transactions are included.
	endOfDay := end.Add(24*time.Hour - time.Nanosecond)

	company, err := s.loadCompany(ctx)
	if err != nil {
		return document.Result{}, err
	}

	txns, err := s.txnRepo.ListTransactionsByDateRange(ctx, start, endOfDay)
	if err != nil {
		return document.Result{}, fmt.Errorf("failed to load transactions for report: %w", err)
	}

	docReq := document.ReportRequest{
		Company:      *company,
		Transactions: txns,
		StartDate:    start,
		EndDate:      end,
	}

	if req.ComparePrior {
		prior, err := s.priorPeriodTotals(ctx, start, end)
		if err != nil {
			// Comparison is an enrichment; its absence is just a warning.
			s.LogWarn(ctx, "Prior period lookup failed", "error", err.Error())
		} else {
			docReq.PriorPeriod = prior
		}
	}

	opts := document.Options{
		OutputFormat: document.OutputFormat(req.OutputFormat),
		ModernDesign: req.ModernDesign,
		AutoDownload: req.AutoDownload,
		DownloadDir:  s.downloadDir,
	}

	return s.generator.GenerateReport(ctx, docReq, opts), nil
}

// priorPeriodTotals aggregates the window of equal length immediately
// preceding [start, end].
func (s *DocumentService) priorPeriodTotals(ctx context.Context, start, end time.Time) (*document.PeriodTotals, error) {
	length := end.Sub(start) + 24*time.Hour
	priorStart := start.Add(-length)
	priorEnd := start.Add(-time.Nanosecond)

	txns, err := s.txnRepo.ListTransactionsByDateRange(ctx, priorStart, priorEnd)
	if err != nil {
		return nil, err
	}

	summary := document.Summarize(txns)
	return &document.PeriodTotals{
		Count:          summary.Count,
		TotalReceived:  summary.TotalReceived,
		TotalDelivered: summary.TotalDelivered,
		TotalProfit:    summary.TotalProfit,
	}, nil
}

func (s *DocumentService) GenerateReceipt(ctx context.Context, receiptID string, req dto.GenerateReceiptRequest) (document.Result, error) {
	docReq, err := s.buildReceiptRequest(ctx, receiptID)
	if err != nil {
		return document.Result{}, err
	}

	opts := document.Options{
		OutputFormat:    document.OutputFormat(req.OutputFormat),
		ModernDesign:    req.ModernDesign,
		ForceClientSide: req.ForceClientSide,
	}

	return s.generator.GenerateReceipt(ctx, *docReq, opts), nil
}

// EmailReceipt renders the receipt and mails it as an attachment. The
// recipient defaults to the client's stored email.
func (s *DocumentService) EmailReceipt(ctx context.Context, receiptID string, req dto.EmailReceiptRequest) error {
	if s.mailer == nil {
		return fmt.Errorf("mail delivery is not configured: %w", apperrors.ErrEnvironment)
	}

	docReq, err := s.buildReceiptRequest(ctx, receiptID)
	if err != nil {
		return err
	}

	res := s.generator.GenerateReceipt(ctx, *docReq, document.Options{
		OutputFormat: document.FormatRawBytes,
	})
	if !res.Success {
		return fmt.Errorf("%w: %s", apperrors.ErrRender, res.ErrorMessage)
	}

	to := req.To
	if to == "" {
		to = docReq.Client.Email
	}

	subject := fmt.Sprintf("Recibo %s - %s", receiptID, docReq.Company.Name)
	body := req.Message
	if body == "" {
		body = fmt.Sprintf("Hola %s,\n\nAdjuntamos el recibo de su operación de cambio.\n\nGracias por su confianza.", docReq.Client.Name)
	}

	if err := s.mailer.SendDocument(to, subject, body, res.Filename, res.Bytes); err != nil {
		return fmt.Errorf("failed to send receipt email: %w", err)
	}

	s.LogInfo(ctx, "Receipt emailed", "receipt_id", receiptID, "to", to)
	return nil
}

func (s *DocumentService) buildReceiptRequest(ctx context.Context, receiptID string) (*document.ReceiptRequest, error) {
	txn, err := s.txnRepo.FindTransactionByReceiptID(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction for receipt: %w", err)
	}

	company, err := s.loadCompany(ctx)
	if err != nil {
		return nil, err
	}

	return &document.ReceiptRequest{
		Company:     *company,
		Client:      txn.Client,
		Transaction: *txn,
	}, nil
}

// loadCompany tolerates a not-yet-configured profile: documents can still
// be generated, validation will surface the missing fields as warnings or
// errors as appropriate.
func (s *DocumentService) loadCompany(ctx context.Context) (*domain.CompanyInfo, error) {
	info, err := s.companyRepo.GetCompanyInfo(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.CompanyInfo{}, nil
		}
		return nil, fmt.Errorf("failed to load company info for document: %w", err)
	}
	return info, nil
}
