package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yhas1984/contabilidad-personal-docker/internal/apperrors"
	portssvc "github.com/yhas1984/contabilidad-personal-docker/internal/core/ports/services"
	"github.com/yhas1984/contabilidad-personal-docker/internal/document"
	"github.com/yhas1984/contabilidad-personal-docker/internal/dto"
	"github.com/yhas1984/contabilidad-personal-docker/internal/middleware"
)

// documentHandler handles report and receipt generation requests.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

// newDocumentHandler creates a new documentHandler.
func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{
		documentService: ds,
	}
}

// registerDocumentRoutes registers routes related to generated documents.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	rg.POST("/reports", h.generateReport)

	receipts := rg.Group("/receipts")
	{
		receipts.POST("/:receiptID", h.generateReceipt)
		receipts.GET("/:receiptID/pdf", h.downloadReceipt)
		receipts.POST("/:receiptID/email", h.emailReceipt)
	}
}

// generateReport godoc
// @Summary Generate a financial report
// @Description Builds the financial report for a date range. The artifact is returned inside the result in the requested output format; when PDF rendering is unavailable a JSON summary is produced instead and flagged in the warnings.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   report body dto.GenerateReportRequest true "Report parameters"
// @Success 200 {object} document.Result
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 422 {object} document.Result "Generation failed"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports [post]
func (h *documentHandler) generateReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GenerateReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		logger.Info("Report requested",
			slog.String("user_id", userID),
			slog.String("start_date", req.StartDate),
			slog.String("end_date", req.EndDate))
	}

	res, err := h.documentService.GenerateReport(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to generate report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate report"})
		}
		return
	}

	h.respondWithResult(c, res)
}

// generateReceipt godoc
// @Summary Generate a receipt
// @Description Builds the receipt document for an existing transaction, identified by its receipt ID.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   receiptID path string true "Receipt ID"
// @Param   options body dto.GenerateReceiptRequest true "Generation options"
// @Success 200 {object} document.Result
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Receipt not found"
// @Failure 422 {object} document.Result "Generation failed"
// @Failure 503 {object} ErrorResponse "PDF rendering unavailable"
// @Security BearerAuth
// @Router /receipts/{receiptID} [post]
func (h *documentHandler) generateReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	var req dto.GenerateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GenerateReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	res, err := h.documentService.GenerateReceipt(c.Request.Context(), receiptID, req)
	if err != nil {
		h.respondWithGenerationError(c, err, receiptID)
		return
	}

	h.respondWithResult(c, res)
}

// downloadReceipt godoc
// @Summary Download a receipt PDF
// @Description Streams the receipt PDF for an existing transaction.
// @Tags documents
// @Produce  application/pdf
// @Param   receiptID path string true "Receipt ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse "Receipt not found"
// @Failure 422 {object} document.Result "Generation failed"
// @Failure 503 {object} ErrorResponse "PDF rendering unavailable"
// @Security BearerAuth
// @Router /receipts/{receiptID}/pdf [get]
func (h *documentHandler) downloadReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	req := dto.GenerateReceiptRequest{OutputFormat: string(document.FormatRawBytes)}
	res, err := h.documentService.GenerateReceipt(c.Request.Context(), receiptID, req)
	if err != nil {
		h.respondWithGenerationError(c, err, receiptID)
		return
	}
	if !res.Success {
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}

	raw, err := res.ArtifactBytes()
	if err != nil {
		logger.Error("Generated receipt carries no artifact", slog.String("receipt_id", receiptID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate receipt"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	c.Data(http.StatusOK, res.ContentType, raw)
}

// emailReceipt godoc
// @Summary Email a receipt to the client
// @Description Generates the receipt PDF and sends it by email. Without an explicit recipient the client's stored address is used.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   receiptID path string true "Receipt ID"
// @Param   email body dto.EmailReceiptRequest true "Email options"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Receipt not found"
// @Failure 500 {object} ErrorResponse "Failed to send email"
// @Failure 503 {object} ErrorResponse "Emailing or rendering unavailable"
// @Security BearerAuth
// @Router /receipts/{receiptID}/email [post]
func (h *documentHandler) emailReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	var req dto.EmailReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EmailReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.documentService.EmailReceipt(c.Request.Context(), receiptID, req); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Receipt not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrEnvironment):
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Receipt emailing is not available in this environment"})
		default:
			logger.Error("Failed to email receipt", slog.String("receipt_id", receiptID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to send email"})
		}
		return
	}

	logger.Info("Receipt emailed", slog.String("receipt_id", receiptID))
	c.JSON(http.StatusOK, gin.H{"message": "Recibo enviado correctamente"})
}

// respondWithResult answers a generation call: failed results map to 422 so the
// frontend can surface the Spanish error message, successful blob and rawbytes
// envelopes are streamed, everything else is returned as JSON.
func (h *documentHandler) respondWithResult(c *gin.Context, res document.Result) {
	if !res.Success {
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}

	if res.Blob != nil {
		c.Header("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
		c.Data(http.StatusOK, res.Blob.ContentType, res.Blob.Bytes)
		return
	}
	if len(res.Bytes) > 0 {
		c.Header("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
		c.Data(http.StatusOK, res.ContentType, res.Bytes)
		return
	}

	c.JSON(http.StatusOK, res)
}

// respondWithGenerationError maps receipt generation errors to HTTP statuses.
func (h *documentHandler) respondWithGenerationError(c *gin.Context, err error, receiptID string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Receipt not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrEnvironment):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "PDF rendering is not available in this environment"})
	default:
		logger.Error("Failed to generate receipt", slog.String("receipt_id", receiptID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate receipt"})
	}
}
