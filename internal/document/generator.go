package document

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/yhas1984/contabilidad-personal-docker/internal/apperrors"
)

// RenderingCapability reports whether the current environment can produce
// full PDF output. The generator consults it before each render so a
// constrained deployment degrades instead of erroring.
type RenderingCapability interface {
	SupportsRichRendering() bool
}

// Generator orchestrates the document pipeline: validation, environment
// check, rendering and output packaging. Its methods always return a
// Result; failures are reported inside it, never as a panic or error.
type Generator struct {
	engine     *Engine
	capability RenderingCapability
	logger     *slog.Logger
}

// NewGenerator builds a Generator. A nil capability falls back to asking
// the engine itself; a nil logger falls back to slog.Default.
func NewGenerator(engine *Engine, capability RenderingCapability, logger *slog.Logger) *Generator {
	if capability == nil {
		capability = engine
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{engine: engine, capability: capability, logger: logger}
}

// GenerateReport produces the financial report for the requested period.
// In a rich environment it renders the full PDF; otherwise it attempts a
// simplified PDF and finally substitutes a JSON summary, flagging the
// substitution in the result warnings.
func (g *Generator) GenerateReport(ctx context.Context, req ReportRequest, opts Options) Result {
	opts = opts.withDefaults()
	if opts.Filename == "" {
		opts.Filename = ReportFilename(req.StartDate, req.EndDate, "pdf")
	}

	var warnings []string
	if !opts.SkipValidation {
		vr := Validate(req, KindReport)
		warnings = append(warnings, vr.Warnings...)
		if !vr.IsValid {
			return failure("Los datos del reporte no son válidos: "+strings.Join(vr.Errors, "; "), warnings)
		}
	}

	if g.capability.SupportsRichRendering() {
		pdf, renderWarnings, err := g.engine.BuildReport(ctx, req, opts.ModernDesign)
		warnings = append(warnings, renderWarnings...)
		switch {
		case err == nil:
			return g.finish(ctx, packageArtifact(pdf, ContentTypePDF, opts), opts, warnings)
		case errors.Is(err, apperrors.ErrEnvironment):
			g.logger.WarnContext(ctx, "rich report rendering unavailable, degrading", "error", err)
		default:
			g.logger.ErrorContext(ctx, "report rendering failed", "error", err)
			return failure("No se pudo generar el reporte PDF", warnings)
		}
	}

	return g.degradedReport(ctx, req, opts, warnings)
}

// degradedReport is the fallback path: one attempt at a simplified PDF,
// then a JSON summary document.
func (g *Generator) degradedReport(ctx context.Context, req ReportRequest, opts Options, warnings []string) Result {
	if pdf, err := g.engine.BuildSimpleReport(req); err == nil {
		warnings = append(warnings, "Se ha generado una versión simplificada del reporte PDF")
		return g.finish(ctx, packageArtifact(pdf, ContentTypePDF, opts), opts, warnings)
	} else if !errors.Is(err, apperrors.ErrEnvironment) {
		g.logger.WarnContext(ctx, "simplified report rendering failed", "error", err)
	}

	raw, err := buildDegradedReport(req)
	if err != nil {
		g.logger.ErrorContext(ctx, "degraded report encoding failed", "error", err)
		return failure("No se pudo generar el reporte en ningún formato", warnings)
	}

	opts.Filename = ReportFilename(req.StartDate, req.EndDate, "json")
	warnings = append(warnings, "El PDF no está disponible en este entorno; se ha generado un reporte JSON en su lugar")
	return g.finish(ctx, packageArtifact(raw, ContentTypeJSON, opts), opts, warnings)
}

// GenerateReceipt produces a customer receipt. Receipts have no degraded
// representation: in a constrained environment the call is refused unless
// the caller forces the render attempt.
func (g *Generator) GenerateReceipt(ctx context.Context, req ReceiptRequest, opts Options) Result {
	opts = opts.withDefaults()
	if opts.Filename == "" {
		opts.Filename = ReceiptFilename(req.Transaction.ReceiptID)
	}

	var warnings []string
	if !opts.SkipValidation {
		vr := Validate(req, KindReceipt)
		warnings = append(warnings, vr.Warnings...)
		if !vr.IsValid {
			return failure("Los datos del recibo no son válidos: "+strings.Join(vr.Errors, "; "), warnings)
		}
	}

	if !g.capability.SupportsRichRendering() && !opts.ForceClientSide {
		return failure("La generación de recibos PDF no está disponible en este entorno", warnings)
	}

	pdf, renderWarnings, err := g.engine.BuildReceipt(ctx, req, opts.ModernDesign)
	warnings = append(warnings, renderWarnings...)
	if err != nil {
		g.logger.ErrorContext(ctx, "receipt rendering failed",
			"receipt_id", req.Transaction.ReceiptID, "error", err)
		if errors.Is(err, apperrors.ErrEnvironment) {
			return failure("La generación de recibos PDF no está disponible en este entorno", warnings)
		}
		return failure("No se pudo generar el recibo PDF", warnings)
	}

	return g.finish(ctx, packageArtifact(pdf, ContentTypePDF, opts), opts, warnings)
}

// finish attaches warnings and handles the optional local save. A failed
// save downgrades to a warning; the artifact itself is already built.
func (g *Generator) finish(ctx context.Context, res Result, opts Options, warnings []string) Result {
	res.Warnings = warnings

	if opts.AutoDownload {
		raw, err := res.ArtifactBytes()
		if err == nil {
			err = writeArtifact(opts.DownloadDir, res.Filename, raw)
		}
		if err != nil {
			g.logger.WarnContext(ctx, "artifact save failed",
				"filename", res.Filename, "error", err)
			res.Warnings = append(res.Warnings, "No se pudo guardar el archivo localmente")
		}
	}
	return res
}

func failure(message string, warnings []string) Result {
	return Result{
		Success:      false,
		ErrorMessage: message,
		Warnings:     warnings,
	}
}
