package document

import (
	"context"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/yhas1984/contabilidad-personal-docker/internal/apperrors"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
)

// Palette shared by the modern theme.
var (
	colorBlue      = props.Color{Red: 59, Green: 130, Blue: 246}
	colorGreen     = props.Color{Red: 16, Green: 185, Blue: 129}
	colorPurple    = props.Color{Red: 139, Green: 92, Blue: 246}
	colorLightBlue = props.Color{Red: 239, Green: 246, Blue: 255}
	colorLightGray = props.Color{Red: 245, Green: 247, Blue: 250}
	colorWhite     = props.Color{Red: 255, Green: 255, Blue: 255}
	colorDarkText  = props.Color{Red: 31, Green: 41, Blue: 55}
	colorMuted     = props.Color{Red: 107, Green: 114, Blue: 128}
)

// maxFallbackRows caps the manual transaction table used when the grid
// renderer is unavailable.
const maxFallbackRows = 20

// Engine draws PDF documents. Capabilities can be stripped with options to
// mirror constrained rendering environments; a stripped engine degrades
// instead of failing the whole pipeline.
type Engine struct {
	tableRenderer   bool
	layoutPrimitive bool
	logoTimeout     time.Duration
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithoutTableRenderer disables the styled grid table. Reports fall back to
// a plain-text row listing capped at maxFallbackRows entries.
func WithoutTableRenderer() EngineOption {
	return func(e *Engine) { e.tableRenderer = false }
}

// WithoutLayoutPrimitive disables PDF drawing entirely. Every Build call
// returns apperrors.ErrEnvironment so the orchestrator can switch to the
// degraded output path.
func WithoutLayoutPrimitive() EngineOption {
	return func(e *Engine) { e.layoutPrimitive = false }
}

// WithLogoTimeout bounds remote logo fetches.
func WithLogoTimeout(d time.Duration) EngineOption {
	return func(e *Engine) { e.logoTimeout = d }
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		tableRenderer:   true,
		layoutPrimitive: true,
		logoTimeout:     defaultLogoTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SupportsRichRendering reports whether the engine can draw full PDFs.
// It satisfies the capability check the document generator performs before
// choosing between the rich and degraded paths.
func (e *Engine) SupportsRichRendering() bool {
	return e.layoutPrimitive
}

func (e *Engine) newMaroto(withPageNumber bool) core.Maroto {
	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Vertical).
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		WithBottomMargin(15)

	if withPageNumber {
		builder = builder.WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.Bottom,
		})
	}

	return maroto.New(builder.Build())
}

// BuildReport renders the financial report PDF for the requested period.
// Returned warnings are non-fatal rendering notes (missing logo, truncated
// table). A panic inside the drawing code surfaces as apperrors.ErrRender.
func (e *Engine) BuildReport(ctx context.Context, req ReportRequest, modern bool) (pdf []byte, warnings []string, err error) {
	if !e.layoutPrimitive {
		return nil, nil, apperrors.ErrEnvironment
	}

	defer func() {
		if r := recover(); r != nil {
			pdf, warnings = nil, nil
			err = fmt.Errorf("%w: %v", apperrors.ErrRender, r)
		}
	}()

	summary := Summarize(req.Transactions)
	m := e.newMaroto(true)

	warnings = append(warnings, e.addReportHeader(ctx, m, req, modern)...)
	e.addCompanyBlock(m, req.Company, modern)
	e.addSummaryBlock(m, summary, modern)
	if req.PriorPeriod != nil {
		e.addComparisonBlock(m, summary, *req.PriorPeriod)
	}
	warnings = append(warnings, e.addTransactionTable(m, req.Transactions, modern)...)
	e.registerFooter(m, req.Company.Name)

	doc, genErr := m.Generate()
	if genErr != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrRender, genErr)
	}
	return doc.GetBytes(), warnings, nil
}

// BuildSimpleReport renders a stripped-down report with no logo, theme or
// grid table. The orchestrator uses it as a last PDF attempt before the
// degraded JSON output.
func (e *Engine) BuildSimpleReport(req ReportRequest) (pdf []byte, err error) {
	if !e.layoutPrimitive {
		return nil, apperrors.ErrEnvironment
	}

	defer func() {
		if r := recover(); r != nil {
			pdf = nil
			err = fmt.Errorf("%w: %v", apperrors.ErrRender, r)
		}
	}()

	summary := Summarize(req.Transactions)
	m := e.newMaroto(false)

	m.AddRow(12, text.NewCol(12, "Reporte Financiero", props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))
	m.AddRow(8, text.NewCol(12,
		fmt.Sprintf("Período: %s - %s", FormatDate(req.StartDate), FormatDate(req.EndDate)),
		props.Text{Size: 10, Align: align.Center}))
	m.AddRow(4, line.NewCol(12))

	addLabelValue(m, "Transacciones", fmt.Sprintf("%d", summary.Count))
	addLabelValue(m, "Total recibido", FormatCurrency(summary.TotalReceived, "EUR"))
	addLabelValue(m, "Total entregado", FormatCurrency(summary.TotalDelivered, "VES"))
	addLabelValue(m, "Ganancia total", FormatCurrency(summary.TotalProfit, "EUR"))

	doc, genErr := m.Generate()
	if genErr != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRender, genErr)
	}
	return doc.GetBytes(), nil
}

// BuildReceipt renders a customer receipt for a single transaction.
func (e *Engine) BuildReceipt(ctx context.Context, req ReceiptRequest, modern bool) (pdf []byte, warnings []string, err error) {
	if !e.layoutPrimitive {
		return nil, nil, apperrors.ErrEnvironment
	}

	defer func() {
		if r := recover(); r != nil {
			pdf, warnings = nil, nil
			err = fmt.Errorf("%w: %v", apperrors.ErrRender, r)
		}
	}()

	m := e.newMaroto(false)

	if w := e.addLogoRow(ctx, m, req.Company.Logo); w != "" {
		warnings = append(warnings, w)
	}

	e.addCompanyBlock(m, req.Company, modern)

	titleStyle := props.Text{Top: 3, Size: 16, Style: fontstyle.Bold, Align: align.Center}
	if modern {
		titleStyle.Color = &colorWhite
		m.AddRow(14, text.NewCol(12, "RECIBO", titleStyle)).
			WithStyle(&props.Cell{BackgroundColor: &colorBlue})
	} else {
		m.AddRow(14, text.NewCol(12, "RECIBO", titleStyle))
		m.AddRow(3, line.NewCol(12))
	}

	addLabelValue(m, "Nº de recibo", req.Transaction.ReceiptID)
	addLabelValue(m, "Fecha", FormatDate(req.Transaction.Date))
	m.AddRow(4)

	e.addSectionTitle(m, "Información del Cliente", modern)
	addLabelValue(m, "Nombre", req.Client.Name)
	if req.Client.DNI != "" {
		addLabelValue(m, "DNI/NIE", req.Client.DNI)
	}
	addLabelValue(m, "Email", req.Client.Email)
	if req.Client.Phone != "" {
		addLabelValue(m, "Teléfono", req.Client.Phone)
	}
	m.AddRow(4)

	e.addSectionTitle(m, "Detalles de la Transacción", modern)
	addLabelValue(m, "Cantidad recibida", FormatCurrency(req.Transaction.AmountReceived, "EUR"))
	addLabelValue(m, "Cantidad entregada", FormatCurrency(req.Transaction.AmountDelivered, "VES"))
	addLabelValue(m, "Tasa de cambio", FormatRate(req.Transaction.ExchangeRate))
	m.AddRow(6)

	m.AddRow(3, line.NewCol(12))
	m.AddRow(10, text.NewCol(12,
		"Este recibo es un comprobante de la operación de cambio de divisas realizada. "+
			"Conserve este documento para cualquier reclamación.",
		props.Text{Size: 8, Align: align.Center, Color: &colorMuted, Top: 2}))

	e.registerFooter(m, req.Company.Name)

	doc, genErr := m.Generate()
	if genErr != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrRender, genErr)
	}
	return doc.GetBytes(), warnings, nil
}

// addLogoRow tries to place the company logo. Failures downgrade to a
// warning string; the logo never blocks rendering.
func (e *Engine) addLogoRow(ctx context.Context, m core.Maroto, source string) string {
	if source == "" {
		return ""
	}
	raw, ext, err := loadLogo(ctx, source, e.logoTimeout)
	if err != nil {
		return "No se pudo cargar el logo de la empresa"
	}
	m.AddRow(22, col.New(12).Add(
		image.NewFromBytes(raw, ext, props.Rect{Center: true, Percent: 85}),
	))
	m.AddRow(2)
	return ""
}

func (e *Engine) addReportHeader(ctx context.Context, m core.Maroto, req ReportRequest, modern bool) []string {
	var warnings []string
	if w := e.addLogoRow(ctx, m, req.Company.Logo); w != "" {
		warnings = append(warnings, w)
	}

	period := fmt.Sprintf("Período: %s - %s", FormatDate(req.StartDate), FormatDate(req.EndDate))
	if modern {
		m.AddRow(16, text.NewCol(12, "Reporte Financiero", props.Text{
			Top:   4,
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
			Color: &colorWhite,
		})).WithStyle(&props.Cell{BackgroundColor: &colorBlue})
		m.AddRow(8, text.NewCol(12, period, props.Text{
			Size:  10,
			Align: align.Center,
			Color: &colorWhite,
		})).WithStyle(&props.Cell{BackgroundColor: &colorBlue})
		m.AddRow(5)
	} else {
		m.AddRow(12, text.NewCol(12, "Reporte Financiero", props.Text{
			Top:   3,
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}))
		m.AddRow(8, text.NewCol(12, period, props.Text{Size: 10, Align: align.Center}))
		m.AddRow(4, line.NewCol(12))
	}
	return warnings
}

func (e *Engine) addCompanyBlock(m core.Maroto, company domain.CompanyInfo, modern bool) {
	if company.Name == "" {
		return
	}

	name := text.NewCol(12, company.Name, props.Text{Size: 11, Style: fontstyle.Bold})
	if modern {
		m.AddRow(8, name).WithStyle(&props.Cell{BackgroundColor: &colorLightGray})
	} else {
		m.AddRow(8, name)
	}

	details := company.Address
	if company.Phone != "" {
		details = joinDetail(details, "Tel: "+company.Phone)
	}
	if company.Email != "" {
		details = joinDetail(details, company.Email)
	}
	if company.TaxID != "" {
		details = joinDetail(details, "NIF: "+company.TaxID)
	}
	if details != "" {
		m.AddRow(6, text.NewCol(12, details, props.Text{Size: 8, Color: &colorMuted}))
	}
	m.AddRow(4)
}

func (e *Engine) addSectionTitle(m core.Maroto, title string, modern bool) {
	t := text.NewCol(12, title, props.Text{Top: 1.5, Size: 11, Style: fontstyle.Bold})
	if modern {
		t = text.NewCol(12, title, props.Text{Top: 1.5, Size: 11, Style: fontstyle.Bold, Color: &colorBlue})
		m.AddRow(8, t).WithStyle(&props.Cell{BackgroundColor: &colorLightBlue})
	} else {
		m.AddRow(8, t)
		m.AddRow(2, line.NewCol(12))
	}
	m.AddRow(2)
}

// addSummaryBlock draws the period summary. The modern theme uses four
// colored metric cards; the classic theme uses label/value rows.
func (e *Engine) addSummaryBlock(m core.Maroto, s Summary, modern bool) {
	e.addSectionTitle(m, "Resumen", modern)

	if !modern {
		addLabelValue(m, "Transacciones", fmt.Sprintf("%d", s.Count))
		addLabelValue(m, "Total recibido", FormatCurrency(s.TotalReceived, "EUR"))
		addLabelValue(m, "Total entregado", FormatCurrency(s.TotalDelivered, "VES"))
		addLabelValue(m, "Ganancia total", FormatCurrency(s.TotalProfit, "EUR"))
		addLabelValue(m, "Margen medio", FormatPercent(s.AvgProfitPercentage))
		m.AddRow(4)
		return
	}

	card := func(title, value string, bg props.Color) core.Col {
		return col.New(3).Add(
			text.New(title, props.Text{Size: 7, Align: align.Center, Color: &colorWhite, Top: 1.5}),
			text.New(value, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Center, Color: &colorWhite, Top: 6}),
		).WithStyle(&props.Cell{BackgroundColor: &bg, BorderType: border.Full, BorderColor: &colorWhite})
	}

	m.AddRow(14,
		card("TRANSACCIONES", fmt.Sprintf("%d", s.Count), colorBlue),
		card("TOTAL RECIBIDO", FormatCurrency(s.TotalReceived, "EUR"), colorPurple),
		card("TOTAL ENTREGADO", FormatCurrency(s.TotalDelivered, "VES"), colorBlue),
		card("GANANCIA", FormatCurrency(s.TotalProfit, "EUR"), colorGreen),
	)
	m.AddRow(6, text.NewCol(12,
		"Margen medio: "+FormatPercent(s.AvgProfitPercentage),
		props.Text{Size: 8, Align: align.Right, Color: &colorMuted, Top: 1}))
	m.AddRow(4)
}

// addComparisonBlock compares the current period against the prior one.
// Percentage deltas against a zero prior total render as "N/A".
func (e *Engine) addComparisonBlock(m core.Maroto, s Summary, prior PeriodTotals) {
	m.AddRow(8, text.NewCol(12, "Comparación con el período anterior", props.Text{
		Top:   1.5,
		Size:  10,
		Style: fontstyle.Bold,
	}))

	addLabelValue(m, "Transacciones anteriores", fmt.Sprintf("%d", prior.Count))
	addLabelValue(m, "Variación recibido", deltaLabel(s.TotalReceived, prior.TotalReceived))
	addLabelValue(m, "Variación entregado", deltaLabel(s.TotalDelivered, prior.TotalDelivered))
	addLabelValue(m, "Variación ganancia", deltaLabel(s.TotalProfit, prior.TotalProfit))
	m.AddRow(4)
}

// deltaLabel renders the percentage change from prior to current.
func deltaLabel(current, prior decimal.Decimal) string {
	if prior.IsZero() {
		return "N/A"
	}
	pct := current.Sub(prior).Div(prior).Mul(decimal.NewFromInt(100))
	sign := ""
	if pct.Sign() > 0 {
		sign = "+"
	}
	return sign + FormatPercent(pct)
}

// addTransactionTable draws the per-transaction detail. With the grid
// renderer available it paints a styled table with alternating row colors;
// otherwise it falls back to plain rows capped at maxFallbackRows.
func (e *Engine) addTransactionTable(m core.Maroto, txs []domain.Transaction, modern bool) []string {
	e.addSectionTitle(m, "Detalle de Transacciones", modern)

	if len(txs) == 0 {
		m.AddRow(8, text.NewCol(12, "No hay transacciones en este período", props.Text{
			Size:  9,
			Align: align.Center,
			Color: &colorMuted,
		}))
		return nil
	}

	if e.tableRenderer {
		e.addRichTable(m, txs, modern)
		return nil
	}

	var warnings []string
	shown := txs
	if len(shown) > maxFallbackRows {
		shown = shown[:maxFallbackRows]
		warnings = append(warnings,
			fmt.Sprintf("La tabla detallada muestra solo las primeras %d transacciones", maxFallbackRows))
	}

	for _, tx := range shown {
		m.AddRow(6, text.NewCol(12, fmt.Sprintf("%s  %s  %s -> %s  (%s)",
			FormatDate(tx.Date),
			tx.Client.Name,
			FormatCurrency(tx.AmountReceived, "EUR"),
			FormatCurrency(tx.AmountDelivered, "VES"),
			FormatRate(tx.ExchangeRate),
		), props.Text{Size: 8}))
	}
	if len(txs) > maxFallbackRows {
		m.AddRow(6, text.NewCol(12, "... y más registros", props.Text{
			Size:  8,
			Color: &colorMuted,
		}))
	}
	return warnings
}

func (e *Engine) addRichTable(m core.Maroto, txs []domain.Transaction, modern bool) {
	headerText := props.Text{Size: 8, Style: fontstyle.Bold, Top: 1}
	headerBg := colorLightGray
	if modern {
		headerText.Color = &colorWhite
		headerBg = colorBlue
	}

	m.AddRow(7,
		text.NewCol(2, "Fecha", headerText),
		text.NewCol(3, "Cliente", headerText),
		text.NewCol(2, "Recibido (€)", alignRight(headerText)),
		text.NewCol(2, "Entregado (Bs)", alignRight(headerText)),
		text.NewCol(1, "Tasa", alignRight(headerText)),
		text.NewCol(2, "Ganancia", alignRight(headerText)),
	).WithStyle(&props.Cell{BackgroundColor: &headerBg})

	cell := props.Text{Size: 8, Color: &colorDarkText, Top: 1}
	for i, tx := range txs {
		r := m.AddRow(6,
			text.NewCol(2, FormatDate(tx.Date), cell),
			text.NewCol(3, tx.Client.Name, cell),
			text.NewCol(2, FormatNumber(tx.AmountReceived), alignRight(cell)),
			text.NewCol(2, FormatNumber(tx.AmountDelivered), alignRight(cell)),
			text.NewCol(1, FormatNumber(tx.ExchangeRate), alignRight(cell)),
			text.NewCol(2, FormatNumber(tx.Profit), alignRight(cell)),
		)
		if modern && i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: &colorLightBlue})
		}
	}
	m.AddRow(2, line.NewCol(12))
}

func (e *Engine) registerFooter(m core.Maroto, companyName string) {
	generated := "Generado el " + FormatTimestamp(time.Now())
	if companyName != "" {
		generated = companyName + " · " + generated
	}
	// RegisterFooter only fails on invalid heights; a footer is never worth
	// aborting a render over.
	_ = m.RegisterFooter(
		row.New(4).Add(col.New(12).Add(line.New())),
		row.New(6).Add(text.NewCol(12, generated, props.Text{
			Size:  7,
			Align: align.Center,
			Color: &colorMuted,
			Top:   1,
		})),
	)
}

func addLabelValue(m core.Maroto, label, value string) {
	m.AddRow(7,
		col.New(4).Add(text.New(label+":", props.Text{Size: 9, Style: fontstyle.Bold, Top: 1})),
		col.New(8).Add(text.New(value, props.Text{Size: 9, Top: 1})),
	)
}

func alignRight(t props.Text) props.Text {
	t.Align = align.Right
	return t
}

func joinDetail(base, extra string) string {
	if base == "" {
		return extra
	}
	return base + " · " + extra
}
