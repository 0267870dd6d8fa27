// Package report implementa la exportación del reporte de auditoría de
// ingresos en PDF (Maroto v2) y XLSX (excelize).
//
// Layout de la página A4 del PDF:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio + Industria  │  Fecha del reporte           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SITUACIÓN ACTUAL: reservas/mes, ingresos/mes                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: impacto por categoría (recuperación, seguimiento,    │
//	│          ahorro de personal)                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: uplift mensual / ganancia neta / anual / payback   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: supuestos del modelo + leyenda                      │
//	└─────────────────────────────────────────────────────────────┘
package report

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tu-usuario/recepta-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 15, Green: 118, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// usd formatea montos en dólares con separador de miles.
var usd = message.NewPrinter(language.English)

func money(v float64) string {
	return usd.Sprintf("$%.0f", v)
}

// ── Generator ─────────────────────────────────────────────────────────────────

// PDFGenerator genera la versión PDF del reporte de auditoría usando Maroto v2.
type PDFGenerator struct{}

// NewPDFGenerator construye el generador.
func NewPDFGenerator() *PDFGenerator { return &PDFGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *PDFGenerator) Generate(_ context.Context, report *entity.AuditReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Auditoría de Ingresos", true).
		WithAuthor(report.Inputs.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(baselineRow(report.Results.Baseline))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(impactHeaderRow())
	for _, r := range impactRows(report.Results) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report.Results.Totals))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(assumptionsRow(report.Results.Assumptions))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: negocio + industria (izq) y título + fecha (der).
func headerRow(report *entity.AuditReport) core.Row {
	fecha := report.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(report.Inputs.BusinessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Industria: "+nonEmpty(report.Inputs.Industry, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("AUDITORÍA DE INGRESOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Proyección mensual", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// baselineRow: situación actual del negocio.
func baselineRow(baseline entity.AuditBaseline) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SITUACIÓN ACTUAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Reservas/mes: %.0f   |   Ingresos/mes: %s",
				baseline.BookingsPerMonth,
				money(baseline.MonthlyRevenue),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// impactHeaderRow: cabecera de la tabla de impacto por categoría.
func impactHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Categoría de impacto", 6, align.Left),
		h("Detalle", 3, align.Center),
		h("Impacto mensual", 3, align.Right),
	)
}

// impactRows: una fila por categoría de impacto.
func impactRows(results entity.AuditResults) []core.Row {
	type impact struct {
		category string
		detail   string
		amount   float64
	}
	impacts := []impact{
		{
			category: "Llamadas perdidas recuperadas",
			detail:   fmt.Sprintf("%.0f reservas", results.Recovery.RecoveredBookings),
			amount:   results.Recovery.RecoveredRevenue,
		},
		{
			category: "Seguimiento automatizado",
			detail:   fmt.Sprintf("%.0f reservas", results.FollowUp.AddedBookings),
			amount:   results.FollowUp.AddedRevenue,
		},
		{
			category: "Ahorro en personal de recepción",
			detail:   fmt.Sprintf("%.0f h ahorradas", results.Totals.MonthlyHoursSaved),
			amount:   results.Savings.StaffingSavings,
		},
	}

	rows := make([]core.Row, 0, len(impacts))
	for _, imp := range impacts {
		rows = append(rows, row.New(7).Add(
			col.New(6).Add(text.New(
				imp.category,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				imp.detail,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				money(imp.amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return rows
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(totals entity.AuditTotals) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	payback := "—"
	if totals.PaybackMonths > 0 {
		payback = fmt.Sprintf("%.1f meses", totals.PaybackMonths)
	}

	return row.New(32).Add(
		col.New(2), // espacio izquierdo
		col.New(4).Add(
			label("Uplift mensual bruto:"),
			label("Ganancia neta mensual:"),
			label("Retorno de inversión:"),
			grandLabel("UPLIFT ANUAL:"),
		),
		col.New(3).Add(
			value(money(totals.MonthlyUplift)),
			value(money(totals.MonthlyNetGain)),
			value(payback),
			grandValue(money(totals.AnnualUplift)),
		),
		col.New(3), // espacio derecho
	)
}

// assumptionsRow: supuestos del modelo + leyenda.
func assumptionsRow(a entity.AuditAssumptions) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("SUPUESTOS DEL MODELO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf(
				"Tasa de captura AI: %.0f%%   |   Mejora por seguimiento: %.0f%%   |   Reducción de horas de recepción: %.0f%%",
				a.AICaptureRate, a.FollowUpUpliftPct*100, a.StaffingReductionPct*100,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
			text.New(
				"Proyección estimada a partir de las respuestas del cuestionario; no constituye una garantía de resultados.",
				props.Text{Size: 6.5, Color: colorGray, Top: 12},
			),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
