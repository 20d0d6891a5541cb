// Package pdf genera el reporte imprimible del análisis de ventas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Impacto Vendas  │  archivo + fecha de emisión       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: custo a pagar / unidades / matcheadas de filtradas │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Data | Status | Fornecedor | Unid. | Custo     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESGLOSES: unidades por SKU / custo por fornecedor          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

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
	"github.com/shopspring/decimal"

	appanalysis "github.com/alexpint/impacto-vendas/internal/application/analysis"
	"github.com/alexpint/impacto-vendas/internal/domain/analysis"
)

var _ appanalysis.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analysis.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReportPDF genera el reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(_ context.Context, fileName string, res analysis.Result) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Análise de Vendas - Impacto Vendas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(fileName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(res))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range lineRows(res.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(breakdownHeaderRow())
	for _, r := range breakdownRows(res) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(fileName string) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("Impacto Vendas", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Conciliação de vendas contra base de custos", props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Planilha: "+fileName, props.Text{
				Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Emitido: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func totalsRow(res analysis.Result) core.Row {
	return row.New(12).Add(
		col.New(4).Add(
			text.New("Custo a pagar", props.Text{Size: 8, Color: colorGray}),
			text.New(formatBRL(res.TotalCostToPay), props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 4, Color: colorPrimary,
			}),
		),
		col.New(4).Add(
			text.New("Unidades vendidas", props.Text{Size: 8, Color: colorGray}),
			text.New(fmt.Sprintf("%d", res.TotalUnitsSold), props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 4,
			}),
		),
		col.New(4).Add(
			text.New("Vendas encontradas na base", props.Text{Size: 8, Color: colorGray}),
			text.New(fmt.Sprintf("%d de %d filtradas", res.MatchedCount, res.TotalFilteredCount), props.Text{
				Size: 10, Top: 4,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}
	return row.New(6).Add(
		text.NewCol(3, "SKU", h),
		text.NewCol(3, "Data", h),
		text.NewCol(2, "Status", h),
		text.NewCol(2, "Fornecedor", h),
		text.NewCol(1, "Unid.", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary}),
		text.NewCol(1, "Custo", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary}),
	)
}

func lineRows(lines []analysis.ReconciledLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(5).Add(
			text.NewCol(3, l.SKU, props.Text{Size: 8}),
			text.NewCol(3, l.Date, props.Text{Size: 8}),
			text.NewCol(2, l.Status, props.Text{Size: 8}),
			text.NewCol(2, l.Distributor, props.Text{Size: 8}),
			text.NewCol(1, fmt.Sprintf("%d", l.Units), props.Text{Size: 8, Align: align.Right}),
			text.NewCol(1, formatBRL(l.Cost), props.Text{Size: 8, Align: align.Right}),
		))
	}
	return rows
}

func breakdownHeaderRow() core.Row {
	h := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary}
	return row.New(6).Add(
		text.NewCol(6, "Unidades por SKU", h),
		text.NewCol(6, "Custo por fornecedor", h),
	)
}

func breakdownRows(res analysis.Result) []core.Row {
	units := res.UnitsBySKU()
	costs := res.CostByDistributor()

	n := len(units)
	if len(costs) > n {
		n = len(costs)
	}
	rows := make([]core.Row, 0, n)
	for i := 0; i < n; i++ {
		cols := make([]core.Col, 0, 4)
		if i < len(units) {
			cols = append(cols,
				text.NewCol(4, units[i].SKU, props.Text{Size: 8}),
				text.NewCol(2, fmt.Sprintf("%d", units[i].Units), props.Text{Size: 8, Align: align.Right}),
			)
		} else {
			cols = append(cols, col.New(6))
		}
		if i < len(costs) {
			cols = append(cols,
				text.NewCol(4, costs[i].Distributor, props.Text{Size: 8}),
				text.NewCol(2, formatBRL(costs[i].Cost), props.Text{Size: 8, Align: align.Right}),
			)
		} else {
			cols = append(cols, col.New(6))
		}
		rows = append(rows, row.New(5).Add(cols...))
	}
	return rows
}

// formatBRL formatea un monto en reales: "R$ 1234,56".
func formatBRL(d decimal.Decimal) string {
	return "R$ " + strings.ReplaceAll(d.StringFixed(2), ".", ",")
}
