// Package pdf genera el reporte de stock en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + alcance    │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Unidad | Modelo | Color | Cant. | Mín. | Estado      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades en stock / entradas en alerta             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/Toner-api/internal/application/analytics"
)

var _ analytics.StockReportRenderer = (*MarotoStockReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 190, Green: 30, Blue: 45}
)

// MarotoStockReport implementa analytics.StockReportRenderer usando Maroto v2.
type MarotoStockReport struct{}

// NewMarotoStockReport construye el generador.
func NewMarotoStockReport() *MarotoStockReport { return &MarotoStockReport{} }

// RenderStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoStockReport) RenderStockReport(_ context.Context, report *analytics.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock de insumos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	if len(report.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin entradas de stock.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range tableDetailRows(report.Rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *analytics.StockReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(report.Scope, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Unidad", 3, align.Left),
		h("Modelo", 3, align.Left),
		h("Color", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Estado", 2, align.Center),
	)
}

// tableDetailRows: una fila por entrada; las entradas en alerta se resaltan.
func tableDetailRows(rows []analytics.StockReportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		cell := props.Text{Size: 8, Top: 1, Left: 1}
		num := props.Text{Size: 8, Top: 1, Right: 1, Align: align.Right}
		status := props.Text{Size: 8, Top: 1, Align: align.Center, Color: colorGray}
		label := "OK"
		if r.Low {
			label = "BAJO"
			status.Style = fontstyle.Bold
			status.Color = colorAlert
		}
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(r.UnitName, cell)),
			col.New(3).Add(text.New(r.Model, cell)),
			col.New(2).Add(text.New(nonEmpty(r.Color, "N/D"), cell)),
			col.New(1).Add(text.New(strconv.Itoa(r.Quantity), num)),
			col.New(1).Add(text.New(strconv.Itoa(r.MinStockAlert), num)),
			col.New(2).Add(text.New(label, status)),
		))
	}
	return result
}

func totalsRow(report *analytics.StockReport) core.Row {
	label := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 2}
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("Unidades en stock: "+strconv.Itoa(report.TotalQuantity), label)),
		col.New(3).Add(text.New("En alerta: "+strconv.Itoa(report.LowCount), label)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
