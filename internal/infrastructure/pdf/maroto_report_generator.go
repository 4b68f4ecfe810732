// Package pdf implementa el render del reporte de empaques por rango de fechas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Empaques  │  Rango de fechas            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Barcode | Producto | Unidades empacadas             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de registros y fecha de generación           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
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

	"github.com/tu-usuario/empaque-pro/internal/application/dto"
	"github.com/tu-usuario/empaque-pro/internal/application/usecase"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa usecase.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

var _ usecase.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GeneratePackagingReport genera el PDF del resumen y devuelve sus bytes.
func (g *MarotoReportGenerator) GeneratePackagingReport(report *dto.PackagingReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Empaques", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(report.Rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF del reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(report *dto.PackagingReportResponse) core.Row {
	rango := fmt.Sprintf("%s — %s",
		report.From.Format("2006-01-02"), report.To.Format("2006-01-02"))
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de Empaques", props.Text{
				Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
			}),
			text.New("Unidades empacadas por producto", props.Text{
				Top: 7, Size: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Rango", props.Text{Size: 8, Color: colorGray, Align: align.Right}),
			text.New(rango, props.Text{Top: 4, Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Barcode", 3, align.Left),
		h("Producto", 6, align.Left),
		h("Unidades", 3, align.Right),
	)
}

func tableRows(rows []dto.PackagingReportRow) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, row.New(5).Add(
			col.New(3).Add(text.New(r.Barcode, props.Text{Size: 8})),
			col.New(6).Add(text.New(r.ProductName, props.Text{Size: 8})),
			col.New(3).Add(text.New(fmt.Sprintf("%d", r.TotalPacked), props.Text{
				Size: 8, Align: align.Right,
			})),
		))
	}
	return out
}

func footerRow(report *dto.PackagingReportResponse) core.Row {
	return row.New(8).Add(
		col.New(6).Add(text.New(
			fmt.Sprintf("Registros de empaque en el rango: %d", report.RecordCount),
			props.Text{Size: 8, Color: colorGray},
		)),
		col.New(6).Add(text.New(
			fmt.Sprintf("Generado: %s", time.Now().Format("2006-01-02 15:04")),
			props.Text{Size: 8, Color: colorGray, Align: align.Right},
		)),
	)
}
