package usecase

import (
	"sort"
	"time"

	"github.com/tu-usuario/empaque-pro/internal/application/dto"
	"github.com/tu-usuario/empaque-pro/internal/domain/repository"
)

// ReportPDFGenerator puerto para el render PDF del reporte de empaques.
type ReportPDFGenerator interface {
	GeneratePackagingReport(report *dto.PackagingReportResponse) ([]byte, error)
}

// ReportUseCase arma el resumen de empaques por rango de fechas: totales
// empacados por producto a partir de los registros persistidos.
type ReportUseCase struct {
	records  repository.PackagingRecordRepository
	products repository.ProductRepository
	pdf      ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	records repository.PackagingRecordRepository,
	products repository.ProductRepository,
	pdf ReportPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{records: records, products: products, pdf: pdf}
}

// reportKey identifica una fila del reporte.
type reportRow struct {
	barcode string
	name    string
	total   int
}

// BuildRange recorre los registros del rango y acumula unidades empacadas por
// producto. Los renglones simples cuentan 1 por escaneo; los de paquete suman la
// cantidad persistida de cada componente.
func (uc *ReportUseCase) BuildRange(from, to time.Time) (*dto.PackagingReportResponse, error) {
	// Sin límite de página: el reporte cubre el rango completo.
	records, total, err := uc.records.ListByDateRange(from, to, 0, 0)
	if err != nil {
		return nil, err
	}

	rows := make(map[string]*reportRow) // por product ID
	for _, record := range records {
		for _, item := range record.Items {
			if item.IsBundle {
				for _, ce := range item.Components {
					uc.accumulate(rows, ce.ProductID, ce.Quantity)
				}
				continue
			}
			product, err := uc.products.GetByBarcode(item.ProductBarcode)
			if err != nil {
				return nil, err
			}
			if product == nil {
				// Producto eliminado después del empaque: se reporta por barcode.
				uc.accumulateUnknown(rows, item.ProductBarcode)
				continue
			}
			uc.accumulate(rows, product.ID, 1)
		}
	}

	out := &dto.PackagingReportResponse{
		From:        from,
		To:          to,
		RecordCount: total,
		Rows:        make([]dto.PackagingReportRow, 0, len(rows)),
	}
	for _, row := range rows {
		out.Rows = append(out.Rows, dto.PackagingReportRow{
			Barcode:     row.barcode,
			ProductName: row.name,
			TotalPacked: row.total,
		})
	}
	sort.Slice(out.Rows, func(i, j int) bool {
		if out.Rows[i].TotalPacked != out.Rows[j].TotalPacked {
			return out.Rows[i].TotalPacked > out.Rows[j].TotalPacked
		}
		return out.Rows[i].Barcode < out.Rows[j].Barcode
	})
	return out, nil
}

func (uc *ReportUseCase) accumulate(rows map[string]*reportRow, productID string, qty int) {
	row, ok := rows[productID]
	if !ok {
		name, barcode := productID, ""
		if product, err := uc.products.GetByID(productID); err == nil && product != nil {
			name, barcode = product.Name, product.Barcode
		}
		row = &reportRow{barcode: barcode, name: name}
		rows[productID] = row
	}
	row.total += qty
}

func (uc *ReportUseCase) accumulateUnknown(rows map[string]*reportRow, barcode string) {
	key := "barcode:" + barcode
	row, ok := rows[key]
	if !ok {
		row = &reportRow{barcode: barcode, name: barcode}
		rows[key] = row
	}
	row.total++
}

// ExportPDF arma el resumen del rango y lo renderiza a PDF.
func (uc *ReportUseCase) ExportPDF(from, to time.Time) ([]byte, error) {
	report, err := uc.BuildRange(from, to)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GeneratePackagingReport(report)
}
