package dto

import "time"

// ReportRangeRequest rango de fechas para el reporte de empaques (inclusive).
type ReportRangeRequest struct {
	From time.Time `query:"from"`
	To   time.Time `query:"to"`
}

// PackagingReportRow fila del reporte: totales empacados por producto en el rango.
type PackagingReportRow struct {
	Barcode     string `json:"barcode"`
	ProductName string `json:"product_name"`
	TotalPacked int    `json:"total_packed"`
}

// PackagingReportResponse resumen del rango.
type PackagingReportResponse struct {
	From        time.Time            `json:"from"`
	To          time.Time            `json:"to"`
	RecordCount int                  `json:"record_count"`
	Rows        []PackagingReportRow `json:"rows"`
}
