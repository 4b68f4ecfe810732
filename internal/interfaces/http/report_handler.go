package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/empaque-pro/internal/application/dto"
	"github.com/tu-usuario/empaque-pro/internal/application/usecase"
)

// ReportHandler expone el reporte de empaques por rango de fechas (JSON y PDF).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Range godoc
// @Summary      Reporte de unidades empacadas por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Fecha inicial (RFC3339 o YYYY-MM-DD)"
// @Param        to    query  string  true  "Fecha final (RFC3339 o YYYY-MM-DD)"
// @Success      200   {object}  dto.PackagingReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/packaging [get]
func (h *ReportHandler) Range(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.BuildRange(from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Exportar el reporte de empaques como PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  true  "Fecha inicial (RFC3339 o YYYY-MM-DD)"
// @Param        to    query  string  true  "Fecha final (RFC3339 o YYYY-MM-DD)"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/packaging/pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	pdfBytes, err := h.uc.ExportPDF(from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	filename := fmt.Sprintf("empaques_%s_%s.pdf",
		from.Format("20060102"), to.Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(pdfBytes)
}
