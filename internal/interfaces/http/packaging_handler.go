package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/empaque-pro/internal/application/dto"
	"github.com/tu-usuario/empaque-pro/internal/application/usecase"
	"github.com/tu-usuario/empaque-pro/internal/domain"
)

// PackagingHandler expone el motor de empaque: requerimientos, validación,
// descuento/restauración de stock y registros confirmados por guía.
type PackagingHandler struct {
	uc *usecase.PackagingUseCase
}

// NewPackagingHandler construye el handler.
func NewPackagingHandler(uc *usecase.PackagingUseCase) *PackagingHandler {
	return &PackagingHandler{uc: uc}
}

func parseBatch(c *fiber.Ctx) (*dto.PackagingBatchRequest, error) {
	var in dto.PackagingBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// Requirements godoc
// @Summary      Calcular requerimientos de stock de un lote
// @Tags         packaging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PackagingBatchRequest  true  "Renglones escaneados"
// @Success      200   {object}  dto.RequirementsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/packaging/requirements [post]
func (h *PackagingHandler) Requirements(c *fiber.Ctx) error {
	in, err := parseBatch(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CalculateStockRequirements(*in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar suficiencia de stock para un lote
// @Tags         packaging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PackagingBatchRequest  true  "Renglones escaneados"
// @Success      200   {object}  stock.ValidationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/packaging/validate [post]
func (h *PackagingHandler) Validate(c *fiber.Ctx) error {
	in, err := parseBatch(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ValidateStockForPackaging(*in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Deduct godoc
// @Summary      Descontar stock de un lote (con reversión compensatoria)
// @Tags         packaging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PackagingBatchRequest  true  "Renglones escaneados"
// @Success      200   {object}  dto.StockMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.StockMutationResponse
// @Router       /api/packaging/deduct [post]
func (h *PackagingHandler) Deduct(c *fiber.Ctx) error {
	in, err := parseBatch(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.DeductStockForPackaging(*in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if !out.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(out)
	}
	return c.JSON(out)
}

// Restore godoc
// @Summary      Restaurar stock de un lote (sin compensación)
// @Tags         packaging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PackagingBatchRequest  true  "Renglones escaneados"
// @Success      200   {object}  dto.StockMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.StockMutationResponse
// @Router       /api/packaging/restore [post]
func (h *PackagingHandler) Restore(c *fiber.Ctx) error {
	in, err := parseBatch(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RestoreStockForPackaging(*in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if !out.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(out)
	}
	return c.JSON(out)
}

// CreateRecord godoc
// @Summary      Confirmar un empaque: descuenta stock y guarda el registro
// @Tags         packaging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePackagingRecordRequest  true  "Guía + renglones"
// @Success      201   {object}  dto.CreatePackagingRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.StockMutationResponse
// @Router       /api/packaging/records [post]
func (h *PackagingHandler) CreateRecord(c *fiber.Ctx) error {
	var in dto.CreatePackagingRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.WaybillNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "waybill_number es requerido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items no puede estar vacío"})
	}
	out, mutation, err := h.uc.CreateRecord(GetUserID(c), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		// El descuento falló: no hay registro, se informa el detalle de la mutación.
		return c.Status(fiber.StatusUnprocessableEntity).JSON(mutation)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetRecord godoc
// @Summary      Obtener un registro de empaque
// @Tags         packaging
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.PackagingRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packaging/records/{id} [get]
func (h *PackagingHandler) GetRecord(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetRecord(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	}
	return c.JSON(out)
}

// ListRecords godoc
// @Summary      Listar registros de empaque por rango de fechas
// @Tags         packaging
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  true   "Fecha inicial (RFC3339 o YYYY-MM-DD)"
// @Param        to      query  string  true   "Fecha final (RFC3339 o YYYY-MM-DD)"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.PackagingRecordListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/packaging/records [get]
func (h *PackagingHandler) ListRecords(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.ListRecords(from, to, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DeleteRecord godoc
// @Summary      Eliminar un registro de empaque y restaurar su stock
// @Tags         packaging
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.DeletePackagingRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packaging/records/{id} [delete]
func (h *PackagingHandler) DeleteRecord(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.DeleteRecord(id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// parseDateRange lee from/to en RFC3339 o YYYY-MM-DD; "to" en formato fecha se
// extiende al final del día para que el rango sea inclusivo.
func parseDateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, err := parseDate(c.Query("from"), false)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from inválido: use RFC3339 o YYYY-MM-DD")
	}
	to, err := parseDate(c.Query("to"), true)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "to inválido: use RFC3339 o YYYY-MM-DD")
	}
	return from, to, nil
}

func parseDate(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
