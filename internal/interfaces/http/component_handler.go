package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/empaque-pro/internal/application/dto"
	"github.com/tu-usuario/empaque-pro/internal/application/usecase"
	"github.com/tu-usuario/empaque-pro/internal/domain"
)

// ComponentHandler maneja las aristas de composición paquete→componente.
type ComponentHandler struct {
	uc            *usecase.ComponentUseCase
	deleteDelayMs int
}

// NewComponentHandler construye el handler. deleteDelayMs es la pausa por defecto
// entre borrados al vaciar un paquete (configurable por request vía ?delay_ms).
func NewComponentHandler(uc *usecase.ComponentUseCase, deleteDelayMs int) *ComponentHandler {
	return &ComponentHandler{uc: uc, deleteDelayMs: deleteDelayMs}
}

// Create godoc
// @Summary      Agregar componente a un paquete
// @Tags         components
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateComponentRequest  true  "parent_product_id, child_product_id, quantity"
// @Success      201   {object}  dto.ComponentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/components [post]
func (h *ComponentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ParentProductID == "" || in.ChildProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parent_product_id y child_product_id son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto padre o hijo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByParent godoc
// @Summary      Listar componentes de un paquete
// @Tags         components
// @Security     Bearer
// @Produce      json
// @Param        parentId  path  string  true  "ID del producto paquete"
// @Success      200       {array}  dto.ComponentResponse
// @Router       /api/components/parent/{parentId} [get]
func (h *ComponentHandler) ListByParent(c *fiber.Ctx) error {
	parentID := c.Params("parentId")
	if parentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "parentId es requerido"})
	}
	out, err := h.uc.GetByParentID(parentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListByChild godoc
// @Summary      Listar paquetes que usan un producto como componente
// @Tags         components
// @Security     Bearer
// @Produce      json
// @Param        childId  path  string  true  "ID del producto componente"
// @Success      200      {array}  dto.ComponentResponse
// @Router       /api/components/child/{childId} [get]
func (h *ComponentHandler) ListByChild(c *fiber.Ctx) error {
	childID := c.Params("childId")
	if childID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "childId es requerido"})
	}
	out, err := h.uc.GetByChildID(childID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdateQuantity godoc
// @Summary      Cambiar la cantidad de una arista
// @Tags         components
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la arista"
// @Param        body  body  dto.UpdateComponentQuantityRequest  true  "quantity >= 1"
// @Success      200   {object}  dto.ComponentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/components/{id} [put]
func (h *ComponentHandler) UpdateQuantity(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateComponentQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateQuantity(id, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser >= 1"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "arista no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Quitar un componente de un paquete
// @Tags         components
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la arista"
// @Success      204  "Sin contenido"
// @Router       /api/components/{id} [delete]
func (h *ComponentHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteAllForParent godoc
// @Summary      Quitar todos los componentes de un paquete
// @Tags         components
// @Security     Bearer
// @Produce      json
// @Param        parentId  path  string  true  "ID del producto paquete"
// @Success      204       "Sin contenido"
// @Failure      500       {object}  dto.ErrorResponse
// @Router       /api/components/parent/{parentId} [delete]
func (h *ComponentHandler) DeleteAllForParent(c *fiber.Ctx) error {
	parentID := c.Params("parentId")
	if parentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "parentId es requerido"})
	}
	delayMs := c.QueryInt("delay_ms", h.deleteDelayMs)
	if err := h.uc.DeleteAllForParent(parentID, delayMs); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
