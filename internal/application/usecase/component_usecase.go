package usecase

import (
	"time"

	"github.com/tu-usuario/empaque-pro/internal/application/dto"
	"github.com/tu-usuario/empaque-pro/internal/application/stock"
	"github.com/tu-usuario/empaque-pro/internal/domain"
	"github.com/tu-usuario/empaque-pro/internal/domain/entity"
	"github.com/tu-usuario/empaque-pro/internal/domain/repository"
)

// ComponentUseCase administra las aristas paquete→componente.
type ComponentUseCase struct {
	components repository.ProductComponentRepository
	products   repository.ProductRepository
	resolver   *stock.Resolver
}

// NewComponentUseCase construye el caso de uso.
func NewComponentUseCase(
	components repository.ProductComponentRepository,
	products repository.ProductRepository,
	resolver *stock.Resolver,
) *ComponentUseCase {
	return &ComponentUseCase{components: components, products: products, resolver: resolver}
}

// Create crea la arista validando que padre e hijo existan. No hay detección de
// ciclos entre paquetes.
func (uc *ComponentUseCase) Create(in dto.CreateComponentRequest) (*dto.ComponentResponse, error) {
	parent, err := uc.products.GetByID(in.ParentProductID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrNotFound
	}
	child, err := uc.products.GetByID(in.ChildProductID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, domain.ErrNotFound
	}
	edge, err := uc.resolver.AddComponent(in.ParentProductID, in.ChildProductID, in.Quantity)
	if err != nil {
		return nil, err
	}
	return toComponentResponse(edge), nil
}

// GetByParentID lista las aristas salientes de un paquete.
func (uc *ComponentUseCase) GetByParentID(parentProductID string) ([]dto.ComponentResponse, error) {
	edges, err := uc.components.ListByParent(parentProductID)
	if err != nil {
		return nil, err
	}
	return toComponentResponses(edges), nil
}

// GetByChildID lista las aristas entrantes de un componente (en qué paquetes aparece).
func (uc *ComponentUseCase) GetByChildID(childProductID string) ([]dto.ComponentResponse, error) {
	edges, err := uc.components.ListByChild(childProductID)
	if err != nil {
		return nil, err
	}
	return toComponentResponses(edges), nil
}

// UpdateQuantity cambia el multiplicador de una arista.
func (uc *ComponentUseCase) UpdateQuantity(id string, in dto.UpdateComponentQuantityRequest) (*dto.ComponentResponse, error) {
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	edge, err := uc.components.GetByID(id)
	if err != nil {
		return nil, err
	}
	if edge == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.components.UpdateQuantity(id, in.Quantity); err != nil {
		return nil, err
	}
	edge.Quantity = in.Quantity
	return toComponentResponse(edge), nil
}

// Delete elimina una arista individual.
func (uc *ComponentUseCase) Delete(id string) error {
	return uc.resolver.RemoveComponent(id)
}

// DeleteAllForParent elimina todas las aristas de un paquete, una por una, con
// una pausa opcional entre borrados (límites de tasa del backend).
func (uc *ComponentUseCase) DeleteAllForParent(parentProductID string, delayMs int) error {
	return uc.resolver.RemoveAllComponents(parentProductID, time.Duration(delayMs)*time.Millisecond)
}

func toComponentResponse(e *entity.ProductComponent) *dto.ComponentResponse {
	if e == nil {
		return nil
	}
	return &dto.ComponentResponse{
		ID:              e.ID,
		ParentProductID: e.ParentProductID,
		ChildProductID:  e.ChildProductID,
		Quantity:        e.Quantity,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func toComponentResponses(edges []*entity.ProductComponent) []dto.ComponentResponse {
	out := make([]dto.ComponentResponse, 0, len(edges))
	for _, e := range edges {
		out = append(out, *toComponentResponse(e))
	}
	return out
}
