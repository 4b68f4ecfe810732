package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/empaque-pro/internal/application/dto"
	"github.com/tu-usuario/empaque-pro/internal/application/stock"
	"github.com/tu-usuario/empaque-pro/internal/domain"
	"github.com/tu-usuario/empaque-pro/internal/domain/entity"
	"github.com/tu-usuario/empaque-pro/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se fija por
// UpdateStock o lo mueve el motor de empaque; el borrado cascadea las aristas de
// componentes vía el resolver.
type ProductUseCase struct {
	repo     repository.ProductRepository
	resolver *stock.Resolver
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, resolver *stock.Resolver) *ProductUseCase {
	return &ProductUseCase{repo: repo, resolver: resolver}
}

// Create crea un producto. El barcode debe ser único; el tipo por defecto es single.
// Stock inicial negativo se rechaza (a diferencia del set directo, que ajusta a 0).
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetByBarcode(in.Barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Type == "" {
		in.Type = entity.ProductTypeSingle
	}
	if in.Type != entity.ProductTypeSingle && in.Type != entity.ProductTypeBundle {
		return nil, domain.ErrInvalidInput
	}
	if in.StockQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Barcode:       in.Barcode,
		SKU:           in.SKU,
		Name:          in.Name,
		Type:          in.Type,
		Cost:          in.Cost,
		StockQuantity: in.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// GetByBarcode obtiene un producto por su barcode de escaneo (igualdad exacta).
func (uc *ProductUseCase) GetByBarcode(barcode string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// GetBySKU obtiene un producto por SKU.
func (uc *ProductUseCase) GetBySKU(sku string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// GetWithComponents devuelve el producto junto con su expansión directa de
// componentes (vacía si no es paquete).
func (uc *ProductUseCase) GetWithComponents(id string) (*dto.ProductWithComponentsResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	out := &dto.ProductWithComponentsResponse{
		Product:    *toProductResponse(product),
		Components: []dto.ComponentItemResponse{},
	}
	if !product.IsBundle() {
		return out, nil
	}
	resolved, err := uc.resolver.ResolveComponents(id)
	if err != nil {
		return nil, err
	}
	for _, rc := range resolved {
		out.Components = append(out.Components, dto.ComponentItemResponse{
			Product:  *toProductResponse(rc.Product),
			Quantity: rc.Quantity,
		})
	}
	return out, nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, total, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

// Update edición parcial de campos. No toca el stock.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Barcode != nil && *in.Barcode != product.Barcode {
		existing, err := uc.repo.GetByBarcode(*in.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		product.Barcode = *in.Barcode
	}
	if in.SKU != nil {
		product.SKU = *in.SKU
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Type != nil {
		if *in.Type != entity.ProductTypeSingle && *in.Type != entity.ProductTypeBundle {
			return nil, domain.ErrInvalidInput
		}
		product.Type = *in.Type
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdateStock fija el stock en un valor absoluto. El adaptador de persistencia
// ajusta negativos a 0 antes de escribir.
func (uc *ProductUseCase) UpdateStock(id string, quantity int) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if err := uc.repo.UpdateStock(id, quantity); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// Delete elimina el producto y toda arista de componentes donde participe, como
// paquete o como componente de otros paquetes.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.resolver.CascadeDelete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Barcode:       p.Barcode,
		SKU:           p.SKU,
		Name:          p.Name,
		Type:          p.Type,
		Cost:          p.Cost,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
