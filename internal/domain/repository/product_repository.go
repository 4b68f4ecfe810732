package repository

import "github.com/tu-usuario/empaque-pro/internal/domain/entity"

// ProductFilter filtros para el listado de productos. Los campos en cero se omiten.
type ProductFilter struct {
	Search   string // busca por coincidencia parcial en name, barcode o sku (OR)
	Type     string // single | bundle, igualdad exacta
	MinStock *int   // stock_quantity >= MinStock
	MaxStock *int   // stock_quantity <= MaxStock
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID/GetByBarcode/GetBySKU devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(filter ProductFilter) ([]*entity.Product, int, error)
	Update(product *entity.Product) error
	// UpdateStock fija stock_quantity; valores negativos se ajustan a 0 antes de escribir.
	UpdateStock(id string, quantity int) error
	Delete(id string) error
}
