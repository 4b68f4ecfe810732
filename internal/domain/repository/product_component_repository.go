package repository

import "github.com/tu-usuario/empaque-pro/internal/domain/entity"

// ProductComponentRepository define el puerto para las aristas paquete→componente.
// GetByID devuelve (nil, nil) si la arista no existe. El borrado es por arista
// individual: los borrados masivos los orquesta el resolver, una arista a la vez.
type ProductComponentRepository interface {
	Create(component *entity.ProductComponent) error
	GetByID(id string) (*entity.ProductComponent, error)
	ListByParent(parentProductID string) ([]*entity.ProductComponent, error)
	ListByChild(childProductID string) ([]*entity.ProductComponent, error)
	UpdateQuantity(id string, quantity int) error
	Delete(id string) error
}
