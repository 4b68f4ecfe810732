package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/empaque-pro/internal/domain"
	"github.com/tu-usuario/empaque-pro/internal/domain/entity"
	"github.com/tu-usuario/empaque-pro/internal/domain/repository"
)

// ResolvedComponent es un componente directo de un paquete con su multiplicador.
type ResolvedComponent struct {
	Product  *entity.Product
	Quantity int
}

// BundleExpander expande un paquete a sus componentes directos. Es una capacidad
// separada del agregador a propósito: el caller expande primero y el agregador
// recibe los renglones ya expandidos.
type BundleExpander interface {
	ResolveComponents(bundleProductID string) ([]ResolvedComponent, error)
}

// Resolver administra las aristas paquete→componente y la expansión de paquetes.
type Resolver struct {
	products   repository.ProductRepository
	components repository.ProductComponentRepository
}

var _ BundleExpander = (*Resolver)(nil)

// NewResolver construye el resolver.
func NewResolver(products repository.ProductRepository, components repository.ProductComponentRepository) *Resolver {
	return &Resolver{products: products, components: components}
}

// ResolveComponents expande un paquete un solo nivel: devuelve sus componentes
// directos con sus cantidades, leyendo cada producto hijo por ID. No aplana
// paquetes anidados ni detecta ciclos entre paquetes.
func (r *Resolver) ResolveComponents(bundleProductID string) ([]ResolvedComponent, error) {
	edges, err := r.components.ListByParent(bundleProductID)
	if err != nil {
		return nil, err
	}
	resolved := make([]ResolvedComponent, 0, len(edges))
	for _, edge := range edges {
		child, err := r.products.GetByID(edge.ChildProductID)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return nil, domain.ErrNotFound
		}
		resolved = append(resolved, ResolvedComponent{Product: child, Quantity: edge.Quantity})
	}
	return resolved, nil
}

// AddComponent crea la arista parent→child. Cantidades menores a 1 se normalizan a 1.
func (r *Resolver) AddComponent(parentProductID, childProductID string, quantity int) (*entity.ProductComponent, error) {
	if quantity < 1 {
		quantity = 1
	}
	now := time.Now()
	edge := &entity.ProductComponent{
		ID:              uuid.New().String(),
		ParentProductID: parentProductID,
		ChildProductID:  childProductID,
		Quantity:        quantity,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := r.components.Create(edge); err != nil {
		return nil, err
	}
	return edge, nil
}

// RemoveComponent elimina una arista individual.
func (r *Resolver) RemoveComponent(componentID string) error {
	return r.components.Delete(componentID)
}

// RemoveAllComponents elimina una por una todas las aristas de un paquete,
// durmiendo delay entre borrados para respetar límites de tasa externos. Si un
// borrado falla a mitad de lista, retorna el error y deja las aristas restantes
// intactas (reintentarlo es seguro: borrar una arista ya borrada es idempotente).
func (r *Resolver) RemoveAllComponents(parentProductID string, delay time.Duration) error {
	edges, err := r.components.ListByParent(parentProductID)
	if err != nil {
		return err
	}
	for i, edge := range edges {
		if err := r.components.Delete(edge.ID); err != nil {
			return err
		}
		if delay > 0 && i < len(edges)-1 {
			time.Sleep(delay)
		}
	}
	return nil
}

// CascadeDelete elimina un producto junto con todas las aristas donde participa,
// sea como paquete (padre) o como componente de otros paquetes (hijo), y recién
// después borra el producto.
func (r *Resolver) CascadeDelete(productID string) error {
	asParent, err := r.components.ListByParent(productID)
	if err != nil {
		return err
	}
	asChild, err := r.components.ListByChild(productID)
	if err != nil {
		return err
	}
	for _, edge := range append(asParent, asChild...) {
		if err := r.components.Delete(edge.ID); err != nil {
			return err
		}
	}
	return r.products.Delete(productID)
}
