package stock

import (
	"github.com/tu-usuario/empaque-pro/internal/domain"
	"github.com/tu-usuario/empaque-pro/internal/domain/repository"
)

// Validator verifica suficiencia de stock para un lote sin escribir nada.
// Es consultivo: entre esta validación y el descuento otro caller puede mutar
// el stock, y el descuento vuelve a verificar por su cuenta.
type Validator struct {
	aggregator *Aggregator
	products   repository.ProductRepository
}

// NewValidator construye el validador.
func NewValidator(aggregator *Aggregator, products repository.ProductRepository) *Validator {
	return &Validator{aggregator: aggregator, products: products}
}

// Validate agrega el lote y relee cada producto por ID para comparar contra el
// stock más reciente (no contra el snapshot del mapa: la relectura achica la
// ventana de carrera frente a mutaciones concurrentes). Los faltantes se reportan
// con los datos frescos del producto y la cantidad requerida del mapa.
func (v *Validator) Validate(items []PackagingItem) (*ValidationResult, error) {
	reqs, err := v.aggregator.Aggregate(items)
	if err != nil {
		return nil, err
	}

	result := &ValidationResult{Valid: true, Insufficient: []ShortfallEntry{}, Skipped: reqs.Skipped}
	for _, id := range reqs.ProductIDs() {
		req := reqs.Get(id)
		fresh, err := v.products.GetByID(id)
		if err != nil {
			return nil, err
		}
		if fresh == nil {
			// El producto desapareció entre la agregación y la relectura.
			return nil, domain.ErrNotFound
		}
		if fresh.StockQuantity < req.Required {
			result.Insufficient = append(result.Insufficient, ShortfallEntry{
				Barcode:   fresh.Barcode,
				Name:      fresh.Name,
				Required:  req.Required,
				Available: fresh.StockQuantity,
			})
		}
	}
	result.Valid = len(result.Insufficient) == 0
	return result, nil
}
