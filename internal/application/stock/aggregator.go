package stock

import "github.com/tu-usuario/empaque-pro/internal/domain/repository"

// Aggregator consolida un lote de renglones de empaque en demanda por producto.
// Confía en la expansión de paquetes que trae cada renglón: no vuelve a derivar
// componentes desde el store (eso es responsabilidad previa del caller, ver
// BundleExpander).
type Aggregator struct {
	products repository.ProductRepository
}

// NewAggregator construye el agregador.
func NewAggregator(products repository.ProductRepository) *Aggregator {
	return &Aggregator{products: products}
}

// Aggregate recorre los renglones y acumula la cantidad requerida por producto.
//   - Renglón de paquete con componentes: suma la cantidad de cada componente.
//   - Renglón simple: resuelve el barcode contra el store y suma exactamente 1.
//     Un barcode que no resuelve se registra en Skipped y el lote continúa; no es
//     un error del lote.
//
// Hace una consulta al store por cada renglón simple (sin batching ni caché).
// Solo un fallo real del store aborta la agregación.
func (a *Aggregator) Aggregate(items []PackagingItem) (*RequirementMap, error) {
	reqs := newRequirementMap()
	for _, item := range items {
		if item.IsBundle && len(item.BundleComponents) > 0 {
			for _, comp := range item.BundleComponents {
				if comp.Product == nil || comp.Quantity <= 0 {
					continue
				}
				reqs.add(comp.Product, comp.Quantity)
			}
			continue
		}
		product, err := a.products.GetByBarcode(item.ProductBarcode)
		if err != nil {
			return nil, err
		}
		if product == nil {
			reqs.Skipped = append(reqs.Skipped, item.ProductBarcode)
			continue
		}
		reqs.add(product, 1)
	}
	return reqs, nil
}
