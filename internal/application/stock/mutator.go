package stock

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/empaque-pro/internal/domain/repository"
)

// undoEntry es un registro del journal de descuento: qué producto se escribió y
// qué stock tenía antes. El journal se reproduce en orden inverso al revertir.
type undoEntry struct {
	productID     string
	previousStock int
}

// Mutator aplica descuentos y restauraciones de stock por lote. Procesa cada
// producto en secuencia (nunca en paralelo) para que el journal de reversión
// tenga un orden bien definido. No hay transacción que abarque el lote: la
// reversión es compensatoria y de mejor esfuerzo.
type Mutator struct {
	aggregator *Aggregator
	products   repository.ProductRepository
}

// NewMutator construye el mutador.
func NewMutator(aggregator *Aggregator, products repository.ProductRepository) *Mutator {
	return &Mutator{aggregator: aggregator, products: products}
}

// Deduct descuenta del stock la demanda agregada del lote, producto por producto:
//
//  1. Relee el stock más reciente del producto.
//  2. Si el stock quedaría negativo, registra el error y NO escribe ese producto;
//     el recorrido continúa con el siguiente (no aborta temprano).
//  3. Si alcanza, anota {producto, stock previo} en el journal y escribe el nuevo
//     stock.
//
// Si al terminar hubo algún error, reproduce el journal en orden inverso
// escribiendo el stock previo de cada producto ya descontado. Un fallo en esa
// escritura compensatoria se registra (log + RollbackFailures) pero no se
// reintenta ni altera la lista de errores original.
func (m *Mutator) Deduct(items []PackagingItem) (*BatchResult, error) {
	reqs, err := m.aggregator.Aggregate(items)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Errors: []string{}, Skipped: reqs.Skipped}
	var journal []undoEntry

	for _, id := range reqs.ProductIDs() {
		req := reqs.Get(id)
		latest, err := m.products.GetByID(id)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: leer stock: %v", req.Product.Name, err))
			continue
		}
		if latest == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: producto no encontrado", req.Product.Name))
			continue
		}
		newStock := latest.StockQuantity - req.Required
		if newStock < 0 {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"stock insuficiente para %s (barcode %s): requerido %d, disponible %d",
				latest.Name, latest.Barcode, req.Required, latest.StockQuantity,
			))
			continue
		}
		journal = append(journal, undoEntry{productID: id, previousStock: latest.StockQuantity})
		if err := m.products.UpdateStock(id, newStock); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: escribir stock: %v", latest.Name, err))
			continue
		}
	}

	if len(result.Errors) > 0 {
		m.rollback(journal, result)
	}
	result.Success = len(result.Errors) == 0
	return result, nil
}

// rollback reescribe el stock previo de cada entrada del journal, de la última a
// la primera. Entre el descuento y esta compensación otro caller pudo tocar el
// mismo producto; esa escritura se pisa (limitación conocida y aceptada).
func (m *Mutator) rollback(journal []undoEntry, result *BatchResult) {
	for i := len(journal) - 1; i >= 0; i-- {
		e := journal[i]
		if err := m.products.UpdateStock(e.productID, e.previousStock); err != nil {
			log.Error().Err(err).
				Str("product_id", e.productID).
				Int("previous_stock", e.previousStock).
				Msg("fallo la escritura compensatoria de stock; se conserva el error original del lote")
			result.RollbackFailures = append(result.RollbackFailures,
				fmt.Sprintf("%s: %v", e.productID, err))
		}
	}
}

// Restore devuelve al stock la demanda agregada del lote (reversa de un descuento
// ya confirmado, normalmente al eliminar un registro de empaque). Suma siempre
// (no necesita guarda de negativos) y NO hace reversión compensatoria propia: si
// falla restaurar el producto C después de A y B, A y B quedan restaurados. Un
// sobrante de stock no invalida un empaque físico ya realizado, a diferencia de
// un descuento indebido.
func (m *Mutator) Restore(items []PackagingItem) (*BatchResult, error) {
	reqs, err := m.aggregator.Aggregate(items)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Errors: []string{}, Skipped: reqs.Skipped}
	for _, id := range reqs.ProductIDs() {
		req := reqs.Get(id)
		latest, err := m.products.GetByID(id)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: leer stock: %v", req.Product.Name, err))
			continue
		}
		if latest == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: producto no encontrado", req.Product.Name))
			continue
		}
		if err := m.products.UpdateStock(id, latest.StockQuantity+req.Required); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: escribir stock: %v", latest.Name, err))
			continue
		}
	}
	result.Success = len(result.Errors) == 0
	return result, nil
}
