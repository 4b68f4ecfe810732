// Package stock implementa el motor de stock para empaque: agregación de
// requerimientos por producto, validación de suficiencia y descuento/restauración
// con reversión compensatoria. Todas las operaciones por producto son secuenciales;
// el orden de aparición en el lote define el orden del journal de reversión.
//
// El motor no coordina lotes concurrentes: no hay locks ni transacciones entre
// lecturas y escrituras. La relectura previa a cada escritura reduce la ventana de
// carrera pero no la cierra (último en escribir gana a nivel del store).
package stock

import "github.com/tu-usuario/empaque-pro/internal/domain/entity"

// PackagingItem es un renglón de un lote de empaque. Valor transitorio, no se
// persiste desde aquí. Si IsBundle es true, BundleComponents trae la expansión
// ya resuelta por el caller (ver BundleExpander); el agregador la usa tal cual.
type PackagingItem struct {
	ProductBarcode   string
	IsBundle         bool
	BundleComponents []BundleComponent
}

// BundleComponent es un componente expandido de un paquete: snapshot del producto
// y cuántas unidades entran por unidad de paquete.
type BundleComponent struct {
	Product  *entity.Product
	Quantity int
}

// Requirement acumula la demanda total de un producto dentro de un lote.
type Requirement struct {
	Product  *entity.Product // snapshot tomado al primer encuentro en el lote
	Required int             // >= 1, solo acumula
}

// RequirementMap es la demanda agregada de un lote, indexada por ID de producto.
// Conserva el orden de aparición para que la reversión del descuento sea
// reproducible. Skipped lista los barcodes que no resolvieron a ningún producto
// (se omiten sin abortar el lote).
type RequirementMap struct {
	entries map[string]*Requirement
	order   []string
	Skipped []string
}

func newRequirementMap() *RequirementMap {
	return &RequirementMap{entries: make(map[string]*Requirement)}
}

// add suma qty al requerimiento del producto, creando la entrada si no existe.
func (m *RequirementMap) add(product *entity.Product, qty int) {
	if req, ok := m.entries[product.ID]; ok {
		req.Required += qty
		return
	}
	m.entries[product.ID] = &Requirement{Product: product, Required: qty}
	m.order = append(m.order, product.ID)
}

// Get devuelve el requerimiento de un producto, o nil si no está en el lote.
func (m *RequirementMap) Get(productID string) *Requirement {
	return m.entries[productID]
}

// ProductIDs devuelve los IDs en orden de aparición en el lote.
func (m *RequirementMap) ProductIDs() []string {
	return m.order
}

// Len cantidad de productos distintos requeridos.
func (m *RequirementMap) Len() int {
	return len(m.entries)
}

// ShortfallEntry describe un faltante detectado por el validador. Barcode, Name y
// Available salen de la relectura fresca; Required del mapa agregado.
type ShortfallEntry struct {
	Barcode   string `json:"barcode"`
	Name      string `json:"name"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
}

// ValidationResult resultado del validador. Valid es true si no hubo faltantes.
// No implica nada sobre el estado al momento del descuento: es consultivo.
type ValidationResult struct {
	Valid        bool             `json:"valid"`
	Insufficient []ShortfallEntry `json:"insufficient"`
	Skipped      []string         `json:"skipped,omitempty"`
}

// BatchResult resultado de una mutación de lote (descuento o restauración).
// Errors acumula un mensaje por producto fallido; el lote nunca aborta a mitad.
// RollbackFailures registra escrituras compensatorias que fallaron durante la
// reversión de un descuento (solo informativo, no altera Errors).
type BatchResult struct {
	Success          bool     `json:"success"`
	Errors           []string `json:"errors"`
	Skipped          []string `json:"skipped,omitempty"`
	RollbackFailures []string `json:"rollback_failures,omitempty"`
}
