package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	ProductTypeSingle = "single" // producto individual
	ProductTypeBundle = "bundle" // paquete compuesto de otros productos
)

// Product representa un producto del inventario. Barcode es la clave de escaneo
// (única por producto); SKU es un código interno opcional. StockQuantity nunca
// se persiste negativo.
type Product struct {
	ID            string
	Barcode       string
	SKU           string
	Name          string
	Type          string          // single | bundle
	Cost          decimal.Decimal // costo unitario (inicia en 0)
	StockQuantity int             // unidades en stock, >= 0
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsBundle indica si el producto es un paquete.
func (p *Product) IsBundle() bool {
	return p.Type == ProductTypeBundle
}
