package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. Type por defecto es "single".
type CreateProductRequest struct {
	Barcode       string          `json:"barcode"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Cost          decimal.Decimal `json:"cost"`
	StockQuantity int             `json:"stock_quantity"`
}

// UpdateProductRequest edición parcial; nil significa "sin cambios".
// El stock no se edita por aquí: se maneja vía UpdateStock o el motor de empaque.
type UpdateProductRequest struct {
	Barcode *string          `json:"barcode"`
	SKU     *string          `json:"sku"`
	Name    *string          `json:"name"`
	Type    *string          `json:"type"`
	Cost    *decimal.Decimal `json:"cost"`
}

// UpdateStockRequest fija el stock de un producto en un valor absoluto.
type UpdateStockRequest struct {
	StockQuantity int `json:"stock_quantity"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Barcode       string          `json:"barcode"`
	SKU           string          `json:"sku,omitempty"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Cost          decimal.Decimal `json:"cost"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductWithComponentsResponse producto junto con su expansión directa de
// componentes (vacía para productos simples).
type ProductWithComponentsResponse struct {
	Product    ProductResponse         `json:"product"`
	Components []ComponentItemResponse `json:"components"`
}
