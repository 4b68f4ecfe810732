package dto

import "time"

// CreateComponentRequest crea una arista paquete→componente. Quantity < 1 se
// normaliza a 1.
type CreateComponentRequest struct {
	ParentProductID string `json:"parent_product_id"`
	ChildProductID  string `json:"child_product_id"`
	Quantity        int    `json:"quantity"`
}

// UpdateComponentQuantityRequest cambia el multiplicador de una arista.
type UpdateComponentQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ComponentResponse representación pública de una arista.
type ComponentResponse struct {
	ID              string    `json:"id"`
	ParentProductID string    `json:"parent_product_id"`
	ChildProductID  string    `json:"child_product_id"`
	Quantity        int       `json:"quantity"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ComponentItemResponse componente expandido: producto hijo + multiplicador.
type ComponentItemResponse struct {
	Product  ProductResponse `json:"product"`
	Quantity int             `json:"quantity"`
}
