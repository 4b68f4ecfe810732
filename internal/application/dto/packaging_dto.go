package dto

import "time"

// PackagingItemRequest un renglón escaneado de un lote de empaque. Si IsBundle es
// true, el backend expande los componentes antes de agregar (el barcode debe
// resolver a un producto de tipo bundle).
type PackagingItemRequest struct {
	ProductBarcode string `json:"product_barcode"`
	IsBundle       bool   `json:"is_bundle"`
}

// PackagingBatchRequest lote de renglones para calcular/validar/descontar.
type PackagingBatchRequest struct {
	Items []PackagingItemRequest `json:"items"`
}

// CreatePackagingRecordRequest confirma un empaque: guía + lote. El registro solo
// se crea si el descuento de stock del lote completo fue exitoso.
type CreatePackagingRecordRequest struct {
	WaybillNumber string                 `json:"waybill_number"`
	Items         []PackagingItemRequest `json:"items"`
}

// RequirementEntryResponse demanda agregada de un producto dentro del lote.
type RequirementEntryResponse struct {
	ProductID string `json:"product_id"`
	Barcode   string `json:"barcode"`
	Name      string `json:"name"`
	Required  int    `json:"required"`
}

// RequirementsResponse resultado de calcular requerimientos, en orden de aparición.
type RequirementsResponse struct {
	Requirements []RequirementEntryResponse `json:"requirements"`
	Skipped      []string                   `json:"skipped,omitempty"`
}

// StockMutationResponse resultado de un descuento o restauración de lote.
type StockMutationResponse struct {
	Success          bool     `json:"success"`
	Errors           []string `json:"errors"`
	Skipped          []string `json:"skipped,omitempty"`
	RollbackFailures []string `json:"rollback_failures,omitempty"`
}

// PackagingRecordResponse registro de empaque confirmado.
type PackagingRecordResponse struct {
	ID            string    `json:"id"`
	WaybillNumber string    `json:"waybill_number"`
	ItemCount     int       `json:"item_count"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by"`
}

// CreatePackagingRecordResponse registro creado + detalle del descuento.
type CreatePackagingRecordResponse struct {
	Record   PackagingRecordResponse `json:"record"`
	Mutation StockMutationResponse   `json:"mutation"`
}

// DeletePackagingRecordResponse resultado de eliminar un registro: el borrado
// siempre completa; Mutation informa si alguna restauración de stock falló.
type DeletePackagingRecordResponse struct {
	Deleted  bool                  `json:"deleted"`
	Mutation StockMutationResponse `json:"mutation"`
}

// PackagingRecordListResponse listado por rango de fechas.
type PackagingRecordListResponse struct {
	Items []PackagingRecordResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
