package entity

import "time"

// PackagingRecordItem es un renglón del registro de empaque tal como se persistió:
// el barcode escaneado y, si era un paquete, la expansión de componentes usada al
// momento de descontar stock (se guarda para poder revertir exactamente lo mismo).
type PackagingRecordItem struct {
	ProductBarcode string                 `json:"product_barcode"`
	IsBundle       bool                   `json:"is_bundle"`
	Components     []RecordComponentEntry `json:"components,omitempty"`
}

// RecordComponentEntry referencia un componente dentro de un renglón de paquete.
type RecordComponentEntry struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PackagingRecord representa un evento de empaque confirmado (una guía escaneada y
// su lote de renglones). El stock ya fue descontado cuando el registro existe.
type PackagingRecord struct {
	ID            string
	WaybillNumber string // número de guía escaneado
	Items         []PackagingRecordItem
	ItemCount     int
	CreatedAt     time.Time
	CreatedBy     string // UserID
}
