package entity

import "time"

// ProductComponent es la arista paquete→componente: cuántas unidades del producto
// hijo entran en una unidad del paquete padre. Un componente puede aparecer en
// varios paquetes. No se valida la existencia de ciclos entre paquetes.
type ProductComponent struct {
	ID              string
	ParentProductID string // paquete
	ChildProductID  string // componente
	Quantity        int    // unidades del hijo por unidad del padre
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
