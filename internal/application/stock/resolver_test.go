package stock

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// La expansión es de un solo nivel: un paquete que contiene otro paquete devuelve
// ese paquete como componente directo, sin aplanarlo.
func TestResolveComponents_UnSoloNivel(t *testing.T) {
	outer := paquete("bundle-outer", "BO1", "Paquete Exterior")
	inner := paquete("bundle-inner", "BI1", "Paquete Interior")
	prodA := producto("prod-a", "A1", "Producto A", 10)
	prodB := producto("prod-b", "B1", "Producto B", 10)

	products := newMemProductRepo(outer, inner, prodA, prodB)
	components := newMemComponentRepo(
		arista("e1", "bundle-outer", "bundle-inner", 2),
		arista("e2", "bundle-outer", "prod-a", 3),
		arista("e3", "bundle-inner", "prod-b", 5),
	)
	r := NewResolver(products, components)

	resolved, err := r.ResolveComponents("bundle-outer")
	require.NoError(t, err)

	require.Len(t, resolved, 2)
	assert.Equal(t, "bundle-inner", resolved[0].Product.ID)
	assert.Equal(t, 2, resolved[0].Quantity)
	assert.Equal(t, "prod-a", resolved[1].Product.ID)
	assert.Equal(t, 3, resolved[1].Quantity)
}

// AddComponent normaliza cantidades menores a 1.
func TestAddComponent_CantidadMinimaUno(t *testing.T) {
	products := newMemProductRepo()
	components := newMemComponentRepo()
	r := NewResolver(products, components)

	edge, err := r.AddComponent("bundle-1", "prod-a", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, edge.Quantity)

	edge, err = r.AddComponent("bundle-1", "prod-b", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, edge.Quantity)
}

// Si un borrado falla a mitad de la lista, la operación corta ahí y las aristas
// restantes quedan intactas (reintentar es seguro).
func TestRemoveAllComponents_FalloDejaRestantesIntactas(t *testing.T) {
	products := newMemProductRepo()
	components := newMemComponentRepo(
		arista("e1", "bundle-1", "prod-a", 1),
		arista("e2", "bundle-1", "prod-b", 1),
		arista("e3", "bundle-1", "prod-c", 1),
	)
	components.failDelete["e2"] = fmt.Errorf("rate limit")
	r := NewResolver(products, components)

	err := r.RemoveAllComponents("bundle-1", 0)
	require.Error(t, err)

	remaining, _ := components.ListByParent("bundle-1")
	require.Len(t, remaining, 2) // e1 borrada, e2 y e3 quedan
	assert.Equal(t, "e2", remaining[0].ID)
	assert.Equal(t, "e3", remaining[1].ID)
}

// Borrar un producto elimina toda arista donde participe como padre o como hijo
// y no toca aristas ajenas.
func TestCascadeDelete_EliminaAristasEnAmbasDirecciones(t *testing.T) {
	bundle := paquete("bundle-1", "BU1", "Paquete")
	prodA := producto("prod-a", "A1", "Producto A", 10)
	other := paquete("bundle-2", "BU2", "Otro Paquete")
	prodZ := producto("prod-z", "Z1", "Producto Z", 1)

	products := newMemProductRepo(bundle, prodA, other, prodZ)
	components := newMemComponentRepo(
		arista("e1", "bundle-1", "prod-a", 2), // prod-a como hijo
		arista("e2", "prod-a", "prod-z", 1),   // prod-a como padre (caso raro pero posible)
		arista("e3", "bundle-2", "prod-z", 4), // ajena: debe sobrevivir
	)
	r := NewResolver(products, components)

	require.NoError(t, r.CascadeDelete("prod-a"))

	gone, err := products.GetByID("prod-a")
	require.NoError(t, err)
	assert.Nil(t, gone)

	e1, _ := components.GetByID("e1")
	e2, _ := components.GetByID("e2")
	e3, _ := components.GetByID("e3")
	assert.Nil(t, e1)
	assert.Nil(t, e2)
	require.NotNil(t, e3)
	assert.Equal(t, 4, e3.Quantity)
}

// Un componente cuyo producto hijo ya no existe hace fallar la expansión.
func TestResolveComponents_HijoInexistenteFalla(t *testing.T) {
	bundle := paquete("bundle-1", "BU1", "Paquete")
	products := newMemProductRepo(bundle)
	components := newMemComponentRepo(arista("e1", "bundle-1", "prod-fantasma", 1))
	r := NewResolver(products, components)

	_, err := r.ResolveComponents("bundle-1")
	require.Error(t, err)
}
