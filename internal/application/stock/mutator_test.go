package stock

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMutator(repo *memProductRepo) *Mutator {
	return NewMutator(NewAggregator(repo), repo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Deduct
// ──────────────────────────────────────────────────────────────────────────────

// Escenario base: A con stock 10, escaneado dos veces → queda en 8.
func TestDeduct_DescuentaLoRequerido(t *testing.T) {
	repo := newMemProductRepo(producto("prod-a", "A1", "Producto A", 10))
	m := newMutator(repo)

	result, err := m.Deduct([]PackagingItem{
		{ProductBarcode: "A1"},
		{ProductBarcode: "A1"},
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 8, repo.stock("prod-a"))
}

// Si lo requerido supera el stock, el producto no se escribe en absoluto y se
// reporta exactamente un error descriptivo que lo menciona.
func TestDeduct_InsuficienteNoEscribeNada(t *testing.T) {
	repo := newMemProductRepo(producto("prod-a", "A1", "Producto A", 3))
	m := newMutator(repo)

	stale := producto("prod-a", "A1", "Producto A", 3)
	item := PackagingItem{
		IsBundle:         true,
		BundleComponents: []BundleComponent{{Product: stale, Quantity: 2}},
	}
	result, err := m.Deduct([]PackagingItem{item, item}) // requerido 4 > 3
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Producto A")
	assert.Contains(t, result.Errors[0], "A1")
	assert.Equal(t, 3, repo.stock("prod-a"))
	assert.Empty(t, repo.stockWrites)
}

// Propiedad de reversión: con [A, B, C] en ese orden y C insuficiente, A y B
// vuelven a su stock previo y C queda intacto (su escritura nunca ocurrió).
func TestDeduct_RollbackRestauraLosYaDescontados(t *testing.T) {
	prodA := producto("prod-a", "A1", "Producto A", 10)
	prodB := producto("prod-b", "B1", "Producto B", 5)
	prodC := producto("prod-c", "C1", "Producto C", 1)
	repo := newMemProductRepo(prodA, prodB, prodC)
	m := newMutator(repo)

	result, err := m.Deduct([]PackagingItem{
		{IsBundle: true, BundleComponents: []BundleComponent{
			{Product: prodA, Quantity: 4},
			{Product: prodB, Quantity: 2},
			{Product: prodC, Quantity: 3}, // 3 > 1: falla
		}},
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Producto C")

	assert.Equal(t, 10, repo.stock("prod-a"))
	assert.Equal(t, 5, repo.stock("prod-b"))
	assert.Equal(t, 1, repo.stock("prod-c"))

	// Escrituras: descuento de A, descuento de B, luego compensación B, A (inversa)
	assert.Equal(t, []string{"prod-a", "prod-b", "prod-b", "prod-a"}, repo.stockWrites)
}

// Un fallo al compensar se registra aparte y no altera la lista de errores
// original; tampoco se reintenta.
func TestDeduct_FalloDeCompensacionSeRegistra(t *testing.T) {
	prodA := producto("prod-a", "A1", "Producto A", 10)
	prodC := producto("prod-c", "C1", "Producto C", 0)
	repo := newMemProductRepo(prodA, prodC)
	m := newMutator(repo)

	// La primera escritura sobre A (el descuento) pasa; la segunda (compensación) falla.
	writesToA := 0
	repo.stockWriteHook = func(id string, _ int) error {
		if id != "prod-a" {
			return nil
		}
		writesToA++
		if writesToA > 1 {
			return fmt.Errorf("backend caído")
		}
		return nil
	}

	result, err := m.Deduct([]PackagingItem{
		{IsBundle: true, BundleComponents: []BundleComponent{
			{Product: prodA, Quantity: 1},
			{Product: prodC, Quantity: 1}, // insuficiente: dispara la reversión
		}},
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Producto C")
	require.Len(t, result.RollbackFailures, 1)
	assert.Contains(t, result.RollbackFailures[0], "prod-a")
	// A quedó descontado: la compensación falló y no se reintenta
	assert.Equal(t, 9, repo.stock("prod-a"))
}

// Varios productos insuficientes: un error por cada uno, el recorrido no aborta
// en el primero.
func TestDeduct_ColectaUnErrorPorProducto(t *testing.T) {
	prodA := producto("prod-a", "A1", "Producto A", 0)
	prodB := producto("prod-b", "B1", "Producto B", 0)
	repo := newMemProductRepo(prodA, prodB)
	m := newMutator(repo)

	result, err := m.Deduct([]PackagingItem{
		{ProductBarcode: "A1"},
		{ProductBarcode: "B1"},
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Len(t, result.Errors, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Restore
// ──────────────────────────────────────────────────────────────────────────────

// Descontar y luego restaurar el mismo lote es la identidad sobre el stock.
func TestDeductLuegoRestore_EsIdentidad(t *testing.T) {
	prodA := producto("prod-a", "A1", "Producto A", 10)
	prodB := producto("prod-b", "B1", "Producto B", 7)
	repo := newMemProductRepo(prodA, prodB)
	m := newMutator(repo)

	batch := []PackagingItem{
		{ProductBarcode: "A1"},
		{IsBundle: true, BundleComponents: []BundleComponent{
			{Product: prodA, Quantity: 2},
			{Product: prodB, Quantity: 3},
		}},
	}

	deducted, err := m.Deduct(batch)
	require.NoError(t, err)
	require.True(t, deducted.Success)
	assert.Equal(t, 7, repo.stock("prod-a"))
	assert.Equal(t, 4, repo.stock("prod-b"))

	restored, err := m.Restore(batch)
	require.NoError(t, err)
	require.True(t, restored.Success)
	assert.Equal(t, 10, repo.stock("prod-a"))
	assert.Equal(t, 7, repo.stock("prod-b"))
}

// Restore no compensa: si restaurar B falla después de A, A queda restaurado.
// Asimetría deliberada respecto de Deduct.
func TestRestore_SinCompensacionPropia(t *testing.T) {
	prodA := producto("prod-a", "A1", "Producto A", 5)
	prodB := producto("prod-b", "B1", "Producto B", 5)
	repo := newMemProductRepo(prodA, prodB)
	m := newMutator(repo)

	repo.stockWriteHook = func(id string, _ int) error {
		if id == "prod-b" {
			return fmt.Errorf("backend caído")
		}
		return nil
	}

	result, err := m.Restore([]PackagingItem{
		{ProductBarcode: "A1"},
		{ProductBarcode: "B1"},
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Producto B")
	assert.Empty(t, result.RollbackFailures)
	// A permanece restaurado a pesar del fallo en B
	assert.Equal(t, 6, repo.stock("prod-a"))
	assert.Equal(t, 5, repo.stock("prod-b"))
}
