package stock

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/empaque-pro/internal/domain/entity"
	"github.com/tu-usuario/empaque-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

// memProductRepo fake de ProductRepository. Devuelve copias para que el motor
// nunca comparta punteros con el "store" (igual que un backend real).
type memProductRepo struct {
	products map[string]*entity.Product // por ID
	byCode   map[string]string          // barcode → ID

	// stockWriteHook permite forzar fallos de escritura en tests; si devuelve un
	// error, la escritura no se aplica.
	stockWriteHook func(id string, qty int) error

	lookupsByBarcode int
	stockWrites      []string // IDs en orden de escritura
}

var _ repository.ProductRepository = (*memProductRepo)(nil)

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	r := &memProductRepo{
		products: make(map[string]*entity.Product),
		byCode:   make(map[string]string),
	}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
		r.byCode[p.Barcode] = p.ID
	}
	return r
}

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	r.byCode[p.Barcode] = p.ID
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	r.lookupsByBarcode++
	id, ok := r.byCode[barcode]
	if !ok {
		return nil, nil
	}
	return r.GetByID(id)
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) List(_ repository.ProductFilter) ([]*entity.Product, int, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(id string, quantity int) error {
	if r.stockWriteHook != nil {
		if err := r.stockWriteHook(id, quantity); err != nil {
			return err
		}
	}
	p, ok := r.products[id]
	if !ok {
		return fmt.Errorf("producto %s no existe", id)
	}
	if quantity < 0 {
		// El store ajusta defensivamente a 0; el motor nunca debería mandar negativos.
		quantity = 0
	}
	p.StockQuantity = quantity
	p.UpdatedAt = time.Now()
	r.stockWrites = append(r.stockWrites, id)
	return nil
}

func (r *memProductRepo) Delete(id string) error {
	p, ok := r.products[id]
	if !ok {
		return nil
	}
	delete(r.byCode, p.Barcode)
	delete(r.products, id)
	return nil
}

// stock lee el valor persistido directamente (atajo de test).
func (r *memProductRepo) stock(id string) int {
	return r.products[id].StockQuantity
}

// memComponentRepo fake de ProductComponentRepository.
type memComponentRepo struct {
	edges map[string]*entity.ProductComponent
	order []string // orden de inserción para listados deterministas

	failDelete map[string]error // fuerza fallos por ID de arista
}

var _ repository.ProductComponentRepository = (*memComponentRepo)(nil)

func newMemComponentRepo(edges ...*entity.ProductComponent) *memComponentRepo {
	r := &memComponentRepo{
		edges:      make(map[string]*entity.ProductComponent),
		failDelete: make(map[string]error),
	}
	for _, e := range edges {
		cp := *e
		r.edges[e.ID] = &cp
		r.order = append(r.order, e.ID)
	}
	return r
}

func (r *memComponentRepo) Create(e *entity.ProductComponent) error {
	cp := *e
	r.edges[e.ID] = &cp
	r.order = append(r.order, e.ID)
	return nil
}

func (r *memComponentRepo) GetByID(id string) (*entity.ProductComponent, error) {
	e, ok := r.edges[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *memComponentRepo) ListByParent(parentID string) ([]*entity.ProductComponent, error) {
	var out []*entity.ProductComponent
	for _, id := range r.order {
		if e, ok := r.edges[id]; ok && e.ParentProductID == parentID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memComponentRepo) ListByChild(childID string) ([]*entity.ProductComponent, error) {
	var out []*entity.ProductComponent
	for _, id := range r.order {
		if e, ok := r.edges[id]; ok && e.ChildProductID == childID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memComponentRepo) UpdateQuantity(id string, quantity int) error {
	e, ok := r.edges[id]
	if !ok {
		return fmt.Errorf("arista %s no existe", id)
	}
	e.Quantity = quantity
	return nil
}

func (r *memComponentRepo) Delete(id string) error {
	if err, ok := r.failDelete[id]; ok {
		return err
	}
	delete(r.edges, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructores de datos de prueba
// ──────────────────────────────────────────────────────────────────────────────

func producto(id, barcode, name string, stock int) *entity.Product {
	return &entity.Product{
		ID:            id,
		Barcode:       barcode,
		Name:          name,
		Type:          entity.ProductTypeSingle,
		Cost:          decimal.Zero,
		StockQuantity: stock,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func paquete(id, barcode, name string) *entity.Product {
	p := producto(id, barcode, name, 0)
	p.Type = entity.ProductTypeBundle
	return p
}

func arista(id, parentID, childID string, qty int) *entity.ProductComponent {
	return &entity.ProductComponent{
		ID:              id,
		ParentProductID: parentID,
		ChildProductID:  childID,
		Quantity:        qty,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}
