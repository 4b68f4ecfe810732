package usecase

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

type memProductRepo struct {
	products map[string]*entity.Product
	byCode   map[string]string
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
	old, ok := r.products[p.ID]
	if !ok {
		return fmt.Errorf("producto %s no existe", p.ID)
	}
	if old.Barcode != p.Barcode {
		delete(r.byCode, old.Barcode)
		r.byCode[p.Barcode] = p.ID
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(id string, quantity int) error {
	p, ok := r.products[id]
	if !ok {
		return fmt.Errorf("producto %s no existe", id)
	}
	if quantity < 0 {
		quantity = 0
	}
	p.StockQuantity = quantity
	p.UpdatedAt = time.Now()
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

func (r *memProductRepo) stock(id string) int {
	return r.products[id].StockQuantity
}

type memComponentRepo struct {
	edges map[string]*entity.ProductComponent
	order []string
}

var _ repository.ProductComponentRepository = (*memComponentRepo)(nil)

func newMemComponentRepo(edges ...*entity.ProductComponent) *memComponentRepo {
	r := &memComponentRepo{edges: make(map[string]*entity.ProductComponent)}
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
	delete(r.edges, id)
	return nil
}

type memRecordRepo struct {
	records map[string]*entity.PackagingRecord
	order   []string

	failCreate error // fuerza fallo de persistencia en tests
}

var _ repository.PackagingRecordRepository = (*memRecordRepo)(nil)

func newMemRecordRepo() *memRecordRepo {
	return &memRecordRepo{records: make(map[string]*entity.PackagingRecord)}
}

func (r *memRecordRepo) Create(record *entity.PackagingRecord) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *record
	r.records[record.ID] = &cp
	r.order = append(r.order, record.ID)
	return nil
}

func (r *memRecordRepo) GetByID(id string) (*entity.PackagingRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *memRecordRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.PackagingRecord, int, error) {
	var all []*entity.PackagingRecord
	for _, id := range r.order {
		rec := r.records[id]
		if rec == nil || rec.CreatedAt.Before(from) || rec.CreatedAt.After(to) {
			continue
		}
		cp := *rec
		all = append(all, &cp)
	}
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (r *memRecordRepo) Delete(id string) error {
	delete(r.records, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructores de datos de prueba
// ──────────────────────────────────────────────────────────────────────────────

func producto(id, barcode, name string, stockQty int) *entity.Product {
	return &entity.Product{
		ID:            id,
		Barcode:       barcode,
		Name:          name,
		Type:          entity.ProductTypeSingle,
		Cost:          decimal.Zero,
		StockQuantity: stockQty,
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
