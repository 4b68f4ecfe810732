package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/empaque-pro/internal/domain"
	"github.com/tu-usuario/empaque-pro/internal/domain/entity"
	"github.com/tu-usuario/empaque-pro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = "id, barcode, sku, name, type, cost, stock_quantity, created_at, updated_at"

// productRow fila de products para escaneo con pgxscan.
type productRow struct {
	ID            string          `db:"id"`
	Barcode       string          `db:"barcode"`
	SKU           string          `db:"sku"`
	Name          string          `db:"name"`
	Type          string          `db:"type"`
	Cost          decimal.Decimal `db:"cost"`
	StockQuantity int             `db:"stock_quantity"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func (r productRow) toEntity() *entity.Product {
	return &entity.Product{
		ID:            r.ID,
		Barcode:       r.Barcode,
		SKU:           r.SKU,
		Name:          r.Name,
		Type:          r.Type,
		Cost:          r.Cost,
		StockQuantity: r.StockQuantity,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// Create persiste un nuevo producto. Barcode único a nivel de tabla.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, barcode, sku, name, type, cost, stock_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Barcode, product.SKU, product.Name, product.Type,
		product.Cost, product.StockQuantity, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.Barcode, &p.SKU, &p.Name, &p.Type, &p.Cost, &p.StockQuantity,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne("SELECT "+productColumns+" FROM products WHERE id = $1", id)
}

// GetByBarcode obtiene un producto por barcode (igualdad exacta, único).
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	return r.getOne("SELECT "+productColumns+" FROM products WHERE barcode = $1", barcode)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getOne("SELECT "+productColumns+" FROM products WHERE sku = $1", sku)
}

// List lista productos aplicando los filtros presentes: búsqueda parcial (OR
// sobre name/barcode/sku), igualdad de tipo, rango de stock, orden por nombre
// ascendente y paginación. La query se compone dinámicamente con squirrel.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	apply := func(q squirrel.SelectBuilder) squirrel.SelectBuilder {
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			q = q.Where(squirrel.Or{
				squirrel.ILike{"name": like},
				squirrel.ILike{"barcode": like},
				squirrel.ILike{"sku": like},
			})
		}
		if filter.Type != "" {
			q = q.Where(squirrel.Eq{"type": filter.Type})
		}
		if filter.MinStock != nil {
			q = q.Where(squirrel.GtOrEq{"stock_quantity": *filter.MinStock})
		}
		if filter.MaxStock != nil {
			q = q.Where(squirrel.LtOrEq{"stock_quantity": *filter.MaxStock})
		}
		return q
	}

	countSQL, countArgs, err := apply(builder.Select("COUNT(*)").From("products")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := r.q.QueryRow(context.Background(), countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	q := apply(builder.Select(productColumns).From("products")).OrderBy("name ASC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	var rows []productRow
	if err := pgxscan.Select(context.Background(), r.q, &rows, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	out := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, total, nil
}

// Update actualiza los campos editables de un producto. El stock va por UpdateStock.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET barcode = $2, sku = $3, name = $4, type = $5, cost = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Barcode, product.SKU, product.Name, product.Type,
		product.Cost, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija stock_quantity en un valor absoluto. Ajusta negativos a 0
// antes de escribir: la columna nunca persiste un valor negativo.
func (r *ProductRepo) UpdateStock(id string, quantity int) error {
	if quantity < 0 {
		quantity = 0
	}
	query := `UPDATE products SET stock_quantity = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID. Las aristas de componentes las cascadea el
// resolver antes de llegar aquí.
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
