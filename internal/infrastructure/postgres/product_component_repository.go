package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/empaque-pro/internal/domain"
	"github.com/tu-usuario/empaque-pro/internal/domain/entity"
	"github.com/tu-usuario/empaque-pro/internal/domain/repository"
)

var _ repository.ProductComponentRepository = (*ProductComponentRepo)(nil)

// ProductComponentRepo implementación del puerto ProductComponentRepository
// sobre PostgreSQL.
type ProductComponentRepo struct {
	q Querier
}

// NewProductComponentRepository construye el adaptador.
func NewProductComponentRepository(q Querier) *ProductComponentRepo {
	return &ProductComponentRepo{q: q}
}

const componentColumns = "id, parent_product_id, child_product_id, quantity, created_at, updated_at"

// Create persiste una arista paquete→componente.
func (r *ProductComponentRepo) Create(component *entity.ProductComponent) error {
	query := `
		INSERT INTO product_components (id, parent_product_id, child_product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		component.ID, component.ParentProductID, component.ChildProductID,
		component.Quantity, component.CreatedAt, component.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert component: %w", err)
	}
	return nil
}

// GetByID obtiene una arista por ID.
func (r *ProductComponentRepo) GetByID(id string) (*entity.ProductComponent, error) {
	query := "SELECT " + componentColumns + " FROM product_components WHERE id = $1"
	var e entity.ProductComponent
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.ParentProductID, &e.ChildProductID, &e.Quantity, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get component: %w", err)
	}
	return &e, nil
}

func (r *ProductComponentRepo) listBy(column, productID string) ([]*entity.ProductComponent, error) {
	query := "SELECT " + componentColumns + " FROM product_components WHERE " + column + " = $1 ORDER BY created_at ASC"
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductComponent
	for rows.Next() {
		var e entity.ProductComponent
		if err := rows.Scan(&e.ID, &e.ParentProductID, &e.ChildProductID, &e.Quantity, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// ListByParent lista las aristas salientes de un paquete, por antigüedad.
func (r *ProductComponentRepo) ListByParent(parentProductID string) ([]*entity.ProductComponent, error) {
	return r.listBy("parent_product_id", parentProductID)
}

// ListByChild lista las aristas entrantes de un componente.
func (r *ProductComponentRepo) ListByChild(childProductID string) ([]*entity.ProductComponent, error) {
	return r.listBy("child_product_id", childProductID)
}

// UpdateQuantity cambia el multiplicador de una arista.
func (r *ProductComponentRepo) UpdateQuantity(id string, quantity int) error {
	query := `UPDATE product_components SET quantity = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update component quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una arista. Borrar una arista inexistente no es error:
// reintentar un borrado masivo interrumpido debe ser seguro.
func (r *ProductComponentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), "DELETE FROM product_components WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete component: %w", err)
	}
	return nil
}
