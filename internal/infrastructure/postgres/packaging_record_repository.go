package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/empaque-pro/internal/domain"
	"github.com/tu-usuario/empaque-pro/internal/domain/entity"
	"github.com/tu-usuario/empaque-pro/internal/domain/repository"
)

var _ repository.PackagingRecordRepository = (*PackagingRecordRepo)(nil)

// PackagingRecordRepo implementación del puerto PackagingRecordRepository sobre
// PostgreSQL. Los renglones del lote se guardan como JSONB.
type PackagingRecordRepo struct {
	q Querier
}

// NewPackagingRecordRepository construye el adaptador.
func NewPackagingRecordRepository(q Querier) *PackagingRecordRepo {
	return &PackagingRecordRepo{q: q}
}

// Create persiste un registro de empaque confirmado.
func (r *PackagingRecordRepo) Create(record *entity.PackagingRecord) error {
	items, err := json.Marshal(record.Items)
	if err != nil {
		return fmt.Errorf("marshal record items: %w", err)
	}
	query := `
		INSERT INTO packaging_records (id, waybill_number, items, item_count, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.q.Exec(context.Background(), query,
		record.ID, record.WaybillNumber, items, record.ItemCount, record.CreatedAt, record.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert packaging record: %w", err)
	}
	return nil
}

func scanRecord(row pgx.Row) (*entity.PackagingRecord, error) {
	var rec entity.PackagingRecord
	var items []byte
	err := row.Scan(&rec.ID, &rec.WaybillNumber, &items, &rec.ItemCount, &rec.CreatedAt, &rec.CreatedBy)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &rec.Items); err != nil {
		return nil, fmt.Errorf("unmarshal record items: %w", err)
	}
	return &rec, nil
}

// GetByID obtiene un registro por ID.
func (r *PackagingRecordRepo) GetByID(id string) (*entity.PackagingRecord, error) {
	query := `
		SELECT id, waybill_number, items, item_count, created_at, created_by
		FROM packaging_records WHERE id = $1`
	rec, err := scanRecord(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get packaging record: %w", err)
	}
	return rec, nil
}

// ListByDateRange lista registros con created_at dentro del rango (inclusive),
// ascendente por fecha. limit <= 0 significa sin límite.
func (r *PackagingRecordRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.PackagingRecord, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM packaging_records WHERE created_at >= $1 AND created_at <= $2`
	if err := r.q.QueryRow(context.Background(), countQuery, from, to).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count packaging records: %w", err)
	}

	query := `
		SELECT id, waybill_number, items, item_count, created_at, created_by
		FROM packaging_records
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at ASC`
	args := []any{from, to}
	if limit > 0 {
		query += " LIMIT $3 OFFSET $4"
		args = append(args, limit, offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list packaging records: %w", err)
	}
	defer rows.Close()

	var out []*entity.PackagingRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan packaging record: %w", err)
		}
		out = append(out, rec)
	}
	return out, total, rows.Err()
}

// Delete elimina un registro por ID.
func (r *PackagingRecordRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), "DELETE FROM packaging_records WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete packaging record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
