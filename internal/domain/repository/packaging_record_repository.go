package repository

import (
	"time"

	"github.com/tu-usuario/empaque-pro/internal/domain/entity"
)

// PackagingRecordRepository define el puerto para los registros de empaque.
// GetByID devuelve (nil, nil) si el registro no existe.
type PackagingRecordRepository interface {
	Create(record *entity.PackagingRecord) error
	GetByID(id string) (*entity.PackagingRecord, error)
	ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.PackagingRecord, int, error)
	Delete(id string) error
}
