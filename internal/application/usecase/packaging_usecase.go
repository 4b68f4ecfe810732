package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/empaque-pro/internal/application/dto"
	"github.com/tu-usuario/empaque-pro/internal/application/stock"
	"github.com/tu-usuario/empaque-pro/internal/domain"
	"github.com/tu-usuario/empaque-pro/internal/domain/entity"
	"github.com/tu-usuario/empaque-pro/internal/domain/repository"
)

// PackagingUseCase orquesta el flujo de empaque: expande paquetes (expander),
// agrega demanda, valida y aplica descuentos/restauraciones. La expansión y la
// agregación son capacidades separadas que este caso de uso compone.
type PackagingUseCase struct {
	aggregator *stock.Aggregator
	validator  *stock.Validator
	mutator    *stock.Mutator
	expander   stock.BundleExpander
	products   repository.ProductRepository
	records    repository.PackagingRecordRepository
}

// NewPackagingUseCase construye el caso de uso.
func NewPackagingUseCase(
	aggregator *stock.Aggregator,
	validator *stock.Validator,
	mutator *stock.Mutator,
	expander stock.BundleExpander,
	products repository.ProductRepository,
	records repository.PackagingRecordRepository,
) *PackagingUseCase {
	return &PackagingUseCase{
		aggregator: aggregator,
		validator:  validator,
		mutator:    mutator,
		expander:   expander,
		products:   products,
		records:    records,
	}
}

// expandItems convierte los renglones del request en renglones del motor. Para un
// renglón marcado como paquete resuelve el barcode y expande sus componentes un
// nivel; si el barcode no resuelve, el renglón pasa sin expandir y el agregador
// lo registrará como omitido.
func (uc *PackagingUseCase) expandItems(in []dto.PackagingItemRequest) ([]stock.PackagingItem, error) {
	items := make([]stock.PackagingItem, 0, len(in))
	for _, req := range in {
		item := stock.PackagingItem{ProductBarcode: req.ProductBarcode, IsBundle: req.IsBundle}
		if req.IsBundle {
			bundle, err := uc.products.GetByBarcode(req.ProductBarcode)
			if err != nil {
				return nil, err
			}
			if bundle != nil {
				resolved, err := uc.expander.ResolveComponents(bundle.ID)
				if err != nil {
					return nil, err
				}
				for _, rc := range resolved {
					item.BundleComponents = append(item.BundleComponents, stock.BundleComponent{
						Product:  rc.Product,
						Quantity: rc.Quantity,
					})
				}
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// CalculateStockRequirements agrega la demanda del lote sin leerle el stock a nadie.
func (uc *PackagingUseCase) CalculateStockRequirements(in dto.PackagingBatchRequest) (*dto.RequirementsResponse, error) {
	items, err := uc.expandItems(in.Items)
	if err != nil {
		return nil, err
	}
	reqs, err := uc.aggregator.Aggregate(items)
	if err != nil {
		return nil, err
	}
	out := &dto.RequirementsResponse{
		Requirements: make([]dto.RequirementEntryResponse, 0, reqs.Len()),
		Skipped:      reqs.Skipped,
	}
	for _, id := range reqs.ProductIDs() {
		req := reqs.Get(id)
		out.Requirements = append(out.Requirements, dto.RequirementEntryResponse{
			ProductID: id,
			Barcode:   req.Product.Barcode,
			Name:      req.Product.Name,
			Required:  req.Required,
		})
	}
	return out, nil
}

// ValidateStockForPackaging verifica suficiencia sin mutar nada. Consultivo: el
// descuento vuelve a verificar contra el stock del momento.
func (uc *PackagingUseCase) ValidateStockForPackaging(in dto.PackagingBatchRequest) (*stock.ValidationResult, error) {
	items, err := uc.expandItems(in.Items)
	if err != nil {
		return nil, err
	}
	return uc.validator.Validate(items)
}

// DeductStockForPackaging descuenta el lote sin crear registro (uso directo del motor).
func (uc *PackagingUseCase) DeductStockForPackaging(in dto.PackagingBatchRequest) (*stock.BatchResult, error) {
	items, err := uc.expandItems(in.Items)
	if err != nil {
		return nil, err
	}
	return uc.mutator.Deduct(items)
}

// RestoreStockForPackaging restaura el lote sin tocar registros.
func (uc *PackagingUseCase) RestoreStockForPackaging(in dto.PackagingBatchRequest) (*stock.BatchResult, error) {
	items, err := uc.expandItems(in.Items)
	if err != nil {
		return nil, err
	}
	return uc.mutator.Restore(items)
}

// CreateRecord confirma un empaque: descuenta el stock del lote y, solo si el
// descuento completo fue exitoso, persiste el registro con la expansión usada
// (para poder revertir exactamente lo mismo al eliminarlo).
func (uc *PackagingUseCase) CreateRecord(userID string, in dto.CreatePackagingRecordRequest) (*dto.CreatePackagingRecordResponse, *stock.BatchResult, error) {
	if in.WaybillNumber == "" || len(in.Items) == 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	items, err := uc.expandItems(in.Items)
	if err != nil {
		return nil, nil, err
	}
	result, err := uc.mutator.Deduct(items)
	if err != nil {
		return nil, nil, err
	}
	if !result.Success {
		return nil, result, nil
	}

	record := &entity.PackagingRecord{
		ID:            uuid.New().String(),
		WaybillNumber: in.WaybillNumber,
		Items:         toRecordItems(items),
		ItemCount:     len(items),
		CreatedAt:     time.Now(),
		CreatedBy:     userID,
	}
	if err := uc.records.Create(record); err != nil {
		// El stock ya está descontado; el caller decide si reintenta la creación.
		log.Error().Err(err).Str("waybill", in.WaybillNumber).
			Msg("registro de empaque no persistido con stock ya descontado")
		return nil, result, err
	}
	return &dto.CreatePackagingRecordResponse{
		Record:   *toRecordResponse(record),
		Mutation: toMutationResponse(result),
	}, result, nil
}

// DeleteRecord revierte el efecto de stock de un registro y lo elimina. La
// eliminación completa aunque alguna restauración falle; el detalle viaja en la
// respuesta para que la capa de UI lo informe.
func (uc *PackagingUseCase) DeleteRecord(id string) (*dto.DeletePackagingRecordResponse, error) {
	record, err := uc.records.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}

	items := uc.itemsFromRecord(record)
	result, err := uc.mutator.Restore(items)
	if err != nil {
		return nil, err
	}
	if err := uc.records.Delete(id); err != nil {
		return nil, err
	}
	return &dto.DeletePackagingRecordResponse{
		Deleted:  true,
		Mutation: toMutationResponse(result),
	}, nil
}

// itemsFromRecord reconstruye los renglones del motor desde lo persistido. Los
// componentes se releen por ID; si alguno ya no existe se conserva un snapshot
// mínimo para que el mutador reporte el fallo por producto en vez de abortar.
func (uc *PackagingUseCase) itemsFromRecord(record *entity.PackagingRecord) []stock.PackagingItem {
	items := make([]stock.PackagingItem, 0, len(record.Items))
	for _, ri := range record.Items {
		item := stock.PackagingItem{ProductBarcode: ri.ProductBarcode, IsBundle: ri.IsBundle}
		for _, ce := range ri.Components {
			product, err := uc.products.GetByID(ce.ProductID)
			if err != nil || product == nil {
				product = &entity.Product{ID: ce.ProductID, Name: ce.ProductID}
			}
			item.BundleComponents = append(item.BundleComponents, stock.BundleComponent{
				Product:  product,
				Quantity: ce.Quantity,
			})
		}
		items = append(items, item)
	}
	return items
}

// GetRecord obtiene un registro por ID.
func (uc *PackagingUseCase) GetRecord(id string) (*dto.PackagingRecordResponse, error) {
	record, err := uc.records.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return toRecordResponse(record), nil
}

// ListRecords lista registros por rango de fechas (inclusive) con paginación.
func (uc *PackagingUseCase) ListRecords(from, to time.Time, limit, offset int) (*dto.PackagingRecordListResponse, error) {
	records, total, err := uc.records.ListByDateRange(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PackagingRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, *toRecordResponse(r))
	}
	return &dto.PackagingRecordListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

func toRecordItems(items []stock.PackagingItem) []entity.PackagingRecordItem {
	out := make([]entity.PackagingRecordItem, 0, len(items))
	for _, item := range items {
		ri := entity.PackagingRecordItem{
			ProductBarcode: item.ProductBarcode,
			IsBundle:       item.IsBundle,
		}
		for _, comp := range item.BundleComponents {
			if comp.Product == nil {
				continue
			}
			ri.Components = append(ri.Components, entity.RecordComponentEntry{
				ProductID: comp.Product.ID,
				Quantity:  comp.Quantity,
			})
		}
		out = append(out, ri)
	}
	return out
}

func toRecordResponse(r *entity.PackagingRecord) *dto.PackagingRecordResponse {
	return &dto.PackagingRecordResponse{
		ID:            r.ID,
		WaybillNumber: r.WaybillNumber,
		ItemCount:     r.ItemCount,
		CreatedAt:     r.CreatedAt,
		CreatedBy:     r.CreatedBy,
	}
}

func toMutationResponse(r *stock.BatchResult) dto.StockMutationResponse {
	return dto.StockMutationResponse{
		Success:          r.Success,
		Errors:           r.Errors,
		Skipped:          r.Skipped,
		RollbackFailures: r.RollbackFailures,
	}
}
