package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manilapatagonia/cotizador-api/internal/application/dto"
	"github.com/manilapatagonia/cotizador-api/internal/domain"
	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
	"github.com/manilapatagonia/cotizador-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// CostTableUseCase CRUD de los ítems de referencia de las tablas de costos.
// Usar una entrada en una cotización copia sus valores; editar acá no toca
// los ítems ya copiados.
type CostTableUseCase struct {
	repo repository.CostTableRepository
}

// NewCostTableUseCase construye el caso de uso.
func NewCostTableUseCase(repo repository.CostTableRepository) *CostTableUseCase {
	return &CostTableUseCase{repo: repo}
}

func validCostEntry(layer entity.LayerID, unit entity.CostUnit, unitKg decimal.Decimal) error {
	switch unit {
	case entity.UnitKg, entity.UnitUnit, entity.UnitBox, entity.UnitLoad, entity.UnitPctCost, entity.UnitPctPrice:
	default:
		return domain.ErrInvalidInput
	}
	if unit.NeedsUnitKg() && !unitKg.IsPositive() {
		return domain.ErrInvalidInput
	}
	if layer == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create crea un ítem de referencia.
func (uc *CostTableUseCase) Create(in dto.CreateCostEntryRequest) (*dto.CostEntryResponse, error) {
	if err := validCostEntry(in.Layer, in.VariableUnit, in.VariableUnitKg.Decimal); err != nil {
		return nil, err
	}
	now := time.Now()
	entry := &entity.CostTableEntry{
		ID:               uuid.New().String(),
		Layer:            in.Layer,
		Name:             in.Name,
		VariableValue:    in.VariableValue.Decimal,
		VariableUnit:     in.VariableUnit,
		VariableUnitKg:   in.VariableUnitKg.Decimal,
		FixedPerShipment: in.FixedPerShipment.Decimal,
		FixedPerQuote:    in.FixedPerQuote.Decimal,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(entry); err != nil {
		return nil, err
	}
	return toCostEntryResponse(entry), nil
}

// GetByID obtiene un ítem por ID.
func (uc *CostTableUseCase) GetByID(id string) (*dto.CostEntryResponse, error) {
	entry, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	return toCostEntryResponse(entry), nil
}

// Update actualiza un ítem de referencia.
func (uc *CostTableUseCase) Update(id string, in dto.UpdateCostEntryRequest) (*dto.CostEntryResponse, error) {
	entry, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	if in.Layer != nil {
		entry.Layer = *in.Layer
	}
	if in.Name != nil {
		entry.Name = *in.Name
	}
	if in.VariableValue != nil {
		entry.VariableValue = in.VariableValue.Decimal
	}
	if in.VariableUnit != nil {
		entry.VariableUnit = *in.VariableUnit
	}
	if in.VariableUnitKg != nil {
		entry.VariableUnitKg = in.VariableUnitKg.Decimal
	}
	if in.FixedPerShipment != nil {
		entry.FixedPerShipment = in.FixedPerShipment.Decimal
	}
	if in.FixedPerQuote != nil {
		entry.FixedPerQuote = in.FixedPerQuote.Decimal
	}
	if in.Notes != nil {
		entry.Notes = *in.Notes
	}
	if err := validCostEntry(entry.Layer, entry.VariableUnit, entry.VariableUnitKg); err != nil {
		return nil, err
	}
	entry.UpdatedAt = time.Now()
	if err := uc.repo.Update(entry); err != nil {
		return nil, err
	}
	return toCostEntryResponse(entry), nil
}

// List lista ítems de referencia; con layer filtra por capa.
func (uc *CostTableUseCase) List(layer entity.LayerID, limit, offset int) (*dto.CostEntryListResponse, error) {
	var (
		list []*entity.CostTableEntry
		err  error
	)
	if layer != "" {
		list, err = uc.repo.ListByLayer(layer)
	} else {
		list, err = uc.repo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.CostEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toCostEntryResponse(e))
	}
	return &dto.CostEntryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un ítem de referencia.
func (uc *CostTableUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toCostEntryResponse(e *entity.CostTableEntry) *dto.CostEntryResponse {
	if e == nil {
		return nil
	}
	return &dto.CostEntryResponse{
		ID:               e.ID,
		Layer:            e.Layer,
		Name:             e.Name,
		VariableValue:    e.VariableValue,
		VariableUnit:     e.VariableUnit,
		VariableUnitKg:   e.VariableUnitKg,
		FixedPerShipment: e.FixedPerShipment,
		FixedPerQuote:    e.FixedPerQuote,
		Notes:            e.Notes,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
