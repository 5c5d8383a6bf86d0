package quoting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/manilapatagonia/cotizador-api/internal/application/dto"
	"github.com/manilapatagonia/cotizador-api/internal/domain"
	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
	"github.com/manilapatagonia/cotizador-api/internal/domain/pricing"
	"github.com/manilapatagonia/cotizador-api/internal/domain/repository"
	"github.com/manilapatagonia/cotizador-api/pkg/logger"
)

// Config parámetros del numerador y defaults de cotizaciones.
type Config struct {
	ExportPrefix     string
	LocalPrefix      string
	DefaultValidDays int
}

// QuoteUseCase ciclo de vida completo de cotizaciones: crear borrador,
// recomputar, guardar, confirmar (irreversible), copiar, listar, borrar.
type QuoteUseCase struct {
	txRunner    TxRunner
	quoteRepo   repository.QuoteRepository
	productRepo repository.ProductRepository
	cfg         Config
	log         *logger.Logger
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(
	txRunner TxRunner,
	quoteRepo repository.QuoteRepository,
	productRepo repository.ProductRepository,
	cfg Config,
	log *logger.Logger,
) *QuoteUseCase {
	if cfg.ExportPrefix == "" {
		cfg.ExportPrefix = "COT"
	}
	if cfg.LocalPrefix == "" {
		cfg.LocalPrefix = "LOC"
	}
	if cfg.DefaultValidDays <= 0 {
		cfg.DefaultValidDays = 15
	}
	return &QuoteUseCase{
		txRunner:    txRunner,
		quoteRepo:   quoteRepo,
		productRepo: productRepo,
		cfg:         cfg,
		log:         log,
	}
}

func (uc *QuoteUseCase) prefixFor(t entity.QuoteType) string {
	if t == entity.QuoteTypeLocal {
		return uc.cfg.LocalPrefix
	}
	return uc.cfg.ExportPrefix
}

// layersFor catálogo de capas inicial según tipo y variante.
func layersFor(t entity.QuoteType, staged bool) []entity.CostLayer {
	switch {
	case t == entity.QuoteTypeLocal:
		return entity.LocalLayers()
	case staged:
		return entity.StagedExportLayers()
	default:
		return entity.ExportLayers()
	}
}

// engineInput arma la entrada del motor desde el estado de la cotización.
func engineInput(q *entity.Quote) pricing.Input {
	return pricing.Input{
		Type:            q.Type,
		StagedTerms:     q.StagedTerms,
		TradeTerm:       q.TradeTerm,
		Layers:          q.CostLayers,
		Commission:      q.Commission,
		VolumeKg:        q.VolumeKg,
		NumShipments:    q.NumShipments,
		ExchangeRate:    q.ExchangeRate,
		LockMode:        q.LockMode,
		MarginPct:       q.MarginPct,
		TargetPrice:     q.TargetPrice,
		ProductYieldPct: q.Product.DefaultYieldPct,
	}
}

// recomputeQuote corre el motor y vuelca los derivados sobre la cotización.
func recomputeQuote(q *entity.Quote) pricing.Result {
	res := pricing.Recompute(engineInput(q))
	q.CostLayers = res.Layers
	q.TotalCostPerKg = res.TotalCostPerKg
	q.MarginPct = res.MarginPct
	q.PricePerKg = res.PricePerKg
	q.PricePerLb = res.PricePerLb
	return res
}

// CreateDraft crea un borrador: asigna el número secuencial y persiste la
// cotización en la misma transacción, con los ítems obligatorios sembrados.
func (uc *QuoteUseCase) CreateDraft(ctx context.Context, createdBy string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if in.Type != entity.QuoteTypeExport && in.Type != entity.QuoteTypeLocal {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	q := &entity.Quote{
		ID:           uuid.New().String(),
		Type:         in.Type,
		StagedTerms:  in.StagedTerms,
		Status:       entity.StatusDraft,
		CostLayers:   layersFor(in.Type, in.StagedTerms),
		NumShipments: 1,
		LockMode:     entity.LockMargin,
		ValidUntil:   now.AddDate(0, 0, uc.cfg.DefaultValidDays),
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	q.CostLayers = EnsureMandatoryItems(q.CostLayers, q.Type)

	if in.ProductID != "" {
		product, err := uc.productRepo.GetByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		q.Product = product.Snapshot()
	}

	err := uc.txRunner.RunQuote(ctx, func(quoteRepo repository.QuoteRepository, counterRepo repository.CounterRepository) error {
		seq, err := counterRepo.Next(CounterName(q.Type))
		if err != nil {
			return err
		}
		q.QuoteNumber = FormatNumber(uc.prefixFor(q.Type), now.Year(), seq)
		return quoteRepo.Create(q)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("quote_number", q.QuoteNumber).Str("type", string(q.Type)).Msg("borrador creado")
	res := recomputeQuote(q)
	return toQuoteResponse(q, &res), nil
}

// Compute recomputo sin estado para el editor: no toca persistencia.
func (uc *QuoteUseCase) Compute(in dto.ComputeRequest) *dto.ComputeResponse {
	res := pricing.Recompute(pricing.Input{
		Type:            in.Type,
		StagedTerms:     in.StagedTerms,
		TradeTerm:       in.TradeTerm,
		Layers:          in.CostLayers,
		Commission:      in.Commission,
		VolumeKg:        in.VolumeKg,
		NumShipments:    in.NumShipments,
		ExchangeRate:    in.ExchangeRate,
		LockMode:        in.LockMode,
		MarginPct:       in.MarginPct,
		TargetPrice:     in.TargetPrice,
		ProductYieldPct: in.ProductYield,
	})
	return &dto.ComputeResponse{
		EffectiveYield:   res.EffectiveYield,
		CostLayers:       res.Layers,
		TotalCostPerKg:   res.TotalCostPerKg,
		PlantExitPerKg:   res.PlantExitPerKg,
		CommPerKg:        res.CommPerKg,
		MarginPct:        res.MarginPct,
		PricePerKg:       res.PricePerKg,
		PricePerLb:       res.PricePerLb,
		Warnings:         res.Warnings,
		MandatoryMissing: res.MandatoryMissing,
	}
}

// GetByID carga una cotización. Los documentos legados pasan por el upgrade
// de obligatorios en memoria; el resultado incluye advertencias vigentes.
func (uc *QuoteUseCase) GetByID(id string) (*dto.QuoteResponse, error) {
	q, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	q.CostLayers = EnsureMandatoryItems(q.CostLayers, q.Type)
	res := pricing.Recompute(engineInput(q))
	return toQuoteResponse(q, &res), nil
}

// SaveDraft guarda el estado completo del borrador. Guardar nunca se bloquea
// por validación — siempre funciona desde cualquier estado del formulario —
// pero una cotización confirmada no admite más escrituras.
func (uc *QuoteUseCase) SaveDraft(id string, in dto.SaveQuoteRequest) (*dto.QuoteResponse, error) {
	q, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if q.IsConfirmed() {
		return nil, domain.ErrQuoteConfirmed
	}

	if err := uc.applySave(q, in); err != nil {
		return nil, err
	}
	res := recomputeQuote(q)
	q.UpdatedAt = time.Now()

	if err := uc.quoteRepo.Update(q); err != nil {
		return nil, err
	}
	return toQuoteResponse(q, &res), nil
}

func (uc *QuoteUseCase) applySave(q *entity.Quote, in dto.SaveQuoteRequest) error {
	q.Client = in.Client
	q.VolumeKg = in.VolumeKg
	q.NumShipments = in.NumShipments
	if q.NumShipments < 1 {
		q.NumShipments = 1
	}
	q.ExchangeRate = in.ExchangeRate
	q.TradeTerm = in.TradeTerm
	if in.CostLayers != nil {
		q.CostLayers = EnsureMandatoryItems(in.CostLayers, q.Type)
	}
	q.Commission = in.Commission
	if in.LockMode != "" {
		q.LockMode = in.LockMode
	}
	q.MarginPct = in.MarginPct
	q.TargetPrice = in.TargetPrice
	q.PaymentTerm = in.PaymentTerm
	q.TransportType = in.TransportType
	if in.ValidUntil != nil {
		q.ValidUntil = *in.ValidUntil
	}
	q.Notes = in.Notes

	// Cambio de producto: snapshot nuevo. Producto vacío conserva el anterior.
	if in.ProductID != "" && in.ProductID != q.Product.ProductID {
		product, err := uc.productRepo.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		q.Product = product.Snapshot()
	}
	return nil
}

// Confirm valida completitud, recomputa y estampa confirmed_at una sola vez.
// La transición es irreversible y se aplica acá, en el caso de uso, no en la
// UI: después de esto toda escritura devuelve ErrQuoteConfirmed.
func (uc *QuoteUseCase) Confirm(id string) (*dto.QuoteResponse, error) {
	q, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if q.IsConfirmed() {
		return nil, domain.ErrQuoteConfirmed
	}

	if err := uc.validateForConfirm(q); err != nil {
		return nil, err
	}

	res := recomputeQuote(q)
	now := time.Now()
	q.Status = entity.StatusConfirmed
	q.ConfirmedAt = &now
	q.UpdatedAt = now

	if err := uc.quoteRepo.Update(q); err != nil {
		return nil, err
	}
	uc.log.Info().Str("quote_number", q.QuoteNumber).Msg("cotización confirmada")
	return toQuoteResponse(q, &res), nil
}

// validateForConfirm reglas que bloquean la confirmación (nunca el guardado).
func (uc *QuoteUseCase) validateForConfirm(q *entity.Quote) error {
	if q.Client.Name == "" {
		return domain.ErrIncompleteQuote
	}
	if q.TradeTerm == "" {
		return domain.ErrIncompleteQuote
	}

	settlement := q.Type.SettlementCurrency()
	hasForeign := false
	for _, layer := range q.CostLayers {
		for _, item := range layer.Items {
			if item.Currency != settlement {
				hasForeign = true
			}
		}
	}
	if hasForeign && !q.ExchangeRate.IsPositive() {
		return domain.ErrMissingRate
	}

	res := pricing.Recompute(engineInput(q))
	if len(res.MandatoryMissing) > 0 {
		return domain.ErrIncompleteQuote
	}
	return nil
}

// Copy duplica cualquier cotización (borrador o confirmada) en un borrador
// nuevo con número propio.
func (uc *QuoteUseCase) Copy(ctx context.Context, id, createdBy string) (*dto.QuoteResponse, error) {
	src, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	dup := *src
	dup.ID = uuid.New().String()
	dup.Status = entity.StatusDraft
	dup.ConfirmedAt = nil
	dup.CreatedBy = createdBy
	dup.CreatedAt = now
	dup.UpdatedAt = now
	dup.ValidUntil = now.AddDate(0, 0, uc.cfg.DefaultValidDays)

	// Copia profunda de capas e ítems: el duplicado no comparte slices.
	dup.CostLayers = make([]entity.CostLayer, len(src.CostLayers))
	for i, layer := range src.CostLayers {
		layerCopy := layer
		layerCopy.Items = make([]entity.CostItem, len(layer.Items))
		copy(layerCopy.Items, layer.Items)
		dup.CostLayers[i] = layerCopy
	}
	dup.CostLayers = EnsureMandatoryItems(dup.CostLayers, dup.Type)

	err = uc.txRunner.RunQuote(ctx, func(quoteRepo repository.QuoteRepository, counterRepo repository.CounterRepository) error {
		seq, err := counterRepo.Next(CounterName(dup.Type))
		if err != nil {
			return err
		}
		dup.QuoteNumber = FormatNumber(uc.prefixFor(dup.Type), now.Year(), seq)
		return quoteRepo.Create(&dup)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("from", src.QuoteNumber).Str("to", dup.QuoteNumber).Msg("cotización copiada")
	res := recomputeQuote(&dup)
	return toQuoteResponse(&dup, &res), nil
}

// List historial con filtros.
func (uc *QuoteUseCase) List(f dto.QuoteListFilter) (*dto.QuoteListResponse, error) {
	f.DefaultPage()
	list, total, err := uc.quoteRepo.List(repository.QuoteFilter{
		Type:      entity.QuoteType(f.Type),
		Status:    entity.QuoteStatus(f.Status),
		TradeTerm: entity.TradeTerm(f.TradeTerm),
		Client:    f.Client,
		ProductID: f.ProductID,
		CreatedBy: f.CreatedBy,
		Limit:     f.Limit,
		Offset:    f.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.QuoteListItem, 0, len(list))
	for _, q := range list {
		items = append(items, dto.QuoteListItem{
			ID:          q.ID,
			QuoteNumber: q.QuoteNumber,
			Type:        q.Type,
			Status:      q.Status,
			ClientName:  q.Client.Name,
			ProductName: q.Product.Name,
			TradeTerm:   q.TradeTerm,
			PricePerKg:  q.PricePerKg,
			VolumeKg:    q.VolumeKg,
			CreatedBy:   q.CreatedBy,
			CreatedAt:   q.CreatedAt,
		})
	}
	return &dto.QuoteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// Delete elimina una cotización. Solo borradores: las confirmadas son el
// registro auditable del negocio.
func (uc *QuoteUseCase) Delete(id string) error {
	q, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return err
	}
	if q == nil {
		return domain.ErrNotFound
	}
	if q.IsConfirmed() {
		return domain.ErrQuoteConfirmed
	}
	return uc.quoteRepo.Delete(id)
}

func toQuoteResponse(q *entity.Quote, res *pricing.Result) *dto.QuoteResponse {
	out := &dto.QuoteResponse{
		ID:             q.ID,
		QuoteNumber:    q.QuoteNumber,
		Type:           q.Type,
		Status:         q.Status,
		Client:         q.Client,
		Product:        q.Product,
		VolumeKg:       q.VolumeKg,
		NumShipments:   q.NumShipments,
		ExchangeRate:   q.ExchangeRate,
		TradeTerm:      q.TradeTerm,
		StagedTerms:    q.StagedTerms,
		CostLayers:     q.CostLayers,
		Commission:     q.Commission,
		LockMode:       q.LockMode,
		MarginPct:      q.MarginPct,
		TargetPrice:    q.TargetPrice,
		TotalCostPerKg: q.TotalCostPerKg,
		PricePerKg:     q.PricePerKg,
		PricePerLb:     q.PricePerLb,
		PaymentTerm:    q.PaymentTerm,
		TransportType:  q.TransportType,
		ValidUntil:     q.ValidUntil,
		Notes:          q.Notes,
		CreatedBy:      q.CreatedBy,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
		ConfirmedAt:    q.ConfirmedAt,
	}
	if res != nil {
		out.Warnings = res.Warnings
		out.MandatoryMissing = res.MandatoryMissing
	}
	return out
}
