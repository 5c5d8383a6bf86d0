package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
	"github.com/manilapatagonia/cotizador-api/internal/domain/pricing"
)

// CreateQuoteRequest entrada para crear un borrador. El número se asigna
// transaccionalmente y los ítems obligatorios vienen pre-cargados.
type CreateQuoteRequest struct {
	Type        entity.QuoteType `json:"type" validate:"required,oneof=export local"`
	StagedTerms bool             `json:"staged_terms"`
	ProductID   string           `json:"product_id"`
}

// SaveQuoteRequest estado completo del borrador a guardar. Guardar nunca se
// bloquea por validación: el estado se persiste tal cual desde cualquier punto.
type SaveQuoteRequest struct {
	Client       entity.Client      `json:"client"`
	ProductID    string             `json:"product_id"`
	VolumeKg     decimal.Decimal    `json:"volume_kg"`
	NumShipments int                `json:"num_shipments"`
	ExchangeRate decimal.Decimal    `json:"exchange_rate"`
	TradeTerm    entity.TradeTerm   `json:"trade_term"`
	CostLayers   []entity.CostLayer `json:"cost_layers"`
	Commission   entity.Commission  `json:"commission"`
	LockMode     entity.LockMode    `json:"lock_mode"`
	MarginPct    decimal.Decimal    `json:"margin_pct"`
	TargetPrice  decimal.Decimal    `json:"target_price"`

	PaymentTerm   string     `json:"payment_term"`
	TransportType string     `json:"transport_type"`
	ValidUntil    *time.Time `json:"valid_until"`
	Notes         string     `json:"notes"`
}

// ComputeRequest entrada del endpoint de recomputo sin estado: el frontend
// manda el estado del editor y recibe todos los números derivados.
type ComputeRequest struct {
	Type         entity.QuoteType   `json:"type" validate:"required,oneof=export local"`
	StagedTerms  bool               `json:"staged_terms"`
	TradeTerm    entity.TradeTerm   `json:"trade_term"`
	CostLayers   []entity.CostLayer `json:"cost_layers"`
	Commission   entity.Commission  `json:"commission"`
	VolumeKg     decimal.Decimal    `json:"volume_kg"`
	NumShipments int                `json:"num_shipments"`
	ExchangeRate decimal.Decimal    `json:"exchange_rate"`
	LockMode     entity.LockMode    `json:"lock_mode"`
	MarginPct    decimal.Decimal    `json:"margin_pct"`
	TargetPrice  decimal.Decimal    `json:"target_price"`
	ProductYield decimal.Decimal    `json:"product_yield_pct"`
}

// ComputeResponse números derivados del recomputo.
type ComputeResponse struct {
	EffectiveYield   decimal.Decimal    `json:"effective_yield"`
	CostLayers       []entity.CostLayer `json:"cost_layers"`
	TotalCostPerKg   decimal.Decimal    `json:"total_cost_per_kg"`
	PlantExitPerKg   decimal.Decimal    `json:"plant_exit_per_kg"`
	CommPerKg        decimal.Decimal    `json:"comm_per_kg"`
	MarginPct        decimal.Decimal    `json:"margin_pct"`
	PricePerKg       decimal.Decimal    `json:"price_per_kg"`
	PricePerLb       decimal.Decimal    `json:"price_per_lb"`
	Warnings         []pricing.Warning  `json:"warnings"`
	MandatoryMissing []string           `json:"mandatory_missing"`
}

// QuoteResponse salida completa de una cotización.
type QuoteResponse struct {
	ID          string                 `json:"id"`
	QuoteNumber string                 `json:"quote_number"`
	Type        entity.QuoteType       `json:"type"`
	Status      entity.QuoteStatus     `json:"status"`
	Client      entity.Client          `json:"client"`
	Product     entity.ProductSnapshot `json:"product"`

	VolumeKg     decimal.Decimal  `json:"volume_kg"`
	NumShipments int              `json:"num_shipments"`
	ExchangeRate decimal.Decimal  `json:"exchange_rate"`
	TradeTerm    entity.TradeTerm `json:"trade_term"`
	StagedTerms  bool             `json:"staged_terms"`

	CostLayers []entity.CostLayer `json:"cost_layers"`
	Commission entity.Commission  `json:"commission"`

	LockMode    entity.LockMode `json:"lock_mode"`
	MarginPct   decimal.Decimal `json:"margin_pct"`
	TargetPrice decimal.Decimal `json:"target_price"`

	TotalCostPerKg decimal.Decimal `json:"total_cost_per_kg"`
	PricePerKg     decimal.Decimal `json:"price_per_kg"`
	PricePerLb     decimal.Decimal `json:"price_per_lb"`

	PaymentTerm   string     `json:"payment_term"`
	TransportType string     `json:"transport_type,omitempty"`
	ValidUntil    time.Time  `json:"valid_until"`
	Notes         string     `json:"notes"`
	CreatedBy     string     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`

	Warnings         []pricing.Warning `json:"warnings,omitempty"`
	MandatoryMissing []string          `json:"mandatory_missing,omitempty"`
}

// QuoteListItem resumen para el historial.
type QuoteListItem struct {
	ID          string             `json:"id"`
	QuoteNumber string             `json:"quote_number"`
	Type        entity.QuoteType   `json:"type"`
	Status      entity.QuoteStatus `json:"status"`
	ClientName  string             `json:"client_name"`
	ProductName string             `json:"product_name"`
	TradeTerm   entity.TradeTerm   `json:"trade_term"`
	PricePerKg  decimal.Decimal    `json:"price_per_kg"`
	VolumeKg    decimal.Decimal    `json:"volume_kg"`
	CreatedBy   string             `json:"created_by"`
	CreatedAt   time.Time          `json:"created_at"`
}

// QuoteListResponse historial paginado.
type QuoteListResponse struct {
	Items []QuoteListItem `json:"items"`
	Page  PageResponse    `json:"page"`
}

// QuoteListFilter filtros del historial (query params).
type QuoteListFilter struct {
	Type      string `query:"type"`
	Status    string `query:"status"`
	TradeTerm string `query:"trade_term"`
	Client    string `query:"client"`
	ProductID string `query:"product_id"`
	CreatedBy string `query:"created_by"`
	PageRequest
}
