package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteType línea de producto de la cotización.
type QuoteType string

const (
	QuoteTypeExport QuoteType = "export" // liquida en USD
	QuoteTypeLocal  QuoteType = "local"  // liquida en ARS
)

// SettlementCurrency moneda en la que se expresan costos y precio final.
func (t QuoteType) SettlementCurrency() Currency {
	if t == QuoteTypeLocal {
		return CurrencyARS
	}
	return CurrencyUSD
}

// QuoteStatus estados del ciclo de vida. La transición a confirmed es única
// e irreversible: una cotización confirmada no admite más escrituras.
type QuoteStatus string

const (
	StatusDraft     QuoteStatus = "draft"
	StatusConfirmed QuoteStatus = "confirmed"
)

// TradeTerm término comercial elegido: Incoterm para exportación
// (EXW/FCA/FOB/CFR/CIF/DDP) o condición de entrega para mercado local.
type TradeTerm string

const (
	TermEXW TradeTerm = "EXW"
	TermFCA TradeTerm = "FCA"
	TermFOB TradeTerm = "FOB"
	TermCFR TradeTerm = "CFR"
	TermCIF TradeTerm = "CIF"
	TermDDP TradeTerm = "DDP"

	TermRetiroPlanta    TradeTerm = "retiro_planta"
	TermPuestoBHC       TradeTerm = "puesto_bhc"
	TermPuestoNQN       TradeTerm = "puesto_nqn"
	TermPuestoCABA      TradeTerm = "puesto_caba"
	TermPuestoInterior  TradeTerm = "puesto_interior"
	TermEntregaDeposito TradeTerm = "entrega_deposito"
)

// LockMode define cuál de {margen, precio objetivo} es la entrada autoritativa;
// el otro valor se deriva en cada recomputo.
type LockMode string

const (
	LockMargin LockMode = "margin"
	LockPrice  LockMode = "price"
)

// Client datos del cliente, copiados dentro de la cotización.
type Client struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Country string `json:"country,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Quote es el documento persistido. Posee una copia completa de producto,
// capas e ítems al momento de guardar: editar el catálogo o las tablas de
// referencia después nunca cambia los números de una cotización guardada.
type Quote struct {
	ID          string
	QuoteNumber string // PREFIX-YEAR-NNN; la secuencia es por tipo y nunca se reinicia
	Type        QuoteType
	Status      QuoteStatus

	Client  Client          `json:"client"`
	Product ProductSnapshot `json:"product"`

	VolumeKg     decimal.Decimal
	NumShipments int
	ExchangeRate decimal.Decimal // ARS por USD; 0 = no cargado
	TradeTerm    TradeTerm
	StagedTerms  bool // true = modelo incremental EXW⊂FOB⊂CIF⊂DDP en lugar del mapa clásico

	CostLayers []CostLayer `json:"cost_layers"`
	Commission Commission  `json:"commission"`

	LockMode    LockMode
	MarginPct   decimal.Decimal
	TargetPrice decimal.Decimal // solo significativo con LockMode=price

	TotalCostPerKg decimal.Decimal
	PricePerKg     decimal.Decimal
	PricePerLb     decimal.Decimal

	PaymentTerm   string
	TransportType string // solo mercado local
	ValidUntil    time.Time
	Notes         string

	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ConfirmedAt *time.Time // se estampa una sola vez, inmutable después
}

// IsConfirmed indica si la cotización ya no admite cambios.
func (q *Quote) IsConfirmed() bool {
	return q.Status == StatusConfirmed
}
