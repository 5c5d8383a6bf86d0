package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)

	// Conversión fija kg→lb del precio de referencia. No es configurable.
	lbPerKg = decimal.NewFromFloat(2.20462)
)

// ItemCostPerKgRaw normaliza los cargos fijos y variables de un ítem a costo
// por kilogramo en la moneda del propio ítem. Toda división por cero degrada
// a 0, nunca propaga un valor inválido.
func ItemCostPerKgRaw(item entity.CostItem, volumeKg decimal.Decimal, numShipments int) decimal.Decimal {
	var varPerKg decimal.Decimal
	switch item.VariableUnit {
	case entity.UnitKg:
		varPerKg = item.VariableValue
	case entity.UnitUnit, entity.UnitBox:
		if item.VariableUnitKg.IsPositive() {
			varPerKg = item.VariableValue.Div(item.VariableUnitKg)
		}
	case entity.UnitLoad:
		if volumeKg.IsPositive() {
			varPerKg = item.VariableValue.Div(volumeKg)
		}
	case entity.UnitPctCost, entity.UnitPctPrice:
		// Reservadas: una comisión porcentual sobre costo/precio sería
		// circular y no está resuelta. Aportan 0 y el checker lo avisa.
	}

	var fixedPerKg decimal.Decimal
	if volumeKg.IsPositive() {
		ships := decimal.NewFromInt(int64(numShipments))
		fixedPerKg = item.FixedPerShipment.Mul(ships).Add(item.FixedPerQuote).Div(volumeKg)
	}

	return varPerKg.Add(fixedPerKg)
}

// ToSettlement convierte un costo en la moneda del ítem a la moneda de
// liquidación de la cotización. Sin tipo de cambio (o en cero) un ítem en
// moneda extranjera aporta 0 — el checker emite la advertencia, acá nunca
// se produce un número silenciosamente incorrecto.
func ToSettlement(raw decimal.Decimal, itemCurrency, settlement entity.Currency, usdArsRate decimal.Decimal) decimal.Decimal {
	if itemCurrency == settlement {
		return raw
	}
	if !usdArsRate.IsPositive() {
		return decimal.Zero
	}
	if settlement == entity.CurrencyUSD {
		// ítem ARS liquidado en USD
		return raw.Div(usdArsRate)
	}
	// ítem USD liquidado en ARS
	return raw.Mul(usdArsRate)
}
