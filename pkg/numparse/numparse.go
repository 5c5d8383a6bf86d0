// Package numparse parsea números ingresados por el usuario aceptando tanto
// punto (.) como coma (,) como separador decimal. Útil para usuarios con
// configuración regional argentina/europea (Windows usa coma).
package numparse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Decimal parsea el string normalizando la coma a punto. Devuelve el valor y
// true si el parseo fue exitoso; decimal.Zero y false en caso contrario.
func Decimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// DecimalOrZero es la variante usada en la mayoría de los call sites: entrada
// inválida o vacía se trata como 0, nunca como error.
func DecimalOrZero(s string) decimal.Decimal {
	d, ok := Decimal(s)
	if !ok {
		return decimal.Zero
	}
	return d
}
