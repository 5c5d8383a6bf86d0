package numparse_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manilapatagonia/cotizador-api/pkg/numparse"
)

func TestDecimal_AceptaPuntoYComa(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"4.5", "4.5"},
		{"4,5", "4.5"},
		{"1234,56", "1234.56"},
		{"  80 ", "80"},
		{"0", "0"},
	}
	for _, c := range cases {
		got, ok := numparse.Decimal(c.in)
		require.True(t, ok, "%q debe parsear", c.in)
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)),
			"%q debe parsear como %s, obtuvo %s", c.in, c.want, got)
	}
}

func TestDecimal_EntradaInvalida(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "1.2.3", "12a"} {
		_, ok := numparse.Decimal(in)
		assert.False(t, ok, "%q no debe parsear", in)
	}
}

func TestDecimalOrZero_InvalidoEsCero(t *testing.T) {
	assert.True(t, numparse.DecimalOrZero("no-numérico").IsZero(),
		"entrada inválida se trata como 0 en los call sites")
	assert.True(t, numparse.DecimalOrZero("12,75").Equal(decimal.RequireFromString("12.75")))
}
