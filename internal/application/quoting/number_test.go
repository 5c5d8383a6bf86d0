package quoting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manilapatagonia/cotizador-api/internal/application/quoting"
	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "COT-2026-001", quoting.FormatNumber("COT", 2026, 1))
	assert.Equal(t, "LOC-2026-042", quoting.FormatNumber("LOC", 2026, 42))
	// Por encima de 999 el número crece, no se trunca.
	assert.Equal(t, "COT-2026-1234", quoting.FormatNumber("COT", 2026, 1234))
}

func TestCounterName_PorTipo(t *testing.T) {
	assert.Equal(t, "quote_next", quoting.CounterName(entity.QuoteTypeExport))
	assert.Equal(t, "quote_local_next", quoting.CounterName(entity.QuoteTypeLocal),
		"exportación y local llevan numeradores independientes")
}
