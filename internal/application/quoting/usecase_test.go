package quoting_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manilapatagonia/cotizador-api/internal/application/dto"
	"github.com/manilapatagonia/cotizador-api/internal/application/quoting"
	"github.com/manilapatagonia/cotizador-api/internal/domain"
	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
	"github.com/manilapatagonia/cotizador-api/internal/domain/repository"
	"github.com/manilapatagonia/cotizador-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeQuoteRepo struct {
	quotes map[string]*entity.Quote
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{quotes: make(map[string]*entity.Quote)}
}

func (r *fakeQuoteRepo) Create(q *entity.Quote) error {
	cp := *q
	r.quotes[q.ID] = &cp
	return nil
}

func (r *fakeQuoteRepo) GetByID(id string) (*entity.Quote, error) {
	q, ok := r.quotes[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuoteRepo) Update(q *entity.Quote) error {
	cp := *q
	r.quotes[q.ID] = &cp
	return nil
}

func (r *fakeQuoteRepo) List(f repository.QuoteFilter) ([]*entity.Quote, int, error) {
	var out []*entity.Quote
	for _, q := range r.quotes {
		if f.Status != "" && q.Status != f.Status {
			continue
		}
		if f.Type != "" && q.Type != f.Type {
			continue
		}
		out = append(out, q)
	}
	return out, len(out), nil
}

func (r *fakeQuoteRepo) Delete(id string) error {
	delete(r.quotes, id)
	return nil
}

type fakeCounterRepo struct {
	counts map[string]int64
}

func (r *fakeCounterRepo) Next(name string) (int64, error) {
	if r.counts == nil {
		r.counts = make(map[string]int64)
	}
	r.counts[name]++
	return r.counts[name], nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error  { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Update(p *entity.Product) error  { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Delete(id string) error          { delete(r.products, id); return nil }
func (r *fakeProductRepo) List(_, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

// fakeTxRunner ejecuta el callback directo contra los fakes (sin tx real).
type fakeTxRunner struct {
	quotes   *fakeQuoteRepo
	counters *fakeCounterRepo
}

func (r *fakeTxRunner) RunQuote(_ context.Context, fn func(repository.QuoteRepository, repository.CounterRepository) error) error {
	return fn(r.quotes, r.counters)
}

func newUseCase(t *testing.T) (*quoting.QuoteUseCase, *fakeQuoteRepo, *fakeProductRepo) {
	t.Helper()
	quotes := newFakeQuoteRepo()
	counters := &fakeCounterRepo{}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"trucha-hg": {
			ID:              "trucha-hg",
			Name:            "Trucha Arcoíris HG",
			Presentation:    "HG congelado IQF",
			DefaultYieldPct: decimal.NewFromInt(55),
		},
	}}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := quoting.NewQuoteUseCase(
		&fakeTxRunner{quotes: quotes, counters: counters},
		quotes,
		products,
		quoting.Config{ExportPrefix: "COT", LocalPrefix: "LOC", DefaultValidDays: 15},
		log,
	)
	return uc, quotes, products
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// saveReq arma un SaveQuoteRequest mínimo confirmable a partir del borrador.
func saveReq(q *dto.QuoteResponse) dto.SaveQuoteRequest {
	layers := q.CostLayers
	for i := range layers {
		for j := range layers[i].Items {
			layers[i].Items[j].VariableValue = dec("1")
		}
	}
	return dto.SaveQuoteRequest{
		Client:       entity.Client{Name: "Pesquera Austral"},
		ProductID:    "trucha-hg",
		VolumeKg:     dec("1000"),
		NumShipments: 1,
		TradeTerm:    entity.TermFOB,
		CostLayers:   layers,
		LockMode:     entity.LockMargin,
		MarginPct:    dec("20"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear borrador
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateDraft_AsignaNumeroSecuencial(t *testing.T) {
	uc, _, _ := newUseCase(t)
	ctx := context.Background()
	year := time.Now().Year()

	q1, err := uc.CreateDraft(ctx, "ventas@manila", dto.CreateQuoteRequest{Type: entity.QuoteTypeExport})
	require.NoError(t, err)
	q2, err := uc.CreateDraft(ctx, "ventas@manila", dto.CreateQuoteRequest{Type: entity.QuoteTypeExport})
	require.NoError(t, err)
	local, err := uc.CreateDraft(ctx, "ventas@manila", dto.CreateQuoteRequest{Type: entity.QuoteTypeLocal})
	require.NoError(t, err)

	assert.Equal(t, quoting.FormatNumber("COT", year, 1), q1.QuoteNumber)
	assert.Equal(t, quoting.FormatNumber("COT", year, 2), q2.QuoteNumber)
	assert.Equal(t, quoting.FormatNumber("LOC", year, 1), local.QuoteNumber,
		"el numerador local es independiente del de exportación")
	assert.Equal(t, entity.StatusDraft, q1.Status)
}

func TestCreateDraft_SiembraObligatorios(t *testing.T) {
	uc, _, _ := newUseCase(t)
	q, err := uc.CreateDraft(context.Background(), "ventas@manila", dto.CreateQuoteRequest{Type: entity.QuoteTypeExport})
	require.NoError(t, err)

	var ids []string
	for _, layer := range q.CostLayers {
		for _, item := range layer.Items {
			if item.Mandatory {
				ids = append(ids, item.MandatoryID)
			}
		}
	}
	assert.Len(t, ids, len(entity.MandatoryItems()), "un obligatorio por concepto")
	assert.NotEmpty(t, q.MandatoryMissing, "recién creados, los obligatorios están sin valor")
}

func TestCreateDraft_ConProductoTomaSnapshot(t *testing.T) {
	uc, _, products := newUseCase(t)
	q, err := uc.CreateDraft(context.Background(), "ventas@manila",
		dto.CreateQuoteRequest{Type: entity.QuoteTypeExport, ProductID: "trucha-hg"})
	require.NoError(t, err)
	assert.Equal(t, "Trucha Arcoíris HG", q.Product.Name)

	// Editar el catálogo después no toca el snapshot.
	products.products["trucha-hg"].Name = "Otro nombre"
	loaded, err := uc.GetByID(q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trucha Arcoíris HG", loaded.Product.Name,
		"la cotización posee su copia del producto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Guardar y confirmar
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveDraft_SiempreFuncionaIncompleto(t *testing.T) {
	uc, _, _ := newUseCase(t)
	ctx := context.Background()
	q, err := uc.CreateDraft(ctx, "ventas@manila", dto.CreateQuoteRequest{Type: entity.QuoteTypeExport})
	require.NoError(t, err)

	// Sin cliente, sin término, sin volumen: guardar igual funciona.
	saved, err := uc.SaveDraft(q.ID, dto.SaveQuoteRequest{})
	require.NoError(t, err, "guardar borrador nunca se bloquea por validación")
	assert.Equal(t, entity.StatusDraft, saved.Status)
}

func TestConfirm_BloqueaIncompleta(t *testing.T) {
	uc, _, _ := newUseCase(t)
	ctx := context.Background()
	q, err := uc.CreateDraft(ctx, "ventas@manila", dto.CreateQuoteRequest{Type: entity.QuoteTypeExport})
	require.NoError(t, err)

	_, err = uc.Confirm(q.ID)
	assert.ErrorIs(t, err, domain.ErrIncompleteQuote, "sin cliente no se confirma")
}

func TestConfirm_ExigeTipoDeCambioConItemsExtranjeros(t *testing.T) {
	uc, _, _ := newUseCase(t)
	ctx := context.Background()
	q, err := uc.CreateDraft(ctx, "ventas@manila", dto.CreateQuoteRequest{Type: entity.QuoteTypeExport})
	require.NoError(t, err)

	req := saveReq(q)
	// Un ítem en ARS dentro de una cotización que liquida en USD.
	req.CostLayers[0].Items[0].Currency = entity.CurrencyARS
	_, err = uc.SaveDraft(q.ID, req)
	require.NoError(t, err)

	_, err = uc.Confirm(q.ID)
	assert.ErrorIs(t, err, domain.ErrMissingRate)

	req.ExchangeRate = dec("1000")
	_, err = uc.SaveDraft(q.ID, req)
	require.NoError(t, err)
	_, err = uc.Confirm(q.ID)
	assert.NoError(t, err, "con tipo de cambio cargado la confirmación procede")
}

func TestConfirm_EsIrreversible(t *testing.T) {
	uc, _, _ := newUseCase(t)
	ctx := context.Background()
	q, err := uc.CreateDraft(ctx, "ventas@manila", dto.CreateQuoteRequest{Type: entity.QuoteTypeExport})
	require.NoError(t, err)

	_, err = uc.SaveDraft(q.ID, saveReq(q))
	require.NoError(t, err)

	confirmed, err := uc.Confirm(q.ID)
	require.NoError(t, err)
	require.NotNil(t, confirmed.ConfirmedAt, "confirmar estampa confirmed_at")
	assert.Equal(t, entity.StatusConfirmed, confirmed.Status)

	// Toda escritura posterior se rechaza en el caso de uso, no en la UI.
	_, err = uc.SaveDraft(q.ID, saveReq(q))
	assert.ErrorIs(t, err, domain.ErrQuoteConfirmed)

	_, err = uc.Confirm(q.ID)
	assert.ErrorIs(t, err, domain.ErrQuoteConfirmed, "no se confirma dos veces")

	err = uc.Delete(q.ID)
	assert.ErrorIs(t, err, domain.ErrQuoteConfirmed, "las confirmadas no se borran")
}

func TestSaveDraft_RecomputaPrecio(t *testing.T) {
	uc, _, _ := newUseCase(t)
	ctx := context.Background()
	q, err := uc.CreateDraft(ctx, "ventas@manila", dto.CreateQuoteRequest{Type: entity.QuoteTypeExport})
	require.NoError(t, err)

	req := saveReq(q)
	// Pescado a 4 USD/kg con proceso al 50%, margen 20%, comisión 5% s/costo.
	for i := range req.CostLayers {
		for j := range req.CostLayers[i].Items {
			item := &req.CostLayers[i].Items[j]
			item.VariableValue = decimal.Zero
			switch item.MandatoryID {
			case "pescado":
				item.VariableValue = dec("4")
			case "proceso":
				item.YieldPct = dec("50")
				item.VariableValue = dec("0.01")
			default:
				item.VariableValue = dec("0.01")
			}
		}
	}
	req.Commission = entity.Commission{Pct: dec("5"), Base: entity.BaseCost}

	saved, err := uc.SaveDraft(q.ID, req)
	require.NoError(t, err)
	assert.True(t, saved.PricePerKg.IsPositive(), "guardar deja el precio recalculado")
	assert.True(t, saved.TotalCostPerKg.GreaterThan(dec("8")),
		"la materia prima ajustada por rendimiento domina el costo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Copiar y borrar
// ──────────────────────────────────────────────────────────────────────────────

func TestCopy_GeneraBorradorConNumeroNuevo(t *testing.T) {
	uc, _, _ := newUseCase(t)
	ctx := context.Background()
	q, err := uc.CreateDraft(ctx, "ventas@manila", dto.CreateQuoteRequest{Type: entity.QuoteTypeExport})
	require.NoError(t, err)
	_, err = uc.SaveDraft(q.ID, saveReq(q))
	require.NoError(t, err)
	confirmed, err := uc.Confirm(q.ID)
	require.NoError(t, err)

	dup, err := uc.Copy(ctx, confirmed.ID, "otro@manila")
	require.NoError(t, err)
	assert.NotEqual(t, confirmed.QuoteNumber, dup.QuoteNumber, "la copia lleva número propio")
	assert.Equal(t, entity.StatusDraft, dup.Status, "la copia siempre nace borrador")
	assert.Nil(t, dup.ConfirmedAt)
	assert.Equal(t, confirmed.Client.Name, dup.Client.Name, "la copia conserva los datos")

	// La copia es profunda: editarla no toca el original.
	req := saveReq(dup)
	req.Client.Name = "Cliente nuevo"
	_, err = uc.SaveDraft(dup.ID, req)
	require.NoError(t, err)
	orig, err := uc.GetByID(confirmed.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pesquera Austral", orig.Client.Name)
}

func TestDelete_SoloBorradores(t *testing.T) {
	uc, quotes, _ := newUseCase(t)
	ctx := context.Background()
	q, err := uc.CreateDraft(ctx, "ventas@manila", dto.CreateQuoteRequest{Type: entity.QuoteTypeExport})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(q.ID))
	_, ok := quotes.quotes[q.ID]
	assert.False(t, ok, "el borrador se elimina")

	err = uc.Delete("inexistente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
