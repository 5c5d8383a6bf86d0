package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/manilapatagonia/cotizador-api/internal/domain"
	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
	"github.com/manilapatagonia/cotizador-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo persistencia de cotizaciones sobre PostgreSQL (usable con pool o tx).
// Cliente, producto, capas y comisión van como snapshots JSONB: el documento
// guardado es inmune a ediciones posteriores del catálogo o las tablas.
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador de persistencia para cotizaciones. Pasar pool o tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteColumns = `
	id, quote_number, type, status, client, product,
	volume_kg, num_shipments, exchange_rate, trade_term, staged_terms,
	cost_layers, commission, lock_mode, margin_pct, target_price,
	total_cost_per_kg, price_per_kg, price_per_lb,
	payment_term, transport_type, valid_until, notes,
	created_by, created_at, updated_at, confirmed_at`

// Create persiste una cotización nueva.
func (r *QuoteRepo) Create(quote *entity.Quote) error {
	client, product, layers, commission, err := marshalSnapshots(quote)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`
	_, err = r.q.Exec(context.Background(), query,
		quote.ID, quote.QuoteNumber, quote.Type, quote.Status, client, product,
		quote.VolumeKg, quote.NumShipments, quote.ExchangeRate, quote.TradeTerm, quote.StagedTerms,
		layers, commission, quote.LockMode, quote.MarginPct, quote.TargetPrice,
		quote.TotalCostPerKg, quote.PricePerKg, quote.PricePerLb,
		quote.PaymentTerm, nullIfEmpty(quote.TransportType), quote.ValidUntil, quote.Notes,
		quote.CreatedBy, quote.CreatedAt, quote.UpdatedAt, quote.ConfirmedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización por ID.
func (r *QuoteRepo) GetByID(id string) (*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	quote, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return quote, nil
}

// Update reescribe el documento completo de la cotización.
func (r *QuoteRepo) Update(quote *entity.Quote) error {
	client, product, layers, commission, err := marshalSnapshots(quote)
	if err != nil {
		return err
	}
	query := `
		UPDATE quotes SET
			status = $2, client = $3, product = $4,
			volume_kg = $5, num_shipments = $6, exchange_rate = $7,
			trade_term = $8, staged_terms = $9,
			cost_layers = $10, commission = $11, lock_mode = $12,
			margin_pct = $13, target_price = $14,
			total_cost_per_kg = $15, price_per_kg = $16, price_per_lb = $17,
			payment_term = $18, transport_type = $19, valid_until = $20, notes = $21,
			updated_at = $22, confirmed_at = $23
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		quote.ID, quote.Status, client, product,
		quote.VolumeKg, quote.NumShipments, quote.ExchangeRate,
		quote.TradeTerm, quote.StagedTerms,
		layers, commission, quote.LockMode,
		quote.MarginPct, quote.TargetPrice,
		quote.TotalCostPerKg, quote.PricePerKg, quote.PricePerLb,
		quote.PaymentTerm, nullIfEmpty(quote.TransportType), quote.ValidUntil, quote.Notes,
		quote.UpdatedAt, quote.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista cotizaciones con filtros opcionales, las más nuevas primero.
func (r *QuoteRepo) List(f repository.QuoteFilter) ([]*entity.Quote, int, error) {
	var conds []string
	var args []any
	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if f.Type != "" {
		add("type = ?", f.Type)
	}
	if f.Status != "" {
		add("status = ?", f.Status)
	}
	if f.TradeTerm != "" {
		add("trade_term = ?", f.TradeTerm)
	}
	if f.CreatedBy != "" {
		add("created_by = ?", f.CreatedBy)
	}
	if f.ProductID != "" {
		add("product->>'product_id' = ?", f.ProductID)
	}
	if f.Client != "" {
		// El mismo placeholder sirve para nombre y empresa.
		add("(client->>'name' ILIKE '%' || ? || '%' OR client->>'company' ILIKE '%' || ? || '%')", f.Client)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	ctx := context.Background()

	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM quotes"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quotes: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, f.Offset)
	query := `SELECT ` + quoteColumns + ` FROM quotes` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan quote: %w", err)
		}
		out = append(out, quote)
	}
	return out, total, rows.Err()
}

// Delete elimina una cotización por ID. La regla "solo borradores" vive en el
// caso de uso; acá se borra lo que se pida.
func (r *QuoteRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func marshalSnapshots(q *entity.Quote) (client, product, layers, commission []byte, err error) {
	if client, err = json.Marshal(q.Client); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal client: %w", err)
	}
	if product, err = json.Marshal(q.Product); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal product: %w", err)
	}
	if layers, err = json.Marshal(q.CostLayers); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal cost_layers: %w", err)
	}
	if commission, err = json.Marshal(q.Commission); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal commission: %w", err)
	}
	return client, product, layers, commission, nil
}

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var (
		q                             entity.Quote
		client, product, layers, comm []byte
		transportType                 *string
	)
	err := row.Scan(
		&q.ID, &q.QuoteNumber, &q.Type, &q.Status, &client, &product,
		&q.VolumeKg, &q.NumShipments, &q.ExchangeRate, &q.TradeTerm, &q.StagedTerms,
		&layers, &comm, &q.LockMode, &q.MarginPct, &q.TargetPrice,
		&q.TotalCostPerKg, &q.PricePerKg, &q.PricePerLb,
		&q.PaymentTerm, &transportType, &q.ValidUntil, &q.Notes,
		&q.CreatedBy, &q.CreatedAt, &q.UpdatedAt, &q.ConfirmedAt,
	)
	if err != nil {
		return nil, err
	}
	if transportType != nil {
		q.TransportType = *transportType
	}
	if err := json.Unmarshal(client, &q.Client); err != nil {
		return nil, fmt.Errorf("unmarshal client: %w", err)
	}
	if err := json.Unmarshal(product, &q.Product); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}
	if err := json.Unmarshal(layers, &q.CostLayers); err != nil {
		return nil, fmt.Errorf("unmarshal cost_layers: %w", err)
	}
	if err := json.Unmarshal(comm, &q.Commission); err != nil {
		return nil, fmt.Errorf("unmarshal commission: %w", err)
	}
	return &q, nil
}
