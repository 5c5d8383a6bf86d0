package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manilapatagonia/cotizador-api/internal/domain"
	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
	"github.com/manilapatagonia/cotizador-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
// Las especificaciones (especie, corte, calibre) van en una columna JSONB.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepository construye el adaptador de persistencia para el catálogo.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Create persiste un producto del catálogo.
func (r *ProductRepo) Create(product *entity.Product) error {
	specs, err := json.Marshal(product.Specs)
	if err != nil {
		return fmt.Errorf("marshal specs: %w", err)
	}
	query := `
		INSERT INTO products (id, name, presentation, specs, default_yield_pct, conservation,
		                      shelf_life, certifications, photo_url, sort_order, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.pool.Exec(context.Background(), query,
		product.ID, product.Name, product.Presentation, specs, product.DefaultYieldPct,
		product.Conservation, product.ShelfLife, product.Certifications, product.PhotoURL,
		product.SortOrder, product.Notes, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := productSelect + ` WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza un producto del catálogo.
func (r *ProductRepo) Update(product *entity.Product) error {
	specs, err := json.Marshal(product.Specs)
	if err != nil {
		return fmt.Errorf("marshal specs: %w", err)
	}
	query := `
		UPDATE products SET name = $2, presentation = $3, specs = $4, default_yield_pct = $5,
			conservation = $6, shelf_life = $7, certifications = $8, photo_url = $9,
			sort_order = $10, notes = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		product.ID, product.Name, product.Presentation, specs, product.DefaultYieldPct,
		product.Conservation, product.ShelfLife, product.Certifications, product.PhotoURL,
		product.SortOrder, product.Notes, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista el catálogo ordenado por sort_order y nombre.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := productSelect + ` ORDER BY sort_order, name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const productSelect = `
	SELECT id, name, presentation, specs, default_yield_pct, conservation,
	       shelf_life, certifications, photo_url, sort_order, notes, created_at, updated_at
	FROM products`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p     entity.Product
		specs []byte
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Presentation, &specs, &p.DefaultYieldPct, &p.Conservation,
		&p.ShelfLife, &p.Certifications, &p.PhotoURL, &p.SortOrder, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(specs, &p.Specs); err != nil {
		return nil, fmt.Errorf("unmarshal specs: %w", err)
	}
	return &p, nil
}
