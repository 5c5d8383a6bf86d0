package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/manilapatagonia/cotizador-api/internal/application/dto"
	"github.com/manilapatagonia/cotizador-api/internal/domain"
	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
	"github.com/manilapatagonia/cotizador-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo de productos. Las
// cotizaciones guardan su propio snapshot: editar acá nunca las afecta.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto del catálogo.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.DefaultYieldPct.IsNegative() || in.DefaultYieldPct.GreaterThan(hundred) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Presentation:    in.Presentation,
		Specs:           in.Specs,
		DefaultYieldPct: in.DefaultYieldPct,
		Conservation:    in.Conservation,
		ShelfLife:       in.ShelfLife,
		Certifications:  in.Certifications,
		PhotoURL:        in.PhotoURL,
		SortOrder:       in.SortOrder,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto del catálogo.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Presentation != nil {
		product.Presentation = *in.Presentation
	}
	if in.Specs != nil {
		product.Specs = *in.Specs
	}
	if in.DefaultYieldPct != nil {
		if in.DefaultYieldPct.IsNegative() || in.DefaultYieldPct.GreaterThan(hundred) {
			return nil, domain.ErrInvalidInput
		}
		product.DefaultYieldPct = *in.DefaultYieldPct
	}
	if in.Conservation != nil {
		product.Conservation = *in.Conservation
	}
	if in.ShelfLife != nil {
		product.ShelfLife = *in.ShelfLife
	}
	if in.Certifications != nil {
		product.Certifications = in.Certifications
	}
	if in.PhotoURL != nil {
		product.PhotoURL = *in.PhotoURL
	}
	if in.SortOrder != nil {
		product.SortOrder = *in.SortOrder
	}
	if in.Notes != nil {
		product.Notes = *in.Notes
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID. Las cotizaciones existentes conservan su snapshot.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Presentation:    p.Presentation,
		Specs:           p.Specs,
		DefaultYieldPct: p.DefaultYieldPct,
		Conservation:    p.Conservation,
		ShelfLife:       p.ShelfLife,
		Certifications:  p.Certifications,
		PhotoURL:        p.PhotoURL,
		SortOrder:       p.SortOrder,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
