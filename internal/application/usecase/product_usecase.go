package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
	"github.com/billartiochichi/billar-api/pkg/clock"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo cambia vía movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	clock        clock.Clock
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, clk clock.Clock) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, clock: clk}
}

// Create crea un producto con su stock inicial. La categoría, si se indica, debe existir.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Stock < 0 || in.SalePrice.IsNegative() || in.PurchasePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	cat, err := uc.category(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		Name:          name,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Stock:         in.Stock,
		CategoryID:    in.CategoryID,
		Image:         in.Image,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p, cat), nil
}

// GetByID obtiene un producto con su categoría.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	cat, err := uc.category(ctx, p.CategoryID)
	if err != nil && !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}
	return toProductResponse(p, cat), nil
}

// Update actualiza datos y precios. No permite modificar el stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = name
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.SalePrice = *in.SalePrice
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	cat, err := uc.category(ctx, p.CategoryID)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p, cat), nil
}

// List lista todos los productos con su categoría.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	cats, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, byID[p.CategoryID]))
	}
	return items, nil
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrProductNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// category resuelve la categoría; id vacío no es error.
func (uc *ProductUseCase) category(ctx context.Context, id string) (*entity.Category, error) {
	if id == "" {
		return nil, nil
	}
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCategoryNotFound
	}
	return c, nil
}

func toProductResponse(p *entity.Product, cat *entity.Category) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Stock:         p.Stock,
		Image:         p.Image,
		CategoryID:    p.CategoryID,
	}
	if cat != nil {
		out.Category = &dto.CategoryResponse{ID: cat.ID, Name: cat.Name}
	}
	return out
}
