package postgres

import (
	"context"
	"fmt"

	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, nombre, precio_compra, precio_venta, cantidad, imagen, categoria_id, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*entity.Product, error) {
	var (
		p          entity.Product
		categoryID *string
	)
	err := row.Scan(&p.ID, &p.Name, &p.PurchasePrice, &p.SalePrice, &p.Stock, &p.Image, &categoryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.CategoryID = deref(categoryID)
	return &p, nil
}

// Create persiste un nuevo producto con su stock inicial.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO productos (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.PurchasePrice, p.SalePrice, p.Stock, p.Image, nullable(p.CategoryID), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza datos y precios. No toca cantidad.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	if !validID(p.ID) {
		return domain.ErrProductNotFound
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE productos SET nombre = $2, precio_compra = $3, precio_venta = $4, imagen = $5,
			categoria_id = $6, updated_at = $7
		WHERE id = $1`,
		p.ID, p.Name, p.PurchasePrice, p.SalePrice, p.Image, nullable(p.CategoryID), p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// AdjustStock suma delta en una sola sentencia; la condición evita dejar stock negativo.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	if !validID(id) {
		return 0, domain.ErrProductNotFound
	}
	var stock int
	err := r.q.QueryRow(ctx, `
		UPDATE productos SET cantidad = cantidad + $2
		WHERE id = $1 AND cantidad + $2 >= 0
		RETURNING cantidad`, id, delta).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if !isNotFound(err) {
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	// sin filas: o no existe o el stock no alcanza
	p, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return 0, getErr
	}
	if p == nil {
		return 0, domain.ErrProductNotFound
	}
	return 0, domain.ErrInsufficientStock
}

// List lista productos por nombre.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM productos ORDER BY nombre`)
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

// Delete elimina un producto por ID. Las líneas de consumo conservan el nombre.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrProductNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
