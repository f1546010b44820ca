package repository

import (
	"context"
	"errors"
	"fmt"

	"kickstreet/internal/data/entity"
	"kickstreet/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	Latest(ctx context.Context, n int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	DecrementStockFloor(ctx context.Context, id uuid.UUID, qty int) (int, error)
}

// ProductFilter narrows listings. Zero values mean no restriction.
type ProductFilter struct {
	Category entity.Category
	Search   string
	Limit    int
	Offset   int
}

type productRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewProductRepository(db database.Querier, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

const productColumns = `
	id, name, slug, description, price, category, brand, sizes, colors,
	stock, images, ratings, num_reviews, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.Brand,
		&p.Sizes,
		&p.Colors,
		&p.Stock,
		&p.Images,
		&p.Ratings,
		&p.NumReviews,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, slug, description, price, category, brand,
		                      sizes, colors, stock, images, ratings, num_reviews,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		product.Category,
		product.Brand,
		product.Sizes,
		product.Colors,
		product.Stock,
		product.Images,
		product.Ratings,
		product.NumReviews,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create product", zap.Error(err), zap.String("name", product.Name))
		return wrapDuplicate(err, "create product %s", product.Name)
	}

	r.log.Info("Product created", zap.String("id", product.ID.String()), zap.String("slug", product.Slug))
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find product by ID %s: %w", id.String(), err)
	}
	return product, nil
}

func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("find product by slug %s: %w", slug, err)
	}
	return product, nil
}

// FindByIDs returns the products that exist, keyed by id. Missing ids are simply absent.
func (r *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error) {
	out := make(map[uuid.UUID]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	products, err := r.queryProducts(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("find products by ids: %w", err)
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (f ProductFilter) where() (string, []any) {
	clause := ` WHERE ($1 = '' OR category = $1) AND ($2 = '' OR name ILIKE '%' || $2 || '%')`
	return clause, []any{string(f.Category), f.Search}
}

// FindAll lists newest first.
func (r *productRepository) FindAll(ctx context.Context, filter ProductFilter) ([]*entity.Product, error) {
	where, args := filter.where()
	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, max(filter.Offset, 0))
	}

	products, err := r.queryProducts(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list products",
			zap.Error(err),
			zap.String("category", string(filter.Category)),
		)
		return nil, fmt.Errorf("find all products: %w", err)
	}
	return products, nil
}

func (r *productRepository) Count(ctx context.Context, filter ProductFilter) (int64, error) {
	where, args := filter.where()

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

func (r *productRepository) Latest(ctx context.Context, n int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1`

	products, err := r.queryProducts(ctx, query, n)
	if err != nil {
		r.log.Error("Failed to get latest products", zap.Error(err), zap.Int("n", n))
		return nil, fmt.Errorf("latest %d products: %w", n, err)
	}
	return products, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, slug = $3, description = $4, price = $5, category = $6,
		    brand = $7, sizes = $8, colors = $9, stock = $10, images = $11,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		product.Category,
		product.Brand,
		product.Sizes,
		product.Colors,
		product.Stock,
		product.Images,
	)
	if err != nil {
		r.log.Error("Failed to update product", zap.Error(err), zap.String("id", product.ID.String()))
		return wrapDuplicate(err, "update product %s", product.ID.String())
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", product.ID.String())
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete product", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete product %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", id.String())
	}

	r.log.Info("Product deleted", zap.String("id", id.String()))
	return nil
}

// DecrementStock removes qty units only when at least qty are on hand. It reports false,
// without touching the row, when stock is short.
func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	query := `
		UPDATE products
		SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2
	`

	result, err := r.db.Exec(ctx, query, id, qty)
	if err != nil {
		r.log.Error("Failed to decrement stock",
			zap.Error(err),
			zap.String("product_id", id.String()),
			zap.Int("qty", qty),
		)
		return false, fmt.Errorf("decrement stock of %s: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}

// DecrementStockFloor removes up to qty units, never going below zero, and returns how
// many units could not be taken.
func (r *productRepository) DecrementStockFloor(ctx context.Context, id uuid.UUID, qty int) (int, error) {
	query := `
		WITH prev AS (SELECT stock FROM products WHERE id = $1 FOR UPDATE)
		UPDATE products p
		SET stock = GREATEST(p.stock - $2, 0), updated_at = NOW()
		FROM prev
		WHERE p.id = $1
		RETURNING GREATEST($2 - prev.stock, 0)
	`

	var shortfall int
	err := r.db.QueryRow(ctx, query, id, qty).Scan(&shortfall)
	if errors.Is(err, pgx.ErrNoRows) {
		// product was deleted after checkout started
		return qty, nil
	}
	if err != nil {
		r.log.Error("Failed to decrement stock",
			zap.Error(err),
			zap.String("product_id", id.String()),
			zap.Int("qty", qty),
		)
		return 0, fmt.Errorf("decrement stock of %s: %w", id.String(), err)
	}
	return shortfall, nil
}
