package repository

import (
	"context"
	"fmt"

	"electromart/internal/data/entity"
	"electromart/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindAll(ctx context.Context, limit, offset int, category *string, activeOnly bool) ([]*entity.Product, error)
	CountAll(ctx context.Context, category *string, activeOnly bool) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if r.db == nil {
		return ErrStoreNotConfigured
	}

	query := `
		INSERT INTO products (id, name, brand, category, colors, description,
		                      specifications, price, unit_type, stock_quantity,
		                      image_url, brochure_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Brand,
		product.Category,
		product.Colors,
		product.Description,
		product.Specifications,
		product.Price,
		product.UnitType,
		product.StockQuantity,
		product.ImageURL,
		product.BrochureURL,
		product.IsActive,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("name", product.Name),
		)
		return fmt.Errorf("create product %s: %w", product.Name, err)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if r.db == nil {
		return nil, nil
	}

	query := `
		SELECT id, name, brand, category, colors, description, specifications,
		       price, unit_type, stock_quantity, image_url, brochure_url,
		       is_active, created_at, updated_at, deleted_at
		FROM products
		WHERE id = $1 AND deleted_at IS NULL
	`

	var product entity.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Brand,
		&product.Category,
		&product.Colors,
		&product.Description,
		&product.Specifications,
		&product.Price,
		&product.UnitType,
		&product.StockQuantity,
		&product.ImageURL,
		&product.BrochureURL,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id.String(), err)
	}

	return &product, nil
}

func (r *productRepository) FindAll(ctx context.Context, limit, offset int, category *string, activeOnly bool) ([]*entity.Product, error) {
	if r.db == nil {
		return nil, nil
	}

	query := `
		SELECT id, name, brand, category, colors, description, specifications,
		       price, unit_type, stock_quantity, image_url, brochure_url,
		       is_active, created_at, updated_at
		FROM products
		WHERE deleted_at IS NULL
		  AND ($3::text IS NULL OR category = $3)
		  AND ($4 = false OR is_active = true)
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset, category, activeOnly)
	if err != nil {
		r.log.Error("Failed to get products",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find products limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var product entity.Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Brand,
			&product.Category,
			&product.Colors,
			&product.Description,
			&product.Specifications,
			&product.Price,
			&product.UnitType,
			&product.StockQuantity,
			&product.ImageURL,
			&product.BrochureURL,
			&product.IsActive,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) CountAll(ctx context.Context, category *string, activeOnly bool) (int64, error) {
	if r.db == nil {
		return 0, nil
	}

	query := `
		SELECT COUNT(*)
		FROM products
		WHERE deleted_at IS NULL
		  AND ($1::text IS NULL OR category = $1)
		  AND ($2 = false OR is_active = true)
	`

	var count int64
	err := r.db.QueryRow(ctx, query, category, activeOnly).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	if r.db == nil {
		return ErrStoreNotConfigured
	}

	query := `
		UPDATE products
		SET name = $2, brand = $3, category = $4, colors = $5, description = $6,
		    specifications = $7, price = $8, unit_type = $9, stock_quantity = $10,
		    image_url = $11, brochure_url = $12, is_active = $13, updated_at = $14
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Brand,
		product.Category,
		product.Colors,
		product.Description,
		product.Specifications,
		product.Price,
		product.UnitType,
		product.StockQuantity,
		product.ImageURL,
		product.BrochureURL,
		product.IsActive,
		product.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", product.ID.String()),
		)
		return fmt.Errorf("update product %s: %w", product.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found or already deleted", product.ID.String())
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return ErrStoreNotConfigured
	}

	query := `UPDATE products SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete product",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("delete product %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", id.String())
	}

	r.log.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}
