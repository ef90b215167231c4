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

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindAll(ctx context.Context, limit, offset int, userID *uuid.UUID) ([]*entity.Order, error)
	CountAll(ctx context.Context, userID *uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus, meta []byte) error
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `id, user_id, order_number, customer_name, customer_email,
	       customer_phone, shipping_address, items, subtotal, shipping, total,
	       status, payment_status, payment_meta, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if r.db == nil {
		return ErrStoreNotConfigured
	}

	query := `
		INSERT INTO orders (id, user_id, order_number, customer_name, customer_email,
		                    customer_phone, shipping_address, items, subtotal, shipping,
		                    total, status, payment_status, payment_meta, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.OrderNumber,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.ShippingAddress,
		order.Items,
		order.Subtotal,
		order.Shipping,
		order.Total,
		order.Status,
		order.PaymentStatus,
		order.PaymentMeta,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("order_number", order.OrderNumber),
		)
		return fmt.Errorf("create order %s: %w", order.OrderNumber, err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	if r.db == nil {
		return nil, nil
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var order entity.Order
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.OrderNumber,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&order.ShippingAddress,
		&order.Items,
		&order.Subtotal,
		&order.Shipping,
		&order.Total,
		&order.Status,
		&order.PaymentStatus,
		&order.PaymentMeta,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}

	return &order, nil
}

func (r *orderRepository) FindAll(ctx context.Context, limit, offset int, userID *uuid.UUID) ([]*entity.Order, error) {
	if r.db == nil {
		return nil, nil
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($3::uuid IS NULL OR user_id = $3)
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset, userID)
	if err != nil {
		r.log.Error("Failed to get orders",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find orders limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var order entity.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.OrderNumber,
			&order.CustomerName,
			&order.CustomerEmail,
			&order.CustomerPhone,
			&order.ShippingAddress,
			&order.Items,
			&order.Subtotal,
			&order.Shipping,
			&order.Total,
			&order.Status,
			&order.PaymentStatus,
			&order.PaymentMeta,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) CountAll(ctx context.Context, userID *uuid.UUID) (int64, error) {
	if r.db == nil {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM orders WHERE ($1::uuid IS NULL OR user_id = $1)`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count orders", zap.Error(err))
		return 0, fmt.Errorf("count orders: %w", err)
	}

	return count, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	if r.db == nil {
		return ErrStoreNotConfigured
	}

	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update order %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", id.String())
	}

	return nil
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus, meta []byte) error {
	if r.db == nil {
		return ErrStoreNotConfigured
	}

	query := `
		UPDATE orders
		SET payment_status = $2,
		    payment_meta = COALESCE($3, payment_meta),
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status, meta)
	if err != nil {
		r.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("payment_status", string(status)),
		)
		return fmt.Errorf("update order %s payment status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", id.String())
	}

	return nil
}
