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

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *entity.Inquiry) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Inquiry, error)
	FindAll(ctx context.Context, limit, offset int, userID *uuid.UUID) ([]*entity.Inquiry, error)
	CountAll(ctx context.Context, userID *uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.InquiryStatus) error
}

type inquiryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewInquiryRepository(db database.PgxIface, log *zap.Logger) InquiryRepository {
	return &inquiryRepository{
		db:  db,
		log: log.With(zap.String("repository", "inquiry")),
	}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *entity.Inquiry) error {
	if r.db == nil {
		return ErrStoreNotConfigured
	}

	query := `
		INSERT INTO inquiries (id, user_id, customer_type, name, phone, email,
		                       requirement, quantity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		inquiry.ID,
		inquiry.UserID,
		inquiry.CustomerType,
		inquiry.Name,
		inquiry.Phone,
		inquiry.Email,
		inquiry.Requirement,
		inquiry.Quantity,
		inquiry.Status,
		inquiry.CreatedAt,
		inquiry.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create inquiry",
			zap.Error(err),
			zap.String("inquiry_id", inquiry.ID.String()),
		)
		return fmt.Errorf("create inquiry %s: %w", inquiry.ID.String(), err)
	}

	return nil
}

func (r *inquiryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Inquiry, error) {
	if r.db == nil {
		return nil, nil
	}

	query := `
		SELECT id, user_id, customer_type, name, phone, email, requirement,
		       quantity, status, created_at, updated_at
		FROM inquiries
		WHERE id = $1
	`

	var inquiry entity.Inquiry
	err := r.db.QueryRow(ctx, query, id).Scan(
		&inquiry.ID,
		&inquiry.UserID,
		&inquiry.CustomerType,
		&inquiry.Name,
		&inquiry.Phone,
		&inquiry.Email,
		&inquiry.Requirement,
		&inquiry.Quantity,
		&inquiry.Status,
		&inquiry.CreatedAt,
		&inquiry.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find inquiry by ID",
			zap.Error(err),
			zap.String("inquiry_id", id.String()),
		)
		return nil, fmt.Errorf("find inquiry by ID %s: %w", id.String(), err)
	}

	return &inquiry, nil
}

func (r *inquiryRepository) FindAll(ctx context.Context, limit, offset int, userID *uuid.UUID) ([]*entity.Inquiry, error) {
	if r.db == nil {
		return nil, nil
	}

	query := `
		SELECT id, user_id, customer_type, name, phone, email, requirement,
		       quantity, status, created_at, updated_at
		FROM inquiries
		WHERE ($3::uuid IS NULL OR user_id = $3)
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset, userID)
	if err != nil {
		r.log.Error("Failed to get inquiries",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find inquiries limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var inquiries []*entity.Inquiry
	for rows.Next() {
		var inquiry entity.Inquiry
		err := rows.Scan(
			&inquiry.ID,
			&inquiry.UserID,
			&inquiry.CustomerType,
			&inquiry.Name,
			&inquiry.Phone,
			&inquiry.Email,
			&inquiry.Requirement,
			&inquiry.Quantity,
			&inquiry.Status,
			&inquiry.CreatedAt,
			&inquiry.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan inquiry row", zap.Error(err))
			return nil, fmt.Errorf("scan inquiry row: %w", err)
		}
		inquiries = append(inquiries, &inquiry)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate inquiry rows: %w", err)
	}

	return inquiries, nil
}

func (r *inquiryRepository) CountAll(ctx context.Context, userID *uuid.UUID) (int64, error) {
	if r.db == nil {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM inquiries WHERE ($1::uuid IS NULL OR user_id = $1)`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count inquiries", zap.Error(err))
		return 0, fmt.Errorf("count inquiries: %w", err)
	}

	return count, nil
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.InquiryStatus) error {
	if r.db == nil {
		return ErrStoreNotConfigured
	}

	query := `
		UPDATE inquiries
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update inquiry status",
			zap.Error(err),
			zap.String("inquiry_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update inquiry %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("inquiry %s not found", id.String())
	}

	return nil
}
