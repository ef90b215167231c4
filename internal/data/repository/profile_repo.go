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

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error)
	// Upsert inserts or replaces the single profile row of a user.
	// profile_completed is always written true.
	Upsert(ctx context.Context, profile *entity.UserProfile) error
}

type profileRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProfileRepository(db database.PgxIface, log *zap.Logger) ProfileRepository {
	return &profileRepository{
		db:  db,
		log: log.With(zap.String("repository", "profile")),
	}
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	if r.db == nil {
		return nil, nil
	}

	query := `
		SELECT id, user_id, full_name, email, phone, address, city, pincode,
		       business_name, gst_number, profile_completed, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`

	var profile entity.UserProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Email,
		&profile.Phone,
		&profile.Address,
		&profile.City,
		&profile.Pincode,
		&profile.BusinessName,
		&profile.GSTNumber,
		&profile.ProfileCompleted,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find profile",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find profile for %s: %w", userID.String(), err)
	}

	return &profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	if r.db == nil {
		return ErrStoreNotConfigured
	}

	query := `
		INSERT INTO user_profiles (id, user_id, full_name, email, phone, address,
		                           city, pincode, business_name, gst_number,
		                           profile_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true, $11, $12)
		ON CONFLICT (user_id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
		    email = EXCLUDED.email,
		    phone = EXCLUDED.phone,
		    address = EXCLUDED.address,
		    city = EXCLUDED.city,
		    pincode = EXCLUDED.pincode,
		    business_name = EXCLUDED.business_name,
		    gst_number = EXCLUDED.gst_number,
		    profile_completed = true,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.FullName,
		profile.Email,
		profile.Phone,
		profile.Address,
		profile.City,
		profile.Pincode,
		profile.BusinessName,
		profile.GSTNumber,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID.String()),
		)
		return fmt.Errorf("upsert profile for %s: %w", profile.UserID.String(), err)
	}

	return nil
}
