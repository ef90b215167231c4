package usecase

import (
	"context"
	"fmt"
	"time"

	"electromart/internal/data/entity"
	"electromart/internal/data/repository"
	"electromart/internal/dto/request"
	"electromart/internal/dto/response"
	"electromart/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) *response.ProfileResponse
	UpsertProfile(ctx context.Context, userID uuid.UUID, req *request.ProfileRequest) (*response.ProfileResponse, error)
}

type profileService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProfileService(
	repo *repository.Repository,
	log *zap.Logger,
) ProfileService {
	return &profileService{
		repo: repo,
		log:  log.With(zap.String("service", "profile")),
	}
}

// GetProfile normalizes failures to not-found; a user without a saved
// profile is the ordinary case.
func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) *response.ProfileResponse {
	profile, err := s.repo.Profile.FindByUserID(ctx, userID)
	if err != nil || profile == nil {
		return nil
	}

	resp := response.ProfileToResponse(profile)
	return &resp
}

// UpsertProfile writes the user's single profile row. profile_completed
// is forced true on every save.
func (s *profileService) UpsertProfile(ctx context.Context, userID uuid.UUID, req *request.ProfileRequest) (*response.ProfileResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Upsert profile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	profile := &entity.UserProfile{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:           userID,
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		City:             req.City,
		Pincode:          req.Pincode,
		BusinessName:     req.BusinessName,
		GSTNumber:        req.GSTNumber,
		ProfileCompleted: true,
	}

	if err := s.repo.Profile.Upsert(ctx, profile); err != nil {
		s.log.Error("Failed to upsert profile",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("save profile: %w", err)
	}

	s.log.Info("Profile saved", zap.String("user_id", userID.String()))

	resp := response.ProfileToResponse(profile)
	return &resp, nil
}
