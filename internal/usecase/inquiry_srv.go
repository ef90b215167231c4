package usecase

import (
	"context"
	"fmt"
	"time"

	"electromart/internal/data/entity"
	"electromart/internal/data/repository"
	"electromart/internal/dto/request"
	"electromart/internal/dto/response"
	"electromart/pkg/realtime"
	"electromart/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InquiryService interface {
	CreateInquiry(ctx context.Context, userID uuid.UUID, req *request.InquiryRequest) (*response.InquiryResponse, error)
	GetInquiries(ctx context.Context, req *request.PaginatedRequest, userID *uuid.UUID) *response.PaginatedResponse[response.InquiryResponse]
	UpdateStatus(ctx context.Context, inquiryID string, req *request.InquiryStatusRequest) (*response.InquiryResponse, error)
	Subscribe(userID *uuid.UUID, fn realtime.EventFunc) (realtime.Unsubscribe, error)
}

type inquiryService struct {
	repo *repository.Repository
	feed *realtime.Manager
	log  *zap.Logger
}

func NewInquiryService(
	repo *repository.Repository,
	feed *realtime.Manager,
	log *zap.Logger,
) InquiryService {
	return &inquiryService{
		repo: repo,
		feed: feed,
		log:  log.With(zap.String("service", "inquiry")),
	}
}

// CreateInquiry always forces the status to pending regardless of input.
func (s *inquiryService) CreateInquiry(ctx context.Context, userID uuid.UUID, req *request.InquiryRequest) (*response.InquiryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create inquiry validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	inquiry := &entity.Inquiry{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:       userID,
		CustomerType: req.CustomerType,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Requirement:  req.Requirement,
		Quantity:     req.Quantity,
		Status:       entity.InquiryPending,
	}

	if err := s.repo.Inquiry.Create(ctx, inquiry); err != nil {
		s.log.Error("Failed to create inquiry",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("create inquiry: %w", err)
	}

	s.log.Info("Inquiry created",
		zap.String("inquiry_id", inquiry.ID.String()),
		zap.String("customer_type", inquiry.CustomerType),
	)

	resp := response.InquiryToResponse(inquiry)
	return &resp, nil
}

// GetInquiries lists newest first; store errors degrade to an empty page.
func (s *inquiryService) GetInquiries(ctx context.Context, req *request.PaginatedRequest, userID *uuid.UUID) *response.PaginatedResponse[response.InquiryResponse] {
	limit := req.Limit()
	offset := req.Offset()

	inquiries, err := s.repo.Inquiry.FindAll(ctx, limit, offset, userID)
	if err != nil {
		s.log.Error("Failed to get inquiries",
			zap.Error(err),
			zap.Int("page", req.Page),
		)
		return response.NewPaginatedResponse([]response.InquiryResponse{}, req.Page, req.PerPage, 0)
	}

	total, err := s.repo.Inquiry.CountAll(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count inquiries", zap.Error(err))
		total = int64(len(inquiries))
	}

	inquiryResponses := make([]response.InquiryResponse, len(inquiries))
	for i, inquiry := range inquiries {
		inquiryResponses[i] = response.InquiryToResponse(inquiry)
	}

	return response.NewPaginatedResponse(inquiryResponses, req.Page, req.PerPage, total)
}

func (s *inquiryService) UpdateStatus(ctx context.Context, inquiryID string, req *request.InquiryStatusRequest) (*response.InquiryResponse, error) {
	id, err := uuid.Parse(inquiryID)
	if err != nil {
		return nil, fmt.Errorf("invalid inquiry id: %w", err)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	inquiry, err := s.repo.Inquiry.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find inquiry: %w", err)
	}
	if inquiry == nil {
		return nil, fmt.Errorf("inquiry not found")
	}

	if err := s.repo.Inquiry.UpdateStatus(ctx, id, entity.InquiryStatus(req.Status)); err != nil {
		s.log.Error("Failed to update inquiry status",
			zap.Error(err),
			zap.String("inquiry_id", inquiryID),
			zap.String("status", req.Status),
		)
		return nil, fmt.Errorf("update inquiry status: %w", err)
	}

	s.log.Info("Inquiry status updated",
		zap.String("inquiry_id", inquiryID),
		zap.String("from", string(inquiry.Status)),
		zap.String("to", req.Status),
	)

	inquiry.Status = entity.InquiryStatus(req.Status)
	inquiry.UpdatedAt = time.Now()

	resp := response.InquiryToResponse(inquiry)
	return &resp, nil
}

// Subscribe opens a change feed over inquiries, restricted to one owner
// when userID is set.
func (s *inquiryService) Subscribe(userID *uuid.UUID, fn realtime.EventFunc) (realtime.Unsubscribe, error) {
	var filter *realtime.Filter
	if userID != nil {
		filter = &realtime.Filter{Column: "user_id", Value: userID.String()}
	}
	return s.feed.Subscribe("inquiries", filter, fn)
}
