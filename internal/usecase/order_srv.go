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

type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID, req *request.CheckoutRequest) (*response.OrderResponse, error)
	GetOrders(ctx context.Context, req *request.PaginatedRequest, userID *uuid.UUID) *response.PaginatedResponse[response.OrderResponse]
	GetOrderByID(ctx context.Context, orderID string, userID *uuid.UUID) *response.OrderResponse
	UpdateStatus(ctx context.Context, orderID string, req *request.OrderStatusRequest) (*response.OrderResponse, error)
	UpdatePaymentStatus(ctx context.Context, orderID string, req *request.PaymentStatusRequest) (*response.OrderResponse, error)
	Subscribe(userID *uuid.UUID, fn realtime.EventFunc) (realtime.Unsubscribe, error)
}

type orderService struct {
	repo *repository.Repository
	feed *realtime.Manager
	log  *zap.Logger
}

func NewOrderService(
	repo *repository.Repository,
	feed *realtime.Manager,
	log *zap.Logger,
) OrderService {
	return &orderService{
		repo: repo,
		feed: feed,
		log:  log.With(zap.String("service", "order")),
	}
}

// Checkout creates the order exactly once. Orders are never deleted by
// this layer afterwards; only status fields move.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, req *request.CheckoutRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	order := &entity.Order{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:          userID,
		OrderNumber:     utils.GenerateOrderNumber(),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		Items:           req.Items,
		Subtotal:        req.Subtotal,
		Shipping:        req.Shipping,
		Total:           req.Subtotal + req.Shipping,
		Status:          entity.OrderPending,
		PaymentStatus:   entity.PaymentPending,
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		s.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("order_number", order.OrderNumber),
		)
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total", order.Total),
	)

	resp := response.OrderToResponse(order)
	return &resp, nil
}

// GetOrders lists orders newest first, optionally restricted to one
// owner. Store errors degrade to an empty page.
func (s *orderService) GetOrders(ctx context.Context, req *request.PaginatedRequest, userID *uuid.UUID) *response.PaginatedResponse[response.OrderResponse] {
	limit := req.Limit()
	offset := req.Offset()

	orders, err := s.repo.Order.FindAll(ctx, limit, offset, userID)
	if err != nil {
		s.log.Error("Failed to get orders",
			zap.Error(err),
			zap.Int("page", req.Page),
		)
		return response.NewPaginatedResponse([]response.OrderResponse{}, req.Page, req.PerPage, 0)
	}

	total, err := s.repo.Order.CountAll(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count orders", zap.Error(err))
		total = int64(len(orders))
	}

	orderResponses := make([]response.OrderResponse, len(orders))
	for i, order := range orders {
		orderResponses[i] = response.OrderToResponse(order)
	}

	return response.NewPaginatedResponse(orderResponses, req.Page, req.PerPage, total)
}

// GetOrderByID normalizes failures to not-found. When userID is set the
// order must belong to that user; anyone else's order reads as missing.
func (s *orderService) GetOrderByID(ctx context.Context, orderID string, userID *uuid.UUID) *response.OrderResponse {
	id, err := uuid.Parse(orderID)
	if err != nil {
		s.log.Warn("Invalid order ID format",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return nil
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil || order == nil {
		return nil
	}

	if userID != nil && order.UserID != *userID {
		s.log.Warn("Order ownership mismatch",
			zap.String("order_id", orderID),
			zap.String("user_id", userID.String()),
		)
		return nil
	}

	resp := response.OrderToResponse(order)
	return &resp
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID string, req *request.OrderStatusRequest) (*response.OrderResponse, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order id: %w", err)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order not found")
	}

	if err := s.repo.Order.UpdateStatus(ctx, id, entity.OrderStatus(req.Status)); err != nil {
		s.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", orderID),
			zap.String("status", req.Status),
		)
		return nil, fmt.Errorf("update order status: %w", err)
	}

	s.log.Info("Order status updated",
		zap.String("order_id", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", req.Status),
	)

	order.Status = entity.OrderStatus(req.Status)
	order.UpdatedAt = time.Now()

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) UpdatePaymentStatus(ctx context.Context, orderID string, req *request.PaymentStatusRequest) (*response.OrderResponse, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order id: %w", err)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order not found")
	}

	if err := s.repo.Order.UpdatePaymentStatus(ctx, id, entity.PaymentStatus(req.PaymentStatus), req.PaymentMeta); err != nil {
		s.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("order_id", orderID),
			zap.String("payment_status", req.PaymentStatus),
		)
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	s.log.Info("Payment status updated",
		zap.String("order_id", orderID),
		zap.String("payment_status", req.PaymentStatus),
	)

	order.PaymentStatus = entity.PaymentStatus(req.PaymentStatus)
	if req.PaymentMeta != nil {
		order.PaymentMeta = req.PaymentMeta
	}
	order.UpdatedAt = time.Now()

	resp := response.OrderToResponse(order)
	return &resp, nil
}

// Subscribe opens a change feed over orders, restricted to one owner
// when userID is set.
func (s *orderService) Subscribe(userID *uuid.UUID, fn realtime.EventFunc) (realtime.Unsubscribe, error) {
	var filter *realtime.Filter
	if userID != nil {
		filter = &realtime.Filter{Column: "user_id", Value: userID.String()}
	}
	return s.feed.Subscribe("orders", filter, fn)
}
