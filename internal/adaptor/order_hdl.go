package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"electromart/internal/dto/request"
	"electromart/internal/usecase"
	"electromart/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log,
	}
}

// Checkout handles POST /api/orders
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.Checkout(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "checkout")
		return
	}

	utils.ResponseCreated(w, "Order placed", response)
}

// GetOrders handles GET /api/orders. Customers see their own orders;
// admins see everything.
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 20),
	}

	owner := ownerScope(r.Context(), userID)

	response := h.service.GetOrders(r.Context(), &req, owner)
	utils.ResponseSuccess(w, "Orders retrieved", response)
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orderID := chi.URLParam(r, "id")
	owner := ownerScope(r.Context(), userID)

	response := h.service.GetOrderByID(r.Context(), orderID, owner)
	if response == nil {
		utils.ResponseNotFound(w, "Order not found")
		return
	}

	utils.ResponseSuccess(w, "Order retrieved", response)
}

// UpdateStatus handles PUT /api/orders/{id}/status (admin)
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req request.OrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.UpdateStatus(r.Context(), orderID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update order status")
		return
	}

	utils.ResponseSuccess(w, "Order status updated", response)
}

// UpdatePaymentStatus handles PUT /api/orders/{id}/payment (admin)
func (h *OrderHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req request.PaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.UpdatePaymentStatus(r.Context(), orderID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update payment status")
		return
	}

	utils.ResponseSuccess(w, "Payment status updated", response)
}

// ownerScope returns the owner restriction for the current caller: nil
// for admins (unrestricted), the caller's own id otherwise.
func ownerScope(ctx context.Context, userID uuid.UUID) *uuid.UUID {
	if role, _ := utils.GetRoleFromContext(ctx); role == "admin" {
		return nil
	}
	return &userID
}

func (h *OrderHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid order id"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, err)

	case strings.Contains(errMsg, "store not configured"):
		h.log.Warn(operation+" failed - store not configured", zap.Error(err))
		utils.ResponseUnavailable(w, "Store not configured")

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
