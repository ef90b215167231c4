package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"electromart/internal/dto/request"
	"electromart/internal/usecase"
	"electromart/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type InquiryHandler struct {
	service usecase.InquiryService
	log     *zap.Logger
}

func NewInquiryHandler(service usecase.InquiryService, log *zap.Logger) *InquiryHandler {
	return &InquiryHandler{
		service: service,
		log:     log,
	}
}

// CreateInquiry handles POST /api/inquiries
func (h *InquiryHandler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.InquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.CreateInquiry(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create inquiry")
		return
	}

	utils.ResponseCreated(w, "Inquiry submitted", response)
}

// GetInquiries handles GET /api/inquiries. Customers see their own;
// admins see everything.
func (h *InquiryHandler) GetInquiries(w http.ResponseWriter, r *http.Request) {
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

	response := h.service.GetInquiries(r.Context(), &req, owner)
	utils.ResponseSuccess(w, "Inquiries retrieved", response)
}

// UpdateStatus handles PUT /api/inquiries/{id}/status (admin)
func (h *InquiryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	inquiryID := chi.URLParam(r, "id")

	var req request.InquiryStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.UpdateStatus(r.Context(), inquiryID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update inquiry status")
		return
	}

	utils.ResponseSuccess(w, "Inquiry status updated", response)
}

func (h *InquiryHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid inquiry id"):
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
