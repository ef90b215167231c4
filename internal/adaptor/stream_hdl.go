package adaptor

import (
	"net/http"

	"electromart/internal/usecase"
	"electromart/pkg/realtime"
	"electromart/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamHandler pushes change-feed notifications to UI consumers over
// WebSocket. Each connection owns exactly one subscription and tears it
// down on disconnect.
type StreamHandler struct {
	products  usecase.ProductService
	orders    usecase.OrderService
	inquiries usecase.InquiryService
	log       *zap.Logger
}

func NewStreamHandler(service *usecase.Service, log *zap.Logger) *StreamHandler {
	return &StreamHandler{
		products:  service.Product,
		orders:    service.Order,
		inquiries: service.Inquiry,
		log:       log,
	}
}

// StreamProducts handles GET /api/stream/products. The catalog feed is
// public, no session required.
func (h *StreamHandler) StreamProducts(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "products", h.products.Subscribe)
}

// Stream handles GET /api/stream/{table} for session-scoped feeds.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	subscribe, ok := h.resolve(r, table)
	if !ok {
		utils.ResponseNotFound(w, "Unknown stream")
		return
	}

	h.serve(w, r, table, subscribe)
}

func (h *StreamHandler) serve(w http.ResponseWriter, r *http.Request, table string, subscribe func(realtime.EventFunc) (realtime.Unsubscribe, error)) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Buffered so a slow peer does not block the feed goroutine; excess
	// notifications for this consumer are dropped, the store remains the
	// source of truth.
	events := make(chan realtime.Event, 32)

	unsubscribe, err := subscribe(func(event realtime.Event) {
		select {
		case events <- event:
		default:
			h.log.Warn("Dropping change feed event for slow consumer",
				zap.String("table", table),
			)
		}
	})
	if err != nil {
		h.log.Error("Failed to subscribe stream",
			zap.Error(err),
			zap.String("table", table),
		)
		return
	}
	defer unsubscribe()

	// Read pump: detect peer disconnect
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case event := <-events:
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// resolve maps the table name to a subscribe call with the right
// ownership scope: orders and inquiries are bound to the authenticated
// user unless the caller is an admin.
func (h *StreamHandler) resolve(r *http.Request, table string) (func(realtime.EventFunc) (realtime.Unsubscribe, error), bool) {
	switch table {
	case "orders":
		userID, ok := utils.GetUserIDFromContext(r.Context())
		if !ok {
			return nil, false
		}
		owner := ownerScope(r.Context(), userID)
		return func(fn realtime.EventFunc) (realtime.Unsubscribe, error) {
			return h.orders.Subscribe(owner, fn)
		}, true

	case "inquiries":
		userID, ok := utils.GetUserIDFromContext(r.Context())
		if !ok {
			return nil, false
		}
		owner := ownerScope(r.Context(), userID)
		return func(fn realtime.EventFunc) (realtime.Unsubscribe, error) {
			return h.inquiries.Subscribe(owner, fn)
		}, true

	default:
		return nil, false
	}
}
