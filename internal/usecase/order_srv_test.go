package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"electromart/internal/data/entity"
	"electromart/internal/data/repository"
	"electromart/internal/dto/request"
	"electromart/pkg/realtime"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubOrderRepo struct {
	orders map[uuid.UUID]*entity.Order

	createErr  error
	findAllErr error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *stubOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.orders[order.ID] = order
	return nil
}

func (r *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *stubOrderRepo) FindAll(ctx context.Context, limit, offset int, userID *uuid.UUID) ([]*entity.Order, error) {
	if r.findAllErr != nil {
		return nil, r.findAllErr
	}
	var out []*entity.Order
	for _, order := range r.orders {
		if userID != nil && order.UserID != *userID {
			continue
		}
		out = append(out, order)
	}
	return out, nil
}

func (r *stubOrderRepo) CountAll(ctx context.Context, userID *uuid.UUID) (int64, error) {
	orders, err := r.FindAll(ctx, 0, 0, userID)
	return int64(len(orders)), err
}

func (r *stubOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return errors.New("no rows affected")
	}
	order.Status = status
	return nil
}

func (r *stubOrderRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus, meta []byte) error {
	order, ok := r.orders[id]
	if !ok {
		return errors.New("no rows affected")
	}
	order.PaymentStatus = status
	if meta != nil {
		order.PaymentMeta = meta
	}
	return nil
}

func newOrderFixture() (OrderService, *stubOrderRepo) {
	orders := newStubOrderRepo()
	repo := &repository.Repository{Order: orders}
	feed := realtime.NewManager(nil, zap.NewNop())
	return NewOrderService(repo, feed, zap.NewNop()), orders
}

func checkoutRequest() *request.CheckoutRequest {
	return &request.CheckoutRequest{
		CustomerName:    "Ravi Kumar",
		CustomerPhone:   "9876543210",
		ShippingAddress: "12 MG Road, Coimbatore",
		Items:           json.RawMessage(`[{"product_id":"p1","quantity":2}]`),
		Subtotal:        2500,
		Shipping:        150,
	}
}

func TestCheckoutComputesTotal(t *testing.T) {
	service, orders := newOrderFixture()
	userID := uuid.New()

	resp, err := service.Checkout(context.Background(), userID, checkoutRequest())
	require.NoError(t, err)

	assert.Equal(t, 2650.0, resp.Total)
	assert.Equal(t, entity.OrderPending, resp.Status)
	assert.Equal(t, entity.PaymentPending, resp.PaymentStatus)
	assert.NotEmpty(t, resp.OrderNumber)
	assert.Equal(t, userID.String(), resp.UserID)
	assert.Len(t, orders.orders, 1)
}

func TestCheckoutValidation(t *testing.T) {
	service, orders := newOrderFixture()

	req := checkoutRequest()
	req.ShippingAddress = "x"
	_, err := service.Checkout(context.Background(), uuid.New(), req)
	assert.ErrorContains(t, err, "validation failed")
	assert.Empty(t, orders.orders)
}

func TestCheckoutPropagatesStoreError(t *testing.T) {
	service, orders := newOrderFixture()
	orders.createErr = repository.ErrStoreNotConfigured

	_, err := service.Checkout(context.Background(), uuid.New(), checkoutRequest())
	assert.ErrorIs(t, err, repository.ErrStoreNotConfigured)
}

func TestGetOrdersScopedToOwner(t *testing.T) {
	service, _ := newOrderFixture()
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	_, err := service.Checkout(ctx, alice, checkoutRequest())
	require.NoError(t, err)
	_, err = service.Checkout(ctx, bob, checkoutRequest())
	require.NoError(t, err)

	page := service.GetOrders(ctx, &request.PaginatedRequest{Page: 1, PerPage: 10}, &alice)
	assert.Len(t, page.Data, 1)

	// Admin scope sees everything
	page = service.GetOrders(ctx, &request.PaginatedRequest{Page: 1, PerPage: 10}, nil)
	assert.Len(t, page.Data, 2)
}

func TestGetOrdersSwallowsStoreErrors(t *testing.T) {
	service, orders := newOrderFixture()
	orders.findAllErr = errors.New("connection refused")

	page := service.GetOrders(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10}, nil)
	require.NotNil(t, page)
	assert.Empty(t, page.Data)
}

func TestGetOrderByIDOwnership(t *testing.T) {
	service, _ := newOrderFixture()
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	created, err := service.Checkout(ctx, alice, checkoutRequest())
	require.NoError(t, err)

	assert.NotNil(t, service.GetOrderByID(ctx, created.ID, &alice))
	// Someone else's order reads as missing
	assert.Nil(t, service.GetOrderByID(ctx, created.ID, &bob))
	// Admin scope bypasses the ownership check
	assert.NotNil(t, service.GetOrderByID(ctx, created.ID, nil))

	assert.Nil(t, service.GetOrderByID(ctx, "not-a-uuid", nil))
	assert.Nil(t, service.GetOrderByID(ctx, uuid.New().String(), nil))
}

func TestUpdateStatus(t *testing.T) {
	service, _ := newOrderFixture()
	ctx := context.Background()

	created, err := service.Checkout(ctx, uuid.New(), checkoutRequest())
	require.NoError(t, err)

	_, err = service.UpdateStatus(ctx, created.ID, &request.OrderStatusRequest{Status: "lost"})
	assert.ErrorContains(t, err, "validation failed")

	resp, err := service.UpdateStatus(ctx, created.ID, &request.OrderStatusRequest{Status: "shipped"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, resp.Status)

	_, err = service.UpdateStatus(ctx, uuid.New().String(), &request.OrderStatusRequest{Status: "shipped"})
	assert.ErrorContains(t, err, "not found")
}

func TestUpdatePaymentStatus(t *testing.T) {
	service, orders := newOrderFixture()
	ctx := context.Background()

	created, err := service.Checkout(ctx, uuid.New(), checkoutRequest())
	require.NoError(t, err)

	meta := json.RawMessage(`{"txn_id":"TXN-1001"}`)
	resp, err := service.UpdatePaymentStatus(ctx, created.ID, &request.PaymentStatusRequest{
		PaymentStatus: "completed",
		PaymentMeta:   meta,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCompleted, resp.PaymentStatus)
	assert.JSONEq(t, string(meta), string(resp.PaymentMeta))

	// Omitting meta keeps the stored value
	id := uuid.MustParse(created.ID)
	resp, err = service.UpdatePaymentStatus(ctx, created.ID, &request.PaymentStatusRequest{PaymentStatus: "refunded"})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentRefunded, resp.PaymentStatus)
	assert.JSONEq(t, string(meta), string(orders.orders[id].PaymentMeta))
}
