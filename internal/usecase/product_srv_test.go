package usecase

import (
	"context"
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

type stubProductRepo struct {
	products map[uuid.UUID]*entity.Product

	findAllErr error
	countErr   error
	createErr  error
	findErr    error
	deleted    []uuid.UUID
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *stubProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.products[product.ID] = product
	return nil
}

func (r *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.products[id], nil
}

func (r *stubProductRepo) FindAll(ctx context.Context, limit, offset int, category *string, activeOnly bool) ([]*entity.Product, error) {
	if r.findAllErr != nil {
		return nil, r.findAllErr
	}
	var out []*entity.Product
	for _, product := range r.products {
		if activeOnly && !product.IsActive {
			continue
		}
		if category != nil && product.Category != *category {
			continue
		}
		out = append(out, product)
	}
	return out, nil
}

func (r *stubProductRepo) CountAll(ctx context.Context, category *string, activeOnly bool) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	products, _ := r.FindAll(ctx, 0, 0, category, activeOnly)
	return int64(len(products)), nil
}

func (r *stubProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	delete(r.products, id)
	return nil
}

func newProductFixture() (ProductService, *stubProductRepo) {
	products := newStubProductRepo()
	repo := &repository.Repository{Product: products}
	feed := realtime.NewManager(nil, zap.NewNop())
	return NewProductService(repo, feed, zap.NewNop()), products
}

func seedProduct(products *stubProductRepo, name, category string, active bool) *entity.Product {
	product := &entity.Product{
		Base:          entity.Base{ID: uuid.New()},
		Name:          name,
		Brand:         "Finolex",
		Category:      category,
		Price:         1250,
		UnitType:      entity.UnitMetres,
		StockQuantity: 40,
		IsActive:      active,
	}
	products.products[product.ID] = product
	return product
}

func TestGetProductsSwallowsStoreErrors(t *testing.T) {
	service, products := newProductFixture()
	products.findAllErr = errors.New("connection refused")

	page := service.GetProducts(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10}, nil, false)

	require.NotNil(t, page)
	assert.Empty(t, page.Data)
	assert.EqualValues(t, 0, page.Pagination.Total)
}

func TestGetProductsCountFallback(t *testing.T) {
	service, products := newProductFixture()
	seedProduct(products, "Copper Wire 2.5mm", "wires", true)
	products.countErr = errors.New("timeout")

	page := service.GetProducts(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10}, nil, false)

	require.Len(t, page.Data, 1)
	assert.EqualValues(t, 1, page.Pagination.Total)
}

func TestGetProductsFiltersInactive(t *testing.T) {
	service, products := newProductFixture()
	seedProduct(products, "Copper Wire 2.5mm", "wires", true)
	seedProduct(products, "Discontinued Switch", "switches", false)

	page := service.GetProducts(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10}, nil, false)
	assert.Len(t, page.Data, 1)

	// Admin view includes inactive rows
	page = service.GetProducts(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10}, nil, true)
	assert.Len(t, page.Data, 2)
}

func TestGetProductByIDNormalizesToNotFound(t *testing.T) {
	service, products := newProductFixture()

	assert.Nil(t, service.GetProductByID(context.Background(), "not-a-uuid"))
	assert.Nil(t, service.GetProductByID(context.Background(), uuid.New().String()))

	products.findErr = errors.New("connection refused")
	assert.Nil(t, service.GetProductByID(context.Background(), uuid.New().String()))
}

func TestCreateProduct(t *testing.T) {
	service, products := newProductFixture()

	_, err := service.CreateProduct(context.Background(), &request.ProductRequest{
		Name: "x", Brand: "Finolex", Category: "wires", UnitType: "metres",
	})
	assert.ErrorContains(t, err, "validation failed")

	resp, err := service.CreateProduct(context.Background(), &request.ProductRequest{
		Name:          "Copper Wire 2.5mm",
		Brand:         "Finolex",
		Category:      "wires",
		Price:         1250,
		UnitType:      "metres",
		StockQuantity: 40,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.Len(t, products.products, 1)
}

func TestCreateProductPropagatesStoreError(t *testing.T) {
	service, products := newProductFixture()
	products.createErr = repository.ErrStoreNotConfigured

	_, err := service.CreateProduct(context.Background(), &request.ProductRequest{
		Name:     "Copper Wire 2.5mm",
		Brand:    "Finolex",
		Category: "wires",
		UnitType: "metres",
	})
	assert.ErrorIs(t, err, repository.ErrStoreNotConfigured)
}

func TestUpdateProductPartial(t *testing.T) {
	service, products := newProductFixture()
	product := seedProduct(products, "Copper Wire 2.5mm", "wires", true)

	price := 1399.0
	inactive := false
	resp, err := service.UpdateProduct(context.Background(), product.ID.String(), &request.ProductUpdateRequest{
		Price:    &price,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, 1399.0, resp.Price)
	assert.False(t, resp.IsActive)
	// Untouched fields survive
	assert.Equal(t, "Copper Wire 2.5mm", resp.Name)

	_, err = service.UpdateProduct(context.Background(), uuid.New().String(), &request.ProductUpdateRequest{Price: &price})
	assert.ErrorContains(t, err, "not found")
}

func TestDeleteProduct(t *testing.T) {
	service, products := newProductFixture()
	product := seedProduct(products, "Copper Wire 2.5mm", "wires", true)

	assert.ErrorContains(t, service.DeleteProduct(context.Background(), uuid.New().String()), "not found")

	require.NoError(t, service.DeleteProduct(context.Background(), product.ID.String()))
	assert.Equal(t, []uuid.UUID{product.ID}, products.deleted)
}

func TestProductSubscribeWithoutFeedSource(t *testing.T) {
	service, _ := newProductFixture()

	unsubscribe, err := service.Subscribe(func(realtime.Event) {})
	require.NoError(t, err)
	unsubscribe()
}
