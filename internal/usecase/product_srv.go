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

type ProductService interface {
	GetProducts(ctx context.Context, req *request.PaginatedRequest, category *string, includeInactive bool) *response.PaginatedResponse[response.ProductResponse]
	GetProductByID(ctx context.Context, productID string) *response.ProductResponse
	CreateProduct(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error)
	UpdateProduct(ctx context.Context, productID string, req *request.ProductUpdateRequest) (*response.ProductResponse, error)
	DeleteProduct(ctx context.Context, productID string) error
	Subscribe(fn realtime.EventFunc) (realtime.Unsubscribe, error)
}

type productService struct {
	repo *repository.Repository
	feed *realtime.Manager
	log  *zap.Logger
}

func NewProductService(
	repo *repository.Repository,
	feed *realtime.Manager,
	log *zap.Logger,
) ProductService {
	return &productService{
		repo: repo,
		feed: feed,
		log:  log.With(zap.String("service", "product")),
	}
}

// GetProducts returns a page of products, newest first. Store errors are
// logged and swallowed: the caller gets an empty page and cannot tell it
// apart from no data.
func (s *productService) GetProducts(ctx context.Context, req *request.PaginatedRequest, category *string, includeInactive bool) *response.PaginatedResponse[response.ProductResponse] {
	limit := req.Limit()
	offset := req.Offset()

	products, err := s.repo.Product.FindAll(ctx, limit, offset, category, !includeInactive)
	if err != nil {
		s.log.Error("Failed to get products",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return response.NewPaginatedResponse([]response.ProductResponse{}, req.Page, req.PerPage, 0)
	}

	total, err := s.repo.Product.CountAll(ctx, category, !includeInactive)
	if err != nil {
		s.log.Error("Failed to count products", zap.Error(err))
		total = int64(len(products))
	}

	productResponses := make([]response.ProductResponse, len(products))
	for i, product := range products {
		productResponses[i] = response.ProductToResponse(product)
	}

	return response.NewPaginatedResponse(productResponses, req.Page, req.PerPage, total)
}

// GetProductByID normalizes every failure to not-found. A missing row is
// the ordinary outcome here, never an error.
func (s *productService) GetProductByID(ctx context.Context, productID string) *response.ProductResponse {
	id, err := uuid.Parse(productID)
	if err != nil {
		s.log.Warn("Invalid product ID format",
			zap.String("product_id", productID),
			zap.Error(err),
		)
		return nil
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		// Already logged by the repository; degrade to not-found
		return nil
	}
	if product == nil {
		return nil
	}

	resp := response.ProductToResponse(product)
	return &resp
}

func (s *productService) CreateProduct(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:           req.Name,
		Brand:          req.Brand,
		Category:       req.Category,
		Colors:         req.Colors,
		Description:    req.Description,
		Specifications: req.Specifications,
		Price:          req.Price,
		UnitType:       entity.UnitType(req.UnitType),
		StockQuantity:  req.StockQuantity,
		ImageURL:       req.ImageURL,
		BrochureURL:    req.BrochureURL,
		IsActive:       isActive,
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		s.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req *request.ProductUpdateRequest) (*response.ProductResponse, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product not found")
	}

	// Apply partial updates only for provided fields
	updated := false

	if req.Name != nil && *req.Name != product.Name {
		product.Name = *req.Name
		updated = true
	}

	if req.Brand != nil && *req.Brand != product.Brand {
		product.Brand = *req.Brand
		updated = true
	}

	if req.Category != nil && *req.Category != product.Category {
		product.Category = *req.Category
		updated = true
	}

	if req.Colors != nil {
		product.Colors = *req.Colors
		updated = true
	}

	if req.Description != nil {
		product.Description = req.Description
		updated = true
	}

	if req.Specifications != nil {
		product.Specifications = *req.Specifications
		updated = true
	}

	if req.Price != nil && *req.Price != product.Price {
		product.Price = *req.Price
		updated = true
	}

	if req.UnitType != nil {
		product.UnitType = entity.UnitType(*req.UnitType)
		updated = true
	}

	if req.StockQuantity != nil && *req.StockQuantity != product.StockQuantity {
		product.StockQuantity = *req.StockQuantity
		updated = true
	}

	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
		updated = true
	}

	if req.BrochureURL != nil {
		product.BrochureURL = req.BrochureURL
		updated = true
	}

	if req.IsActive != nil && *req.IsActive != product.IsActive {
		product.IsActive = *req.IsActive
		updated = true
	}

	if updated {
		product.UpdatedAt = time.Now()
		if err := s.repo.Product.Update(ctx, product); err != nil {
			s.log.Error("Failed to update product",
				zap.Error(err),
				zap.String("product_id", productID),
			)
			return nil, fmt.Errorf("update product: %w", err)
		}
	}

	s.log.Info("Product updated",
		zap.String("product_id", productID),
		zap.Bool("was_updated", updated),
	)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	id, err := uuid.Parse(productID)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return fmt.Errorf("product not found")
	}

	if err := s.repo.Product.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete product",
			zap.Error(err),
			zap.String("product_id", productID),
		)
		return fmt.Errorf("delete product: %w", err)
	}

	return nil
}

// Subscribe opens a change feed over the product catalog.
func (s *productService) Subscribe(fn realtime.EventFunc) (realtime.Unsubscribe, error) {
	return s.feed.Subscribe("products", nil, fn)
}
