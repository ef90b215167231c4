package response

import (
	"time"

	"electromart/internal/data/entity"
)

type ProductResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Brand          string            `json:"brand"`
	Category       string            `json:"category"`
	Colors         []string          `json:"colors"`
	Description    *string           `json:"description,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Price          float64           `json:"price"`
	UnitType       entity.UnitType   `json:"unit_type"`
	StockQuantity  int               `json:"stock_quantity"`
	ImageURL       *string           `json:"image_url,omitempty"`
	BrochureURL    *string           `json:"brochure_url,omitempty"`
	IsActive       bool              `json:"is_active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func ProductToResponse(product *entity.Product) ProductResponse {
	return ProductResponse{
		ID:             product.ID.String(),
		Name:           product.Name,
		Brand:          product.Brand,
		Category:       product.Category,
		Colors:         product.Colors,
		Specifications: product.Specifications,
		Description:    product.Description,
		Price:          product.Price,
		UnitType:       product.UnitType,
		StockQuantity:  product.StockQuantity,
		ImageURL:       product.ImageURL,
		BrochureURL:    product.BrochureURL,
		IsActive:       product.IsActive,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}
