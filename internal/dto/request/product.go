package request

type ProductRequest struct {
	Name           string            `json:"name" validate:"required,min=2,max=200"`
	Brand          string            `json:"brand" validate:"required,min=1,max=100"`
	Category       string            `json:"category" validate:"required,min=1,max=100"`
	Colors         []string          `json:"colors"`
	Description    *string           `json:"description,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Price          float64           `json:"price" validate:"min=0"`
	UnitType       string            `json:"unit_type" validate:"required,oneof=metres coils pieces rolls"`
	StockQuantity  int               `json:"stock_quantity" validate:"min=0"`
	ImageURL       *string           `json:"image_url,omitempty" validate:"omitempty,url"`
	BrochureURL    *string           `json:"brochure_url,omitempty" validate:"omitempty,url"`
	IsActive       *bool             `json:"is_active,omitempty"`
}

type ProductUpdateRequest struct {
	Name           *string            `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Brand          *string            `json:"brand,omitempty" validate:"omitempty,min=1,max=100"`
	Category       *string            `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Colors         *[]string          `json:"colors,omitempty"`
	Description    *string            `json:"description,omitempty"`
	Specifications *map[string]string `json:"specifications,omitempty"`
	Price          *float64           `json:"price,omitempty" validate:"omitempty,min=0"`
	UnitType       *string            `json:"unit_type,omitempty" validate:"omitempty,oneof=metres coils pieces rolls"`
	StockQuantity  *int               `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	ImageURL       *string            `json:"image_url,omitempty" validate:"omitempty,url"`
	BrochureURL    *string            `json:"brochure_url,omitempty" validate:"omitempty,url"`
	IsActive       *bool              `json:"is_active,omitempty"`
}
