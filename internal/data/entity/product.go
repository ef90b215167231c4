package entity

type UnitType string

const (
	UnitMetres UnitType = "metres"
	UnitCoils  UnitType = "coils"
	UnitPieces UnitType = "pieces"
	UnitRolls  UnitType = "rolls"
)

// Product catalog row. Price and StockQuantity are never negative.
type Product struct {
	Base
	Name           string            `db:"name"`
	Brand          string            `db:"brand"`
	Category       string            `db:"category"`
	Colors         []string          `db:"colors"`
	Description    *string           `db:"description"`
	Specifications map[string]string `db:"specifications"`
	Price          float64           `db:"price"`
	UnitType       UnitType          `db:"unit_type"`
	StockQuantity  int               `db:"stock_quantity"`
	ImageURL       *string           `db:"image_url"`
	BrochureURL    *string           `db:"brochure_url"`
	IsActive       bool              `db:"is_active"`
}
