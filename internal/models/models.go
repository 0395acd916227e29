package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name     string    `gorm:"not null"                  json:"name"`
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	CategoryID  uint            `gorm:"index;not null"               json:"category_id"`
	Category    Category        `gorm:"foreignKey:CategoryID"        json:"category"`
	Name        string          `gorm:"not null"                     json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"price"`
	Description string          `gorm:"not null"                     json:"description"`
	Image       string          `json:"image"`
	Orders      []Order         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

// Order is one cart line while Completed is false and an immutable
// purchase record once it is true. The partial unique index keeps at
// most one open line per (session, product); closed lines accumulate.
type Order struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	SessionID uuid.UUID `gorm:"uniqueIndex:idx_open_line,where:completed = false;not null" json:"session_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_open_line,where:completed = false;not null" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID"        json:"product"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"  json:"quantity"`
	Completed bool      `gorm:"default:false;index"         json:"completed"`
	CreatedAt int64     `gorm:"autoCreateTime"              json:"created_at"`
}

// TotalPrice is recomputed on every read and never stored. Value
// receiver so templates can call it on ranged items.
func (o Order) TotalPrice() decimal.Decimal {
	return o.Product.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}
