package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Course is a purchasable bundle of content. Pricing is stored exactly, not
// as a float.
type Course struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);default:0"`
	IsPremium   bool            `json:"is_premium" gorm:"default:false"`
	CreatedAt   time.Time       `json:"created_at"`
}
