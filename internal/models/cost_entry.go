package models

import "time"

// CostEntry is an append-only stock-in record. Order processing never touches
// it; edits and deletes are administrative corrections with no cascading
// effect on item state.
type CostEntry struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Date       string    `json:"date" gorm:"not null"` // YYYY-MM-DD
	ItemName   string    `json:"item" gorm:"not null"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	UnitPrice  float64   `json:"unitPrice" gorm:"not null"`
	TotalPrice float64   `json:"totalPrice" gorm:"not null"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

func (c *CostEntry) RecalculateTotal() {
	c.TotalPrice = float64(c.Quantity) * c.UnitPrice
}
