package models

import "time"

// OrderLine references its item by name only. The unit price and cost are
// snapshotted at order creation, so later item edits never change the
// order's recorded totals.
type OrderLine struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	OrderID   string    `json:"-" gorm:"not null;index;size:36"`
	ItemName  string    `json:"item" gorm:"not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	UnitPrice float64   `json:"unitPrice" gorm:"not null"`
	UnitCost  float64   `json:"unitCost" gorm:"not null"`
	CreatedAt time.Time `json:"-"`
}
