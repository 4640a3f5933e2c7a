package models

import (
	"fmt"
	"strings"
	"time"
)

type Order struct {
	ID            string      `json:"id" gorm:"primaryKey;size:36"`
	CustomerName  string      `json:"customerName" gorm:"not null"`
	CustomerPhone string      `json:"customerPhone" gorm:"not null"`
	StoreID       string      `json:"storeId" gorm:"not null"`
	Status        string      `json:"status" gorm:"not null;default:'pending'"`
	TotalPrice    float64     `json:"totalPrice" gorm:"not null"`
	Profit        float64     `json:"profit"`
	OrderDate     time.Time   `json:"-"`
	CompletedAt   *time.Time  `json:"-"`
	Lines         []OrderLine `json:"lines" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time   `json:"-"`
	UpdatedAt     time.Time   `json:"-"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
)

// ComputeTotals recalculates the order's snapshot totals from its lines.
func (o *Order) ComputeTotals() {
	var total, profit float64
	for _, line := range o.Lines {
		total += line.UnitPrice * float64(line.Quantity)
		profit += (line.UnitPrice - line.UnitCost) * float64(line.Quantity)
	}
	o.TotalPrice = total
	o.Profit = profit
}

func (o *Order) Margin() string {
	if o.TotalPrice == 0 {
		return FormatPercent(0)
	}
	return FormatPercent(o.Profit / o.TotalPrice * 100)
}

// Details renders the line items as a single display string, e.g. "杯具 x 2, 盤子 x 1".
func (o *Order) Details() string {
	parts := make([]string, 0, len(o.Lines))
	for _, line := range o.Lines {
		parts = append(parts, fmt.Sprintf("%s x %d", line.ItemName, line.Quantity))
	}
	return strings.Join(parts, ", ")
}
