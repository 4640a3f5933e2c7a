package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInsufficientStock    = errors.New("insufficient available stock")
	ErrReservationUnderflow = errors.New("reserved stock underflow")
)

type Item struct {
	ID            uint      `json:"-" gorm:"primaryKey"`
	Name          string    `json:"item" gorm:"unique;not null"`
	TotalStock    int       `json:"totalStock" gorm:"not null;default:0"`
	ReservedStock int       `json:"preOrderStock" gorm:"not null;default:0"`
	UnitCost      float64   `json:"unitCost"`
	Price         float64   `json:"price"`
	Category      string    `json:"category"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// AvailableStock returns stock not promised to any pending order.
func (i *Item) AvailableStock() int {
	return i.TotalStock - i.ReservedStock
}

func (i *Item) Margin() string {
	return FormatPercent(MarginPercent(i.UnitCost, i.Price))
}

func (i *Item) CanReserve(quantity int) bool {
	return quantity <= i.AvailableStock()
}

// Reserve holds stock for a pending order.
func (i *Item) Reserve(quantity int) error {
	if !i.CanReserve(quantity) {
		return ErrInsufficientStock
	}
	i.ReservedStock += quantity
	return nil
}

// Release returns a reservation to the available pool (order cancelled).
func (i *Item) Release(quantity int) error {
	if quantity > i.ReservedStock {
		return ErrReservationUnderflow
	}
	i.ReservedStock -= quantity
	return nil
}

// Consume converts a reservation into a permanent deduction (order completed).
// Total and reserved drop together, so available stock is unchanged.
func (i *Item) Consume(quantity int) error {
	if quantity > i.ReservedStock || quantity > i.TotalStock {
		return ErrReservationUnderflow
	}
	i.TotalStock -= quantity
	i.ReservedStock -= quantity
	return nil
}

// MarginPercent returns (price-cost)/price*100, or 0 when price is 0.
func MarginPercent(cost, price float64) float64 {
	if price == 0 {
		return 0
	}
	return (price - cost) / price * 100
}

func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
