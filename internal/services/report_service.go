package services

import (
	"math"

	"inventory_manager/internal/models"
	"inventory_manager/internal/repository"
)

// RangeStats is the revenue rollup shown on the completed-orders view.
// Revenue and profit are rounded to whole units, margin to one decimal place.
type RangeStats struct {
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Margin  string  `json:"margin"`
}

type ReportService interface {
	RevenueInRange(start, end string) (*RangeStats, error)
}

type reportService struct {
	orderRepo repository.OrderRepository
}

func NewReportService(orderRepo repository.OrderRepository) ReportService {
	return &reportService{orderRepo: orderRepo}
}

func (s *reportService) RevenueInRange(start, end string) (*RangeStats, error) {
	orders, err := s.orderRepo.GetByStatus(models.OrderCompleted)
	if err != nil {
		return nil, storeErr(err)
	}
	stats := SummarizeRange(orders, start, end)
	return &stats, nil
}

// SummarizeRange aggregates completed orders whose completion date's
// YYYY-MM-DD portion falls inside [start, end], inclusive on both ends.
// Empty bounds leave that side unbounded.
func SummarizeRange(orders []models.Order, start, end string) RangeStats {
	var revenue, profit float64
	for _, order := range orders {
		if order.Status != string(models.OrderCompleted) || order.CompletedAt == nil {
			continue
		}
		day := order.CompletedAt.Format("2006-01-02")
		if start != "" && day < start {
			continue
		}
		if end != "" && day > end {
			continue
		}
		revenue += order.TotalPrice
		profit += order.Profit
	}

	margin := 0.0
	if revenue > 0 {
		margin = profit / revenue * 100
	}
	return RangeStats{
		Revenue: math.Round(revenue),
		Profit:  math.Round(profit),
		Margin:  models.FormatPercent(margin),
	}
}
