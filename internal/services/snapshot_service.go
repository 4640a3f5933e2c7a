package services

import (
	"inventory_manager/internal/models"
	"inventory_manager/internal/repository"
)

const activityLogLimit = 100

// ItemView is the inventory row the front end renders: derived fields are
// computed here, once, never stored.
type ItemView struct {
	Item           string  `json:"item"`
	TotalStock     int     `json:"totalStock"`
	PreOrderStock  int     `json:"preOrderStock"`
	AvailableStock int     `json:"availableStock"`
	UnitCost       float64 `json:"unitCost"`
	Price          float64 `json:"price"`
	Margin         string  `json:"margin"`
	Category       string  `json:"category"`
}

type PricingView struct {
	Item     string  `json:"item"`
	UnitCost float64 `json:"unitCost"`
	Price    float64 `json:"price"`
	Margin   string  `json:"margin"`
}

type OrderView struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	StoreID       string  `json:"storeId"`
	Details       string  `json:"details"`
	TotalPrice    float64 `json:"totalPrice"`
	Profit        float64 `json:"profit"`
	Margin        string  `json:"margin"`
}

// Snapshot is the full dataset the front end re-fetches after every mutation.
type Snapshot struct {
	Status          string             `json:"status"`
	Inventory       []ItemView         `json:"inventory"`
	Costs           []models.CostEntry `json:"costs"`
	Pricings        []PricingView      `json:"pricings"`
	Orders          []OrderView        `json:"orders"`
	CompletedOrders []OrderView        `json:"completedOrders"`
	Categories      []models.Category  `json:"categories"`
	Logs            []models.Activity  `json:"logs"`
}

type SnapshotService interface {
	Build() (*Snapshot, error)
}

type snapshotService struct {
	inventory    InventoryService
	orders       OrderService
	costs        CostService
	categories   CategoryService
	activityRepo repository.ActivityRepository
}

func NewSnapshotService(
	inventory InventoryService,
	orders OrderService,
	costs CostService,
	categories CategoryService,
	activityRepo repository.ActivityRepository,
) SnapshotService {
	return &snapshotService{
		inventory:    inventory,
		orders:       orders,
		costs:        costs,
		categories:   categories,
		activityRepo: activityRepo,
	}
}

func (s *snapshotService) Build() (*Snapshot, error) {
	items, err := s.inventory.ListItems()
	if err != nil {
		return nil, err
	}
	pending, err := s.orders.PendingOrders()
	if err != nil {
		return nil, err
	}
	completed, err := s.orders.CompletedOrders()
	if err != nil {
		return nil, err
	}
	costs, err := s.costs.ListCosts()
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListCategories()
	if err != nil {
		return nil, err
	}
	logs, err := s.activityRepo.Latest(activityLogLimit)
	if err != nil {
		return nil, storeErr(err)
	}

	snapshot := &Snapshot{
		Status:          "success",
		Inventory:       make([]ItemView, 0, len(items)),
		Costs:           costs,
		Pricings:        make([]PricingView, 0, len(items)),
		Orders:          make([]OrderView, 0, len(pending)),
		CompletedOrders: make([]OrderView, 0, len(completed)),
		Categories:      categories,
		Logs:            logs,
	}

	for i := range items {
		item := &items[i]
		snapshot.Inventory = append(snapshot.Inventory, ItemView{
			Item:           item.Name,
			TotalStock:     item.TotalStock,
			PreOrderStock:  item.ReservedStock,
			AvailableStock: item.AvailableStock(),
			UnitCost:       item.UnitCost,
			Price:          item.Price,
			Margin:         item.Margin(),
			Category:       item.Category,
		})
		snapshot.Pricings = append(snapshot.Pricings, PricingView{
			Item:     item.Name,
			UnitCost: item.UnitCost,
			Price:    item.Price,
			Margin:   item.Margin(),
		})
	}
	for i := range pending {
		snapshot.Orders = append(snapshot.Orders, orderView(&pending[i]))
	}
	for i := range completed {
		snapshot.CompletedOrders = append(snapshot.CompletedOrders, orderView(&completed[i]))
	}
	return snapshot, nil
}

func orderView(order *models.Order) OrderView {
	// Completed orders report their completion date; that is the date the
	// revenue window filters on.
	date := order.OrderDate
	if order.Status == string(models.OrderCompleted) && order.CompletedAt != nil {
		date = *order.CompletedAt
	}
	return OrderView{
		ID:            order.ID,
		Date:          date.Format("2006-01-02 15:04:05"),
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		StoreID:       order.StoreID,
		Details:       order.Details(),
		TotalPrice:    order.TotalPrice,
		Profit:        order.Profit,
		Margin:        order.Margin(),
	}
}
