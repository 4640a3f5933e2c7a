package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"inventory_manager/internal/apperrors"
	"inventory_manager/internal/logger"
	"inventory_manager/internal/models"
	"inventory_manager/internal/repository"
	"inventory_manager/pkg/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CustomerInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	StoreID string `json:"storeId"`
}

type OrderLineInput struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

type CreateOrderInput struct {
	Customer CustomerInput    `json:"customer"`
	Lines    []OrderLineInput `json:"lines"`
	Date     string           `json:"date"`
}

// BulkResult is the per-ID outcome of a bulk cancel or complete. One failing
// ID never aborts the rest of the batch.
type BulkResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type OrderService interface {
	PendingOrders() ([]models.Order, error)
	CompletedOrders() ([]models.Order, error)
	CreateOrder(input CreateOrderInput) (*models.Order, error)
	CompleteOrder(id string) error
	CompleteOrders(ids []string) []BulkResult
	DeleteOrders(ids []string) []BulkResult
	PreviewComplete(id string) (string, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.ItemRepository
	tx        repository.TxManager
	notifier  *notify.Client
	lowStock  int
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	tx repository.TxManager,
	notifier *notify.Client,
	lowStockThreshold int,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		tx:        tx,
		notifier:  notifier,
		lowStock:  lowStockThreshold,
	}
}

func (s *orderService) PendingOrders() ([]models.Order, error) {
	orders, err := s.orderRepo.GetByStatus(models.OrderPending)
	if err != nil {
		return nil, storeErr(err)
	}
	return orders, nil
}

func (s *orderService) CompletedOrders() ([]models.Order, error) {
	orders, err := s.orderRepo.GetByStatus(models.OrderCompleted)
	if err != nil {
		return nil, storeErr(err)
	}
	return orders, nil
}

// CreateOrder validates every line against available stock inside one
// transaction with the referenced items locked, then reserves. Either all
// lines reserve or nothing is written.
func (s *orderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:            uuid.NewString(),
		CustomerName:  strings.TrimSpace(input.Customer.Name),
		CustomerPhone: strings.TrimSpace(input.Customer.Phone),
		StoreID:       strings.TrimSpace(input.Customer.StoreID),
		Status:        string(models.OrderPending),
		OrderDate:     orderDate(input.Date),
	}

	requested := map[string]int{}
	for _, line := range input.Lines {
		requested[line.Item] += line.Quantity
	}
	names := make([]string, 0, len(requested))
	for name := range requested {
		names = append(names, name)
	}
	sort.Strings(names)

	err := s.tx.Do(func(r repository.Repos) error {
		// Lock items in name order so concurrent creations cannot deadlock.
		items := map[string]*models.Item{}
		for _, name := range names {
			item, err := r.Items.GetByNameForUpdate(name)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.Wrap(apperrors.ErrItemNotFound, fmt.Errorf("item %q", name))
				}
				return storeErr(err)
			}
			items[name] = item
		}

		// Check all lines before reserving anything.
		for _, line := range input.Lines {
			item := items[line.Item]
			if requested[line.Item] > item.AvailableStock() {
				return &apperrors.InsufficientStockError{
					Item:      line.Item,
					Requested: requested[line.Item],
					Available: item.AvailableStock(),
				}
			}
		}

		for _, line := range input.Lines {
			item := items[line.Item]
			order.Lines = append(order.Lines, models.OrderLine{
				ItemName:  line.Item,
				Quantity:  line.Quantity,
				UnitPrice: item.Price,
				UnitCost:  item.UnitCost,
			})
		}
		order.ComputeTotals()

		for _, name := range names {
			item := items[name]
			if err := item.Reserve(requested[name]); err != nil {
				return s.invariantViolation("reserve", item, err)
			}
			if err := r.Items.Update(item); err != nil {
				return storeErr(err)
			}
		}

		if err := r.Orders.Create(order); err != nil {
			return storeErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		notifyLowStock(s.itemRepo, s.notifier, s.lowStock, name)
	}
	return order, nil
}

// CompleteOrder converts the reservation into a permanent deduction: total
// and reserved stock drop together, so available stock is unchanged. The
// transition is irreversible.
func (s *orderService) CompleteOrder(id string) error {
	return s.tx.Do(func(r repository.Repos) error {
		order, err := lockOrder(r.Orders, id)
		if err != nil {
			return err
		}
		if order.Status != string(models.OrderPending) {
			return apperrors.Wrap(apperrors.ErrInvalidTransition,
				fmt.Errorf("order %s is %s", id, order.Status))
		}

		for _, line := range sortedLines(order.Lines) {
			item, err := r.Items.GetByNameForUpdate(line.ItemName)
			if err != nil {
				return s.lineItemErr(order.ID, line.ItemName, err)
			}
			if err := item.Consume(line.Quantity); err != nil {
				return s.invariantViolation("consume", item, err)
			}
			if err := r.Items.Update(item); err != nil {
				return storeErr(err)
			}
		}

		now := time.Now()
		order.Status = string(models.OrderCompleted)
		order.CompletedAt = &now
		if err := r.Orders.Update(order); err != nil {
			return storeErr(err)
		}
		return nil
	})
}

func (s *orderService) CompleteOrders(ids []string) []BulkResult {
	results := make([]BulkResult, 0, len(ids))
	for _, id := range ids {
		if err := s.CompleteOrder(id); err != nil {
			results = append(results, BulkResult{ID: id, Error: err.Error()})
			continue
		}
		results = append(results, BulkResult{ID: id, OK: true})
	}
	return results
}

// DeleteOrders cancels pending orders, releasing their reservations, and
// hard-deletes them. Completed or unknown IDs fail individually without
// touching stock, so a repeated cancel can never double-restore.
func (s *orderService) DeleteOrders(ids []string) []BulkResult {
	results := make([]BulkResult, 0, len(ids))
	for _, id := range ids {
		if err := s.deleteOrder(id); err != nil {
			results = append(results, BulkResult{ID: id, Error: err.Error()})
			continue
		}
		results = append(results, BulkResult{ID: id, OK: true})
	}
	return results
}

func (s *orderService) deleteOrder(id string) error {
	return s.tx.Do(func(r repository.Repos) error {
		order, err := lockOrder(r.Orders, id)
		if err != nil {
			return err
		}
		if order.Status != string(models.OrderPending) {
			return apperrors.Wrap(apperrors.ErrInvalidTransition,
				fmt.Errorf("order %s is %s", id, order.Status))
		}

		for _, line := range sortedLines(order.Lines) {
			item, err := r.Items.GetByNameForUpdate(line.ItemName)
			if err != nil {
				return s.lineItemErr(order.ID, line.ItemName, err)
			}
			if err := item.Release(line.Quantity); err != nil {
				return s.invariantViolation("release", item, err)
			}
			if err := r.Items.Update(item); err != nil {
				return storeErr(err)
			}
		}

		if err := r.Orders.Delete(order); err != nil {
			return storeErr(err)
		}
		return nil
	})
}

// PreviewComplete returns the impact summary shown before the irreversible
// completion call; it mutates nothing.
func (s *orderService) PreviewComplete(id string) (string, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrOrderNotFound
		}
		return "", storeErr(err)
	}
	if order.Status != string(models.OrderPending) {
		return "", apperrors.Wrap(apperrors.ErrInvalidTransition,
			fmt.Errorf("order %s is %s", id, order.Status))
	}
	return fmt.Sprintf(
		"完成訂單 %s（%s，總金額 $%.0f）將從庫存實際扣除商品並清除預售；完成後無法還原",
		order.ID, order.Details(), order.TotalPrice), nil
}

// sortedLines returns the lines in item-name order, matching the lock order
// CreateOrder uses, so overlapping transactions cannot deadlock.
func sortedLines(lines []models.OrderLine) []models.OrderLine {
	sorted := append([]models.OrderLine(nil), lines...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ItemName < sorted[j].ItemName })
	return sorted
}

func lockOrder(orders repository.OrderRepository, id string) (*models.Order, error) {
	order, err := orders.GetByIDForUpdate(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, storeErr(err)
	}
	return order, nil
}

func (s *orderService) lineItemErr(orderID, itemName string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// A pending order referencing a missing item means the deletion guard
		// was bypassed; treat as a reservation accounting bug.
		logger.Log.Error("pending order references missing item",
			zap.String("order_id", orderID),
			zap.String("item", itemName),
		)
		return apperrors.ErrInventoryInvariant
	}
	return storeErr(err)
}

func (s *orderService) invariantViolation(op string, item *models.Item, err error) error {
	logger.Log.Error("inventory invariant violated",
		zap.String("op", op),
		zap.String("item", item.Name),
		zap.Int("total_stock", item.TotalStock),
		zap.Int("reserved_stock", item.ReservedStock),
		zap.Error(err),
	)
	return apperrors.ErrInventoryInvariant
}

func validateOrderInput(input CreateOrderInput) error {
	if strings.TrimSpace(input.Customer.Name) == "" {
		return apperrors.Validation("customer name is required")
	}
	if strings.TrimSpace(input.Customer.Phone) == "" {
		return apperrors.Validation("customer phone is required")
	}
	if strings.TrimSpace(input.Customer.StoreID) == "" {
		return apperrors.Validation("customer store ID is required")
	}
	if len(input.Lines) == 0 {
		return apperrors.Validation("order needs at least one line")
	}
	for _, line := range input.Lines {
		if strings.TrimSpace(line.Item) == "" {
			return apperrors.Validation("order line item is required")
		}
		if line.Quantity < 1 {
			return apperrors.Validation(fmt.Sprintf("quantity for %q must be at least 1", line.Item))
		}
	}
	return nil
}

func orderDate(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Now()
}
