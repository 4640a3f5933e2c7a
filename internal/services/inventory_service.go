package services

import (
	"errors"
	"fmt"
	"strings"

	"inventory_manager/internal/apperrors"
	"inventory_manager/internal/logger"
	"inventory_manager/internal/models"
	"inventory_manager/internal/repository"
	"inventory_manager/pkg/notify"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ItemRow struct {
	Name       string  `json:"item"`
	TotalStock int     `json:"totalStock"`
	UnitCost   float64 `json:"unitCost"`
	Price      float64 `json:"price"`
	Category   string  `json:"category"`
}

// BulkAddResult reports which rows of a bulk add were written and how many
// blank rows were skipped.
type BulkAddResult struct {
	Added       []string `json:"added"`
	SkippedRows int      `json:"skippedRows"`
}

type InventoryService interface {
	ListItems() ([]models.Item, error)
	AddItem(row ItemRow) error
	BulkAddItems(rows []ItemRow) (*BulkAddResult, error)
	UpdateItem(originalName string, row ItemRow) error
	DeleteItem(name string) error
	PreviewDeleteItem(name string) (string, error)
	AvailableStock(name string) (int, error)
}

type inventoryService struct {
	itemRepo  repository.ItemRepository
	orderRepo repository.OrderRepository
	tx        repository.TxManager
	notifier  *notify.Client
	lowStock  int
}

func NewInventoryService(
	itemRepo repository.ItemRepository,
	orderRepo repository.OrderRepository,
	tx repository.TxManager,
	notifier *notify.Client,
	lowStockThreshold int,
) InventoryService {
	return &inventoryService{
		itemRepo:  itemRepo,
		orderRepo: orderRepo,
		tx:        tx,
		notifier:  notifier,
		lowStock:  lowStockThreshold,
	}
}

func (s *inventoryService) ListItems() ([]models.Item, error) {
	items, err := s.itemRepo.GetAll()
	if err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}

func (s *inventoryService) AddItem(row ItemRow) error {
	if err := validateRow(row); err != nil {
		return err
	}

	return s.tx.Do(func(r repository.Repos) error {
		if err := ensureNameFree(r.Items, row.Name); err != nil {
			return err
		}
		return create(r.Items, row)
	})
}

// BulkAddItems skips blank-name rows and writes the rest atomically: a
// duplicate anywhere in the batch rolls the whole batch back.
func (s *inventoryService) BulkAddItems(rows []ItemRow) (*BulkAddResult, error) {
	valid := make([]ItemRow, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		if strings.TrimSpace(row.Name) == "" {
			skipped++
			continue
		}
		if err := validateRow(row); err != nil {
			return nil, err
		}
		valid = append(valid, row)
	}
	if len(valid) == 0 {
		return nil, apperrors.ErrNoValidItems
	}

	result := &BulkAddResult{SkippedRows: skipped}
	err := s.tx.Do(func(r repository.Repos) error {
		for _, row := range valid {
			if err := ensureNameFree(r.Items, row.Name); err != nil {
				return err
			}
			if err := create(r.Items, row); err != nil {
				return err
			}
			result.Added = append(result.Added, row.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateItem overwrites stock, cost, price and category. Reserved stock is
// owned by the order lifecycle and is never touched here.
func (s *inventoryService) UpdateItem(originalName string, row ItemRow) error {
	if err := validateRow(row); err != nil {
		return err
	}

	err := s.tx.Do(func(r repository.Repos) error {
		item, err := r.Items.GetByName(originalName)
		if err != nil {
			return itemLookupErr(err)
		}
		if row.Name != originalName {
			if err := ensureNameFree(r.Items, row.Name); err != nil {
				return err
			}
			// Order lines reference the item by name; renaming out from
			// under a pending order would leave it impossible to complete
			// or cancel.
			pending, err := r.Orders.CountPendingLinesForItem(originalName)
			if err != nil {
				return storeErr(err)
			}
			if pending > 0 {
				return apperrors.ErrItemHasPendingOrders
			}
		}
		if row.TotalStock < item.ReservedStock {
			return apperrors.Validation(fmt.Sprintf(
				"total stock %d cannot drop below reserved stock %d", row.TotalStock, item.ReservedStock))
		}
		item.Name = row.Name
		item.TotalStock = row.TotalStock
		item.UnitCost = row.UnitCost
		item.Price = row.Price
		item.Category = row.Category
		if err := r.Items.Update(item); err != nil {
			return storeErr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.checkLowStock(row.Name)
	return nil
}

func (s *inventoryService) DeleteItem(name string) error {
	return s.tx.Do(func(r repository.Repos) error {
		item, err := r.Items.GetByName(name)
		if err != nil {
			return itemLookupErr(err)
		}
		pending, err := r.Orders.CountPendingLinesForItem(name)
		if err != nil {
			return storeErr(err)
		}
		if pending > 0 {
			return apperrors.ErrItemHasPendingOrders
		}
		// Cost history is append-only and survives the item.
		if err := r.Items.Delete(item); err != nil {
			return storeErr(err)
		}
		return nil
	})
}

// PreviewDeleteItem returns the impact summary shown before the destructive
// call; it mutates nothing.
func (s *inventoryService) PreviewDeleteItem(name string) (string, error) {
	item, err := s.itemRepo.GetByName(name)
	if err != nil {
		return "", itemLookupErr(err)
	}
	pending, err := s.orderRepo.CountPendingLinesForItem(name)
	if err != nil {
		return "", storeErr(err)
	}
	if pending > 0 {
		return fmt.Sprintf(
			"「%s」無法刪除：仍有 %d 筆進行中的訂單引用此商品", name, pending), nil
	}
	return fmt.Sprintf(
		"刪除「%s」將移除庫存 %d 件與其定價；歷史成本紀錄將保留", name, item.TotalStock), nil
}

// AvailableStock never clamps: a negative value is a reservation bug and is
// surfaced as an invariant violation.
func (s *inventoryService) AvailableStock(name string) (int, error) {
	item, err := s.itemRepo.GetByName(name)
	if err != nil {
		return 0, itemLookupErr(err)
	}
	available := item.AvailableStock()
	if available < 0 {
		logger.Log.Error("inventory invariant violated",
			zap.String("item", item.Name),
			zap.Int("total_stock", item.TotalStock),
			zap.Int("reserved_stock", item.ReservedStock),
		)
		return 0, apperrors.ErrInventoryInvariant
	}
	return available, nil
}

func (s *inventoryService) checkLowStock(name string) {
	notifyLowStock(s.itemRepo, s.notifier, s.lowStock, name)
}

func validateRow(row ItemRow) error {
	if strings.TrimSpace(row.Name) == "" {
		return apperrors.Validation("item name is required")
	}
	if row.TotalStock < 0 {
		return apperrors.Validation("total stock cannot be negative")
	}
	if row.UnitCost < 0 || row.Price < 0 {
		return apperrors.Validation("unit cost and price cannot be negative")
	}
	return nil
}

func ensureNameFree(items repository.ItemRepository, name string) error {
	_, err := items.GetByName(name)
	if err == nil {
		return apperrors.Wrap(apperrors.ErrDuplicateItem, fmt.Errorf("item %q", name))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storeErr(err)
	}
	return nil
}

func create(items repository.ItemRepository, row ItemRow) error {
	item := &models.Item{
		Name:       row.Name,
		TotalStock: row.TotalStock,
		UnitCost:   row.UnitCost,
		Price:      row.Price,
		Category:   row.Category,
	}
	if err := items.Create(item); err != nil {
		return storeErr(err)
	}
	return nil
}

func itemLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrItemNotFound
	}
	return storeErr(err)
}

// storeErr marks unexpected store failures as retryable for the caller; the
// service itself performs no retry.
func storeErr(err error) error {
	return apperrors.Wrap(apperrors.ErrUnavailable, err)
}
