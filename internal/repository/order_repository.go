package repository

import (
	"inventory_manager/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByIDForUpdate(id string) (*models.Order, error)
	GetByStatus(status models.OrderStatus) ([]models.Order, error)
	Update(order *models.Order) error
	Delete(order *models.Order) error
	CountPendingLinesForItem(itemName string) (int64, error)
	SumPendingQuantityForItem(itemName string) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Lines").Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByIDForUpdate(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Lines").Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByStatus(status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Lines").
		Where("status = ?", string(status)).
		Order("order_date").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// Delete hard-deletes the order and its lines.
func (r *orderRepository) Delete(order *models.Order) error {
	if err := r.db.Where("order_id = ?", order.ID).Delete(&models.OrderLine{}).Error; err != nil {
		return err
	}
	return r.db.Delete(order).Error
}

func (r *orderRepository) CountPendingLinesForItem(itemName string) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrderLine{}).
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("order_lines.item_name = ? AND orders.status = ?", itemName, string(models.OrderPending)).
		Count(&count).Error
	return count, err
}

// SumPendingQuantityForItem supports the reservation invariant check: the
// reserved stock of an item must equal this sum at all times.
func (r *orderRepository) SumPendingQuantityForItem(itemName string) (int64, error) {
	var sum int64
	err := r.db.Model(&models.OrderLine{}).
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("order_lines.item_name = ? AND orders.status = ?", itemName, string(models.OrderPending)).
		Select("COALESCE(SUM(order_lines.quantity), 0)").
		Scan(&sum).Error
	return sum, err
}
