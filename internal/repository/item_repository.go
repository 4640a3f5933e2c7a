package repository

import (
	"inventory_manager/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemRepository interface {
	Create(item *models.Item) error
	GetByName(name string) (*models.Item, error)
	GetByNameForUpdate(name string) (*models.Item, error)
	GetAll() ([]models.Item, error)
	Update(item *models.Item) error
	Delete(item *models.Item) error
	CountByCategoryTag(tag string) (int64, error)
	RetagCategory(oldTag, newTag string) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(item *models.Item) error {
	return r.db.Create(item).Error
}

func (r *itemRepository) GetByName(name string) (*models.Item, error) {
	var item models.Item
	err := r.db.Where("name = ?", name).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByNameForUpdate takes a row lock so the availability check and the
// reservation commit happen against the same state.
func (r *itemRepository) GetByNameForUpdate(name string) (*models.Item, error) {
	var item models.Item
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", name).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) GetAll() ([]models.Item, error) {
	var items []models.Item
	err := r.db.Order("name").Find(&items).Error
	return items, err
}

func (r *itemRepository) Update(item *models.Item) error {
	return r.db.Save(item).Error
}

func (r *itemRepository) Delete(item *models.Item) error {
	return r.db.Delete(item).Error
}

func (r *itemRepository) CountByCategoryTag(tag string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Item{}).Where("category = ?", tag).Count(&count).Error
	return count, err
}

func (r *itemRepository) RetagCategory(oldTag, newTag string) error {
	return r.db.Model(&models.Item{}).
		Where("category = ?", oldTag).
		Update("category", newTag).Error
}
