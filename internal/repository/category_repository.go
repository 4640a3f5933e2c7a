package repository

import (
	"inventory_manager/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *models.Category) error
	GetAll() ([]models.Category, error)
	GetByPair(main, sub string) (*models.Category, error)
	Update(category *models.Category) error
	Delete(category *models.Category) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("main_category, sub_category").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) GetByPair(main, sub string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("main_category = ? AND sub_category = ?", main, sub).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepository) Delete(category *models.Category) error {
	return r.db.Delete(category).Error
}
