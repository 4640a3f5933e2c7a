package repository

import (
	"inventory_manager/internal/models"

	"gorm.io/gorm"
)

type CostRepository interface {
	Create(entry *models.CostEntry) error
	GetByID(id uint) (*models.CostEntry, error)
	GetAll() ([]models.CostEntry, error)
	Update(entry *models.CostEntry) error
	Delete(id uint) error
}

type costRepository struct {
	db *gorm.DB
}

func NewCostRepository(db *gorm.DB) CostRepository {
	return &costRepository{db: db}
}

func (r *costRepository) Create(entry *models.CostEntry) error {
	return r.db.Create(entry).Error
}

func (r *costRepository) GetByID(id uint) (*models.CostEntry, error) {
	var entry models.CostEntry
	err := r.db.First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *costRepository) GetAll() ([]models.CostEntry, error) {
	var entries []models.CostEntry
	err := r.db.Order("date desc, id desc").Find(&entries).Error
	return entries, err
}

func (r *costRepository) Update(entry *models.CostEntry) error {
	return r.db.Save(entry).Error
}

func (r *costRepository) Delete(id uint) error {
	return r.db.Delete(&models.CostEntry{}, id).Error
}
