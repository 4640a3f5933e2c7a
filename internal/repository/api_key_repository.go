package repository

import (
	"time"

	"inventory_manager/internal/models"

	"gorm.io/gorm"
)

type APIKeyRepository interface {
	Create(key *models.APIKey) error
	GetActive() ([]models.APIKey, error)
	Touch(id uint) error
}

type apiKeyRepository struct {
	db *gorm.DB
}

func NewAPIKeyRepository(db *gorm.DB) APIKeyRepository {
	return &apiKeyRepository{db: db}
}

func (r *apiKeyRepository) Create(key *models.APIKey) error {
	return r.db.Create(key).Error
}

func (r *apiKeyRepository) GetActive() ([]models.APIKey, error) {
	var keys []models.APIKey
	err := r.db.Where("active = ?", true).Find(&keys).Error
	return keys, err
}

func (r *apiKeyRepository) Touch(id uint) error {
	now := time.Now()
	return r.db.Model(&models.APIKey{}).Where("id = ?", id).
		Update("last_used_at", &now).Error
}
