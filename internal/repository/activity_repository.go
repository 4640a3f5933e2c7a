package repository

import (
	"inventory_manager/internal/models"

	"gorm.io/gorm"
)

type ActivityRepository interface {
	Record(action, detail string) error
	Latest(limit int) ([]models.Activity, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Record(action, detail string) error {
	return r.db.Create(&models.Activity{Action: action, Detail: detail}).Error
}

func (r *activityRepository) Latest(limit int) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.Order("id desc").Limit(limit).Find(&activities).Error
	return activities, err
}
