package services

import (
	"errors"
	"strings"

	"inventory_manager/internal/apperrors"
	"inventory_manager/internal/models"
	"inventory_manager/internal/repository"

	"gorm.io/gorm"
)

type CostInput struct {
	Date      string  `json:"date"`
	Item      string  `json:"item"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// CostService manages the append-only stock-in history. Edits and deletes
// are administrative corrections; nothing here cascades to item state.
type CostService interface {
	ListCosts() ([]models.CostEntry, error)
	AddCost(input CostInput) (*models.CostEntry, error)
	UpdateCost(id uint, input CostInput) error
	DeleteCost(id uint) error
}

type costService struct {
	costRepo repository.CostRepository
}

func NewCostService(costRepo repository.CostRepository) CostService {
	return &costService{costRepo: costRepo}
}

func (s *costService) ListCosts() ([]models.CostEntry, error) {
	entries, err := s.costRepo.GetAll()
	if err != nil {
		return nil, storeErr(err)
	}
	return entries, nil
}

func (s *costService) AddCost(input CostInput) (*models.CostEntry, error) {
	if err := validateCost(input); err != nil {
		return nil, err
	}
	entry := &models.CostEntry{
		Date:      input.Date,
		ItemName:  input.Item,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
	}
	entry.RecalculateTotal()
	if err := s.costRepo.Create(entry); err != nil {
		return nil, storeErr(err)
	}
	return entry, nil
}

func (s *costService) UpdateCost(id uint, input CostInput) error {
	if err := validateCost(input); err != nil {
		return err
	}
	entry, err := s.costRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCostEntryNotFound
		}
		return storeErr(err)
	}
	entry.Date = input.Date
	entry.ItemName = input.Item
	entry.Quantity = input.Quantity
	entry.UnitPrice = input.UnitPrice
	entry.RecalculateTotal()
	if err := s.costRepo.Update(entry); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *costService) DeleteCost(id uint) error {
	if _, err := s.costRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCostEntryNotFound
		}
		return storeErr(err)
	}
	if err := s.costRepo.Delete(id); err != nil {
		return storeErr(err)
	}
	return nil
}

func validateCost(input CostInput) error {
	if strings.TrimSpace(input.Item) == "" {
		return apperrors.Validation("cost entry item is required")
	}
	if strings.TrimSpace(input.Date) == "" {
		return apperrors.Validation("cost entry date is required")
	}
	if input.Quantity < 0 || input.UnitPrice < 0 {
		return apperrors.Validation("quantity and unit price cannot be negative")
	}
	return nil
}
