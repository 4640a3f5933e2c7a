package services

import (
	"errors"
	"fmt"
	"strings"

	"inventory_manager/internal/apperrors"
	"inventory_manager/internal/models"
	"inventory_manager/internal/repository"

	"gorm.io/gorm"
)

type CategoryService interface {
	ListCategories() ([]models.Category, error)
	AddCategory(main, sub string) error
	UpdateCategory(oldMain, oldSub, newMain, newSub string) error
	DeleteCategory(main, sub string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	itemRepo     repository.ItemRepository
	tx           repository.TxManager
}

func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	itemRepo repository.ItemRepository,
	tx repository.TxManager,
) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, itemRepo: itemRepo, tx: tx}
}

func (s *categoryService) ListCategories() ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, storeErr(err)
	}
	return categories, nil
}

func (s *categoryService) AddCategory(main, sub string) error {
	main = strings.TrimSpace(main)
	sub = strings.TrimSpace(sub)
	if main == "" {
		return apperrors.Validation("main category is required")
	}

	return s.tx.Do(func(r repository.Repos) error {
		_, err := r.Categories.GetByPair(main, sub)
		if err == nil {
			return apperrors.Validation(fmt.Sprintf("category %q already exists", models.CategoryTag(main, sub)))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return storeErr(err)
		}
		if err := r.Categories.Create(&models.Category{MainCategory: main, SubCategory: sub}); err != nil {
			return storeErr(err)
		}
		return nil
	})
}

// UpdateCategory renames a category and retags the items carrying the exact
// old tag in the same transaction, so item references never dangle.
func (s *categoryService) UpdateCategory(oldMain, oldSub, newMain, newSub string) error {
	newMain = strings.TrimSpace(newMain)
	newSub = strings.TrimSpace(newSub)
	if newMain == "" {
		return apperrors.Validation("main category is required")
	}

	return s.tx.Do(func(r repository.Repos) error {
		category, err := r.Categories.GetByPair(oldMain, oldSub)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Validation(fmt.Sprintf("category %q not found", models.CategoryTag(oldMain, oldSub)))
			}
			return storeErr(err)
		}
		oldTag := category.Tag()
		category.MainCategory = newMain
		category.SubCategory = newSub
		if err := r.Categories.Update(category); err != nil {
			return storeErr(err)
		}
		if err := r.Items.RetagCategory(oldTag, category.Tag()); err != nil {
			return storeErr(err)
		}
		return nil
	})
}

// DeleteCategory refuses while any item still carries the exact tag. The
// check is a count query, never a cascading delete.
func (s *categoryService) DeleteCategory(main, sub string) error {
	return s.tx.Do(func(r repository.Repos) error {
		category, err := r.Categories.GetByPair(main, sub)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Validation(fmt.Sprintf("category %q not found", models.CategoryTag(main, sub)))
			}
			return storeErr(err)
		}
		count, err := r.Items.CountByCategoryTag(category.Tag())
		if err != nil {
			return storeErr(err)
		}
		if count > 0 {
			return apperrors.Wrap(apperrors.ErrCategoryInUse,
				fmt.Errorf("%d items tagged %q", count, category.Tag()))
		}
		if err := r.Categories.Delete(category); err != nil {
			return storeErr(err)
		}
		return nil
	})
}
