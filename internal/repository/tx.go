package repository

import "gorm.io/gorm"

// Repos bundles the repositories that participate in a single transaction.
type Repos struct {
	Items      ItemRepository
	Orders     OrderRepository
	Categories CategoryRepository
}

// TxManager runs a unit of work atomically against the source of truth.
// Check-and-reserve happens inside one transaction, so two near-simultaneous
// order creations cannot both pass the availability check on stale data.
type TxManager interface {
	Do(fn func(r Repos) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Do(fn func(r Repos) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(Repos{
			Items:      NewItemRepository(tx),
			Orders:     NewOrderRepository(tx),
			Categories: NewCategoryRepository(tx),
		})
	})
}
