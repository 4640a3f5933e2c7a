package services

import (
	"testing"

	"inventory_manager/internal/apperrors"
	"inventory_manager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCostRepo struct {
	nextID  uint
	entries map[uint]*models.CostEntry
}

func newFakeCostRepo() *fakeCostRepo {
	return &fakeCostRepo{entries: map[uint]*models.CostEntry{}}
}

func (r *fakeCostRepo) Create(entry *models.CostEntry) error {
	r.nextID++
	entry.ID = r.nextID
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeCostRepo) GetByID(id uint) (*models.CostEntry, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return entry, nil
}

func (r *fakeCostRepo) GetAll() ([]models.CostEntry, error) {
	var out []models.CostEntry
	for _, entry := range r.entries {
		out = append(out, *entry)
	}
	return out, nil
}

func (r *fakeCostRepo) Update(entry *models.CostEntry) error {
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeCostRepo) Delete(id uint) error {
	delete(r.entries, id)
	return nil
}

func TestAddCost(t *testing.T) {
	svc := NewCostService(newFakeCostRepo())

	entry, err := svc.AddCost(CostInput{Date: "2024-01-10", Item: "杯具", Quantity: 20, UnitPrice: 100})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, entry.TotalPrice, "total is derived, never taken from the client")
}

func TestAddCostValidation(t *testing.T) {
	svc := NewCostService(newFakeCostRepo())

	cases := []CostInput{
		{Date: "2024-01-10", Item: "", Quantity: 1, UnitPrice: 1},
		{Date: "", Item: "杯具", Quantity: 1, UnitPrice: 1},
		{Date: "2024-01-10", Item: "杯具", Quantity: -1, UnitPrice: 1},
	}
	for _, input := range cases {
		_, err := svc.AddCost(input)
		assert.Equal(t, 400, apperrors.HTTPStatus(err))
	}
}

func TestUpdateCostRecomputesTotal(t *testing.T) {
	repo := newFakeCostRepo()
	svc := NewCostService(repo)
	entry, err := svc.AddCost(CostInput{Date: "2024-01-10", Item: "杯具", Quantity: 20, UnitPrice: 100})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateCost(entry.ID, CostInput{Date: "2024-01-10", Item: "杯具", Quantity: 10, UnitPrice: 120}))
	assert.Equal(t, 1200.0, repo.entries[entry.ID].TotalPrice)
}

func TestCostNotFound(t *testing.T) {
	svc := NewCostService(newFakeCostRepo())

	err := svc.UpdateCost(42, CostInput{Date: "2024-01-10", Item: "杯具", Quantity: 1, UnitPrice: 1})
	assert.ErrorIs(t, err, apperrors.ErrCostEntryNotFound)

	assert.ErrorIs(t, svc.DeleteCost(42), apperrors.ErrCostEntryNotFound)
}
