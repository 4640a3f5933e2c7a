package services

import (
	"testing"
	"time"

	"inventory_manager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActivityRepo struct {
	activities []models.Activity
}

func (r *fakeActivityRepo) Record(action, detail string) error {
	r.activities = append(r.activities, models.Activity{Action: action, Detail: detail})
	return nil
}

func (r *fakeActivityRepo) Latest(limit int) ([]models.Activity, error) {
	if len(r.activities) > limit {
		return r.activities[:limit], nil
	}
	return r.activities, nil
}

func TestSnapshotBuild(t *testing.T) {
	completedAt := time.Date(2024, 1, 25, 14, 30, 0, 0, time.UTC)
	itemRepo := newFakeItemRepo(
		&models.Item{Name: "杯具", TotalStock: 10, ReservedStock: 3, UnitCost: 100, Price: 250, Category: "餐具 > 杯子"},
	)
	orderRepo := newFakeOrderRepo(
		&models.Order{
			ID: "o1", Status: string(models.OrderPending), CustomerName: "林小姐",
			TotalPrice: 500, Profit: 200, OrderDate: completedAt,
			Lines: []models.OrderLine{{ItemName: "杯具", Quantity: 2}},
		},
		&models.Order{
			ID: "o2", Status: string(models.OrderCompleted), CustomerName: "陳先生",
			TotalPrice: 250, Profit: 150, CompletedAt: &completedAt,
			Lines: []models.OrderLine{{ItemName: "杯具", Quantity: 1}},
		},
	)
	categoryRepo := newFakeCategoryRepo(&models.Category{MainCategory: "餐具", SubCategory: "杯子"})
	costRepo := newFakeCostRepo()
	tx := &fakeTxManager{items: itemRepo, orders: orderRepo, categories: categoryRepo}
	activityRepo := &fakeActivityRepo{}
	activityRepo.Record("addItem", "新增商品「杯具」")

	svc := NewSnapshotService(
		NewInventoryService(itemRepo, orderRepo, tx, nil, 5),
		NewOrderService(orderRepo, itemRepo, tx, nil, 5),
		NewCostService(costRepo),
		NewCategoryService(categoryRepo, itemRepo, tx),
		activityRepo,
	)

	snapshot, err := svc.Build()
	require.NoError(t, err)

	assert.Equal(t, "success", snapshot.Status)

	require.Len(t, snapshot.Inventory, 1)
	row := snapshot.Inventory[0]
	assert.Equal(t, "杯具", row.Item)
	assert.Equal(t, 10, row.TotalStock)
	assert.Equal(t, 3, row.PreOrderStock)
	assert.Equal(t, 7, row.AvailableStock)
	assert.Equal(t, "60.0%", row.Margin)

	require.Len(t, snapshot.Pricings, 1)
	assert.Equal(t, "60.0%", snapshot.Pricings[0].Margin)

	require.Len(t, snapshot.Orders, 1)
	assert.Equal(t, "o1", snapshot.Orders[0].ID)
	assert.Equal(t, "杯具 x 2", snapshot.Orders[0].Details)

	require.Len(t, snapshot.CompletedOrders, 1)
	completed := snapshot.CompletedOrders[0]
	assert.Equal(t, "o2", completed.ID)
	assert.Equal(t, "2024-01-25 14:30:00", completed.Date, "completed orders report their completion date")
	assert.Equal(t, "60.0%", completed.Margin)

	require.Len(t, snapshot.Categories, 1)
	require.Len(t, snapshot.Logs, 1)
	assert.Equal(t, "addItem", snapshot.Logs[0].Action)
}
