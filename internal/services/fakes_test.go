package services

import (
	"os"
	"sort"
	"testing"

	"inventory_manager/internal/logger"
	"inventory_manager/internal/models"
	"inventory_manager/internal/repository"

	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Initialize("development")
	os.Exit(m.Run())
}

// ---- in-memory fakes backing the service tests ----

type fakeItemRepo struct {
	items map[string]*models.Item
}

func newFakeItemRepo(items ...*models.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: map[string]*models.Item{}}
	for _, item := range items {
		r.items[item.Name] = item
	}
	return r
}

func (r *fakeItemRepo) Create(item *models.Item) error {
	r.items[item.Name] = item
	return nil
}

func (r *fakeItemRepo) GetByName(name string) (*models.Item, error) {
	item, ok := r.items[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *fakeItemRepo) GetByNameForUpdate(name string) (*models.Item, error) {
	return r.GetByName(name)
}

func (r *fakeItemRepo) GetAll() ([]models.Item, error) {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	items := make([]models.Item, 0, len(names))
	for _, name := range names {
		items = append(items, *r.items[name])
	}
	return items, nil
}

func (r *fakeItemRepo) Update(item *models.Item) error {
	// A rename must not leave the old name resolving, matching the unique
	// name column in the real store.
	for name, existing := range r.items {
		if existing == item && name != item.Name {
			delete(r.items, name)
		}
	}
	r.items[item.Name] = item
	return nil
}

func (r *fakeItemRepo) Delete(item *models.Item) error {
	delete(r.items, item.Name)
	return nil
}

func (r *fakeItemRepo) CountByCategoryTag(tag string) (int64, error) {
	var count int64
	for _, item := range r.items {
		if item.Category == tag {
			count++
		}
	}
	return count, nil
}

func (r *fakeItemRepo) RetagCategory(oldTag, newTag string) error {
	for _, item := range r.items {
		if item.Category == oldTag {
			item.Category = newTag
		}
	}
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*models.Order
}

func newFakeOrderRepo(orders ...*models.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[string]*models.Order{}}
	for _, order := range orders {
		r.orders[order.ID] = order
	}
	return r
}

func (r *fakeOrderRepo) Create(order *models.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (r *fakeOrderRepo) GetByIDForUpdate(id string) (*models.Order, error) {
	return r.GetByID(id)
}

func (r *fakeOrderRepo) GetByStatus(status models.OrderStatus) ([]models.Order, error) {
	var out []models.Order
	for _, order := range r.orders {
		if order.Status == string(status) {
			out = append(out, *order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOrderRepo) Update(order *models.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) Delete(order *models.Order) error {
	delete(r.orders, order.ID)
	return nil
}

func (r *fakeOrderRepo) CountPendingLinesForItem(itemName string) (int64, error) {
	var count int64
	for _, order := range r.orders {
		if order.Status != string(models.OrderPending) {
			continue
		}
		for _, line := range order.Lines {
			if line.ItemName == itemName {
				count++
			}
		}
	}
	return count, nil
}

func (r *fakeOrderRepo) SumPendingQuantityForItem(itemName string) (int64, error) {
	var sum int64
	for _, order := range r.orders {
		if order.Status != string(models.OrderPending) {
			continue
		}
		for _, line := range order.Lines {
			if line.ItemName == itemName {
				sum += int64(line.Quantity)
			}
		}
	}
	return sum, nil
}

type fakeCategoryRepo struct {
	nextID     uint
	categories map[uint]*models.Category
}

func newFakeCategoryRepo(categories ...*models.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: map[uint]*models.Category{}}
	for _, category := range categories {
		r.nextID++
		category.ID = r.nextID
		r.categories[category.ID] = category
	}
	return r
}

func (r *fakeCategoryRepo) Create(category *models.Category) error {
	r.nextID++
	category.ID = r.nextID
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) GetAll() ([]models.Category, error) {
	var out []models.Category
	for _, category := range r.categories {
		out = append(out, *category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCategoryRepo) GetByPair(main, sub string) (*models.Category, error) {
	for _, category := range r.categories {
		if category.MainCategory == main && category.SubCategory == sub {
			return category, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCategoryRepo) Update(category *models.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) Delete(category *models.Category) error {
	delete(r.categories, category.ID)
	return nil
}

// fakeTxManager runs the unit of work directly against the fakes. Rollback
// is not simulated; tests assert only on paths where the services mutate
// nothing before failing.
type fakeTxManager struct {
	items      *fakeItemRepo
	orders     *fakeOrderRepo
	categories *fakeCategoryRepo
}

func (m *fakeTxManager) Do(fn func(r repository.Repos) error) error {
	return fn(repository.Repos{
		Items:      m.items,
		Orders:     m.orders,
		Categories: m.categories,
	})
}
