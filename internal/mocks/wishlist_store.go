package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/phrazzld/wishlist-api/internal/domain"
	"github.com/phrazzld/wishlist-api/internal/store"
)

// MockWishlistStore is an in-memory store.WishlistStore for handler tests.
// It enforces the same title-uniqueness invariant the database constraint
// would, atomically under a mutex, so concurrent create races resolve to
// exactly one winner just like they do against PostgreSQL.
//
// Per-method function fields override the default behavior when set, which
// is how tests simulate storage failures.
type MockWishlistStore struct {
	ListFn      func(ctx context.Context) ([]domain.WishlistItem, error)
	CreateFn    func(ctx context.Context, item *domain.WishlistItem) error
	UpdateFn    func(ctx context.Context, item *domain.WishlistItem) error
	DeleteFn    func(ctx context.Context, id int64) error
	DeleteAllFn func(ctx context.Context) error

	mu     sync.Mutex
	nextID int64
	items  map[int64]domain.WishlistItem
}

var _ store.WishlistStore = (*MockWishlistStore)(nil)

// NewMockWishlistStore creates an empty in-memory store.
func NewMockWishlistStore() *MockWishlistStore {
	return &MockWishlistStore{
		nextID: 1,
		items:  make(map[int64]domain.WishlistItem),
	}
}

// List implements store.WishlistStore.List, returning items in ID order.
func (m *MockWishlistStore) List(ctx context.Context) ([]domain.WishlistItem, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]domain.WishlistItem, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// Create implements store.WishlistStore.Create.
func (m *MockWishlistStore) Create(ctx context.Context, item *domain.WishlistItem) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, item)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.items {
		if existing.Title == item.Title {
			return store.ErrTitleExists
		}
	}

	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = *item
	return nil
}

// Update implements store.WishlistStore.Update.
func (m *MockWishlistStore) Update(ctx context.Context, item *domain.WishlistItem) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, item)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.items[item.ID]
	if !ok {
		return store.ErrItemNotFound
	}
	for id, existing := range m.items {
		if id != item.ID && existing.Title == item.Title {
			return store.ErrTitleExists
		}
	}

	// Creation time is immutable, matching the SQL store's behavior of
	// never touching "createdAt" on update.
	item.CreatedAt = current.CreatedAt
	m.items[item.ID] = *item
	return nil
}

// Delete implements store.WishlistStore.Delete.
func (m *MockWishlistStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return store.ErrItemNotFound
	}
	delete(m.items, id)
	return nil
}

// DeleteAll implements store.WishlistStore.DeleteAll.
func (m *MockWishlistStore) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFn != nil {
		return m.DeleteAllFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[int64]domain.WishlistItem)
	return nil
}

// Len reports the number of stored items.
func (m *MockWishlistStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
