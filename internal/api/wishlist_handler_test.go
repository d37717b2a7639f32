package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/wishlist-api/internal/api/shared"
	"github.com/phrazzld/wishlist-api/internal/domain"
	"github.com/phrazzld/wishlist-api/internal/mocks"
	"github.com/phrazzld/wishlist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter mounts the handler the way the server does, so URL
// parameters resolve through chi.
func newTestRouter(h *WishlistHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/wishlist", h.List)
	r.Post("/api/wishlist", h.Create)
	r.Put("/api/wishlist/{id}", h.Update)
	r.Delete("/api/wishlist/{id}", h.Delete)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestListWishlist(t *testing.T) {
	t.Parallel()

	t.Run("empty collection returns items as empty array", func(t *testing.T) {
		router := newTestRouter(NewWishlistHandler(mocks.NewMockWishlistStore(), nil))

		recorder := doJSON(t, router, http.MethodGet, "/api/wishlist", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"items":[]}`, recorder.Body.String())
	})

	t.Run("returns stored items", func(t *testing.T) {
		wishlistStore := mocks.NewMockWishlistStore()
		item, err := domain.NewWishlistItem("Setup Item", "Test Desc", nil, nil)
		require.NoError(t, err)
		require.NoError(t, wishlistStore.Create(context.Background(), item))

		router := newTestRouter(NewWishlistHandler(wishlistStore, nil))
		recorder := doJSON(t, router, http.MethodGet, "/api/wishlist", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp ListWishlistResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Setup Item", resp.Items[0].Title)
		assert.Equal(t, item.ID, resp.Items[0].ID)
		assert.Positive(t, resp.Items[0].ID)
	})

	t.Run("repeated reads return identical item sets", func(t *testing.T) {
		wishlistStore := mocks.NewMockWishlistStore()
		for _, title := range []string{"One", "Two", "Three"} {
			item, err := domain.NewWishlistItem(title, "", nil, nil)
			require.NoError(t, err)
			require.NoError(t, wishlistStore.Create(context.Background(), item))
		}

		router := newTestRouter(NewWishlistHandler(wishlistStore, nil))
		first := doJSON(t, router, http.MethodGet, "/api/wishlist", nil)
		second := doJSON(t, router, http.MethodGet, "/api/wishlist", nil)

		assert.Equal(t, http.StatusOK, first.Code)
		assert.JSONEq(t, first.Body.String(), second.Body.String())
	})

	t.Run("storage error surfaces as 500 with generic message", func(t *testing.T) {
		wishlistStore := mocks.NewMockWishlistStore()
		wishlistStore.ListFn = func(ctx context.Context) ([]domain.WishlistItem, error) {
			return nil, errors.New("pq: connection reset")
		}

		router := newTestRouter(NewWishlistHandler(wishlistStore, nil))
		recorder := doJSON(t, router, http.MethodGet, "/api/wishlist", nil)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "Failed to fetch wishlist items", resp.Error)
		assert.NotContains(t, recorder.Body.String(), "pq:")
	})
}

func TestCreateWishlistItem(t *testing.T) {
	t.Parallel()

	t.Run("valid payload returns 201 with assigned integer id", func(t *testing.T) {
		wishlistStore := mocks.NewMockWishlistStore()
		router := newTestRouter(NewWishlistHandler(wishlistStore, nil))

		recorder := doJSON(t, router, http.MethodPost, "/api/wishlist", map[string]any{
			"title":       "Test Item",
			"description": "Test description",
			"category":    1,
			"active":      1,
		})

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var created domain.WishlistItem
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
		assert.Equal(t, "Test Item", created.Title)
		assert.Equal(t, "Test description", created.Description)
		assert.Equal(t, 1, created.Category)
		assert.Equal(t, 1, created.Active)
		assert.Positive(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		// The raw JSON id must be a number, not a string surrogate.
		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &raw))
		assert.Regexp(t, `^\d+$`, string(raw["id"]))

		assert.Equal(t, 1, wishlistStore.Len())
	})

	t.Run("defaults applied for omitted optional fields", func(t *testing.T) {
		wishlistStore := mocks.NewMockWishlistStore()
		router := newTestRouter(NewWishlistHandler(wishlistStore, nil))

		recorder := doJSON(t, router, http.MethodPost, "/api/wishlist", map[string]any{
			"title": "Bare Item",
		})

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var created domain.WishlistItem
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
		assert.Equal(t, domain.DefaultCategory, created.Category)
		assert.Equal(t, domain.DefaultActive, created.Active)
	})

	t.Run("missing title returns 400 and persists nothing", func(t *testing.T) {
		tests := []map[string]any{
			{"description": "No title"},
			{"title": ""},
			{"title": "   "},
		}

		for _, payload := range tests {
			wishlistStore := mocks.NewMockWishlistStore()
			router := newTestRouter(NewWishlistHandler(wishlistStore, nil))

			recorder := doJSON(t, router, http.MethodPost, "/api/wishlist", payload)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			var resp shared.ErrorResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
			assert.Equal(t, "Title is required", resp.Error)
			assert.Equal(t, 0, wishlistStore.Len(), "no row may be persisted on validation failure")
		}
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		router := newTestRouter(NewWishlistHandler(mocks.NewMockWishlistStore(), nil))

		req := httptest.NewRequest(http.MethodPost, "/api/wishlist", bytes.NewReader([]byte("{not json")))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("duplicate title returns 409 with conflict details", func(t *testing.T) {
		wishlistStore := mocks.NewMockWishlistStore()
		router := newTestRouter(NewWishlistHandler(wishlistStore, nil))

		payload := map[string]any{"title": "Unique Test Title", "description": "Initial post"}

		first := doJSON(t, router, http.MethodPost, "/api/wishlist", payload)
		require.Equal(t, http.StatusCreated, first.Code)

		second := doJSON(t, router, http.MethodPost, "/api/wishlist", payload)
		assert.Equal(t, http.StatusConflict, second.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
		assert.Equal(t, "A wishlist item with this title already exists.", resp.Error)
		require.NotNil(t, resp.Details)
		assert.Equal(t, "title", resp.Details.Field)

		assert.Equal(t, 1, wishlistStore.Len(), "conflict must leave exactly one row with the title")
	})

	t.Run("storage error returns 500 with generic message", func(t *testing.T) {
		wishlistStore := mocks.NewMockWishlistStore()
		wishlistStore.CreateFn = func(ctx context.Context, item *domain.WishlistItem) error {
			return errors.New("pq: too many connections")
		}

		router := newTestRouter(NewWishlistHandler(wishlistStore, nil))
		recorder := doJSON(t, router, http.MethodPost, "/api/wishlist", map[string]any{"title": "X"})

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "Failed to create wishlist item", resp.Error)
	})
}

func TestCreateWishlistItemConcurrentDuplicates(t *testing.T) {
	t.Parallel()

	// N concurrent creates racing on one title must yield exactly one 201
	// and N-1 409s. The mock enforces uniqueness atomically the same way
	// the database constraint does.
	const n = 20

	wishlistStore := mocks.NewMockWishlistStore()
	router := newTestRouter(NewWishlistHandler(wishlistStore, nil))

	var wg sync.WaitGroup
	codes := make(chan int, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			body, _ := json.Marshal(map[string]any{"title": "Contended Title"})
			req := httptest.NewRequest(http.MethodPost, "/api/wishlist", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			codes <- recorder.Code
		}()
	}
	wg.Wait()
	close(codes)

	var created, conflicted int
	for code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		default:
			t.Fatalf("unexpected status code %d", code)
		}
	}

	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, conflicted)
	assert.Equal(t, 1, wishlistStore.Len())
}

func TestUpdateWishlistItem(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, wishlistStore *mocks.MockWishlistStore, title string) *domain.WishlistItem {
		t.Helper()
		item, err := domain.NewWishlistItem(title, "", nil, nil)
		require.NoError(t, err)
		require.NoError(t, wishlistStore.Create(context.Background(), item))
		return item
	}

	t.Run("updates existing item", func(t *testing.T) {
		wishlistStore := mocks.NewMockWishlistStore()
		item := seed(t, wishlistStore, "Old Title")

		router := newTestRouter(NewWishlistHandler(wishlistStore, nil))
		recorder := doJSON(t, router, http.MethodPut,
			fmt.Sprintf("/api/wishlist/%d", item.ID),
			map[string]any{"title": "New Title", "description": "changed"})

		assert.Equal(t, http.StatusOK, recorder.Code)

		var updated domain.WishlistItem
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
		assert.Equal(t, item.ID, updated.ID)
		assert.Equal(t, "New Title", updated.Title)
	})

	t.Run("response keeps the original creation timestamp", func(t *testing.T) {
		wishlistStore := mocks.NewMockWishlistStore()
		router := newTestRouter(NewWishlistHandler(wishlistStore, nil))

		created := doJSON(t, router, http.MethodPost, "/api/wishlist",
			map[string]any{"title": "Timestamped Item"})
		require.Equal(t, http.StatusCreated, created.Code)
		var original domain.WishlistItem
		require.NoError(t, json.Unmarshal(created.Body.Bytes(), &original))

		recorder := doJSON(t, router, http.MethodPut,
			fmt.Sprintf("/api/wishlist/%d", original.ID),
			map[string]any{"title": "Timestamped Item v2"})
		assert.Equal(t, http.StatusOK, recorder.Code)

		var updated domain.WishlistItem
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
		assert.True(t, updated.CreatedAt.Equal(original.CreatedAt),
			"createdAt must not move on update: was %v, got %v",
			original.CreatedAt, updated.CreatedAt)
		assert.False(t, updated.Updated.Before(original.Updated))

		// A subsequent read agrees with the PUT response.
		listed := doJSON(t, router, http.MethodGet, "/api/wishlist", nil)
		var resp ListWishlistResponse
		require.NoError(t, json.Unmarshal(listed.Body.Bytes(), &resp))
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].CreatedAt.Equal(updated.CreatedAt))
	})

	t.Run("missing item returns 404", func(t *testing.T) {
		router := newTestRouter(NewWishlistHandler(mocks.NewMockWishlistStore(), nil))

		recorder := doJSON(t, router, http.MethodPut, "/api/wishlist/42",
			map[string]any{"title": "Anything"})

		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "Wishlist item not found", resp.Error)
	})

	t.Run("title collision with another item returns 409", func(t *testing.T) {
		wishlistStore := mocks.NewMockWishlistStore()
		seed(t, wishlistStore, "Taken Title")
		target := seed(t, wishlistStore, "Target Item")

		router := newTestRouter(NewWishlistHandler(wishlistStore, nil))
		recorder := doJSON(t, router, http.MethodPut,
			fmt.Sprintf("/api/wishlist/%d", target.ID),
			map[string]any{"title": "Taken Title"})

		assert.Equal(t, http.StatusConflict, recorder.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		require.NotNil(t, resp.Details)
		assert.Equal(t, "title", resp.Details.Field)
	})

	t.Run("empty title returns 400 before storage access", func(t *testing.T) {
		wishlistStore := mocks.NewMockWishlistStore()
		item := seed(t, wishlistStore, "Existing")
		wishlistStore.UpdateFn = func(ctx context.Context, item *domain.WishlistItem) error {
			t.Fatal("store must not be reached on validation failure")
			return nil
		}

		router := newTestRouter(NewWishlistHandler(wishlistStore, nil))
		recorder := doJSON(t, router, http.MethodPut,
			fmt.Sprintf("/api/wishlist/%d", item.ID),
			map[string]any{"title": ""})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "Title is required", resp.Error)
	})

	t.Run("non-numeric id returns 400", func(t *testing.T) {
		router := newTestRouter(NewWishlistHandler(mocks.NewMockWishlistStore(), nil))

		recorder := doJSON(t, router, http.MethodPut, "/api/wishlist/abc",
			map[string]any{"title": "Anything"})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestDeleteWishlistItem(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing item", func(t *testing.T) {
		wishlistStore := mocks.NewMockWishlistStore()
		item, err := domain.NewWishlistItem("Doomed Item", "", nil, nil)
		require.NoError(t, err)
		require.NoError(t, wishlistStore.Create(context.Background(), item))

		router := newTestRouter(NewWishlistHandler(wishlistStore, nil))
		recorder := doJSON(t, router, http.MethodDelete,
			fmt.Sprintf("/api/wishlist/%d", item.ID), nil)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Equal(t, 0, wishlistStore.Len())
	})

	t.Run("missing item returns 404", func(t *testing.T) {
		router := newTestRouter(NewWishlistHandler(mocks.NewMockWishlistStore(), nil))

		recorder := doJSON(t, router, http.MethodDelete, "/api/wishlist/42", nil)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("storage error returns 500", func(t *testing.T) {
		wishlistStore := mocks.NewMockWishlistStore()
		wishlistStore.DeleteFn = func(ctx context.Context, id int64) error {
			return errors.New("pq: disk full")
		}

		router := newTestRouter(NewWishlistHandler(wishlistStore, nil))
		recorder := doJSON(t, router, http.MethodDelete, "/api/wishlist/1", nil)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

// Keep the exhaustive mapping honest about the sentinel kinds it handles.
func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"title conflict", store.ErrTitleExists, http.StatusConflict},
		{"wrapped title conflict", fmt.Errorf("create: %w", store.ErrTitleExists), http.StatusConflict},
		{"item not found", store.ErrItemNotFound, http.StatusNotFound},
		{"empty title", domain.ErrEmptyTitle, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}
