// Package api provides HTTP handlers for the wishlist API.
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/wishlist-api/internal/api/shared"
	"github.com/phrazzld/wishlist-api/internal/domain"
	"github.com/phrazzld/wishlist-api/internal/platform/logger"
	"github.com/phrazzld/wishlist-api/internal/store"
)

// Stable client-facing messages for the wishlist resource.
const (
	msgTitleRequired  = "Title is required"
	msgDuplicateTitle = "A wishlist item with this title already exists."
	msgItemNotFound   = "Wishlist item not found"
)

// WishlistItemRequest represents the request body for creating or updating
// a wishlist item. Category and active are pointers so an omitted field is
// distinguishable from an explicit zero and schema defaults can apply.
type WishlistItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    *int   `json:"category"`
	Active      *int   `json:"active"`
}

// ListWishlistResponse wraps the collection for GET responses. Items is
// always present, [] for an empty collection, never null.
type ListWishlistResponse struct {
	Items []domain.WishlistItem `json:"items"`
}

// WishlistHandler handles wishlist-related HTTP requests.
type WishlistHandler struct {
	wishlistStore store.WishlistStore
	logger        *slog.Logger
}

// NewWishlistHandler creates a new WishlistHandler with the given dependencies.
func NewWishlistHandler(wishlistStore store.WishlistStore, logger *slog.Logger) *WishlistHandler {
	if wishlistStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("wishlistStore cannot be nil for WishlistHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &WishlistHandler{
		wishlistStore: wishlistStore,
		logger:        logger.With(slog.String("component", "wishlist_handler")),
	}
}

// List handles GET /api/wishlist requests.
// Always permitted; returns the full collection.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	items, err := h.wishlistStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to fetch wishlist items", err)
		return
	}

	log.Debug("listed wishlist items", slog.Int("count", len(items)))
	shared.RespondWithJSON(w, r, http.StatusOK, ListWishlistResponse{Items: items})
}

// Create handles POST /api/wishlist requests.
// Field presence is validated before any storage access; a duplicate title
// is detected from the storage backend's constraint violation and answered
// with 409 naming the offending field.
func (h *WishlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req WishlistItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgTitleRequired)
		return
	}

	item, err := domain.NewWishlistItem(req.Title, req.Description, req.Category, req.Active)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid wishlist item data")
		return
	}

	if err := h.wishlistStore.Create(r.Context(), item); err != nil {
		respondWithMappedError(w, r, err, "Failed to create wishlist item")
		return
	}

	log.Info("wishlist item created",
		slog.Int64("item_id", item.ID),
		slog.String("title", item.Title))
	shared.RespondWithJSON(w, r, http.StatusCreated, item)
}

// Update handles PUT /api/wishlist/{id} requests (admin-gated).
// It reuses the create validation and uniqueness rules and refreshes the
// updated timestamp.
func (h *WishlistHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := itemIDFromURL(w, r)
	if !ok {
		return
	}

	var req WishlistItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgTitleRequired)
		return
	}

	item, err := domain.NewWishlistItem(req.Title, req.Description, req.Category, req.Active)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid wishlist item data")
		return
	}
	item.ID = id
	item.Touch()

	// The store writes the row's original creation timestamp back into
	// item.CreatedAt, so the response matches a subsequent read.
	if err := h.wishlistStore.Update(r.Context(), item); err != nil {
		respondWithMappedError(w, r, err, "Failed to update wishlist item")
		return
	}

	log.Info("wishlist item updated", slog.Int64("item_id", item.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// Delete handles DELETE /api/wishlist/{id} requests (admin-gated).
func (h *WishlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := itemIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.wishlistStore.Delete(r.Context(), id); err != nil {
		respondWithMappedError(w, r, err, "Failed to delete wishlist item")
		return
	}

	log.Info("wishlist item deleted", slog.Int64("item_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// itemIDFromURL parses the {id} path parameter as a positive integer,
// answering 400 itself when the parameter is unusable.
func itemIDFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid wishlist item ID")
		return 0, false
	}
	return id, true
}
