package store

import (
	"context"

	"github.com/phrazzld/wishlist-api/internal/domain"
)

// WishlistStore defines the persistence operations for wishlist items.
// Implementations must delegate the title-uniqueness invariant to the
// backend's own constraint mechanism so that concurrent creates racing on
// the same title yield exactly one success.
type WishlistStore interface {
	// List retrieves all wishlist items in backend-default order.
	// Returns an empty slice (never nil) when the collection is empty.
	List(ctx context.Context) ([]domain.WishlistItem, error)

	// Create inserts a new item and populates item.ID with the
	// backend-assigned integer key.
	// Returns ErrTitleExists if the title is already taken.
	Create(ctx context.Context, item *domain.WishlistItem) error

	// Update saves changes to an existing item, refreshing its updated
	// timestamp column. The creation timestamp is immutable: the stored
	// value is written back into item.CreatedAt so the caller holds the
	// same record a subsequent read would return.
	// Returns ErrItemNotFound if no item has the given ID and
	// ErrTitleExists if the new title collides with another item.
	Update(ctx context.Context, item *domain.WishlistItem) error

	// Delete removes the item with the given ID.
	// Returns ErrItemNotFound if no such item exists.
	Delete(ctx context.Context, id int64) error

	// DeleteAll clears the entire collection. Test fixture support only;
	// no HTTP route exposes it.
	DeleteAll(ctx context.Context) error
}
