package domain

import (
	"errors"
	"strings"
	"time"
)

// Defaults applied when the caller omits optional fields. They mirror the
// column defaults declared in the wishlist table schema.
const (
	DefaultCategory = 0
	DefaultActive   = 1
)

// Common validation errors for WishlistItem
var (
	ErrEmptyTitle    = errors.New("wishlist item title cannot be empty")
	ErrInvalidActive = errors.New("wishlist item active flag must be 0 or 1")
)

// WishlistItem represents a single record in the wishlist collection.
// The ID is assigned by the storage backend on creation and is immutable
// thereafter. Title is unique across the entire collection.
//
// The JSON field names follow the wire contract expected by existing
// clients (camelCase, with the 0/1 active flag serialized as a number).
type WishlistItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    int       `json:"category"`
	Active      int       `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	Updated     time.Time `json:"updated"`
}

// NewWishlistItem creates a new WishlistItem with the given fields.
// Category and active may be nil, in which case the schema defaults apply.
// Both timestamps are set to the current instant; the ID is left zero until
// the storage backend assigns one.
// Returns an error if validation fails.
func NewWishlistItem(title, description string, category, active *int) (*WishlistItem, error) {
	now := time.Now().UTC()

	item := &WishlistItem{
		Title:       title,
		Description: description,
		Category:    DefaultCategory,
		Active:      DefaultActive,
		CreatedAt:   now,
		Updated:     now,
	}

	if category != nil {
		item.Category = *category
	}
	if active != nil {
		item.Active = *active
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the WishlistItem has valid data.
// Returns an error if any field fails validation.
func (i *WishlistItem) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return ErrEmptyTitle
	}

	if i.Active != 0 && i.Active != 1 {
		return ErrInvalidActive
	}

	return nil
}

// Touch refreshes the Updated timestamp. Called on every mutation so that
// updated always reflects the last write.
func (i *WishlistItem) Touch() {
	i.Updated = time.Now().UTC()
}
