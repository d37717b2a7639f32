package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNewWishlistItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		title       string
		description string
		category    *int
		active      *int
		wantErr     error
		wantCat     int
		wantActive  int
	}{
		{
			name:        "valid item with explicit fields",
			title:       "Setup Item",
			description: "Test Desc",
			category:    intPtr(2),
			active:      intPtr(0),
			wantCat:     2,
			wantActive:  0,
		},
		{
			name:       "defaults applied when optional fields omitted",
			title:      "Bare Item",
			wantCat:    DefaultCategory,
			wantActive: DefaultActive,
		},
		{
			name:    "empty title",
			title:   "",
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "whitespace-only title",
			title:   "   ",
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "active flag out of range",
			title:   "Flag Item",
			active:  intPtr(2),
			wantErr: ErrInvalidActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewWishlistItem(tt.title, tt.description, tt.category, tt.active)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, item)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.title, item.Title)
			assert.Equal(t, tt.description, item.Description)
			assert.Equal(t, tt.wantCat, item.Category)
			assert.Equal(t, tt.wantActive, item.Active)
			assert.Equal(t, int64(0), item.ID, "ID is assigned by the store, not the constructor")
			assert.False(t, item.CreatedAt.IsZero())
			assert.Equal(t, item.CreatedAt, item.Updated)
		})
	}
}

func TestWishlistItemTouch(t *testing.T) {
	t.Parallel()

	item, err := NewWishlistItem("Touch Item", "", nil, nil)
	require.NoError(t, err)

	created := item.CreatedAt
	time.Sleep(5 * time.Millisecond)
	item.Touch()

	assert.Equal(t, created, item.CreatedAt, "CreatedAt is immutable")
	assert.True(t, item.Updated.After(created))
}
