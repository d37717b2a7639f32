package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/wishlist-api/internal/domain"
	"github.com/phrazzld/wishlist-api/internal/platform/logger"
	"github.com/phrazzld/wishlist-api/internal/store"
)

// PostgresWishlistStore implements the store.WishlistStore interface
// using a PostgreSQL database as the storage backend.
//
// The title-uniqueness invariant is enforced entirely by the table's unique
// constraint; this store never pre-checks for duplicates, so two concurrent
// creates racing on the same title resolve atomically in the database to
// one success and one conflict.
type PostgresWishlistStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWishlistStore creates a new PostgreSQL implementation of the
// WishlistStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresWishlistStore(db store.DBTX, logger *slog.Logger) *PostgresWishlistStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWishlistStore{
		db:     db,
		logger: logger.With(slog.String("component", "wishlist_store")),
	}
}

// Ensure PostgresWishlistStore implements store.WishlistStore interface
var _ store.WishlistStore = (*PostgresWishlistStore)(nil)

// List implements store.WishlistStore.List.
// Returns every row in backend-default order; an empty collection yields an
// empty slice, never nil.
func (s *PostgresWishlistStore) List(ctx context.Context) ([]domain.WishlistItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, category, active, "createdAt", updated
		FROM wishlist
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query wishlist items",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	items := []domain.WishlistItem{}
	for rows.Next() {
		var item domain.WishlistItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Description,
			&item.Category,
			&item.Active,
			&item.CreatedAt,
			&item.Updated,
		); err != nil {
			log.Error("failed to scan wishlist row",
				slog.String("error", err.Error()))
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed wishlist items", slog.Int("count", len(items)))
	return items, nil
}

// Create implements store.WishlistStore.Create.
// It inserts the item and populates item.ID with the backend-assigned key.
// Returns store.ErrTitleExists when the insert trips the title unique
// constraint.
func (s *PostgresWishlistStore) Create(ctx context.Context, item *domain.WishlistItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("wishlist item validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO wishlist (title, description, category, active, "createdAt", updated)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		item.Title,
		item.Description,
		item.Category,
		item.Active,
		item.CreatedAt,
		item.Updated,
	).Scan(&item.ID)

	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrTitleExists) {
			log.Debug("duplicate title on wishlist insert",
				slog.String("title", item.Title))
		} else {
			log.Error("failed to create wishlist item",
				slog.String("error", err.Error()),
				slog.String("title", item.Title))
		}
		return mapped
	}

	log.Info("wishlist item created",
		slog.Int64("item_id", item.ID),
		slog.String("title", item.Title))
	return nil
}

// Update implements store.WishlistStore.Update.
// The row's creation timestamp is immutable: the UPDATE never touches
// "createdAt" and the stored value is scanned back into item.CreatedAt so
// callers respond with the same record a subsequent read would return.
// Returns store.ErrItemNotFound if no row has the item's ID and
// store.ErrTitleExists if the new title collides with another row.
func (s *PostgresWishlistStore) Update(ctx context.Context, item *domain.WishlistItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("wishlist item validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("item_id", item.ID))
		return err
	}

	query := `
		UPDATE wishlist
		SET title = $1, description = $2, category = $3, active = $4, updated = $5
		WHERE id = $6
		RETURNING "createdAt"
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		item.Title,
		item.Description,
		item.Category,
		item.Active,
		item.Updated,
		item.ID,
	).Scan(&item.CreatedAt)

	if err != nil {
		mapped := MapError(err)
		switch {
		case errors.Is(mapped, store.ErrTitleExists):
			log.Debug("duplicate title on wishlist update",
				slog.Int64("item_id", item.ID),
				slog.String("title", item.Title))
		case errors.Is(mapped, store.ErrItemNotFound):
			log.Debug("wishlist item not found for update",
				slog.Int64("item_id", item.ID))
		default:
			log.Error("failed to update wishlist item",
				slog.String("error", err.Error()),
				slog.Int64("item_id", item.ID))
		}
		return mapped
	}

	log.Info("wishlist item updated",
		slog.Int64("item_id", item.ID),
		slog.String("title", item.Title))
	return nil
}

// Delete implements store.WishlistStore.Delete.
// Returns store.ErrItemNotFound if no row has the given ID.
func (s *PostgresWishlistStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM wishlist WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete wishlist item",
			slog.String("error", err.Error()),
			slog.Int64("item_id", id))
		return err
	}

	if err := CheckRowsAffected(result); err != nil {
		log.Debug("wishlist item not found for delete", slog.Int64("item_id", id))
		return err
	}

	log.Info("wishlist item deleted", slog.Int64("item_id", id))
	return nil
}

// DeleteAll implements store.WishlistStore.DeleteAll.
// Test fixture support; not reachable from any HTTP route.
func (s *PostgresWishlistStore) DeleteAll(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `TRUNCATE TABLE wishlist RESTART IDENTITY`); err != nil {
		log.Error("failed to clear wishlist table", slog.String("error", err.Error()))
		return err
	}

	log.Debug("wishlist table cleared")
	return nil
}
