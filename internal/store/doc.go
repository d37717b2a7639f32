// Package store defines the persistence interfaces and sentinel errors for
// the wishlist service. Concrete implementations live under
// internal/platform (e.g. the PostgreSQL store); handlers depend only on
// the interfaces defined here.
package store
