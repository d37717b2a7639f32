// Package postgres provides PostgreSQL implementations of the store
// interfaces, along with helpers that translate driver-level errors
// (unique violations, missing rows) into the store's sentinel errors.
package postgres
