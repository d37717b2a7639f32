// Package domain contains the core entities of the wishlist service.
// Entities validate themselves and carry no storage or transport concerns.
package domain
