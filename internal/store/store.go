// Package store provides the key/value persistence used for saved recipes,
// generation history, the shopping list and the user profile.
package store

import (
	"context"
	"errors"
)

// Fixed keys under which user data is kept.
const (
	KeySavedRecipes  = "saved-recipes"
	KeyRecipeHistory = "recipe-history"
	KeyShoppingList  = "shopping-list"
	KeyUserProfile   = "user-profile"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("key not found")

// Store defines the interface for key/value data operations. Values are
// JSON encoded; Get decodes into dst.
type Store interface {
	Get(ctx context.Context, key string, dst any) error
	Put(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Close() error
}
