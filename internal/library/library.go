// Package library keeps the user's saved recipes, generation history,
// nutrition profile and shopping list in a store.Store.
package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pantrychef/internal/nutrition"
	"pantrychef/internal/recipe"
	"pantrychef/internal/shopping"
	"pantrychef/internal/store"
)

// HistoryLimit is the number of generations kept in history.
const HistoryLimit = 10

var (
	// ErrRecipeNotFound is returned when no saved recipe has the given id.
	ErrRecipeNotFound = errors.New("saved recipe not found")
	// ErrNoProfile is returned before a profile has been stored.
	ErrNoProfile = errors.New("user profile not set")
)

// Option configures a Library.
type Option func(*Library)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Library) {
		l.now = now
	}
}

// WithIDFunc overrides how saved recipe ids are generated.
func WithIDFunc(fn func() string) Option {
	return func(l *Library) {
		l.newID = fn
	}
}

// Library serializes read-modify-write cycles against the store.
type Library struct {
	store store.Store
	log   *zap.Logger
	now   func() time.Time
	newID func() string
	mu    sync.Mutex
}

// New creates a Library backed by s.
func New(s store.Store, log *zap.Logger, opts ...Option) *Library {
	l := &Library{
		store: s,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SavedRecipes returns the saved recipes, oldest first.
func (l *Library) SavedRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	return l.recipes(ctx, store.KeySavedRecipes)
}

// SaveRecipe stores a copy of r with a fresh id and timestamp. A recipe whose
// title matches an already saved one is not stored again; the existing entry
// is returned with created false.
func (l *Library) SaveRecipe(ctx context.Context, r *recipe.Recipe, chefName string) (*recipe.Recipe, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	saved, err := l.recipes(ctx, store.KeySavedRecipes)
	if err != nil {
		return nil, false, err
	}
	for i := range saved {
		if strings.EqualFold(saved[i].Title, r.Title) {
			return &saved[i], false, nil
		}
	}

	entry := r.Clone()
	entry.ID = l.newID()
	now := l.now().UTC()
	entry.SavedAt = &now
	if chefName != "" {
		entry.ChefName = chefName
	}

	saved = append(saved, *entry)
	if err := l.store.Put(ctx, store.KeySavedRecipes, saved); err != nil {
		return nil, false, fmt.Errorf("failed to save recipe: %w", err)
	}
	l.log.Info("recipe saved", zap.String("id", entry.ID), zap.String("title", entry.Title))
	return entry, true, nil
}

// DeleteRecipe removes the saved recipe with the given id.
func (l *Library) DeleteRecipe(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	saved, err := l.recipes(ctx, store.KeySavedRecipes)
	if err != nil {
		return err
	}
	for i := range saved {
		if saved[i].ID == id {
			saved = append(saved[:i], saved[i+1:]...)
			if err := l.store.Put(ctx, store.KeySavedRecipes, saved); err != nil {
				return fmt.Errorf("failed to delete recipe: %w", err)
			}
			return nil
		}
	}
	return ErrRecipeNotFound
}

// History returns recent generations, newest first.
func (l *Library) History(ctx context.Context) ([]recipe.Recipe, error) {
	return l.recipes(ctx, store.KeyRecipeHistory)
}

// AppendHistory records a generated recipe, keeping the newest HistoryLimit.
func (l *Library) AppendHistory(ctx context.Context, r *recipe.Recipe, chefName string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	history, err := l.recipes(ctx, store.KeyRecipeHistory)
	if err != nil {
		return err
	}

	entry := r.Clone()
	now := l.now().UTC()
	entry.SavedAt = &now
	entry.ChefName = chefName

	history = append([]recipe.Recipe{*entry}, history...)
	if len(history) > HistoryLimit {
		history = history[:HistoryLimit]
	}
	if err := l.store.Put(ctx, store.KeyRecipeHistory, history); err != nil {
		return fmt.Errorf("failed to update history: %w", err)
	}
	return nil
}

// ClearHistory forgets every recorded generation.
func (l *Library) ClearHistory(ctx context.Context) error {
	if err := l.store.Delete(ctx, store.KeyRecipeHistory); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Profile returns the stored nutrition profile.
func (l *Library) Profile(ctx context.Context) (*nutrition.UserProfile, error) {
	var p nutrition.UserProfile
	if err := l.store.Get(ctx, store.KeyUserProfile, &p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoProfile
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &p, nil
}

// SaveProfile validates and stores the nutrition profile.
func (l *Library) SaveProfile(ctx context.Context, p nutrition.UserProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := l.store.Put(ctx, store.KeyUserProfile, p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// ShoppingList returns the current shopping list.
func (l *Library) ShoppingList(ctx context.Context) (shopping.List, error) {
	var list shopping.List
	if err := l.store.Get(ctx, store.KeyShoppingList, &list); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return shopping.List{}, nil
		}
		return nil, fmt.Errorf("failed to load shopping list: %w", err)
	}
	if list == nil {
		list = shopping.List{}
	}
	return list, nil
}

// AddToShoppingList merges the recipe's ingredients into the list.
func (l *Library) AddToShoppingList(ctx context.Context, r *recipe.Recipe, recipeID string) (shopping.List, error) {
	return l.updateShoppingList(ctx, func(list shopping.List) (shopping.List, error) {
		return list.Merge(shopping.ItemsFromRecipe(r, recipeID)...), nil
	})
}

// ToggleShoppingItem flips the checked state of the item at index.
func (l *Library) ToggleShoppingItem(ctx context.Context, index int) (shopping.List, error) {
	return l.updateShoppingList(ctx, func(list shopping.List) (shopping.List, error) {
		return list.Toggle(index)
	})
}

// RemoveShoppingItem deletes the item at index.
func (l *Library) RemoveShoppingItem(ctx context.Context, index int) (shopping.List, error) {
	return l.updateShoppingList(ctx, func(list shopping.List) (shopping.List, error) {
		return list.Remove(index)
	})
}

// ClearShoppingList drops checked items, or everything when all is set.
func (l *Library) ClearShoppingList(ctx context.Context, all bool) (shopping.List, error) {
	return l.updateShoppingList(ctx, func(list shopping.List) (shopping.List, error) {
		if all {
			return shopping.List{}, nil
		}
		return list.ClearChecked(), nil
	})
}

func (l *Library) updateShoppingList(ctx context.Context, fn func(shopping.List) (shopping.List, error)) (shopping.List, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	list, err := l.ShoppingList(ctx)
	if err != nil {
		return nil, err
	}
	updated, err := fn(list)
	if err != nil {
		return nil, err
	}
	if err := l.store.Put(ctx, store.KeyShoppingList, updated); err != nil {
		return nil, fmt.Errorf("failed to save shopping list: %w", err)
	}
	return updated, nil
}

func (l *Library) recipes(ctx context.Context, key string) ([]recipe.Recipe, error) {
	var out []recipe.Recipe
	if err := l.store.Get(ctx, key, &out); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []recipe.Recipe{}, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if out == nil {
		out = []recipe.Recipe{}
	}
	return out, nil
}
