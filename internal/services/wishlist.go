package service

import (
	"context"
	"log/slog"

	"github.com/insuvit/storefront/internal/store"
)

// WishlistService owns the set of wishlisted product ids per owner scope.
// Membership order is irrelevant, but insertion order is preserved so the
// persisted sequence round-trips unchanged.
type WishlistService struct {
	store store.Store
}

func NewWishlistService(st store.Store) *WishlistService {
	return &WishlistService{store: st}
}

// Toggle flips membership of productID and reports the resulting state:
// true when the product is now wishlisted, false when it was removed.
func (s *WishlistService) Toggle(ctx context.Context, owner string, productID string) (bool, error) {

	ids := s.load(ctx, owner)

	wishlisted := true

	for i, id := range ids {
		if id == productID {
			ids = append(ids[:i], ids[i+1:]...)
			wishlisted = false

			break
		}
	}

	if wishlisted {
		ids = append(ids, productID)
	}

	if err := s.store.Save(ctx, store.WishlistKey(owner), ids); err != nil {
		slog.Error("Failed to persist wishlist",
			slog.String("owner", owner), slog.String("error", err.Error()))
	}

	return wishlisted, nil
}

func (s *WishlistService) List(ctx context.Context, owner string) ([]string, error) {
	return s.load(ctx, owner), nil
}

func (s *WishlistService) load(ctx context.Context, owner string) []string {

	var ids []string

	found, err := s.store.Load(ctx, store.WishlistKey(owner), &ids)
	if err != nil {
		slog.Warn("Failed to load wishlist, treating as empty",
			slog.String("owner", owner), slog.String("error", err.Error()))

		return nil
	}

	if !found {
		return nil
	}

	return ids
}
