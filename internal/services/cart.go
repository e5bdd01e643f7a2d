package service

import (
	"context"
	"log/slog"

	"github.com/insuvit/storefront/internal/metrics"
	"github.com/insuvit/storefront/internal/models"
	"github.com/insuvit/storefront/internal/store"
)

// CartService owns the cart line items of each owner scope. Every mutation
// recomputes the derived totals and persists the full item sequence; reads
// of a broken or missing blob fall back to an empty cart.
type CartService struct {
	store store.Store
}

func NewCartService(st store.Store) *CartService {
	return &CartService{store: st}
}

func (s *CartService) GetCart(ctx context.Context, owner string) (*models.CartSnapshot, error) {
	return snapshot(s.loadItems(ctx, owner)), nil
}

// AddItem increments the quantity of an existing line or appends a new one
// with quantity 1. It always succeeds.
func (s *CartService) AddItem(ctx context.Context, owner string, req *models.AddItemRequest) (*models.CartSnapshot, error) {

	items := s.loadItems(ctx, owner)

	found := false

	for i := range items {
		if items[i].ProductID == req.ProductID {
			items[i].Quantity++
			found = true

			break
		}
	}

	if !found {
		items = append(items, models.CartItem{
			ProductID: req.ProductID,
			Name:      req.Name,
			UnitPrice: req.UnitPrice,
			Image:     req.Image,
			Quantity:  1,
		})
	}

	s.persist(ctx, owner, items)
	metrics.CartItemsAdded.Inc()

	return snapshot(items), nil
}

// UpdateQuantity applies a signed delta to a line. A resulting quantity
// <= 0 removes the line; an unknown product id is a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, owner string, req *models.UpdateQuantityRequest) (*models.CartSnapshot, error) {

	items := s.loadItems(ctx, owner)

	for i := range items {

		if items[i].ProductID != req.ProductID {
			continue
		}

		items[i].Quantity += req.Delta
		if items[i].Quantity <= 0 {
			items = append(items[:i], items[i+1:]...)
		}

		s.persist(ctx, owner, items)

		break
	}

	return snapshot(items), nil
}

// RemoveItem deletes the matching line. Absent ids are a silent no-op.
func (s *CartService) RemoveItem(ctx context.Context, owner string, productID string) (*models.CartSnapshot, error) {

	items := s.loadItems(ctx, owner)

	for i := range items {
		if items[i].ProductID == productID {
			items = append(items[:i], items[i+1:]...)
			s.persist(ctx, owner, items)

			break
		}
	}

	return snapshot(items), nil
}

func (s *CartService) ClearCart(ctx context.Context, owner string) (*models.CartSnapshot, error) {

	s.persist(ctx, owner, []models.CartItem{})

	return snapshot(nil), nil
}

func (s *CartService) loadItems(ctx context.Context, owner string) []models.CartItem {

	var items []models.CartItem

	found, err := s.store.Load(ctx, store.CartKey(owner), &items)
	if err != nil {
		slog.Warn("Failed to load cart, treating as empty",
			slog.String("owner", owner), slog.String("error", err.Error()))

		return nil
	}

	if !found {
		return nil
	}

	return items
}

func (s *CartService) persist(ctx context.Context, owner string, items []models.CartItem) {

	if err := s.store.Save(ctx, store.CartKey(owner), items); err != nil {
		slog.Error("Failed to persist cart",
			slog.String("owner", owner), slog.String("error", err.Error()))
	}
}

func snapshot(items []models.CartItem) *models.CartSnapshot {

	snap := &models.CartSnapshot{
		Items: make([]models.CartItem, len(items)),
	}

	copy(snap.Items, items)

	for _, item := range items {
		snap.ItemCount += item.Quantity
		snap.Subtotal += item.LineTotal()
	}

	return snap
}
