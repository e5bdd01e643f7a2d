package models

type ToggleWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// ToggleWishlistResponse reports the membership state after the toggle so
// the caller can flip its visual marker.
type ToggleWishlistResponse struct {
	ProductID  string `json:"product_id"`
	Wishlisted bool   `json:"wishlisted"`
}

type WishlistResponse struct {
	ProductIDs []string `json:"product_ids"`
}
