package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/insuvit/storefront/internal/api/middleware"
	"github.com/insuvit/storefront/internal/models"
	service "github.com/insuvit/storefront/internal/services"
	"github.com/insuvit/storefront/internal/utils"
	"github.com/insuvit/storefront/internal/utils/response"
)

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := middleware.OwnerFromContext(r.Context())

		cart, err := h.cartService.GetCart(r.Context(), owner)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := middleware.OwnerFromContext(r.Context())
		logger := middleware.LoggerFromContext(r.Context())

		var req models.AddItemRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), owner, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("Item added to cart", "productId", req.ProductID)
		response.SuccessWithNotice(w, http.StatusOK, cart,
			fmt.Sprintf("%s added to cart", req.Name), response.SeveritySuccess)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := middleware.OwnerFromContext(r.Context())

		var req models.UpdateQuantityRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), owner, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := middleware.OwnerFromContext(r.Context())

		productID := r.PathValue("id")
		if productID == "" {
			response.Error(w, buildIDRequiredError())

			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), owner, productID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.SuccessWithNotice(w, http.StatusOK, cart,
			"Item removed from cart", response.SeverityInfo)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := middleware.OwnerFromContext(r.Context())

		cart, err := h.cartService.ClearCart(r.Context(), owner)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}
