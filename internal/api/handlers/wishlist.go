package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/insuvit/storefront/internal/api/middleware"
	"github.com/insuvit/storefront/internal/models"
	service "github.com/insuvit/storefront/internal/services"
	"github.com/insuvit/storefront/internal/utils"
	"github.com/insuvit/storefront/internal/utils/response"
)

type WishlistHandler struct {
	wishlistService *service.WishlistService
	validator       *validator.Validate
}

func NewWishlistHandler(wishlistService *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		validator:       validator.New(),
	}
}

func (h *WishlistHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := middleware.OwnerFromContext(r.Context())

		ids, err := h.wishlistService.List(r.Context(), owner)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.WishlistResponse{ProductIDs: ids})
	}
}

func (h *WishlistHandler) Toggle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := middleware.OwnerFromContext(r.Context())

		var req models.ToggleWishlistRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		wishlisted, err := h.wishlistService.Toggle(r.Context(), owner, req.ProductID)
		if err != nil {
			response.Error(w, err)

			return
		}

		notice := "Product removed from wishlist"
		severity := response.SeverityInfo

		if wishlisted {
			notice = "Product added to wishlist"
			severity = response.SeveritySuccess
		}

		resp := models.ToggleWishlistResponse{
			ProductID:  req.ProductID,
			Wishlisted: wishlisted,
		}

		response.SuccessWithNotice(w, http.StatusOK, resp, notice, severity)
	}
}
