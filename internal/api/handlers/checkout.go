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

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		validator:       validator.New(),
	}
}

func (h *CheckoutHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := middleware.OwnerFromContext(r.Context())
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CheckoutRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.checkoutService.Submit(r.Context(), owner, &req)
		if err != nil {
			logger.Warn("Checkout rejected", "error", err.Error())
			response.Error(w, err)

			return
		}

		logger.Info("Order submitted",
			"orderId", order.OrderID,
			"paymentMethod", string(order.PaymentMethod),
			"total", order.Total)

		response.SuccessWithNotice(w, http.StatusCreated, order,
			fmt.Sprintf("Order %s placed via %s", order.OrderID, order.PaymentMethod.DisplayName()),
			response.SeveritySuccess)
	}
}

func (h *CheckoutHandler) OrderHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := middleware.OwnerFromContext(r.Context())

		orders, err := h.checkoutService.OrderHistory(r.Context(), owner)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.OrderHistoryResponse{
			Orders: orders,
			Total:  len(orders),
		})
	}
}
