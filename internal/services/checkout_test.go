package service_test

import (
	"strings"
	"testing"
	"time"

	appErrors "github.com/insuvit/storefront/internal/errors"
	"github.com/insuvit/storefront/internal/models"
	service "github.com/insuvit/storefront/internal/services"
	"github.com/insuvit/storefront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCheckout() *models.CheckoutRequest {
	return &models.CheckoutRequest{
		Customer: models.CustomerInfo{
			FullName: "John Doe",
			Phone:    "+62 812-3456-7890",
			Email:    "shopper@example.com",
			Address:  "Jl. Sudirman 1",
			City:     "Jakarta",
			Postal:   "10110",
		},
		PaymentMethod: models.PaymentQRIS,
	}
}

func newCheckoutFixture(t *testing.T) (store.Store, *service.CartService, *service.SessionService, *service.CheckoutService) {
	t.Helper()

	st := store.NewMemoryStore()
	cartService := service.NewCartService(st)
	sessionService, _ := newSessionService(st)
	checkoutService := service.NewCheckoutService(cartService, sessionService, testConfig())

	return st, cartService, sessionService, checkoutService
}

func TestCheckoutService_Submit(t *testing.T) {
	ctx := t.Context()

	t.Run("Failure - empty cart", func(t *testing.T) {
		_, _, _, checkoutService := newCheckoutFixture(t)

		order, err := checkoutService.Submit(ctx, "owner-empty", validCheckout())

		require.Error(t, err)
		assert.Nil(t, order)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})

	t.Run("Failure - missing contact field", func(t *testing.T) {
		_, cartService, _, checkoutService := newCheckoutFixture(t)
		owner := "owner-contact"

		_, err := cartService.AddItem(ctx, owner, vitaminC())
		require.NoError(t, err)

		req := validCheckout()
		req.Customer.Phone = ""

		_, err = checkoutService.Submit(ctx, owner, req)

		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)

		// The cart is untouched on a rejected submission.
		cart, err := cartService.GetCart(ctx, owner)
		require.NoError(t, err)
		assert.Len(t, cart.Items, 1)
	})

	t.Run("Failure - missing fields reported in declaration order", func(t *testing.T) {
		_, cartService, _, checkoutService := newCheckoutFixture(t)
		owner := "owner-order"

		_, err := cartService.AddItem(ctx, owner, vitaminC())
		require.NoError(t, err)

		req := validCheckout()
		req.Customer = models.CustomerInfo{}

		// Several fields are missing; the first declared one wins, every time.
		for i := 0; i < 5; i++ {
			_, err = checkoutService.Submit(ctx, owner, req)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "fullName")
		}
	})

	t.Run("Failure - unknown payment method", func(t *testing.T) {
		_, cartService, _, checkoutService := newCheckoutFixture(t)
		owner := "owner-pay"

		_, err := cartService.AddItem(ctx, owner, vitaminC())
		require.NoError(t, err)

		req := validCheckout()
		req.PaymentMethod = models.PaymentMethod("paypal")

		_, err = checkoutService.Submit(ctx, owner, req)

		require.Error(t, err)
	})

	t.Run("Success - guest submission clears the cart", func(t *testing.T) {
		_, cartService, _, checkoutService := newCheckoutFixture(t)
		owner := "owner-guest"

		_, err := cartService.AddItem(ctx, owner, vitaminC())
		require.NoError(t, err)
		_, err = cartService.AddItem(ctx, owner, vitaminC())
		require.NoError(t, err)

		order, err := checkoutService.Submit(ctx, owner, validCheckout())

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(order.OrderID, "INS-"))
		assert.Equal(t, models.PaymentQRIS, order.PaymentMethod)
		assert.Equal(t, models.OrderStatusProcessing, order.Status)
		assert.Equal(t, int64(100000), order.Total)
		require.Len(t, order.Items, 1)
		assert.Equal(t, 2, order.Items[0].Quantity)

		cart, err := cartService.GetCart(ctx, owner)
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("Expired session gains no order history and stays expired", func(t *testing.T) {
		st, cartService, sessionService, checkoutService := newCheckoutFixture(t)
		owner := "owner-stale"

		// A session saved 8 days ago without remember is past retention.
		err := st.Save(ctx, store.SessionKey(owner), &models.StoredSession{
			User:       models.User{ID: 1, Email: "old@example.com"},
			IsLoggedIn: true,
			Timestamp:  time.Now().Add(-8 * 24 * time.Hour).UnixMilli(),
		})
		require.NoError(t, err)

		_, err = cartService.AddItem(ctx, owner, vitaminC())
		require.NoError(t, err)

		// The guest checkout itself succeeds.
		order, err := checkoutService.Submit(ctx, owner, validCheckout())
		require.NoError(t, err)
		require.NotNil(t, order)

		// But it must not revive the expired session or extend its history.
		_, loggedIn := sessionService.Current(ctx, owner)
		assert.False(t, loggedIn)

		var sess models.StoredSession
		found, err := st.Load(ctx, store.SessionKey(owner), &sess)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Success - authenticated submission appends to order history", func(t *testing.T) {
		_, cartService, sessionService, checkoutService := newCheckoutFixture(t)
		owner := "owner-auth"

		_, err := sessionService.Login(ctx, owner, &models.LoginRequest{
			Email:    "shopper@example.com",
			Password: "pw",
		})
		require.NoError(t, err)

		_, err = cartService.AddItem(ctx, owner, vitaminC())
		require.NoError(t, err)

		order, err := checkoutService.Submit(ctx, owner, validCheckout())
		require.NoError(t, err)

		history, err := checkoutService.OrderHistory(ctx, owner)
		require.NoError(t, err)

		require.Len(t, history, 1)
		assert.Equal(t, order.OrderID, history[0].OrderID)
		assert.Equal(t, models.OrderStatusProcessing, history[0].Status)
	})
}

func TestCheckoutService_OrderHistory_RequiresAuth(t *testing.T) {
	_, _, _, checkoutService := newCheckoutFixture(t)

	_, err := checkoutService.OrderHistory(t.Context(), "owner-anon")

	require.Error(t, err)

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
}

func TestPaymentMethod_DisplayName(t *testing.T) {
	assert.Equal(t, "QRIS", models.PaymentQRIS.DisplayName())
	assert.Equal(t, "Transfer BCA", models.PaymentBCA.DisplayName())
	assert.Equal(t, "GoPay", models.PaymentGopay.DisplayName())
	assert.Equal(t, "other", models.PaymentMethod("other").DisplayName())
	assert.False(t, models.PaymentMethod("other").Valid())
}
