package service

import (
	"context"
	"fmt"
	"time"

	"github.com/insuvit/storefront/internal/config"
	"github.com/insuvit/storefront/internal/errors"
	"github.com/insuvit/storefront/internal/metrics"
	"github.com/insuvit/storefront/internal/models"
	"github.com/insuvit/storefront/internal/utils"
)

const orderIDPrefix = "INS"

// CheckoutService drives the Building -> Submitting -> Completed flow.
// The mock submission cannot fail once the preconditions hold: cart
// non-empty, contact fields present, payment method from the fixed set.
type CheckoutService struct {
	carts        *CartService
	sessions     *SessionService
	orderLatency time.Duration
}

func NewCheckoutService(carts *CartService, sessions *SessionService, cfg *config.Config) *CheckoutService {
	return &CheckoutService{
		carts:        carts,
		sessions:     sessions,
		orderLatency: cfg.Simulation.OrderDelay(),
	}
}

// Submit validates the preconditions, freezes an order snapshot, clears
// the cart, and appends the order to the session history when the scope
// is authenticated.
func (s *CheckoutService) Submit(ctx context.Context, owner string, req *models.CheckoutRequest) (*models.Order, error) {

	cart, err := s.carts.GetCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) == 0 {
		return nil, errors.ValidationError("Cannot checkout with an empty cart")
	}

	if err := validateCustomer(&req.Customer); err != nil {
		return nil, err
	}

	if !req.PaymentMethod.Valid() {
		return nil, errors.ValidationError("Please select a valid payment method")
	}

	simulateLatency(ctx, s.orderLatency)

	now := time.Now()
	order := &models.Order{
		OrderID: fmt.Sprintf("%s-%d", orderIDPrefix, now.UnixMilli()),
		Customer: models.CustomerInfo{
			FullName: utils.Sanitize(req.Customer.FullName),
			Phone:    utils.Sanitize(req.Customer.Phone),
			Email:    req.Customer.Email,
			Address:  utils.Sanitize(req.Customer.Address),
			City:     utils.Sanitize(req.Customer.City),
			Postal:   utils.Sanitize(req.Customer.Postal),
		},
		Items:         cart.Items,
		PaymentMethod: req.PaymentMethod,
		Total:         cart.Subtotal,
		OrderDate:     now.Format("02/01/2006"),
		Status:        models.OrderStatusProcessing,
	}

	if _, err := s.carts.ClearCart(ctx, owner); err != nil {
		return nil, err
	}

	s.sessions.AppendOrder(ctx, owner, *order)

	metrics.OrdersSubmitted.Inc()

	return order, nil
}

// OrderHistory lists the orders recorded against an authenticated scope.
func (s *CheckoutService) OrderHistory(ctx context.Context, owner string) ([]models.Order, error) {

	user, loggedIn := s.sessions.Current(ctx, owner)
	if !loggedIn {
		return nil, errors.UnauthorizedError("Not logged in")
	}

	return user.Orders, nil
}

func validateCustomer(c *models.CustomerInfo) error {

	required := []struct {
		field string
		value string
	}{
		{"fullName", c.FullName},
		{"phone", c.Phone},
		{"email", c.Email},
		{"address", c.Address},
		{"city", c.City},
		{"postal", c.Postal},
	}

	for _, f := range required {
		if f.value == "" {
			return errors.AddValidationError(f.field, "is required")
		}
	}

	if !emailRegex.MatchString(c.Email) {
		return errors.AddValidationError("email", "must be a valid address")
	}

	return nil
}
