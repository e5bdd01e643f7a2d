package models

type OrderStatus string

// The mock flow never advances an order past processing; no status-update
// mechanism exists.
const OrderStatusProcessing OrderStatus = "processing"

type PaymentMethod string

const (
	PaymentDana      PaymentMethod = "dana"
	PaymentGopay     PaymentMethod = "gopay"
	PaymentShopeePay PaymentMethod = "shopeepay"
	PaymentQRIS      PaymentMethod = "qris"
	PaymentBCA       PaymentMethod = "bca"
	PaymentMandiri   PaymentMethod = "mandiri"
	PaymentBRI       PaymentMethod = "bri"
	PaymentBNI       PaymentMethod = "bni"
)

var paymentMethodNames = map[PaymentMethod]string{
	PaymentDana:      "DANA",
	PaymentGopay:     "GoPay",
	PaymentShopeePay: "ShopeePay",
	PaymentQRIS:      "QRIS",
	PaymentBCA:       "Transfer BCA",
	PaymentMandiri:   "Transfer Mandiri",
	PaymentBRI:       "Transfer BRI",
	PaymentBNI:       "Transfer BNI",
}

func (m PaymentMethod) Valid() bool {
	_, ok := paymentMethodNames[m]

	return ok
}

func (m PaymentMethod) DisplayName() string {
	if name, ok := paymentMethodNames[m]; ok {
		return name
	}

	return string(m)
}

// CustomerInfo is the contact snapshot frozen into an order.
type CustomerInfo struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	Postal   string `json:"postal" validate:"required"`
}

// Order is immutable once created. ID is a prefixed creation timestamp,
// unique within a session by construction.
type Order struct {
	OrderID       string        `json:"order_id"`
	Customer      CustomerInfo  `json:"customer"`
	Items         []CartItem    `json:"items"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Total         int64         `json:"total"`
	OrderDate     string        `json:"order_date"`
	Status        OrderStatus   `json:"status"`
}

type CheckoutRequest struct {
	Customer      CustomerInfo  `json:"customer" validate:"required"`
	PaymentMethod PaymentMethod `json:"payment_method" validate:"required"`
}

type OrderHistoryResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}
