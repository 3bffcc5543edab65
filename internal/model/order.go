package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/trialvo/trialvo-backend/internal/order"
)

// DefaultPaymentMethod is stored when checkout does not name one.
const DefaultPaymentMethod = "bkash"

// Order mirrors a row of the `orders` table.  ProductID is a weak
// reference and may point at a product that has since been deleted.
type Order struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"order_id"`
	ProductID     *string         `json:"product_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	Company       string          `json:"company"`
	NeedsHosting  bool            `json:"needs_hosting"`
	Notes         string          `json:"notes"`
	PaymentMethod string          `json:"payment_method"`
	Status        order.Status    `json:"status"`
	TotalBDT      decimal.Decimal `json:"total_bdt"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OrderProduct is the product summary joined onto admin order listings.
type OrderProduct struct {
	Name      Bilingual `json:"name"`
	Thumbnail string    `json:"thumbnail"`
	Slug      string    `json:"slug"`
}

// AdminOrder is an order together with the product it was placed for.
// Products is nil when the product no longer exists.
type AdminOrder struct {
	Order
	Products *OrderProduct `json:"products"`
}

// CreateOrderRequest is the checkout body.  Field names follow the
// storefront's camelCase form payload.
type CreateOrderRequest struct {
	ProductID     string          `json:"productId"`
	CustomerName  string          `json:"customerName" validate:"required"`
	CustomerEmail string          `json:"customerEmail" validate:"required,email"`
	CustomerPhone string          `json:"customerPhone" validate:"required"`
	Company       string          `json:"company"`
	NeedsHosting  bool            `json:"needsHosting"`
	Notes         string          `json:"notes"`
	PaymentMethod string          `json:"paymentMethod"`
	TotalBDT      decimal.Decimal `json:"totalBdt"`
}

// ToOrder fills in checkout defaults.  ID and OrderID are assigned by the
// store.
func (r CreateOrderRequest) ToOrder() Order {
	o := Order{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Company:       r.Company,
		NeedsHosting:  r.NeedsHosting,
		Notes:         r.Notes,
		PaymentMethod: r.PaymentMethod,
		Status:        order.Pending,
		TotalBDT:      r.TotalBDT,
	}
	if r.ProductID != "" {
		pid := r.ProductID
		o.ProductID = &pid
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = DefaultPaymentMethod
	}
	return o
}

// StatusRequest is the body of an admin status change.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}
