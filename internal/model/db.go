package model

import "time"

type OrderStatus string

const (
	OrderStatusPaid             OrderStatus = "paid"
	OrderStatusNeedsShipping    OrderStatus = "needs_shipping"
	OrderStatusMissingProduct   OrderStatus = "missing_product"
	OrderStatusMissingItems     OrderStatus = "missing_items"
	OrderStatusPrintifyError    OrderStatus = "printify_error"
	OrderStatusOrderCreated     OrderStatus = "order_created"
	OrderStatusSentToProduction OrderStatus = "sent_to_production"
)

// Order is one row per Stripe checkout session. SessionID doubles as the
// idempotency key: duplicate webhook deliveries upsert the same row.
type Order struct {
	SessionID        string      `gorm:"primaryKey;size:128;not null"`
	Email            string      `gorm:"size:255;index"`
	ShippingJSON     string      // raw shipping details from the session
	ItemsJSON        string      // cart line items carried in session metadata
	TotalCents       int64       `gorm:"not null"`
	Currency         string      `gorm:"size:8;not null"`
	Status           OrderStatus `gorm:"size:32;index;not null"`
	PrintifyOrderID  *string     `gorm:"size:64"`
	FulfillmentError *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Product struct {
	ID          string `gorm:"primaryKey;size:64;not null"`
	PrintifyID  string `gorm:"size:64;uniqueIndex;not null"`
	Slug        string `gorm:"size:255;uniqueIndex;not null"`
	Title       string `gorm:"size:255;not null"`
	Description string
	TagsJSON    string
	ImagesJSON  string
	Active      bool `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Variants []ProductVariant `gorm:"foreignKey:ProductID"`
}

type ProductVariant struct {
	ID uint `gorm:"primaryKey"`
	// FK → product.id
	ProductID string `gorm:"size:64;index;not null"`
	// printify variant id, carried through to fulfillment
	VariantID   int64  `gorm:"index;not null"`
	Title       string `gorm:"size:255;not null"`
	PriceCents  int64  `gorm:"not null"`
	SKU         string `gorm:"size:64"`
	IsEnabled   bool
	IsAvailable bool
	IsDefault   bool
	CreatedAt   time.Time
}

type ProductImage struct {
	Src        string  `json:"src"`
	Position   string  `json:"position"`
	IsDefault  bool    `json:"is_default"`
	VariantIDs []int64 `json:"variant_ids"`
}

type EmailSignup struct {
	Email     string `gorm:"primaryKey;size:255;not null"`
	Source    string `gorm:"size:64"`
	CreatedAt time.Time
}
