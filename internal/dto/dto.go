package dto

type CheckoutItem struct {
	ProductID string `json:"productId"`
	VariantID int64  `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequest struct {
	Items []CheckoutItem `json:"items"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

// CartItem is the line-item shape stored in the checkout session metadata
// and read back by the webhook.
type CartItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name,omitempty"`
	VariantID    int64   `json:"variantId"`
	VariantTitle string  `json:"variantTitle,omitempty"`
	Price        float64 `json:"price,omitempty"`
	Quantity     int     `json:"quantity"`
}

type WebhookAck struct {
	Received bool   `json:"received,omitempty"`
	Warning  string `json:"warning,omitempty"`
	Error    string `json:"error,omitempty"`
}

type Product struct {
	ID          string           `json:"id"`
	Slug        string           `json:"slug"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Tags        []string         `json:"tags"`
	Images      []ProductImage   `json:"images"`
	Variants    []ProductVariant `json:"variants"`
	Price       float64          `json:"price"`
	ImageSrc    string           `json:"imageSrc,omitempty"`
}

type ProductImage struct {
	Src       string `json:"src"`
	Position  string `json:"position"`
	IsDefault bool   `json:"is_default"`
}

type ProductVariant struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	SKU         string  `json:"sku"`
	IsAvailable bool    `json:"is_available"`
	IsDefault   bool    `json:"is_default"`
}

type SyncResponse struct {
	Message string   `json:"message"`
	Count   int      `json:"count"`
	Slugs   []string `json:"slugs"`
}

type EmailSignupRequest struct {
	Email string `json:"email"`
}
