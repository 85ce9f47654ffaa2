package model

// Payload shapes we read out of a checkout.session.completed event. Only the
// fields the fulfillment flow uses are declared.

type CheckoutSession struct {
	ID              string            `json:"id"`
	AmountTotal     int64             `json:"amount_total"`
	Currency        string            `json:"currency"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerDetails *SessionContact   `json:"customer_details"`
	ShippingDetails *SessionContact   `json:"shipping_details"`
	Metadata        map[string]string `json:"metadata"`
}

type SessionContact struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
	Address *SessionAddress `json:"address"`
}

type SessionAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}
