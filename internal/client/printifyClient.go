package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"printwear-storefront/internal/config"
	"time"
)

// ErrNotConfigured is returned before any request is made when the API
// credential is absent.
var ErrNotConfigured = errors.New("client not configured")

type PrintifyClient interface {
	GetShops(ctx context.Context) ([]PrintifyShop, error)
	GetProducts(ctx context.Context, shopID string) ([]PrintifyProduct, error)
	GetProduct(ctx context.Context, shopID, productID string) (*PrintifyProduct, error)
	CreateOrder(ctx context.Context, shopID string, req *CreateOrderRequest) (string, error)
	SendToProduction(ctx context.Context, shopID, orderID string) error
}

type printifyClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	apiKey     string
}

func NewPrintifyClient(printifyCfg *config.Printify) PrintifyClient {
	return &printifyClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: printifyCfg.BaseAPIURL,
		apiKey:     printifyCfg.APIKey,
	}
}

type PrintifyShop struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	SalesChannel string `json:"sales_channel"`
}

type PrintifyVariant struct {
	ID          int64  `json:"id"`
	SKU         string `json:"sku"`
	Price       int64  `json:"price"` // cents
	Title       string `json:"title"`
	IsEnabled   bool   `json:"is_enabled"`
	IsDefault   bool   `json:"is_default"`
	IsAvailable bool   `json:"is_available"`
}

type PrintifyImage struct {
	Src        string  `json:"src"`
	VariantIDs []int64 `json:"variant_ids"`
	Position   string  `json:"position"`
	IsDefault  bool    `json:"is_default"`
}

type PrintifyProduct struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Tags        []string          `json:"tags"`
	Variants    []PrintifyVariant `json:"variants"`
	Images      []PrintifyImage   `json:"images"`
	Visible     bool              `json:"visible"`
}

type printifyProductsPage struct {
	CurrentPage int               `json:"current_page"`
	Data        []PrintifyProduct `json:"data"`
	LastPage    int               `json:"last_page"`
	Total       int               `json:"total"`
}

type OrderAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Country   string `json:"country"`
	Region    string `json:"region,omitempty"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
}

type OrderLineItem struct {
	ProductID string `json:"product_id"`
	VariantID int64  `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	ExternalID               string          `json:"external_id"`
	LineItems                []OrderLineItem `json:"line_items"`
	ShippingMethod           int             `json:"shipping_method"`
	SendShippingNotification bool            `json:"send_shipping_notification"`
	AddressTo                OrderAddress    `json:"address_to"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

func (c *printifyClientImpl) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: printify api key missing", ErrNotConfigured)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseApiURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("printify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("printify api error (%d): %s", resp.StatusCode, string(text))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode printify response: %w", err)
	}
	return nil
}

func (c *printifyClientImpl) GetShops(ctx context.Context) ([]PrintifyShop, error) {
	var shops []PrintifyShop
	if err := c.do(ctx, http.MethodGet, "/shops.json", nil, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

func (c *printifyClientImpl) GetProducts(ctx context.Context, shopID string) ([]PrintifyProduct, error) {
	var all []PrintifyProduct
	page := 1
	for {
		var resp printifyProductsPage
		endpoint := fmt.Sprintf("/shops/%s/products.json?page=%d", shopID, page)
		if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Data...)
		if page >= resp.LastPage {
			break
		}
		page++
	}
	return all, nil
}

func (c *printifyClientImpl) GetProduct(ctx context.Context, shopID, productID string) (*PrintifyProduct, error) {
	var product PrintifyProduct
	endpoint := fmt.Sprintf("/shops/%s/products/%s.json", shopID, productID)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *printifyClientImpl) CreateOrder(ctx context.Context, shopID string, req *CreateOrderRequest) (string, error) {
	var resp createOrderResponse
	endpoint := fmt.Sprintf("/shops/%s/orders.json", shopID)
	if err := c.do(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("printify create order: empty order id in response")
	}
	return resp.ID, nil
}

func (c *printifyClientImpl) SendToProduction(ctx context.Context, shopID, orderID string) error {
	endpoint := fmt.Sprintf("/shops/%s/orders/%s/send_to_production.json", shopID, orderID)
	return c.do(ctx, http.MethodPost, endpoint, nil, nil)
}
