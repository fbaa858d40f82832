// Package marketplace holds the narrow collaborator interfaces the
// ingest pipeline consumes from the external marketplace API, plus a
// thin HTTP implementation. Request signing and pagination live in the
// upstream proxy layer, not here.
package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OrderFetcher fetches the full detail of one order
type OrderFetcher interface {
	GetOrderDetail(ctx context.Context, shopID int64, orderSN string) (*OrderDetail, error)
}

// DocumentRequest identifies one package for shipping-document creation
type DocumentRequest struct {
	OrderSN        string `json:"order_sn"`
	PackageNumber  string `json:"package_number"`
	TrackingNumber string `json:"tracking_number"`
}

// DocumentCreator creates shipping documents for a list of packages
type DocumentCreator interface {
	CreateShippingDocument(ctx context.Context, shopID int64, orders []DocumentRequest) error
}

// Shipper triggers shipment processing for a ready-to-ship order
type Shipper interface {
	ShipOrder(ctx context.Context, shopID int64, orderSN string) error
}

// Client is the full collaborator surface of the marketplace API
type Client interface {
	OrderFetcher
	DocumentCreator
	Shipper
}

// HTTPClient talks to the marketplace proxy over JSON POST calls
type HTTPClient struct {
	baseURL   string
	partnerID string
	client    *http.Client
}

func NewHTTPClient(baseURL, partnerID string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:   baseURL,
		partnerID: partnerID,
		client:    &http.Client{Timeout: timeout},
	}
}

// apiEnvelope is the common response wrapper of the marketplace API
type apiEnvelope struct {
	Error    string          `json:"error"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

func (c *HTTPClient) GetOrderDetail(ctx context.Context, shopID int64, orderSN string) (*OrderDetail, error) {
	body := map[string]interface{}{
		"shop_id":  shopID,
		"order_sn": orderSN,
	}

	var resp struct {
		OrderList []OrderDetail `json:"order_list"`
	}
	if err := c.post(ctx, "/order/detail", body, &resp); err != nil {
		return nil, err
	}
	if len(resp.OrderList) == 0 {
		return nil, fmt.Errorf("order %s not found upstream", orderSN)
	}
	return &resp.OrderList[0], nil
}

func (c *HTTPClient) CreateShippingDocument(ctx context.Context, shopID int64, orders []DocumentRequest) error {
	body := map[string]interface{}{
		"shop_id":    shopID,
		"order_list": orders,
	}
	return c.post(ctx, "/logistics/shipping_document", body, nil)
}

func (c *HTTPClient) ShipOrder(ctx context.Context, shopID int64, orderSN string) error {
	body := map[string]interface{}{
		"shop_id":         shopID,
		"order_sn":        orderSN,
		"shipping_method": "dropoff",
	}
	return c.post(ctx, "/order/ship", body, nil)
}

// post performs one JSON call and decodes the response block into out.
// A non-empty envelope error is surfaced as a Go error.
func (c *HTTPClient) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.partnerID != "" {
		req.Header.Set("X-Partner-Id", c.partnerID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("marketplace request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read marketplace response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("marketplace returned status %d: %s", resp.StatusCode, truncate(raw, 200))
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to decode marketplace response: %w", err)
	}
	if envelope.Error != "" {
		return fmt.Errorf("marketplace error %s: %s", envelope.Error, envelope.Message)
	}
	if out != nil && len(envelope.Response) > 0 {
		if err := json.Unmarshal(envelope.Response, out); err != nil {
			return fmt.Errorf("failed to decode response block: %w", err)
		}
	}
	return nil
}

func truncate(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
