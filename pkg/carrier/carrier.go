// Package carrier tells the shipping carrier about sales that are ready to go out.
package carrier

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Notifier is told about each sale once it is marked shipped
type Notifier interface {
	NotifyShipment(ctx context.Context, saleID string) error
}

// Client is a resty-backed Notifier posting to the carrier webhook
type Client struct {
	httpClient *resty.Client
}

// NewClient builds a carrier client for the webhook at url
func NewClient(url, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(url, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	if apiKey != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	}

	return &Client{httpClient: restyClient}
}

type shipmentRequest struct {
	SaleID string `json:"sale_id"`
}

type apiError struct {
	Message string `json:"message"`
}

func (c *Client) NotifyShipment(ctx context.Context, saleID string) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(shipmentRequest{SaleID: saleID}).
		SetError(apiErr).
		Post("")
	if err != nil {
		return fmt.Errorf("notify carrier: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("carrier api error: code=%d, message=%s", resp.StatusCode(), apiErr.Message)
	}
	return nil
}

// Nop only logs the shipment. It is used when no carrier is configured.
type Nop struct {
	Log *zap.Logger
}

func (n Nop) NotifyShipment(_ context.Context, saleID string) error {
	if n.Log != nil {
		n.Log.Info("carrier notification skipped, no carrier configured", zap.String("sale_id", saleID))
	}
	return nil
}
