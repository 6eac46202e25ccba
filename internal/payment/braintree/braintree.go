package braintree

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/minikart-next/minikart/internal/models"

	"github.com/google/uuid"
)

var (
	ErrConfigInvalid   = errors.New("braintree config invalid")
	ErrRequestFailed   = errors.New("braintree request failed")
	ErrResponseInvalid = errors.New("braintree response invalid")
	ErrSaleDeclined    = errors.New("braintree sale declined")
)

const (
	defaultAPIBaseURL = "https://payments.sandbox.braintree-api.com"
	defaultTimeout    = 12 * time.Second
)

// Config is the gateway channel configuration. Sandbox mode answers
// locally with a deterministic transaction so the storefront runs without
// credentials.
type Config struct {
	Sandbox    bool   `json:"sandbox"`
	MerchantID string `json:"merchant_id"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
	APIBaseURL string `json:"api_base_url"`
	TimeoutMS  int    `json:"timeout_ms"`
}

// SaleInput is a charge request for one checkout submission.
type SaleInput struct {
	Amount    models.Money
	Currency  string
	Reference string // storefront-side reference; generated when empty
}

// SaleResult is the gateway's answer to a sale.
type SaleResult struct {
	TransactionID string
	Status        string
	Amount        string
	Currency      string
	Raw           map[string]interface{}
}

// Payment renders the result as the opaque payment object stored on the
// order.
func (r *SaleResult) Payment() models.JSON {
	if r == nil {
		return models.JSON{}
	}
	return models.JSON{
		"gateway":        "braintree",
		"transaction_id": r.TransactionID,
		"status":         r.Status,
		"amount":         r.Amount,
		"currency":       r.Currency,
	}
}

// Client talks to one configured gateway channel.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a gateway client.
func NewClient(cfg Config) (*Client, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: resolveTimeout(cfg)},
	}, nil
}

// ClientToken issues the token the storefront hands to the payment form.
func (c *Client) ClientToken(ctx context.Context) (string, error) {
	if c.cfg.Sandbox {
		return "sandbox-" + uuid.NewString(), nil
	}
	payload := map[string]interface{}{
		"clientToken": map[string]interface{}{},
	}
	raw, err := c.post(ctx, "/client_token", payload)
	if err != nil {
		return "", err
	}
	token, ok := raw["clientToken"].(string)
	if !ok || token == "" {
		return "", ErrResponseInvalid
	}
	return token, nil
}

// Sale charges the given amount. The order is only recorded after a
// successful sale.
func (c *Client) Sale(ctx context.Context, input SaleInput) (*SaleResult, error) {
	reference := strings.TrimSpace(input.Reference)
	if reference == "" {
		reference = uuid.NewString()
	}
	currency := strings.TrimSpace(input.Currency)
	if currency == "" {
		currency = "INR"
	}

	if c.cfg.Sandbox {
		return &SaleResult{
			TransactionID: "sandbox-" + reference,
			Status:        "submitted_for_settlement",
			Amount:        input.Amount.String(),
			Currency:      currency,
			Raw:           map[string]interface{}{"sandbox": true},
		}, nil
	}

	payload := map[string]interface{}{
		"transaction": map[string]interface{}{
			"amount":            input.Amount.String(),
			"merchant_account":  c.cfg.MerchantID,
			"order_id":          reference,
			"options":           map[string]interface{}{"submit_for_settlement": true},
			"currency_iso_code": currency,
		},
	}
	raw, err := c.post(ctx, "/transactions", payload)
	if err != nil {
		return nil, err
	}

	txn, ok := raw["transaction"].(map[string]interface{})
	if !ok {
		return nil, ErrResponseInvalid
	}
	result := &SaleResult{
		TransactionID: stringField(txn, "id"),
		Status:        stringField(txn, "status"),
		Amount:        stringField(txn, "amount"),
		Currency:      stringField(txn, "currency_iso_code"),
		Raw:           raw,
	}
	if result.TransactionID == "" {
		return nil, ErrResponseInvalid
	}
	if isDeclinedStatus(result.Status) {
		return nil, fmt.Errorf("%w: %s", ErrSaleDeclined, result.Status)
	}
	return result, nil
}

func (c *Client) post(ctx context.Context, path string, payload map[string]interface{}) (map[string]interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	base := strings.TrimRight(strings.TrimSpace(c.cfg.APIBaseURL), "/")
	if base == "" {
		base = defaultAPIBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/merchants/"+c.cfg.MerchantID+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+basicAuth(c.cfg.PublicKey, c.cfg.PrivateKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return raw, nil
}

func validateConfig(cfg Config) error {
	if cfg.Sandbox {
		return nil
	}
	if strings.TrimSpace(cfg.MerchantID) == "" ||
		strings.TrimSpace(cfg.PublicKey) == "" ||
		strings.TrimSpace(cfg.PrivateKey) == "" {
		return ErrConfigInvalid
	}
	return nil
}

func resolveTimeout(cfg Config) time.Duration {
	if cfg.TimeoutMS > 0 {
		return time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return defaultTimeout
}

func basicAuth(publicKey, privateKey string) string {
	return base64.StdEncoding.EncodeToString([]byte(publicKey + ":" + privateKey))
}

func stringField(raw map[string]interface{}, key string) string {
	value, _ := raw[key].(string)
	return value
}

func isDeclinedStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "processor_declined", "gateway_rejected", "failed", "voided":
		return true
	}
	return false
}
