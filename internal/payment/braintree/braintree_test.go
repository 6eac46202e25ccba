package braintree

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/minikart-next/minikart/internal/models"

	"github.com/shopspring/decimal"
)

func TestNewClientValidatesLiveCredentials(t *testing.T) {
	if _, err := NewClient(Config{}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("got %v, want ErrConfigInvalid", err)
	}
	if _, err := NewClient(Config{Sandbox: true}); err != nil {
		t.Fatalf("sandbox must not require credentials, got %v", err)
	}
	if _, err := NewClient(Config{MerchantID: "m", PublicKey: "pk", PrivateKey: "sk"}); err != nil {
		t.Fatalf("live config with credentials failed: %v", err)
	}
}

func TestSandboxClientToken(t *testing.T) {
	client, err := NewClient(Config{Sandbox: true})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	token, err := client.ClientToken(context.Background())
	if err != nil {
		t.Fatalf("ClientToken failed: %v", err)
	}
	if !strings.HasPrefix(token, "sandbox-") {
		t.Fatalf("token = %q, want sandbox- prefix", token)
	}
}

func TestSandboxSaleIsDeterministic(t *testing.T) {
	client, err := NewClient(Config{Sandbox: true})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	result, err := client.Sale(context.Background(), SaleInput{
		Amount:    models.NewMoneyFromDecimal(decimal.RequireFromString("250")),
		Currency:  "INR",
		Reference: "MK20260101AAAA1111",
	})
	if err != nil {
		t.Fatalf("Sale failed: %v", err)
	}
	if result.TransactionID != "sandbox-MK20260101AAAA1111" {
		t.Fatalf("transaction id = %q", result.TransactionID)
	}
	if result.Status != "submitted_for_settlement" {
		t.Fatalf("status = %q", result.Status)
	}
	if result.Amount != "250.00" || result.Currency != "INR" {
		t.Fatalf("amount/currency = %q/%q", result.Amount, result.Currency)
	}

	payment := result.Payment()
	if payment["gateway"] != "braintree" || payment["transaction_id"] != "sandbox-MK20260101AAAA1111" {
		t.Fatalf("payment object wrong: %#v", payment)
	}
}

func TestSaleParsesLiveResponse(t *testing.T) {
	var gotAuth string
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]interface{}{
			"transaction": map[string]interface{}{
				"id":                "txn-42",
				"status":            "submitted_for_settlement",
				"amount":            "250.00",
				"currency_iso_code": "INR",
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(Config{
		MerchantID: "m1",
		PublicKey:  "pk",
		PrivateKey: "sk",
		APIBaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	result, err := client.Sale(context.Background(), SaleInput{
		Amount:   models.NewMoneyFromDecimal(decimal.RequireFromString("250")),
		Currency: "INR",
	})
	if err != nil {
		t.Fatalf("Sale failed: %v", err)
	}
	if result.TransactionID != "txn-42" {
		t.Fatalf("transaction id = %q", result.TransactionID)
	}
	if gotPath != "/merchants/m1/transactions" {
		t.Fatalf("path = %q", gotPath)
	}
	if !strings.HasPrefix(gotAuth, "Basic ") {
		t.Fatalf("missing basic auth header, got %q", gotAuth)
	}
}

func TestSaleDeclined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"transaction": map[string]interface{}{
				"id":     "txn-declined",
				"status": "processor_declined",
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(Config{
		MerchantID: "m1",
		PublicKey:  "pk",
		PrivateKey: "sk",
		APIBaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if _, err := client.Sale(context.Background(), SaleInput{Amount: models.NewMoneyFromDecimal(decimal.NewFromInt(10))}); !errors.Is(err, ErrSaleDeclined) {
		t.Fatalf("got %v, want ErrSaleDeclined", err)
	}
}

func TestSaleRequestFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient(Config{
		MerchantID: "m1",
		PublicKey:  "pk",
		PrivateKey: "sk",
		APIBaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if _, err := client.Sale(context.Background(), SaleInput{Amount: models.NewMoneyFromDecimal(decimal.NewFromInt(10))}); !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("got %v, want ErrRequestFailed", err)
	}
}
