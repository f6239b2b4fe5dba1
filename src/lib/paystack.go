package lib

import (
	"bytes"
	"encoding/json"
	"errors"
	"etm/src/config"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// PaystackClient talks to the payment gateway over plain HTTP. The zero
// value is not usable; build one with GetPaystackClient or NewPaystackClient.
type PaystackClient struct {
	BaseURL   string
	secretKey string
	http      *http.Client
}

var paystackClient *PaystackClient

func GetPaystackClient() *PaystackClient {
	if paystackClient != nil {
		return paystackClient
	}
	c := NewPaystackClient(config.GetPaystackBaseURL(), config.GetPaystackSecretKey())
	paystackClient = c
	return c
}

// NewPaystackClient lets tests point the client at an httptest server.
func NewPaystackClient(baseURL, secretKey string) *PaystackClient {
	return &PaystackClient{
		BaseURL:   baseURL,
		secretKey: secretKey,
		// Verification timeouts must read as rejection, never success, so
		// the deadline is bounded here rather than per call-site.
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

type InitializeTransactionResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type VerifyTransactionResult struct {
	Status string `json:"status"`
	// Amount is what was actually paid, in minor currency units.
	Amount int64 `json:"amount"`
}

func (c *PaystackClient) call(method, path string, body map[string]any) (gjson.Result, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return gjson.Result{}, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		log.Printf("[paystack] %s %s failed: %s\n", method, path, err.Error())
		return gjson.Result{}, err
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return gjson.Result{}, err
	}
	parsed := gjson.ParseBytes(raw)
	if !parsed.Get("status").Bool() {
		msg := parsed.Get("message").String()
		if msg == "" {
			msg = fmt.Sprintf("gateway responded with HTTP %d", res.StatusCode)
		}
		return parsed, errors.New(msg)
	}
	return parsed, nil
}

// InitializeTransaction starts a hosted checkout. amount is in minor units.
func (c *PaystackClient) InitializeTransaction(email string, amount int64, callbackURL string) (*InitializeTransactionResult, error) {
	parsed, err := c.call(http.MethodPost, "/transaction/initialize", map[string]any{
		"email":        email,
		"amount":       amount,
		"callback_url": callbackURL,
	})
	if err != nil {
		return nil, err
	}
	data := parsed.Get("data")
	result := &InitializeTransactionResult{
		AuthorizationURL: data.Get("authorization_url").String(),
		AccessCode:       data.Get("access_code").String(),
		Reference:        data.Get("reference").String(),
	}
	if result.AuthorizationURL == "" || result.Reference == "" {
		return nil, errors.New("gateway returned an incomplete initialization payload")
	}
	return result, nil
}

// VerifyTransaction resolves a reference to its settlement status. Read-only
// against the gateway; safe to call before opening the booking transaction.
func (c *PaystackClient) VerifyTransaction(reference string) (*VerifyTransactionResult, error) {
	parsed, err := c.call(http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}
	data := parsed.Get("data")
	return &VerifyTransactionResult{
		Status: data.Get("status").String(),
		Amount: data.Get("amount").Int(),
	}, nil
}

// ResolveAccount validates a payout instrument and returns the registered
// account name.
func (c *PaystackClient) ResolveAccount(accountNumber, bankCode string) (string, error) {
	path := fmt.Sprintf("/bank/resolve?account_number=%s&bank_code=%s", accountNumber, bankCode)
	parsed, err := c.call(http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	return parsed.Get("data.account_name").String(), nil
}

func (c *PaystackClient) CreateTransferRecipient(name, accountNumber, bankCode string) (string, error) {
	parsed, err := c.call(http.MethodPost, "/transferrecipient", map[string]any{
		"type":           "nuban",
		"name":           name,
		"account_number": accountNumber,
		"bank_code":      bankCode,
		"currency":       "NGN",
	})
	if err != nil {
		return "", err
	}
	code := parsed.Get("data.recipient_code").String()
	if code == "" {
		return "", errors.New("gateway returned no recipient code")
	}
	return code, nil
}

// InitiateTransfer moves amount (minor units) to a recipient and returns the
// gateway's transfer reference.
func (c *PaystackClient) InitiateTransfer(recipientCode string, amount int64, reason string) (string, error) {
	parsed, err := c.call(http.MethodPost, "/transfer", map[string]any{
		"source":    "balance",
		"amount":    amount,
		"recipient": recipientCode,
		"reason":    reason,
	})
	if err != nil {
		return "", err
	}
	ref := parsed.Get("data.transfer_code").String()
	if ref == "" {
		ref = parsed.Get("data.reference").String()
	}
	if ref == "" {
		return "", errors.New("gateway returned no transfer reference")
	}
	return ref, nil
}
