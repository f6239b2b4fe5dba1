package lib

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitializeTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.example/abc","access_code":"ac_123","reference":"ref_123"}}`)
	}))
	defer server.Close()

	c := NewPaystackClient(server.URL, "sk_test_abc")
	result, err := c.InitializeTransaction("attendee@example.com", 10000, "https://api.example/callback")
	assert.NoError(t, err)
	assert.Equal(t, "https://checkout.example/abc", result.AuthorizationURL)
	assert.Equal(t, "ref_123", result.Reference)
}

func TestInitializeTransactionGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"status":false,"message":"Invalid amount"}`)
	}))
	defer server.Close()

	c := NewPaystackClient(server.URL, "sk_test_abc")
	result, err := c.InitializeTransaction("attendee@example.com", -1, "https://api.example/callback")
	assert.Nil(t, result)
	assert.EqualError(t, err, "Invalid amount")
}

func TestVerifyTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/ref_123", r.URL.Path)
		fmt.Fprint(w, `{"status":true,"data":{"status":"success","amount":10000}}`)
	}))
	defer server.Close()

	c := NewPaystackClient(server.URL, "sk_test_abc")
	result, err := c.VerifyTransaction("ref_123")
	assert.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, int64(10000), result.Amount)
}

func TestVerifyTransactionUnreachableGateway(t *testing.T) {
	c := NewPaystackClient("http://127.0.0.1:1", "sk_test_abc")
	result, err := c.VerifyTransaction("ref_123")
	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestResolveAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bank/resolve", r.URL.Path)
		assert.Equal(t, "0123456789", r.URL.Query().Get("account_number"))
		assert.Equal(t, "058", r.URL.Query().Get("bank_code"))
		fmt.Fprint(w, `{"status":true,"data":{"account_name":"ADA OBI"}}`)
	}))
	defer server.Close()

	c := NewPaystackClient(server.URL, "sk_test_abc")
	name, err := c.ResolveAccount("0123456789", "058")
	assert.NoError(t, err)
	assert.Equal(t, "ADA OBI", name)
}

func TestTransferFlow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/transferrecipient":
			fmt.Fprint(w, `{"status":true,"data":{"recipient_code":"RCP_1"}}`)
		case "/transfer":
			fmt.Fprint(w, `{"status":true,"data":{"transfer_code":"TRF_1"}}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := NewPaystackClient(server.URL, "sk_test_abc")
	recipient, err := c.CreateTransferRecipient("ADA OBI", "0123456789", "058")
	assert.NoError(t, err)
	assert.Equal(t, "RCP_1", recipient)

	ref, err := c.InitiateTransfer(recipient, 500000, "Host earnings payout")
	assert.NoError(t, err)
	assert.Equal(t, "TRF_1", ref)
}

func TestInitiateTransferDeclined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"status":false,"message":"Your balance is not enough"}`)
	}))
	defer server.Close()

	c := NewPaystackClient(server.URL, "sk_test_abc")
	ref, err := c.InitiateTransfer("RCP_1", 500000, "Host earnings payout")
	assert.Empty(t, ref)
	assert.EqualError(t, err, "Your balance is not enough")
}
