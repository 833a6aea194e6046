package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// baseURL points at a running server; set API_BASE_URL to enable these tests.
func baseURL(t *testing.T) string {
	base := os.Getenv("API_BASE_URL")
	if base == "" {
		t.Skip("API_BASE_URL not set, skipping live API tests")
	}
	return base
}

type submitOrderResponse struct {
	Order struct {
		OrderID string `json:"order_id"`
		Price   int    `json:"price"`
	} `json:"order"`
	Warning string `json:"warning"`
}

type paymentResultResponse struct {
	OrderID string `json:"order_id"`
	Outcome string `json:"outcome"`
}

func submitOrder(t *testing.T, base string, size string) submitOrderResponse {
	form := url.Values{}
	form.Set("name", "Integration Test")
	form.Set("phone", "9876543210")
	form.Set("size", size)

	resp, err := http.Post(base+"/submit_order", "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	assert.NoError(t, err, "submit request should not error")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "expected 200 OK for order submission")

	var created submitOrderResponse
	err = json.NewDecoder(resp.Body).Decode(&created)
	assert.NoError(t, err, "decoding submit response should succeed")
	assert.NotEmpty(t, created.Order.OrderID, "order id should be assigned")
	return created
}

func TestProductPage(t *testing.T) {
	base := baseURL(t)

	resp, err := http.Get(base + "/")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSubmitOrderAndResolve(t *testing.T) {
	base := baseURL(t)

	created := submitOrder(t, base, "500")
	assert.Equal(t, 700, created.Order.Price, "500g pack should cost 700")

	// report payment success through the callback
	cb := map[string]string{"order_id": created.Order.OrderID, "status": "SUCCESS"}
	body, err := json.Marshal(cb)
	assert.NoError(t, err)

	resp, err := http.Post(base+"/upi_callback", "application/json", bytes.NewReader(body))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// and the result endpoint should now resolve to success
	resp2, err := http.Get(base + "/payment_result?order_id=" + created.Order.OrderID)
	assert.NoError(t, err)
	defer resp2.Body.Close()

	var result paymentResultResponse
	err = json.NewDecoder(resp2.Body).Decode(&result)
	assert.NoError(t, err)
	assert.Equal(t, "success", result.Outcome)
}

func TestCheckoutUnknownSize(t *testing.T) {
	base := baseURL(t)

	resp, err := http.Get(base + "/checkout?size=999")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "expected 400 for unknown pack size")
}

func TestOperatorOrdersUnauthorized(t *testing.T) {
	base := baseURL(t)

	resp, err := http.Get(base + "/operator/orders")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "expected 401 without a token")
}
