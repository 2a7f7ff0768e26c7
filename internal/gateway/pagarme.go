package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const DefaultBaseURL = "https://api.pagar.me/core/v5"

// Client talks to the Pagar.me v5 orders API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// authHeader builds the Basic credential from the API key. Pagar.me treats
// the key as the username with an empty password, hence the trailing colon.
func (c *Client) authHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.apiKey+":"))
}

func (c *Client) createOrder(ctx context.Context, payload []byte) (*orderResponse, error) {
	url := c.baseURL + "/orders"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("pagarme order request: %w", err)
	}
	httpReq.Header.Set("Authorization", c.authHeader())
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("pagarme order request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &Error{Status: resp.StatusCode, Body: raw}
	}

	var res orderResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("pagarme order decode: %w body=%s", err, string(raw))
	}
	return &res, nil
}

// ChargeCard forwards the caller-supplied order payload verbatim. The payload
// must already conform to the gateway's order schema; only the charge outcome
// is read back.
func (c *Client) ChargeCard(ctx context.Context, order json.RawMessage) (*CardOrder, error) {
	res, err := c.createOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	tx := res.transaction()
	return &CardOrder{
		ID:     res.ID,
		Status: orDefault(tx.Status, "pending"),
		Brand:  orDefault(tx.CardBrand, fallback),
		Last4:  orDefault(tx.CardLast4, fallback),
	}, nil
}

// ChargePix builds the full order server-side: a placeholder customer, a
// single line item carrying the amount in minor units, and a PIX payment
// that expires in one hour.
func (c *Client) ChargePix(ctx context.Context, amount int64) (*PixOrder, error) {
	payload := map[string]any{
		"customer": map[string]string{
			"name":  "Cliente Exemplo",
			"email": "cliente@email.com",
			"type":  "individual",
		},
		"items": []map[string]any{
			{
				"description": "Produto Teste",
				"quantity":    1,
				"amount":      amount,
			},
		},
		"payments": []map[string]any{
			{
				"payment_method": "pix",
				"pix": map[string]any{
					"expires_in": 3600,
				},
			},
		},
	}

	body, _ := json.Marshal(payload)

	res, err := c.createOrder(ctx, body)
	if err != nil {
		return nil, err
	}

	tx := res.transaction()
	return &PixOrder{
		ID:        res.ID,
		QRCode:    orDefault(tx.QRCode, fallback),
		QRCodeURL: orDefault(tx.QRCodeURL, fallback),
	}, nil
}
