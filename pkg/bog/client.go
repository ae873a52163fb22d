package bog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

var (
	ErrAuthFailed        = errors.New("bog: gateway authentication failed")
	ErrOrderCreateFailed = errors.New("bog: gateway order creation failed")
	ErrMalformedResponse = errors.New("bog: gateway response missing redirect link")
)

// Client talks to the Bank of Georgia ecommerce API. A fresh OAuth2
// client-credentials token is fetched per call; BOG tokens are short-lived
// and the call volume does not justify a cache.
type Client struct {
	creds      clientcredentials.Config
	baseURL    string
	httpClient *http.Client
}

func NewClient(clientID, clientSecret, tokenURL, apiBaseURL string) *Client {
	return &Client{
		creds: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		},
		baseURL:    apiBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) token(ctx context.Context) (string, error) {
	if c.creds.ClientID == "" || c.creds.ClientSecret == "" {
		return "", fmt.Errorf("%w: missing client credentials", ErrAuthFailed)
	}
	tok, err := c.creds.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	return tok.AccessToken, nil
}

// CreateOrder registers a payment order with BOG and returns the remote
// order id plus the hosted card-entry page URL for client redirect.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	payload := req.toWire()
	body, _ := json.Marshal(payload)
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ecommerce/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	apiReq.Header.Set("Content-Type", "application/json")
	apiReq.Header.Set("Accept-Language", "ka")
	apiReq.Header.Set("Authorization", "Bearer "+token)
	log.Printf("[BOG] POST /ecommerce/orders external_order_id=%s amount=%.2f items=%d",
		req.ExternalOrderID, float64(req.TotalAmount)/100, len(req.Basket))
	resp, err := c.httpClient.Do(apiReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	log.Printf("[BOG] response status=%d body=%s", resp.StatusCode, redact(respBody))
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: %d %s", ErrOrderCreateFailed, resp.StatusCode, redact(respBody))
	}
	var out wireOrderResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out.ID == "" || out.Links.Redirect.Href == "" {
		return nil, ErrMalformedResponse
	}
	return &CreateOrderResponse{
		OrderID:     out.ID,
		RedirectURL: out.Links.Redirect.Href,
	}, nil
}

// GetPaymentDetails fetches BOG's current view of a payment, used as the
// client polling fallback when the callback is delayed.
func (c *Client) GetPaymentDetails(ctx context.Context, bogOrderID string) (*PaymentDetails, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/receipt/"+bogOrderID, nil)
	if err != nil {
		return nil, err
	}
	apiReq.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.httpClient.Do(apiReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bog: receipt %s: %d %s", bogOrderID, resp.StatusCode, redact(respBody))
	}
	var out PaymentDetails
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &out, nil
}

// redact trims response bodies for logs and strips card data BOG may echo.
func redact(body []byte) string {
	var m map[string]interface{}
	if err := json.Unmarshal(body, &m); err != nil {
		if len(body) > 512 {
			return string(body[:512]) + "..."
		}
		return string(body)
	}
	for _, k := range []string{"card_number", "pan", "buyer", "token"} {
		if _, ok := m[k]; ok {
			m[k] = "[redacted]"
		}
	}
	b, _ := json.Marshal(m)
	if len(b) > 512 {
		return string(b[:512]) + "..."
	}
	return string(b)
}
