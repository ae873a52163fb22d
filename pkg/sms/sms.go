package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Sender delivers a single SMS. Implementations must be safe for
// concurrent use; failures are reported, never retried here.
type Sender interface {
	Send(ctx context.Context, phone, message string) (response string, err error)
}

// UBillSender sends Georgian SMS via the UBill gateway.
type UBillSender struct {
	baseURL string
	apiKey  string
	brandID int
	client  *http.Client
}

func NewUBillSender(baseURL, apiKey string, brandID int) *UBillSender {
	if baseURL == "" {
		baseURL = "https://api.ubill.dev/v1"
	}
	return &UBillSender{
		baseURL: baseURL,
		apiKey:  apiKey,
		brandID: brandID,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type ubillSendReq struct {
	BrandID int      `json:"brandID"`
	Numbers []string `json:"numbers"`
	Text    string   `json:"text"`
}

func (s *UBillSender) Send(ctx context.Context, phone, message string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("sms: gateway key not configured")
	}
	body, _ := json.Marshal(ubillSendReq{BrandID: s.brandID, Numbers: []string{phone}, Text: message})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/sms/send", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("key", s.apiKey)
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	log.Printf("[SMS] send phone=%s status=%d", phone, resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		return string(respBody), fmt.Errorf("sms: gateway returned %d", resp.StatusCode)
	}
	return string(respBody), nil
}
