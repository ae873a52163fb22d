package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUBillSend(t *testing.T) {
	var gotKey string
	var gotReq ubillSendReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sms/send", r.URL.Path)
		gotKey = r.Header.Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"statusID":1}`))
	}))
	defer srv.Close()

	s := NewUBillSender(srv.URL, "test-key", 2)
	resp, err := s.Send(context.Background(), "+995599123456", "თქვენი შეკვეთა მიღებულია")
	require.NoError(t, err)

	assert.Equal(t, `{"statusID":1}`, resp)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, 2, gotReq.BrandID)
	assert.Equal(t, []string{"+995599123456"}, gotReq.Numbers)
}

func TestUBillSendGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"statusID":0,"message":"bad key"}`))
	}))
	defer srv.Close()

	s := NewUBillSender(srv.URL, "wrong", 1)
	resp, err := s.Send(context.Background(), "+995599123456", "x")
	assert.Error(t, err)
	// the raw body still comes back for the sms log
	assert.Contains(t, resp, "bad key")
}

func TestUBillSendWithoutKey(t *testing.T) {
	s := NewUBillSender("", "", 1)
	_, err := s.Send(context.Background(), "+995599123456", "x")
	assert.Error(t, err)
}
