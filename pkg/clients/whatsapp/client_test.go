package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/shiftreport/internal/config"
)

func newTestClient(url string) *Client {
	return NewClient(config.WhatsAppConfig{AccessToken: "token", PhoneNumberID: "12345", BaseURL: url, APIVersion: "v20.0"})
}

func TestSendText(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v20.0/12345/messages", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	id, err := newTestClient(srv.URL+"/").SendText(context.Background(), "2246000", "hello")
	require.NoError(t, err)
	assert.Equal(t, "wamid.1", id)
	assert.Equal(t, "2246000", got["to"])
	assert.Equal(t, "text", got["type"])
	assert.Equal(t, "hello", got["text"].(map[string]any)["body"])
}

func TestSendText_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid parameter","code":100}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SendText(context.Background(), "2246000", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code=100")
	assert.Contains(t, err.Error(), "Invalid parameter")
}

func TestSendText_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream","code":2}}`))
			return
		}
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.2"}]}`))
	}))
	defer srv.Close()

	id, err := newTestClient(srv.URL).SendText(context.Background(), "2246000", "hi")
	require.NoError(t, err)
	assert.Equal(t, "wamid.2", id)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSendText_TruncatesLongBodies(t *testing.T) {
	var got struct {
		Text struct {
			Body string `json:"body"`
		} `json:"text"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[]}`))
	}))
	defer srv.Close()

	id, err := newTestClient(srv.URL).SendText(context.Background(), "1", strings.Repeat("é", maxBodyLength+10))
	require.NoError(t, err)
	assert.Equal(t, "", id)
	assert.Len(t, []rune(got.Text.Body), maxBodyLength)
}

func TestSendText_RequiresRecipient(t *testing.T) {
	_, err := newTestClient("http://127.0.0.1:1").SendText(context.Background(), "", "x")
	assert.Error(t, err)
}
