package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZAPISendWhatsAppMessage(t *testing.T) {
	var gotPath string
	var gotBody zapiSendRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewZAPIServiceWithBaseURL(server.URL)
	require.NoError(t, svc.SendWhatsAppMessage("5511999990000", "olá!"))

	assert.Equal(t, "/send-messages", gotPath)
	assert.Equal(t, "5511999990000", gotBody.Phone)
	assert.Equal(t, "olá!", gotBody.Message)
}

func TestZAPISendReportsHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewZAPIServiceWithBaseURL(server.URL)
	err := svc.SendWhatsAppMessage("5511999990000", "olá!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNewZAPIServiceRequiresCredentials(t *testing.T) {
	t.Setenv("ZAPI_INSTANCE", "")
	t.Setenv("ZAPI_TOKEN", "")
	_, err := NewZAPIService()
	assert.Error(t, err)
}
