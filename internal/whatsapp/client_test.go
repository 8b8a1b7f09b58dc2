package whatsapp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPhoneNumber(t *testing.T) {
	assert.Equal(t, "919876543210", formatPhoneNumber("9876543210"))
	assert.Equal(t, "919876543210", formatPhoneNumber("+91 98765 43210"))
	assert.Equal(t, "919876543210", formatPhoneNumber("91-9876543210"))
}

func TestSendTemplate(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient("test-key")
	c.baseURL = srv.URL

	err := c.SendTemplate("9876543210", "payment_reminder", []string{"Acme", "INV-000001"})
	require.NoError(t, err)
	assert.Equal(t, "test-key", got["apiKey"])
	assert.Equal(t, "payment_reminder", got["campaignName"])
	assert.Equal(t, "919876543210", got["destination"])
}

func TestSendTemplate_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("bad-key")
	c.baseURL = srv.URL

	err := c.SendTemplate("9876543210", "payment_reminder", nil)
	assert.Error(t, err)
}
