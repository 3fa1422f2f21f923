package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResendSenderSuccess(t *testing.T) {
	var got resendPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_test_key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"id": "email_123"})
	}))
	defer server.Close()

	sender := NewResendSender("re_test_key", zap.NewNop())
	sender.endpoint = server.URL

	msg := testMessage()
	msg.ReplyTo = "jordan@example.com"
	require.NoError(t, sender.Send(context.Background(), msg))

	assert.Equal(t, msg.From, got.From)
	assert.Equal(t, []string{msg.To}, got.To)
	assert.Equal(t, "jordan@example.com", got.ReplyTo)
	assert.Equal(t, msg.Subject, got.Subject)
	assert.Equal(t, msg.HTML, got.HTML)
	assert.Equal(t, msg.Text, got.Text)
}

func TestResendSenderAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(resendError{Message: "Invalid `to` field", Name: "validation_error"})
	}))
	defer server.Close()

	sender := NewResendSender("re_test_key", zap.NewNop())
	sender.endpoint = server.URL

	err := sender.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "Invalid `to` field")
}

func TestResendSenderNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	sender := NewResendSender("re_test_key", zap.NewNop())
	sender.endpoint = server.URL

	err := sender.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resend request failed")
}

func TestBuildMIMEContainsBothParts(t *testing.T) {
	msg := testMessage()
	msg.ReplyTo = "jordan@example.com"

	raw, err := buildMIME(msg)
	require.NoError(t, err)

	assert.Contains(t, raw, "From: Movers Move <no-reply@moversmove.ca>")
	assert.Contains(t, raw, "To: mail@moversmove.ca")
	assert.Contains(t, raw, "Reply-To: jordan@example.com")
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "text/plain; charset=UTF-8")
	assert.Contains(t, raw, "text/html; charset=UTF-8")
	assert.Contains(t, raw, msg.Text)
	assert.Contains(t, raw, msg.HTML)
}

func TestEnvelopeAddress(t *testing.T) {
	addr, err := envelopeAddress("Movers Move <no-reply@moversmove.ca>")
	require.NoError(t, err)
	assert.Equal(t, "no-reply@moversmove.ca", addr)

	addr, err = envelopeAddress("no-reply@moversmove.ca")
	require.NoError(t, err)
	assert.Equal(t, "no-reply@moversmove.ca", addr)

	_, err = envelopeAddress("not an address")
	assert.Error(t, err)
}
