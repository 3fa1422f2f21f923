package turnstile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moversmove/backend/internal/config"
)

const testToken = "0.a-long-enough-turnstile-token"

func newTestClient(t *testing.T, env config.Environment, verifyURL string) *Client {
	t.Helper()
	return New(&config.TurnstileConfig{
		Secret:    "test-secret",
		VerifyURL: verifyURL,
		Timeout:   2 * time.Second,
	}, env, zap.NewNop())
}

func verifyServer(t *testing.T, handler func(w http.ResponseWriter, req siteverifyRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req siteverifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		handler(w, req)
	}))
}

func TestVerifySuccess(t *testing.T) {
	server := verifyServer(t, func(w http.ResponseWriter, req siteverifyRequest) {
		assert.Equal(t, "test-secret", req.Secret)
		assert.Equal(t, testToken, req.Response)
		assert.Equal(t, "203.0.113.7", req.RemoteIP)
		json.NewEncoder(w).Encode(siteverifyResponse{Success: true})
	})
	defer server.Close()

	client := newTestClient(t, config.EnvProduction, server.URL)
	result := client.Verify(context.Background(), testToken, "203.0.113.7")

	assert.True(t, result.Success)
	assert.Empty(t, result.Reason)
}

func TestVerifyShortTokenSkipsNetwork(t *testing.T) {
	called := false
	server := verifyServer(t, func(w http.ResponseWriter, req siteverifyRequest) {
		called = true
	})
	defer server.Close()

	client := newTestClient(t, config.EnvProduction, server.URL)

	for _, token := range []string{"", "short"} {
		result := client.Verify(context.Background(), token, "")
		assert.False(t, result.Success)
		assert.Equal(t, "Invalid token format", result.Reason)
	}
	assert.False(t, called)
}

func TestVerifyErrorCodeMapping(t *testing.T) {
	tests := []struct {
		code   string
		reason string
	}{
		{"timeout-or-duplicate", "Token expired or already used"},
		{"invalid-input-response", "Invalid verification token"},
		{"missing-input-secret", "Server configuration error"},
		{"invalid-input-secret", "Server configuration error"},
		{"bad-request", "Bad request format"},
		{"internal-error", "Verification service error"},
		{"some-future-code", "Verification failed: some-future-code"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			server := verifyServer(t, func(w http.ResponseWriter, req siteverifyRequest) {
				json.NewEncoder(w).Encode(siteverifyResponse{
					Success:    false,
					ErrorCodes: []string{tt.code},
				})
			})
			defer server.Close()

			client := newTestClient(t, config.EnvProduction, server.URL)
			result := client.Verify(context.Background(), testToken, "")

			assert.False(t, result.Success)
			assert.Equal(t, tt.reason, result.Reason)
		})
	}
}

func TestVerifyMultipleErrorCodesJoined(t *testing.T) {
	server := verifyServer(t, func(w http.ResponseWriter, req siteverifyRequest) {
		json.NewEncoder(w).Encode(siteverifyResponse{
			Success:    false,
			ErrorCodes: []string{"invalid-input-response", "timeout-or-duplicate"},
		})
	})
	defer server.Close()

	client := newTestClient(t, config.EnvProduction, server.URL)
	result := client.Verify(context.Background(), testToken, "")

	assert.False(t, result.Success)
	assert.Equal(t, "Invalid verification token, Token expired or already used", result.Reason)
}

func TestVerifyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, config.EnvProduction, server.URL)
	result := client.Verify(context.Background(), testToken, "")

	assert.False(t, result.Success)
	assert.Equal(t, "Verification service unavailable", result.Reason)
}

func TestVerifyNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(t, config.EnvProduction, server.URL)
	result := client.Verify(context.Background(), testToken, "")

	assert.False(t, result.Success)
	assert.Equal(t, "Verification service unavailable", result.Reason)
}

func TestBypassTokenOnlyInDevelopment(t *testing.T) {
	server := verifyServer(t, func(w http.ResponseWriter, req siteverifyRequest) {
		// A production client must send the bypass token to the real
		// endpoint, where it fails as an invalid token.
		json.NewEncoder(w).Encode(siteverifyResponse{
			Success:    false,
			ErrorCodes: []string{"invalid-input-response"},
		})
	})
	defer server.Close()

	dev := newTestClient(t, config.EnvDevelopment, server.URL)
	result := dev.Verify(context.Background(), BypassToken, "")
	assert.True(t, result.Success)

	for _, env := range []config.Environment{config.EnvStaging, config.EnvProduction} {
		client := newTestClient(t, env, server.URL)
		result := client.Verify(context.Background(), BypassToken, "")
		assert.False(t, result.Success, "bypass must not work in %s", env)
	}
}

func TestVerifyMissingSecret(t *testing.T) {
	client := New(&config.TurnstileConfig{VerifyURL: "http://127.0.0.1:0"}, config.EnvDevelopment, zap.NewNop())
	result := client.Verify(context.Background(), testToken, "")

	assert.False(t, result.Success)
	assert.Equal(t, "Server configuration error", result.Reason)
}
