package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/status-im/defi-native-core/internal/cerrors"
	"github.com/status-im/defi-native-core/internal/httpx"
)

func newTestCaller() *Caller {
	return NewCaller(httpx.NewFetcher("client", zap.NewNop()))
}

func TestCaller_SuccessfulCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "eth_blockNumber", req["method"])
		assert.Equal(t, "2.0", req["jsonrpc"])

		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x1234"}`))
	}))
	defer server.Close()

	result, err := newTestCaller().Call(context.Background(), server.URL, "eth_blockNumber", nil)
	require.NoError(t, err)
	assert.Equal(t, `"0x1234"`, string(result))
}

func TestCaller_JSONRPCErrorMapsToInternal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"invalid argument"}}`))
	}))
	defer server.Close()

	_, err := newTestCaller().Call(context.Background(), server.URL, "eth_getBalance", []any{"0x0"})
	require.Error(t, err)
	assert.Equal(t, cerrors.CodeInternal, cerrors.CodeOf(err))
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestCaller_RateLimitSignals(t *testing.T) {
	t.Run("limit exceeded error code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32005,"message":"limit exceeded"}}`))
		}))
		defer server.Close()

		_, err := newTestCaller().Call(context.Background(), server.URL, "eth_blockNumber", nil)
		assert.Equal(t, cerrors.CodeRateLimited, cerrors.CodeOf(err))
	})

	t.Run("rate limit message text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"Rate limit reached"}}`))
		}))
		defer server.Close()

		_, err := newTestCaller().Call(context.Background(), server.URL, "eth_blockNumber", nil)
		assert.Equal(t, cerrors.CodeRateLimited, cerrors.CodeOf(err))
	})

	t.Run("http 429", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := newTestCaller().Call(context.Background(), server.URL, "eth_blockNumber", nil)
		assert.Equal(t, cerrors.CodeRateLimited, cerrors.CodeOf(err))
	})
}

func TestCaller_UpstreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestCaller().Call(context.Background(), server.URL, "eth_blockNumber", nil)
	assert.Equal(t, cerrors.CodeUnavailable, cerrors.CodeOf(err))
}

func TestCaller_GarbageResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer server.Close()

	_, err := newTestCaller().Call(context.Background(), server.URL, "eth_blockNumber", nil)
	assert.Equal(t, cerrors.CodeUnavailable, cerrors.CodeOf(err))
}
