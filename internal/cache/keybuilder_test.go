package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyBuilder_Build(t *testing.T) {
	kb := NewKeyBuilder()

	tests := []struct {
		name      string
		endpoint  string
		method    string
		params    any
		wantError bool
	}{
		{name: "basic request", endpoint: "https://rpc.example.org", method: "eth_blockNumber", params: []any{}},
		{name: "request with params", endpoint: "https://rpc.example.org", method: "eth_getBalance", params: []any{"0xabc", "latest"}},
		{name: "nil params", endpoint: "https://rpc.example.org", method: "eth_chainId", params: nil},
		{name: "empty endpoint", endpoint: "", method: "eth_blockNumber", wantError: true},
		{name: "empty method", endpoint: "https://rpc.example.org", method: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := kb.Build(tt.endpoint, tt.method, tt.params)
			if tt.wantError {
				require.Error(t, err)
				assert.Empty(t, key)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(key, "rpc:"))
			assert.Contains(t, key, ":"+tt.method+":")
		})
	}
}

func TestKeyBuilder_SameShapeSameKey(t *testing.T) {
	kb := NewKeyBuilder()

	key1, err := kb.Build("https://rpc.example.org", "eth_getBalance", []any{"0xabc", "latest"})
	require.NoError(t, err)
	key2, err := kb.Build("https://rpc.example.org", "eth_getBalance", []any{"0xabc", "latest"})
	require.NoError(t, err)

	assert.Equal(t, key1, key2)
}

func TestKeyBuilder_DifferentInputsDifferentKeys(t *testing.T) {
	kb := NewKeyBuilder()

	base, err := kb.Build("https://rpc.example.org", "eth_getBalance", []any{"0xabc", "latest"})
	require.NoError(t, err)

	otherParams, err := kb.Build("https://rpc.example.org", "eth_getBalance", []any{"0xdef", "latest"})
	require.NoError(t, err)
	assert.NotEqual(t, base, otherParams)

	otherEndpoint, err := kb.Build("https://other.example.org", "eth_getBalance", []any{"0xabc", "latest"})
	require.NoError(t, err)
	assert.NotEqual(t, base, otherEndpoint)
}
