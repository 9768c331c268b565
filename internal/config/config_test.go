package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.AllowlistSet)
	assert.False(t, cfg.Strict)
	assert.True(t, cfg.AllowBroadcast)
	assert.NotEmpty(t, cfg.CacheDir)
	assert.Equal(t, int64(30), cfg.CacheTTLSeconds)
	assert.Equal(t, int64(300), cfg.CacheMaxStaleSeconds)
	assert.Equal(t, int64(60), cfg.LiveTTLSeconds)
	assert.True(t, cfg.LiveAllowStale)
	assert.Equal(t, "client", cfg.TransportPreference)
	assert.Equal(t, defaultAggregatorURL, cfg.AggregatorURL)
	assert.Empty(t, cfg.ProviderSources)
	assert.Empty(t, cfg.RPCEndpoints)
}

func TestLoad_StrictDisablesBroadcastByDefault(t *testing.T) {
	t.Setenv("DEFI_CORE_STRICT", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.False(t, cfg.AllowBroadcast)
}

func TestLoad_StrictWithExplicitBroadcastReenable(t *testing.T) {
	t.Setenv("DEFI_CORE_STRICT", "true")
	t.Setenv("DEFI_CORE_ALLOW_BROADCAST", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.AllowBroadcast)
}

func TestLoad_Allowlist(t *testing.T) {
	t.Setenv("DEFI_CORE_ENABLE_ACTIONS", "listChains, rpcCall ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AllowlistSet)
	assert.Equal(t, []string{"listChains", "rpcCall"}, cfg.EnabledActions)
}

func TestLoad_EmptyAllowlistStillCountsAsSet(t *testing.T) {
	t.Setenv("DEFI_CORE_ENABLE_ACTIONS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AllowlistSet)
	assert.Empty(t, cfg.EnabledActions)
}

func TestLoad_ProviderSourcesAndEndpoints(t *testing.T) {
	t.Setenv("DEFI_CORE_SOURCE_AAVE", "https://aave.example.org/markets")
	t.Setenv("DEFI_CORE_RPC_BASE", "https://base.example.org")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://aave.example.org/markets", cfg.ProviderSources["aave"])
	assert.Equal(t, "https://base.example.org", cfg.RPCEndpoints["base"])

	url, ok := cfg.ProviderSource("aave")
	assert.True(t, ok)
	assert.Equal(t, "https://aave.example.org/markets", url)

	_, ok = cfg.ProviderSource("morpho")
	assert.False(t, ok)

	url, ok = cfg.ProviderSource(AggregatorProvider)
	assert.True(t, ok)
	assert.Equal(t, defaultAggregatorURL, url)
}

func TestLoad_InvalidTransportPreference(t *testing.T) {
	t.Setenv("DEFI_CORE_HTTP_TRANSPORT", "carrier-pigeon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidAggregatorURL(t *testing.T) {
	t.Setenv("DEFI_CORE_DEFILLAMA_URL", "not a url")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidIntegerFallsBackToDefault(t *testing.T) {
	t.Setenv("DEFI_CORE_CACHE_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(30), cfg.CacheTTLSeconds)
}
