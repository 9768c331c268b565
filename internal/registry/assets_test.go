package registry

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/defi-native-core/internal/cerrors"
)

func TestResolveAsset_SymbolLookup(t *testing.T) {
	chain, err := ResolveChain("ethereum")
	require.NoError(t, err)

	ref, err := ResolveAsset(chain, "usdc")
	require.NoError(t, err)
	assert.Equal(t, "eip155:1/erc20:0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", ref.AssetID)
	assert.Equal(t, "USDC", ref.Symbol)
	assert.Equal(t, 6, ref.Decimals)
}

func TestResolveAsset_NativeSymbol(t *testing.T) {
	chain, err := ResolveChain("ethereum")
	require.NoError(t, err)

	ref, err := ResolveAsset(chain, "ETH")
	require.NoError(t, err)
	assert.Equal(t, "eip155:1/slip44:60", ref.AssetID)
	assert.Equal(t, 18, ref.Decimals)
}

func TestResolveAsset_HexAddressChecksummed(t *testing.T) {
	chain, err := ResolveChain("ethereum")
	require.NoError(t, err)

	ref, err := ResolveAsset(chain, "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	require.NoError(t, err)
	assert.Equal(t, "eip155:1/erc20:0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", ref.AssetID)
	assert.Equal(t, "USDC", ref.Symbol, "known address resolves its symbol back")
}

func TestResolveAsset_CAIP19Verbatim(t *testing.T) {
	chain, err := ResolveChain("base")
	require.NoError(t, err)

	ref, err := ResolveAsset(chain, "eip155:8453/erc20:0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913")
	require.NoError(t, err)
	assert.Equal(t, "eip155:8453/erc20:0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", ref.AssetID)
}

func TestResolveAsset_UnknownSymbol(t *testing.T) {
	chain, err := ResolveChain("ethereum")
	require.NoError(t, err)

	_, err = ResolveAsset(chain, "NOTATOKEN")
	require.Error(t, err)
	assert.Equal(t, cerrors.CodeUsage, cerrors.CodeOf(err))
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		decimals int
		want     string
	}{
		{name: "whole amount", raw: "5000000", decimals: 6, want: "5"},
		{name: "fractional amount", raw: "1500000", decimals: 6, want: "1.5"},
		{name: "sub-unit amount", raw: "1", decimals: 6, want: "0.000001"},
		{name: "zero", raw: "0", decimals: 18, want: "0"},
		{name: "no decimals", raw: "42", decimals: 0, want: "42"},
		{name: "one ether", raw: "1000000000000000000", decimals: 18, want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, ok := new(big.Int).SetString(tt.raw, 10)
			require.True(t, ok)
			assert.Equal(t, tt.want, FormatUnits(raw, tt.decimals))
		})
	}
}

func TestStaticMarkets_ParsesEmbeddedRegistry(t *testing.T) {
	markets, err := StaticMarkets()
	require.NoError(t, err)
	require.NotEmpty(t, markets)

	var monadUSDC bool
	for _, market := range markets {
		assert.NotEmpty(t, market.Protocol)
		assert.NotEmpty(t, market.ChainID)
		assert.NotEmpty(t, market.Asset)
		if market.ChainID == "eip155:143" && market.Asset == "USDC" {
			monadUSDC = true
		}
	}
	assert.True(t, monadUSDC, "registry should carry a Monad USDC market")
}
