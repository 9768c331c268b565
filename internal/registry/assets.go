package registry

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/status-im/defi-native-core/internal/cerrors"
)

// Asset is one registry token entry on a specific chain.
type Asset struct {
	Symbol   string
	Address  string
	Decimals int
}

// AssetRef is a resolved asset with its canonical CAIP-19 identifier and the
// decimal metadata needed for amount conversion, when known.
type AssetRef struct {
	AssetID  string `json:"assetId"`
	Symbol   string `json:"symbol,omitempty"`
	Address  string `json:"address,omitempty"`
	Decimals int    `json:"decimals,omitempty"`
}

var assets = map[string][]Asset{
	"eip155:1": {
		{Symbol: "USDC", Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Decimals: 6},
		{Symbol: "USDT", Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Decimals: 6},
		{Symbol: "DAI", Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F", Decimals: 18},
		{Symbol: "WETH", Address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", Decimals: 18},
		{Symbol: "WBTC", Address: "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", Decimals: 8},
	},
	"eip155:8453": {
		{Symbol: "USDC", Address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", Decimals: 6},
		{Symbol: "DAI", Address: "0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb", Decimals: 18},
		{Symbol: "WETH", Address: "0x4200000000000000000000000000000000000006", Decimals: 18},
	},
	"eip155:42161": {
		{Symbol: "USDC", Address: "0xaf88d065e77c8cC2239327C5EDb3A432268e5831", Decimals: 6},
		{Symbol: "USDT", Address: "0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9", Decimals: 6},
		{Symbol: "WETH", Address: "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1", Decimals: 18},
	},
	"eip155:10": {
		{Symbol: "USDC", Address: "0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85", Decimals: 6},
		{Symbol: "WETH", Address: "0x4200000000000000000000000000000000000006", Decimals: 18},
	},
	"eip155:137": {
		{Symbol: "USDC", Address: "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359", Decimals: 6},
		{Symbol: "USDT", Address: "0xc2132D05D31c914a87C6611C10748AEb04B58e8F", Decimals: 6},
	},
}

// ResolveAsset turns a symbol, hex address, or CAIP-19 identifier into a
// canonical asset reference on the given chain. Symbol lookup is an exact,
// case-insensitive match per chain.
func ResolveAsset(chain Chain, input string) (AssetRef, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return AssetRef{}, cerrors.New(cerrors.CodeUsage, "invalid asset: empty value")
	}

	// Already canonical CAIP-19: accepted verbatim.
	if strings.Contains(trimmed, "/") {
		return AssetRef{AssetID: trimmed}, nil
	}

	if common.IsHexAddress(trimmed) {
		checksummed := common.HexToAddress(trimmed).Hex()
		ref := AssetRef{
			AssetID: fmt.Sprintf("%s/erc20:%s", chain.ID, checksummed),
			Address: checksummed,
		}
		for _, asset := range assets[chain.ID] {
			if strings.EqualFold(asset.Address, checksummed) {
				ref.Symbol = asset.Symbol
				ref.Decimals = asset.Decimals
				break
			}
		}
		return ref, nil
	}

	if strings.EqualFold(trimmed, chain.NativeSymbol) {
		return AssetRef{
			AssetID:  fmt.Sprintf("%s/slip44:%d", chain.ID, chain.CoinType),
			Symbol:   chain.NativeSymbol,
			Decimals: chain.NativeDecimals,
		}, nil
	}

	for _, asset := range assets[chain.ID] {
		if strings.EqualFold(asset.Symbol, trimmed) {
			return AssetRef{
				AssetID:  fmt.Sprintf("%s/erc20:%s", chain.ID, asset.Address),
				Symbol:   asset.Symbol,
				Address:  asset.Address,
				Decimals: asset.Decimals,
			}, nil
		}
	}

	return AssetRef{}, cerrors.Newf(cerrors.CodeUsage, "unknown asset symbol %q on chain %s", trimmed, chain.ID)
}

// FormatUnits renders a raw integer amount as a decimal string using the
// asset's decimal metadata.
func FormatUnits(raw *big.Int, decimals int) string {
	if decimals <= 0 {
		return raw.String()
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	quotient, remainder := new(big.Int).QuoRem(raw, scale, new(big.Int))
	if remainder.Sign() == 0 {
		return quotient.String()
	}
	frac := strings.TrimRight(fmt.Sprintf("%0*s", decimals, remainder.String()), "0")
	return fmt.Sprintf("%s.%s", quotient.String(), frac)
}
