package registry

import (
	"regexp"
	"strings"

	"github.com/status-im/defi-native-core/internal/cerrors"
)

// Chain describes one known chain with its CAIP-2 identifier and the alias
// spellings that normalize to it.
type Chain struct {
	ID             string   `json:"chainId"`
	Name           string   `json:"name"`
	Aliases        []string `json:"aliases"`
	NativeSymbol   string   `json:"nativeSymbol"`
	NativeDecimals int      `json:"nativeDecimals"`
	CoinType       int      `json:"-"` // SLIP-44 coin type for the native asset
}

var chains = []Chain{
	{ID: "eip155:1", Name: "Ethereum", Aliases: []string{"ethereum", "eth", "mainnet", "1"}, NativeSymbol: "ETH", NativeDecimals: 18, CoinType: 60},
	{ID: "eip155:8453", Name: "Base", Aliases: []string{"base", "8453"}, NativeSymbol: "ETH", NativeDecimals: 18, CoinType: 60},
	{ID: "eip155:42161", Name: "Arbitrum One", Aliases: []string{"arbitrum", "arb", "42161"}, NativeSymbol: "ETH", NativeDecimals: 18, CoinType: 60},
	{ID: "eip155:10", Name: "OP Mainnet", Aliases: []string{"optimism", "op", "10"}, NativeSymbol: "ETH", NativeDecimals: 18, CoinType: 60},
	{ID: "eip155:137", Name: "Polygon", Aliases: []string{"polygon", "matic", "137"}, NativeSymbol: "POL", NativeDecimals: 18, CoinType: 966},
	{ID: "eip155:56", Name: "BNB Smart Chain", Aliases: []string{"bsc", "bnb", "56"}, NativeSymbol: "BNB", NativeDecimals: 18, CoinType: 714},
	{ID: "eip155:143", Name: "Monad", Aliases: []string{"monad", "143"}, NativeSymbol: "MON", NativeDecimals: 18, CoinType: 60},
	{ID: "solana:5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp", Name: "Solana", Aliases: []string{"solana", "sol"}, NativeSymbol: "SOL", NativeDecimals: 9, CoinType: 501},
}

var chainsByAlias = func() map[string]Chain {
	index := make(map[string]Chain)
	for _, chain := range chains {
		index[chain.ID] = chain
		index[strings.ToLower(chain.Name)] = chain
		for _, alias := range chain.Aliases {
			index[alias] = chain
		}
	}
	return index
}()

var caip2Pattern = regexp.MustCompile(`^[-a-z0-9]{3,8}:[-_a-zA-Z0-9]{1,32}$`)

// Chains returns every registry chain.
func Chains() []Chain {
	out := make([]Chain, len(chains))
	copy(out, chains)
	return out
}

// ResolveChain normalizes a chain alias or canonical identifier to exactly
// one registry chain. Well-formed CAIP-2 identifiers outside the registry are
// accepted verbatim; unknown aliases are a usage error, never passed through.
func ResolveChain(input string) (Chain, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Chain{}, cerrors.New(cerrors.CodeUsage, "invalid chain: empty value")
	}

	if chain, ok := chainsByAlias[strings.ToLower(trimmed)]; ok {
		return chain, nil
	}
	if strings.Contains(trimmed, ":") {
		if caip2Pattern.MatchString(trimmed) {
			return Chain{ID: trimmed, Name: trimmed, CoinType: 60, NativeDecimals: 18}, nil
		}
		return Chain{}, cerrors.Newf(cerrors.CodeUsage, "invalid chain: %q is not a valid CAIP-2 identifier", trimmed)
	}
	return Chain{}, cerrors.Newf(cerrors.CodeUsage, "unknown chain: %q", trimmed)
}
