package market

import "strings"

// MatchExact and MatchFamily are the per-row asset match kinds.
const (
	MatchExact  = "exact"
	MatchFamily = "family"
)

// usdFamily lists the USD-stable symbols that match each other loosely when
// the caller asks for any member of the family.
var usdFamily = map[string]bool{
	"USDC":  true,
	"USDT":  true,
	"DAI":   true,
	"USDS":  true,
	"USDE":  true,
	"FDUSD": true,
	"TUSD":  true,
	"PYUSD": true,
	"LUSD":  true,
	"GUSD":  true,
	"FRAX":  true,
	"BUSD":  true,
	"USDBC": true,
	"SUSD":  true,
}

// matchAsset reports whether a row's asset symbol satisfies the requested
// asset filter and which kind of match applied.
func matchAsset(rowSymbol, want string) (string, bool) {
	if want == "" {
		return "", true
	}
	row := strings.ToUpper(strings.TrimSpace(rowSymbol))
	target := strings.ToUpper(strings.TrimSpace(want))
	if row == target {
		return MatchExact, true
	}
	if usdFamily[row] && usdFamily[target] {
		return MatchFamily, true
	}
	return "", false
}
