package market

import (
	"encoding/json"
	"strings"

	"github.com/status-im/defi-native-core/internal/cerrors"
	"github.com/status-im/defi-native-core/internal/config"
	"github.com/status-im/defi-native-core/internal/models"
	"github.com/status-im/defi-native-core/internal/registry"
)

// llamaPool is one entry of the aggregator's pools document.
type llamaPool struct {
	Chain         string  `json:"chain"`
	Project       string  `json:"project"`
	Symbol        string  `json:"symbol"`
	TVLUSD        float64 `json:"tvlUsd"`
	APY           float64 `json:"apy"`
	APYBase       float64 `json:"apyBase"`
	APYReward     float64 `json:"apyReward"`
	APYBaseBorrow float64 `json:"apyBaseBorrow"`
}

type llamaDocument struct {
	Data []llamaPool `json:"data"`
}

// directMarket is the row shape shared by the direct provider sources.
type directMarket struct {
	Protocol    string  `json:"protocol"`
	Chain       string  `json:"chain"`
	Asset       string  `json:"asset"`
	APYBase     float64 `json:"apyBase"`
	APYReward   float64 `json:"apyReward"`
	BorrowAPY   float64 `json:"borrowApy"`
	TVLUSD      float64 `json:"tvlUsd"`
	Utilization float64 `json:"utilization"`
}

type directDocument struct {
	Markets []directMarket `json:"markets"`
}

// normalize maps one provider payload into the common row shape. The shape
// check is strict: a payload without the expected top-level collection is an
// error, never an empty result.
func normalize(provider string, payload []byte) ([]models.MarketRow, error) {
	if provider == config.AggregatorProvider {
		return normalizeLlama(payload)
	}
	return normalizeDirect(provider, payload)
}

func normalizeLlama(payload []byte) ([]models.MarketRow, error) {
	var doc llamaDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, cerrors.Wrap(cerrors.CodeInternal, "parse aggregator response", err)
	}
	if doc.Data == nil {
		return nil, cerrors.New(cerrors.CodeInternal, "aggregator response missing data collection")
	}

	rows := make([]models.MarketRow, 0, len(doc.Data))
	for _, pool := range doc.Data {
		apyTotal := pool.APY
		if apyTotal == 0 {
			apyTotal = pool.APYBase + pool.APYReward
		}
		rows = append(rows, models.MarketRow{
			Provider:  config.AggregatorProvider,
			Protocol:  pool.Project,
			ChainID:   normalizeChainName(pool.Chain),
			Asset:     pool.Symbol,
			APYBase:   pool.APYBase,
			APYReward: pool.APYReward,
			APYTotal:  apyTotal,
			BorrowAPY: pool.APYBaseBorrow,
			TVLUSD:    pool.TVLUSD,
		})
	}
	return rows, nil
}

func normalizeDirect(provider string, payload []byte) ([]models.MarketRow, error) {
	var doc directDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, cerrors.Wrapf(cerrors.CodeInternal, err, "parse %s response", provider)
	}
	if doc.Markets == nil {
		return nil, cerrors.Newf(cerrors.CodeInternal, "%s response missing markets collection", provider)
	}

	rows := make([]models.MarketRow, 0, len(doc.Markets))
	for _, market := range doc.Markets {
		protocol := market.Protocol
		if protocol == "" {
			protocol = provider
		}
		rows = append(rows, models.MarketRow{
			Provider:    provider,
			Protocol:    protocol,
			ChainID:     normalizeChainName(market.Chain),
			Asset:       market.Asset,
			APYBase:     market.APYBase,
			APYReward:   market.APYReward,
			APYTotal:    market.APYBase + market.APYReward,
			BorrowAPY:   market.BorrowAPY,
			TVLUSD:      market.TVLUSD,
			Utilization: market.Utilization,
		})
	}
	return rows, nil
}

// providerChainAliases maps provider chain spellings that the registry does
// not already know as aliases.
var providerChainAliases = map[string]string{
	"binance": "bsc",
}

// normalizeChainName maps a provider's chain spelling to its CAIP-2 id,
// keeping the raw spelling when the chain is outside the registry.
func normalizeChainName(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := providerChainAliases[lowered]; ok {
		lowered = alias
	}
	if chain, err := registry.ResolveChain(lowered); err == nil {
		return chain.ID
	}
	return name
}
