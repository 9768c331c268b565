package dispatch

import (
	"context"

	"github.com/status-im/defi-native-core/internal/market"
	"github.com/status-im/defi-native-core/internal/models"
	"github.com/status-im/defi-native-core/internal/protocol"
	"github.com/status-im/defi-native-core/internal/registry"
)

// lendingRate is the borrow/supply projection of a normalized market row.
type lendingRate struct {
	Provider    string  `json:"provider"`
	Protocol    string  `json:"protocol,omitempty"`
	ChainID     string  `json:"chainId"`
	Asset       string  `json:"asset"`
	SupplyAPY   float64 `json:"supplyApy"`
	BorrowAPY   float64 `json:"borrowApy"`
	Utilization float64 `json:"utilization,omitempty"`
	TVLUSD      float64 `json:"tvlUsd"`
	MatchKind   string  `json:"matchKind,omitempty"`
	Source      string  `json:"source"`
}

func (d *Dispatcher) handleYieldOpportunities(ctx context.Context, params protocol.Params) ([]protocol.Field, error) {
	query, err := d.marketQuery(params)
	if err != nil {
		return nil, err
	}
	result, err := d.engine.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return []protocol.Field{
		{Name: "chainId", Value: query.Chain.ID},
		{Name: "source", Value: result.Source},
		{Name: "sourceProvider", Value: result.SourceProvider},
		{Name: "count", Value: len(result.Rows)},
		{Name: "opportunities", Value: result.Rows},
	}, nil
}

func (d *Dispatcher) handleLendingRates(ctx context.Context, params protocol.Params) ([]protocol.Field, error) {
	query, err := d.marketQuery(params)
	if err != nil {
		return nil, err
	}
	result, err := d.engine.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	rates := make([]lendingRate, 0, len(result.Rows))
	for _, row := range result.Rows {
		rates = append(rates, projectLendingRate(row))
	}
	return []protocol.Field{
		{Name: "chainId", Value: query.Chain.ID},
		{Name: "source", Value: result.Source},
		{Name: "sourceProvider", Value: result.SourceProvider},
		{Name: "count", Value: len(rates)},
		{Name: "rates", Value: rates},
	}, nil
}

func projectLendingRate(row models.MarketRow) lendingRate {
	return lendingRate{
		Provider:    row.Provider,
		Protocol:    row.Protocol,
		ChainID:     row.ChainID,
		Asset:       row.Asset,
		SupplyAPY:   row.APYTotal,
		BorrowAPY:   row.BorrowAPY,
		Utilization: row.Utilization,
		TVLUSD:      row.TVLUSD,
		MatchKind:   row.MatchKind,
		Source:      row.Source,
	}
}

func (d *Dispatcher) marketQuery(params protocol.Params) (market.Query, error) {
	chainInput, err := params.String("chain")
	if err != nil {
		return market.Query{}, err
	}
	chain, err := registry.ResolveChain(chainInput)
	if err != nil {
		return market.Query{}, err
	}

	asset, err := params.OptionalString("asset", "")
	if err != nil {
		return market.Query{}, err
	}
	hint, err := params.OptionalString("provider", "")
	if err != nil {
		return market.Query{}, err
	}
	forced, err := params.OptionalString("liveProvider", "")
	if err != nil {
		return market.Query{}, err
	}
	mode, err := params.OptionalString("liveMode", "")
	if err != nil {
		return market.Query{}, err
	}
	minTVL, err := params.OptionalFloat64("minTvlUsd", 0)
	if err != nil {
		return market.Query{}, err
	}
	limit, err := params.OptionalInt64("limit", 0)
	if err != nil {
		return market.Query{}, err
	}

	return market.Query{
		Chain:          chain,
		Asset:          asset,
		ProviderHint:   hint,
		ForcedProvider: forced,
		LiveMode:       mode,
		MinTVLUSD:      minTVL,
		Limit:          int(limit),
	}, nil
}
