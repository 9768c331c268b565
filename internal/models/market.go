package models

// ProviderCandidate is one entry of the ordered provider selection resolved
// for a live-data request. URL is empty when the required configuration is
// absent, in which case the candidate is unavailable.
type ProviderCandidate struct {
	Name      string
	URL       string
	Available bool
}

// ProviderSelection is the ordered list of candidates tried for one request.
type ProviderSelection []ProviderCandidate

// MarketRow is the normalized shape every provider response is mapped into.
// Provenance fields default from the request-level provenance unless the row
// overrides them.
type MarketRow struct {
	Provider       string  `json:"provider"`
	Protocol       string  `json:"protocol,omitempty"`
	ChainID        string  `json:"chainId"`
	Asset          string  `json:"asset"`
	AssetID        string  `json:"assetId,omitempty"`
	APYBase        float64 `json:"apyBase"`
	APYReward      float64 `json:"apyReward"`
	APYTotal       float64 `json:"apyTotal"`
	BorrowAPY      float64 `json:"borrowApy,omitempty"`
	TVLUSD         float64 `json:"tvlUsd"`
	Utilization    float64 `json:"utilization,omitempty"`
	MatchKind      string  `json:"matchKind,omitempty"`
	Source         string  `json:"source"`
	SourceProvider string  `json:"sourceProvider"`
	FetchedAtUnix  int64   `json:"fetchedAtUnix"`
}
