package registry

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed markets.yaml
var marketsYAML []byte

// StaticMarket is one bundled fallback market entry.
type StaticMarket struct {
	Protocol    string  `yaml:"protocol"`
	ChainID     string  `yaml:"chain"`
	Asset       string  `yaml:"asset"`
	APYBase     float64 `yaml:"apy_base"`
	APYReward   float64 `yaml:"apy_reward"`
	BorrowAPY   float64 `yaml:"borrow_apy"`
	TVLUSD      float64 `yaml:"tvl_usd"`
	Utilization float64 `yaml:"utilization"`
}

type marketsDocument struct {
	Markets []StaticMarket `yaml:"markets"`
}

var (
	marketsOnce   sync.Once
	staticMarkets []StaticMarket
	marketsErr    error
)

// StaticMarkets parses the embedded registry once and returns all entries.
func StaticMarkets() ([]StaticMarket, error) {
	marketsOnce.Do(func() {
		var doc marketsDocument
		if err := yaml.Unmarshal(marketsYAML, &doc); err != nil {
			marketsErr = fmt.Errorf("parse embedded market registry: %w", err)
			return
		}
		staticMarkets = doc.Markets
	})
	return staticMarkets, marketsErr
}
