package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const envPrefix = "DEFI_CORE_"

// AggregatorProvider is the fallback live-data source used when no direct
// provider applies.
const AggregatorProvider = "defillama"

const defaultAggregatorURL = "https://yields.llama.fi/pools"

// DirectProviders are the live-data providers that may be backed by a direct
// source URL via DEFI_CORE_SOURCE_<NAME>.
var DirectProviders = []string{"aave", "morpho", "kamino"}

// rpcAliases are the chain aliases for which an RPC endpoint env var is read.
var rpcAliases = []string{"ethereum", "base", "arbitrum", "optimism", "polygon", "bsc", "monad"}

// Config is the immutable runtime configuration, constructed once at process
// start. No other package reads environment variables.
type Config struct {
	EnabledActions []string
	AllowlistSet   bool
	Strict         bool
	AllowBroadcast bool

	CacheDir             string `validate:"required"`
	CacheTTLSeconds      int64  `validate:"gte=0"`
	CacheMaxStaleSeconds int64  `validate:"gte=0"`

	LiveTTLSeconds int64 `validate:"gte=0"`
	LiveAllowStale bool

	TransportPreference string `validate:"oneof=client curl"`

	AggregatorURL   string            `validate:"url"`
	ProviderSources map[string]string `validate:"dive,url"`
	RPCEndpoints    map[string]string `validate:"dive,url"`
}

// Load reads the environment once and validates the resulting struct.
func Load() (*Config, error) {
	strict := getEnvBool("STRICT", false)

	cfg := &Config{
		Strict:               strict,
		AllowBroadcast:       getEnvBool("ALLOW_BROADCAST", !strict),
		CacheDir:             getEnv("CACHE_DIR", filepath.Join(os.TempDir(), "defi-core-cache")),
		CacheTTLSeconds:      getEnvInt64("CACHE_TTL", 30),
		CacheMaxStaleSeconds: getEnvInt64("CACHE_MAX_STALE", 300),
		LiveTTLSeconds:       getEnvInt64("LIVE_TTL", 60),
		LiveAllowStale:       getEnvBool("LIVE_ALLOW_STALE", true),
		TransportPreference:  getEnv("HTTP_TRANSPORT", "client"),
		AggregatorURL:        getEnv("DEFILLAMA_URL", defaultAggregatorURL),
		ProviderSources:      map[string]string{},
		RPCEndpoints:         map[string]string{},
	}

	if raw, ok := os.LookupEnv(envPrefix + "ENABLE_ACTIONS"); ok {
		cfg.AllowlistSet = true
		cfg.EnabledActions = splitCSV(raw)
	}

	for _, name := range DirectProviders {
		if url := getEnv("SOURCE_"+strings.ToUpper(name), ""); url != "" {
			cfg.ProviderSources[name] = url
		}
	}

	for _, alias := range rpcAliases {
		if url := getEnv("RPC_"+strings.ToUpper(alias), ""); url != "" {
			cfg.RPCEndpoints[alias] = url
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ProviderSource returns the configured direct source URL for a provider, or
// the aggregator URL for the aggregator provider itself.
func (c *Config) ProviderSource(name string) (string, bool) {
	if name == AggregatorProvider {
		return c.AggregatorURL, c.AggregatorURL != ""
	}
	url, ok := c.ProviderSources[name]
	return url, ok
}

func getEnv(key, def string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(envPrefix + key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(envPrefix + key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
