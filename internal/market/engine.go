package market

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/status-im/defi-native-core/internal/cerrors"
	"github.com/status-im/defi-native-core/internal/config"
	"github.com/status-im/defi-native-core/internal/httpx"
	"github.com/status-im/defi-native-core/internal/interfaces"
	"github.com/status-im/defi-native-core/internal/models"
	"github.com/status-im/defi-native-core/internal/registry"
)

// Live-mode values accepted on market queries.
const (
	ModeAuto     = "auto"
	ModeLive     = "live"
	ModeRegistry = "registry"
)

// Query is one resolved market request.
type Query struct {
	Chain          registry.Chain
	Asset          string
	ProviderHint   string
	ForcedProvider string
	LiveMode       string
	MinTVLUSD      float64
	Limit          int
}

// Result carries the filtered rows plus the request-level provenance the
// rows defaulted from.
type Result struct {
	Rows           []models.MarketRow
	Source         string
	SourceProvider string
}

// Engine resolves market queries against the ordered provider chain with the
// fresh/stale cache discipline, falling back to the bundled registry when the
// mode allows it.
type Engine struct {
	cfg     *config.Config
	cache   interfaces.Cache
	fetcher *httpx.Fetcher
	logger  *zap.Logger
	now     func() time.Time
}

func NewEngine(cfg *config.Config, cache interfaces.Cache, fetcher *httpx.Fetcher, logger *zap.Logger) *Engine {
	return &Engine{
		cfg:     cfg,
		cache:   cache,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// Query runs one market query end to end: provider resolution, cached fetch,
// normalization, filtering.
func (e *Engine) Query(ctx context.Context, q Query) (*Result, error) {
	mode := q.LiveMode
	if mode == "" {
		mode = ModeAuto
	}
	if mode != ModeAuto && mode != ModeLive && mode != ModeRegistry {
		return nil, cerrors.Newf(cerrors.CodeUsage, "invalid liveMode: %q", q.LiveMode)
	}

	if mode == ModeRegistry {
		return e.registryResult(q)
	}

	selection, err := resolveSelection(e.cfg, q.ForcedProvider, q.ProviderHint)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, candidate := range selection {
		if !candidate.Available {
			lastErr = cerrors.Newf(cerrors.CodeUnavailable, "provider unavailable: no source configured for %q", candidate.Name)
			continue
		}
		payload, source, err := e.fetchCached(ctx, candidate)
		if err != nil {
			e.logger.Warn("Market provider failed",
				zap.String("provider", candidate.Name),
				zap.Error(err))
			lastErr = err
			continue
		}
		rows, err := normalize(candidate.Name, payload)
		if err != nil {
			e.logger.Warn("Market provider returned unexpected shape",
				zap.String("provider", candidate.Name),
				zap.Error(err))
			lastErr = err
			continue
		}
		result := &Result{
			Rows:           e.filterRows(rows, q, source, candidate.Name),
			Source:         source,
			SourceProvider: candidate.Name,
		}
		return result, nil
	}

	// A forced provider never falls back, and liveMode=live forbids the
	// registry answer.
	if q.ForcedProvider != "" || mode == ModeLive {
		if lastErr == nil {
			lastErr = cerrors.New(cerrors.CodeUnavailable, "no live market provider available")
		}
		return nil, lastErr
	}
	return e.registryResult(q)
}

// fetchCached applies the fresh/stale discipline to one provider source. The
// key pairs the provider name with a hash of the resolved URL so source
// overrides never collide.
func (e *Engine) fetchCached(ctx context.Context, candidate models.ProviderCandidate) ([]byte, string, error) {
	urlHash := md5.Sum([]byte(candidate.URL))
	key := "market:" + candidate.Name + ":" + hex.EncodeToString(urlHash[:])

	record, found := e.cache.Get(key)
	if found && record.IsFresh(e.now()) {
		return record.Value, models.SourceCache, nil
	}

	payload, err := e.fetchLive(ctx, candidate.URL)
	if err == nil {
		ttl := time.Duration(e.cfg.LiveTTLSeconds) * time.Second
		if putErr := e.cache.Put(key, ttl, payload); putErr != nil {
			e.logger.Warn("Failed to store market cache record", zap.String("key", key), zap.Error(putErr))
		}
		return payload, models.SourceLive, nil
	}

	if found && e.cfg.LiveAllowStale {
		budget := time.Duration(e.cfg.CacheMaxStaleSeconds) * time.Second
		if record.WithinStaleBudget(e.now(), budget) {
			e.logger.Warn("Market source failed, serving stale record",
				zap.String("provider", candidate.Name),
				zap.Error(err))
			return record.Value, models.SourceStale, nil
		}
	}
	return nil, "", err
}

func (e *Engine) fetchLive(ctx context.Context, url string) ([]byte, error) {
	resp, err := e.fetcher.Do(ctx, models.FetchRequest{
		Method:  http.MethodGet,
		URL:     url,
		Headers: map[string]string{"Accept": "application/json"},
	})
	if err != nil {
		return nil, err
	}
	if err := httpx.CheckStatus(resp); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// filterRows applies the chain/asset/TVL filters, stamps provenance defaults,
// sorts by total APY, and truncates to the limit.
func (e *Engine) filterRows(rows []models.MarketRow, q Query, source, provider string) []models.MarketRow {
	fetchedAt := e.now().Unix()
	out := make([]models.MarketRow, 0, len(rows))
	for _, row := range rows {
		if row.ChainID != q.Chain.ID {
			continue
		}
		kind, ok := matchAsset(row.Asset, q.Asset)
		if !ok {
			continue
		}
		if q.MinTVLUSD > 0 && row.TVLUSD < q.MinTVLUSD {
			continue
		}
		row.MatchKind = kind
		if row.Source == "" {
			row.Source = source
		}
		if row.SourceProvider == "" {
			row.SourceProvider = provider
		}
		if row.FetchedAtUnix == 0 {
			row.FetchedAtUnix = fetchedAt
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].APYTotal > out[j].APYTotal
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

// registryResult answers from the bundled static registry with zero network
// activity.
func (e *Engine) registryResult(q Query) (*Result, error) {
	statics, err := registry.StaticMarkets()
	if err != nil {
		return nil, cerrors.Wrap(cerrors.CodeInternal, "load static market registry", err)
	}

	rows := make([]models.MarketRow, 0, len(statics))
	for _, static := range statics {
		rows = append(rows, models.MarketRow{
			Provider:    static.Protocol,
			Protocol:    static.Protocol,
			ChainID:     static.ChainID,
			Asset:       static.Asset,
			APYBase:     static.APYBase,
			APYReward:   static.APYReward,
			APYTotal:    static.APYBase + static.APYReward,
			BorrowAPY:   static.BorrowAPY,
			TVLUSD:      static.TVLUSD,
			Utilization: static.Utilization,
		})
	}
	return &Result{
		Rows:           e.filterRows(rows, q, models.SourceRegistry, models.SourceRegistry),
		Source:         models.SourceRegistry,
		SourceProvider: models.SourceRegistry,
	}, nil
}
