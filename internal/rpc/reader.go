package rpc

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/status-im/defi-native-core/internal/cacherules"
	"github.com/status-im/defi-native-core/internal/interfaces"
	"github.com/status-im/defi-native-core/internal/models"
)

// ReadOptions carries per-request overrides of the method policy.
type ReadOptions struct {
	CacheKey        string
	TTLSeconds      *int64
	MaxStaleSeconds *int64
}

// ReadResult is one cached read with its provenance tag.
type ReadResult struct {
	Result json.RawMessage
	Source string
	Method string // canonical spelling actually used upstream
}

// Reader wraps read-only RPC calls with the durable cache, per-method
// policies, and stale-on-upstream-failure fallback.
type Reader struct {
	cache  interfaces.Cache
	keys   interfaces.KeyBuilder
	rules  *cacherules.Classifier
	caller interfaces.MethodCaller
	strict bool
	logger *zap.Logger
	now    func() time.Time
}

func NewReader(cache interfaces.Cache, keys interfaces.KeyBuilder, rules *cacherules.Classifier, caller interfaces.MethodCaller, strict bool, logger *zap.Logger) *Reader {
	return &Reader{
		cache:  cache,
		keys:   keys,
		rules:  rules,
		caller: caller,
		strict: strict,
		logger: logger,
		now:    time.Now,
	}
}

// Read performs one logical read. In strict mode the fresh-cache
// short-circuit is disabled and every read re-validates upstream.
func (r *Reader) Read(ctx context.Context, endpoint, method string, params any, opts ReadOptions) (*ReadResult, error) {
	canonical := r.rules.CanonicalMethod(method)
	policy := r.rules.PolicyFor(canonical)
	if opts.TTLSeconds != nil {
		policy.TTL = time.Duration(*opts.TTLSeconds) * time.Second
	}
	if opts.MaxStaleSeconds != nil {
		policy.MaxStale = time.Duration(*opts.MaxStaleSeconds) * time.Second
	}

	key := opts.CacheKey
	if key == "" {
		built, err := r.keys.Build(endpoint, canonical, params)
		if err != nil {
			return nil, err
		}
		key = built
	}

	record, found := r.cache.Get(key)
	hadFresh := found && record.IsFresh(r.now())
	if hadFresh && !r.strict {
		return &ReadResult{Result: record.Value, Source: models.SourceCacheHit, Method: canonical}, nil
	}

	result, err := r.caller.Call(ctx, endpoint, canonical, params)
	if err == nil {
		if putErr := r.cache.Put(key, policy.TTL, result); putErr != nil {
			r.logger.Warn("Failed to store cache record", zap.String("key", key), zap.Error(putErr))
		}
		source := models.SourceFresh
		if hadFresh {
			source = models.SourceCacheRefresh
		}
		return &ReadResult{Result: result, Source: source, Method: canonical}, nil
	}

	if found && policy.AllowStaleFallback && record.WithinStaleBudget(r.now(), policy.MaxStale) {
		r.logger.Warn("Upstream failed, serving stale record",
			zap.String("method", canonical),
			zap.Error(err))
		return &ReadResult{Result: record.Value, Source: models.SourceStale, Method: canonical}, nil
	}
	return nil, err
}
