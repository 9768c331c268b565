package models

import (
	"encoding/json"
	"time"
)

// CacheRecord is the on-disk shape of one durable cache entry. Records are
// created on first successful fetch and overwritten on refresh; expiry and
// overwrite are the only lifecycle events.
type CacheRecord struct {
	ExpiresAtUnix int64           `json:"expiresAtUnix"`
	Value         json.RawMessage `json:"value"`
}

// IsFresh reports whether the record is within its TTL at the given instant.
func (r *CacheRecord) IsFresh(now time.Time) bool {
	return now.Unix() <= r.ExpiresAtUnix
}

// WithinStaleBudget reports whether a non-fresh record may still be served
// under the given stale budget.
func (r *CacheRecord) WithinStaleBudget(now time.Time, maxStale time.Duration) bool {
	return now.Unix() <= r.ExpiresAtUnix+int64(maxStale.Seconds())
}

// MethodPolicy holds per-RPC-method cache defaults. Methods without a bespoke
// entry inherit the process-wide defaults from configuration.
type MethodPolicy struct {
	TTL                time.Duration `yaml:"ttl_seconds"`
	MaxStale           time.Duration `yaml:"max_stale_seconds"`
	AllowStaleFallback bool          `yaml:"allow_stale_fallback"`
}

// Data provenance tags attached to responses. The bridge surfaces these
// verbatim, so the values are part of the wire contract.
const (
	SourceCacheHit     = "cache_hit"     // fresh cached RPC read, upstream not contacted
	SourceFresh        = "fresh"         // live RPC read, no prior fresh record
	SourceCacheRefresh = "cache_refresh" // live RPC read that bypassed a fresh record (strict mode)
	SourceStale        = "stale"         // expired record served after upstream failure
	SourceLive         = "live"          // live market fetch
	SourceCache        = "cache"         // fresh cached market fetch
	SourceRegistry     = "registry"      // static bundled market registry
)
