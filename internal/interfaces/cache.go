package interfaces

import (
	"time"

	"github.com/status-im/defi-native-core/internal/models"
)

//go:generate mockgen -package=mock -source=cache.go -destination=mock/cache.go

// Cache is the durable key/value store contract. Get returns the raw record
// including its expiry so callers can do their own staleness math; corrupt or
// absent records both read as not found.
type Cache interface {
	Get(key string) (*models.CacheRecord, bool)
	Put(key string, ttl time.Duration, value []byte) error
}

// KeyBuilder derives a cache key from the logical shape of an RPC read.
type KeyBuilder interface {
	Build(endpoint, method string, params any) (string, error)
}
