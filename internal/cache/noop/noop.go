package noop

import (
	"time"

	"github.com/status-im/defi-native-core/internal/interfaces"
	"github.com/status-im/defi-native-core/internal/models"
)

// Ensure NoOpCache implements interfaces.Cache
var _ interfaces.Cache = (*NoOpCache)(nil)

// NoOpCache is used when the durable cache directory cannot be created; the
// process still answers, it just never hits or stores records.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(string) (*models.CacheRecord, bool) {
	return nil, false
}

func (c *NoOpCache) Put(string, time.Duration, []byte) error {
	return nil
}
