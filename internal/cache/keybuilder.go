package cache

import (
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/status-im/defi-native-core/internal/interfaces"
)

// Ensure KeyBuilderImpl implements interfaces.KeyBuilder
var _ interfaces.KeyBuilder = (*KeyBuilderImpl)(nil)

// KeyBuilderImpl derives cache keys from the logical shape of an RPC read.
type KeyBuilderImpl struct{}

// NewKeyBuilder creates a new KeyBuilder instance
func NewKeyBuilder() interfaces.KeyBuilder {
	return &KeyBuilderImpl{}
}

// Build creates a cache key from endpoint, canonical method name and params.
// The method must already be canonicalized so that callers with inconsistent
// casing land on the same key.
func (kb *KeyBuilderImpl) Build(endpoint, method string, params any) (string, error) {
	if endpoint == "" {
		return "", errors.New("endpoint cannot be empty")
	}
	if method == "" {
		return "", errors.New("method cannot be empty")
	}

	var paramsHash string
	if params != nil {
		paramsJSON, err := json.Marshal(params)
		if err != nil {
			return "", fmt.Errorf("failed to marshal params: %w", err)
		}
		paramsHash = fmt.Sprintf("%x", md5.Sum(paramsJSON))
	}

	endpointHash := fmt.Sprintf("%x", md5.Sum([]byte(endpoint)))

	return fmt.Sprintf("rpc:%s:%s:%s", endpointHash, method, paramsHash), nil
}
