package file

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/status-im/defi-native-core/internal/interfaces"
	"github.com/status-im/defi-native-core/internal/models"
)

// Ensure FileCache implements interfaces.Cache
var _ interfaces.Cache = (*FileCache)(nil)

// FileCache is the durable, file-backed cache. Each key hashes to one
// fixed-width filename; concurrent invocations racing on the same key resolve
// as last-writer-wins, which is sufficient because no read-modify-write cache
// operations exist.
type FileCache struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

// New creates the cache directory if needed and returns a FileCache.
func New(dir string, logger *zap.Logger) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory %s: %w", dir, err)
	}
	return &FileCache{dir: dir, logger: logger, now: time.Now}, nil
}

// Get reads and parses the record for a key. Absent and corrupt records both
// read as not found; corruption is never fatal.
func (fc *FileCache) Get(key string) (*models.CacheRecord, bool) {
	path := fc.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var record models.CacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		fc.logger.Warn("Removing corrupt cache record", zap.String("key", key), zap.Error(err))
		_ = os.Remove(path)
		return nil, false
	}
	return &record, true
}

// Put overwrites the record for a key with a fresh expiry. The write goes
// through a temp file and rename so a concurrent reader never sees a torn
// record.
func (fc *FileCache) Put(key string, ttl time.Duration, value []byte) error {
	record := models.CacheRecord{
		ExpiresAtUnix: fc.now().Add(ttl).Unix(),
		Value:         json.RawMessage(value),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode cache record: %w", err)
	}

	tmp, err := os.CreateTemp(fc.dir, "put-*")
	if err != nil {
		return fmt.Errorf("create cache temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write cache record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close cache temp file: %w", err)
	}
	if err := os.Rename(tmpName, fc.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("store cache record: %w", err)
	}
	return nil
}

// path hashes the key to a fixed-width filename inside the cache directory.
func (fc *FileCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(fc.dir, fmt.Sprintf("%x.json", sum))
}
