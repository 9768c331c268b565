package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/status-im/defi-native-core/internal/cache"
	"github.com/status-im/defi-native-core/internal/cache/file"
	"github.com/status-im/defi-native-core/internal/cache/noop"
	"github.com/status-im/defi-native-core/internal/cacherules"
	"github.com/status-im/defi-native-core/internal/config"
	"github.com/status-im/defi-native-core/internal/dispatch"
	"github.com/status-im/defi-native-core/internal/httpx"
	"github.com/status-im/defi-native-core/internal/interfaces"
	"github.com/status-im/defi-native-core/internal/market"
	"github.com/status-im/defi-native-core/internal/models"
	"github.com/status-im/defi-native-core/internal/policy"
	"github.com/status-im/defi-native-core/internal/rpc"
)

// CompositionRoot holds all application dependencies and provides a
// centralized place for dependency injection and service initialization.
type CompositionRoot struct {
	Config     *config.Config
	Logger     *zap.Logger
	CacheRules *cacherules.Classifier

	Cache      interfaces.Cache
	KeyBuilder interfaces.KeyBuilder
	Fetcher    *httpx.Fetcher

	Gate       *policy.Gate
	Caller     *rpc.Caller
	Reader     *rpc.Reader
	Engine     *market.Engine
	Dispatcher *dispatch.Dispatcher
}

// NewCompositionRoot creates and wires all dependencies in order: logger,
// configuration, cache rules, cache components, transports, then the
// dispatcher on top.
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := root.loadCacheRules(); err != nil {
		return nil, fmt.Errorf("failed to load cache rules: %w", err)
	}
	root.initCacheComponents()
	root.initServices()

	return root, nil
}

// initLogger initializes the application logger. Production output goes to
// stderr, keeping stdout reserved for the single response object. Every log
// line carries an invocation id so concurrent invocations can be correlated.
func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger.With(zap.String("invocation_id", uuid.NewString()))
	return nil
}

// loadConfig loads the application configuration from the environment.
func (r *CompositionRoot) loadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	r.Config = cfg
	return nil
}

// loadCacheRules parses the embedded per-method policy table with the
// process-wide defaults applied to uncataloged methods.
func (r *CompositionRoot) loadCacheRules() error {
	classifier, err := cacherules.NewClassifier(models.MethodPolicy{
		TTL:                time.Duration(r.Config.CacheTTLSeconds) * time.Second,
		MaxStale:           time.Duration(r.Config.CacheMaxStaleSeconds) * time.Second,
		AllowStaleFallback: true,
	})
	if err != nil {
		return err
	}
	r.CacheRules = classifier
	return nil
}

// initCacheComponents initializes the durable cache and the key builder. A
// cache directory that cannot be created degrades to the no-op cache instead
// of failing the invocation.
func (r *CompositionRoot) initCacheComponents() {
	fileCache, err := file.New(r.Config.CacheDir, r.Logger)
	if err != nil {
		r.Logger.Warn("Failed to initialize durable cache, continuing without cache",
			zap.String("dir", r.Config.CacheDir),
			zap.Error(err))
		r.Cache = noop.NewNoOpCache()
	} else {
		r.Cache = fileCache
	}
	r.KeyBuilder = cache.NewKeyBuilder()
	r.Fetcher = httpx.NewFetcher(r.Config.TransportPreference, r.Logger)
}

// initServices wires the policy gate, RPC reader, market engine, and
// dispatcher.
func (r *CompositionRoot) initServices() {
	r.Gate = policy.NewGate(r.Config)
	r.Caller = rpc.NewCaller(r.Fetcher)
	r.Reader = rpc.NewReader(r.Cache, r.KeyBuilder, r.CacheRules, r.Caller, r.Gate.Strict(), r.Logger)
	r.Engine = market.NewEngine(r.Config, r.Cache, r.Fetcher, r.Logger)
	r.Dispatcher = dispatch.New(r.Config, r.Gate, r.Reader, r.Caller, r.Engine, r.Logger)
}

// Cleanup flushes buffered log output.
func (r *CompositionRoot) Cleanup() {
	if r.Logger != nil {
		_ = r.Logger.Sync()
	}
}
