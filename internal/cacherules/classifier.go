package cacherules

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/status-im/defi-native-core/internal/models"
)

//go:embed policies.yaml
var policiesYAML []byte

type policyEntry struct {
	TTLSeconds      int64 `yaml:"ttl_seconds"`
	MaxStaleSeconds int64 `yaml:"max_stale_seconds"`
	AllowStale      bool  `yaml:"allow_stale_fallback"`
}

type policiesDocument struct {
	Methods map[string]policyEntry `yaml:"methods"`
}

// Classifier resolves the cache policy for an RPC method. Method names are
// case-folded to their canonical spelling before lookup so callers with
// inconsistent casing hit the same policy bucket and cache key.
type Classifier struct {
	canonical map[string]string
	policies  map[string]models.MethodPolicy
	defaults  models.MethodPolicy
}

// NewClassifier parses the embedded policy table. Defaults apply to every
// method without a bespoke entry.
func NewClassifier(defaults models.MethodPolicy) (*Classifier, error) {
	var doc policiesDocument
	if err := yaml.Unmarshal(policiesYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse embedded method policies: %w", err)
	}

	c := &Classifier{
		canonical: make(map[string]string, len(doc.Methods)),
		policies:  make(map[string]models.MethodPolicy, len(doc.Methods)),
		defaults:  defaults,
	}
	for method, entry := range doc.Methods {
		c.canonical[strings.ToLower(method)] = method
		c.policies[method] = models.MethodPolicy{
			TTL:                time.Duration(entry.TTLSeconds) * time.Second,
			MaxStale:           time.Duration(entry.MaxStaleSeconds) * time.Second,
			AllowStaleFallback: entry.AllowStale,
		}
	}
	return c, nil
}

// CanonicalMethod maps any casing of a known method to its canonical RPC
// spelling; unknown methods pass through trimmed but otherwise untouched.
func (c *Classifier) CanonicalMethod(method string) string {
	trimmed := strings.TrimSpace(method)
	if canonical, ok := c.canonical[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// PolicyFor returns the cache policy for a canonical method name.
func (c *Classifier) PolicyFor(method string) models.MethodPolicy {
	if policy, ok := c.policies[method]; ok {
		return policy
	}
	return c.defaults
}
