package market

import (
	"strings"

	"github.com/status-im/defi-native-core/internal/cerrors"
	"github.com/status-im/defi-native-core/internal/config"
	"github.com/status-im/defi-native-core/internal/models"
)

// resolveSelection builds the ordered provider candidates for one request.
//
// A forced provider is the only candidate, configured or not; the caller
// turns an unavailable forced candidate into a hard failure instead of
// falling through. In auto mode a configured direct provider matching the
// hint goes first, then the aggregator.
func resolveSelection(cfg *config.Config, forced, hint string) (models.ProviderSelection, error) {
	forced = strings.ToLower(strings.TrimSpace(forced))
	hint = strings.ToLower(strings.TrimSpace(hint))

	if forced != "" && forced != "auto" {
		if !knownProvider(forced) {
			return nil, cerrors.Newf(cerrors.CodeUsage, "unknown provider %q", forced)
		}
		url, ok := cfg.ProviderSource(forced)
		return models.ProviderSelection{{Name: forced, URL: url, Available: ok}}, nil
	}

	var selection models.ProviderSelection
	if hint != "" && isDirectProvider(hint) {
		if url, ok := cfg.ProviderSource(hint); ok {
			selection = append(selection, models.ProviderCandidate{Name: hint, URL: url, Available: true})
		}
	}
	aggURL, aggOK := cfg.ProviderSource(config.AggregatorProvider)
	selection = append(selection, models.ProviderCandidate{Name: config.AggregatorProvider, URL: aggURL, Available: aggOK})
	return selection, nil
}

func knownProvider(name string) bool {
	return name == config.AggregatorProvider || isDirectProvider(name)
}

func isDirectProvider(name string) bool {
	for _, direct := range config.DirectProviders {
		if direct == name {
			return true
		}
	}
	return false
}
