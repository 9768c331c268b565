package httpx

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/status-im/defi-native-core/internal/cerrors"
	"github.com/status-im/defi-native-core/internal/interfaces"
	"github.com/status-im/defi-native-core/internal/models"
)

// Fetcher tries each configured transport in order and falls back to the
// next on transport-level failure before declaring the source unreachable.
// HTTP status codes are not fallback triggers; they come from the upstream,
// not the transport.
type Fetcher struct {
	transports []interfaces.Transport
	logger     *zap.Logger
}

// NewFetcher builds the fixed two-transport chain ordered by preference.
func NewFetcher(preference string, logger *zap.Logger) *Fetcher {
	client := NewClientTransport()
	curl := NewCurlTransport()

	transports := []interfaces.Transport{client, curl}
	if preference == "curl" {
		transports = []interfaces.Transport{curl, client}
	}
	return &Fetcher{transports: transports, logger: logger}
}

// NewFetcherWithTransports injects an explicit transport chain.
func NewFetcherWithTransports(transports []interfaces.Transport, logger *zap.Logger) *Fetcher {
	return &Fetcher{transports: transports, logger: logger}
}

func (f *Fetcher) Do(ctx context.Context, req models.FetchRequest) (*models.FetchResponse, error) {
	var lastErr error
	for _, transport := range f.transports {
		resp, err := transport.Do(ctx, req)
		if err != nil {
			f.logger.Warn("Transport failed, trying next",
				zap.String("transport", transport.Name()),
				zap.String("url", req.URL),
				zap.Error(err))
			lastErr = err
			continue
		}
		return resp, nil
	}
	return nil, cerrors.Wrap(cerrors.CodeUnavailable, "all HTTP transports failed", lastErr)
}

// CheckStatus maps an upstream HTTP status to a protocol error, or nil for
// success statuses.
func CheckStatus(resp *models.FetchResponse) error {
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return cerrors.New(cerrors.CodeRateLimited, "upstream rate limited the request")
	case resp.StatusCode >= 400:
		return cerrors.Newf(cerrors.CodeUnavailable, "upstream returned status %d", resp.StatusCode)
	default:
		return nil
	}
}
