package interfaces

import (
	"context"

	"github.com/status-im/defi-native-core/internal/models"
)

//go:generate mockgen -package=mock -source=transport.go -destination=mock/transport.go

// Transport is one way of performing an HTTP exchange. Exactly two
// implementations exist (built-in client and curl subprocess); they are tried
// in a fixed, configurable order by the fetcher.
type Transport interface {
	Name() string
	Do(ctx context.Context, req models.FetchRequest) (*models.FetchResponse, error)
}
