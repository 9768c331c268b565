package interfaces

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -package=mock -source=rpc.go -destination=mock/rpc.go

// MethodCaller performs one JSON-RPC method call against an endpoint.
type MethodCaller interface {
	Call(ctx context.Context, endpoint, method string, params any) (json.RawMessage, error)
}
