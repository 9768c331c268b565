package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/status-im/defi-native-core/internal/cerrors"
	"github.com/status-im/defi-native-core/internal/httpx"
	"github.com/status-im/defi-native-core/internal/interfaces"
	"github.com/status-im/defi-native-core/internal/models"
)

// Ensure Caller implements interfaces.MethodCaller
var _ interfaces.MethodCaller = (*Caller)(nil)

// Caller performs single JSON-RPC 2.0 calls through the transport chain.
type Caller struct {
	fetcher *httpx.Fetcher
}

func NewCaller(fetcher *httpx.Fetcher) *Caller {
	return &Caller{fetcher: fetcher}
}

func (c *Caller) Call(ctx context.Context, endpoint, method string, params any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(models.JSONRPCRequest{
		ID:      1,
		Method:  method,
		Params:  params,
		Jsonrpc: "2.0",
	})
	if err != nil {
		return nil, cerrors.Wrap(cerrors.CodeInternal, "encode JSON-RPC request", err)
	}

	resp, err := c.fetcher.Do(ctx, models.FetchRequest{
		Method:  http.MethodPost,
		URL:     endpoint,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    body,
	})
	if err != nil {
		return nil, err
	}
	if err := httpx.CheckStatus(resp); err != nil {
		return nil, err
	}

	var rpcResp models.JSONRPCResponse
	if err := json.Unmarshal(resp.Body, &rpcResp); err != nil {
		return nil, cerrors.Wrap(cerrors.CodeUnavailable, "invalid JSON-RPC response", err)
	}
	if rpcResp.Error != nil {
		if isRateLimit(rpcResp.Error) {
			return nil, cerrors.Newf(cerrors.CodeRateLimited, "JSON-RPC rate limited: %s", rpcResp.Error.Message)
		}
		return nil, cerrors.Newf(cerrors.CodeInternal, "JSON-RPC error: %s (code %d)", rpcResp.Error.Message, rpcResp.Error.Code)
	}
	if len(rpcResp.Result) == 0 {
		return nil, cerrors.New(cerrors.CodeUnavailable, "JSON-RPC response carried no result")
	}
	return rpcResp.Result, nil
}

// -32005 is the de facto "limit exceeded" code; some providers only signal
// through the message text.
func isRateLimit(rpcErr *models.JSONRPCError) bool {
	if rpcErr.Code == -32005 {
		return true
	}
	return strings.Contains(strings.ToLower(rpcErr.Message), "rate limit")
}
