package dispatch

import (
	"context"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/status-im/defi-native-core/internal/cerrors"
	"github.com/status-im/defi-native-core/internal/protocol"
	"github.com/status-im/defi-native-core/internal/registry"
	"github.com/status-im/defi-native-core/internal/rpc"
)

func (d *Dispatcher) handleRPCCall(ctx context.Context, params protocol.Params) ([]protocol.Field, error) {
	method, err := params.String("method")
	if err != nil {
		return nil, err
	}
	_, endpoint, err := d.resolveEndpoint(params)
	if err != nil {
		return nil, err
	}

	rpcParams, _ := params.Any("params")
	opts, err := readOptions(params)
	if err != nil {
		return nil, err
	}

	result, err := d.reader.Read(ctx, endpoint, method, rpcParams, opts)
	if err != nil {
		return nil, err
	}
	return []protocol.Field{
		{Name: "method", Value: result.Method},
		{Name: "result", Value: result.Result},
		{Name: "source", Value: result.Source},
	}, nil
}

func (d *Dispatcher) handleGetBalance(ctx context.Context, params protocol.Params) ([]protocol.Field, error) {
	address, err := params.String("address")
	if err != nil {
		return nil, err
	}
	if !common.IsHexAddress(address) {
		return nil, cerrors.Newf(cerrors.CodeUsage, "invalid address: %q", address)
	}
	block, err := params.OptionalString("block", "latest")
	if err != nil {
		return nil, err
	}
	chain, endpoint, err := d.resolveEndpoint(params)
	if err != nil {
		return nil, err
	}

	checksummed := common.HexToAddress(address).Hex()
	result, err := d.reader.Read(ctx, endpoint, "eth_getBalance", []any{checksummed, block}, rpc.ReadOptions{})
	if err != nil {
		return nil, err
	}

	balance, err := parseQuantity(result.Result)
	if err != nil {
		return nil, err
	}

	fields := []protocol.Field{
		{Name: "address", Value: checksummed},
		{Name: "balanceWei", Value: balance.String()},
	}
	if chain.NativeDecimals > 0 {
		fields = append(fields, protocol.Field{Name: "balance", Value: registry.FormatUnits(balance, chain.NativeDecimals)})
		fields = append(fields, protocol.Field{Name: "symbol", Value: chain.NativeSymbol})
	}
	fields = append(fields, protocol.Field{Name: "source", Value: result.Source})
	return fields, nil
}

func (d *Dispatcher) handleSendRawTransaction(ctx context.Context, params protocol.Params) ([]protocol.Field, error) {
	if !d.gate.BroadcastAllowed() {
		return nil, cerrors.New(cerrors.CodeUnsupported, "action blocked by policy: broadcast is disabled")
	}
	signedTx, err := params.String("signedTx")
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(signedTx, "0x") {
		return nil, cerrors.New(cerrors.CodeUsage, "invalid signedTx: expected 0x-prefixed hex")
	}
	_, endpoint, err := d.resolveEndpoint(params)
	if err != nil {
		return nil, err
	}

	// Broadcasts go straight to the caller; a write must never be served
	// from or stored into the cache.
	result, err := d.caller.Call(ctx, endpoint, "eth_sendRawTransaction", []any{signedTx})
	if err != nil {
		return nil, err
	}
	var txHash string
	if err := json.Unmarshal(result, &txHash); err != nil {
		return nil, cerrors.Wrap(cerrors.CodeInternal, "unexpected broadcast result", err)
	}
	return []protocol.Field{
		{Name: "txHash", Value: txHash},
	}, nil
}

// readOptions extracts the per-request cache policy overrides.
func readOptions(params protocol.Params) (rpc.ReadOptions, error) {
	var opts rpc.ReadOptions

	cacheKey, err := params.OptionalString("cacheKey", "")
	if err != nil {
		return opts, err
	}
	opts.CacheKey = cacheKey

	if params.Has("ttlSeconds") {
		ttl, err := params.OptionalInt64("ttlSeconds", 0)
		if err != nil {
			return opts, err
		}
		if ttl < 0 {
			return opts, cerrors.New(cerrors.CodeUsage, "invalid ttlSeconds: must be non-negative")
		}
		opts.TTLSeconds = &ttl
	}
	if params.Has("maxStaleSeconds") {
		maxStale, err := params.OptionalInt64("maxStaleSeconds", 0)
		if err != nil {
			return opts, err
		}
		if maxStale < 0 {
			return opts, cerrors.New(cerrors.CodeUsage, "invalid maxStaleSeconds: must be non-negative")
		}
		opts.MaxStaleSeconds = &maxStale
	}
	return opts, nil
}

// parseQuantity decodes a JSON-RPC hex quantity result into an integer.
func parseQuantity(raw json.RawMessage) (*big.Int, error) {
	var quantity string
	if err := json.Unmarshal(raw, &quantity); err != nil {
		return nil, cerrors.Wrap(cerrors.CodeInternal, "unexpected quantity result", err)
	}
	digits := strings.TrimPrefix(quantity, "0x")
	if digits == "" {
		return big.NewInt(0), nil
	}
	value, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, cerrors.Newf(cerrors.CodeInternal, "invalid hex quantity %q", quantity)
	}
	return value, nil
}
