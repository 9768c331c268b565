package dispatch

import (
	"context"

	"go.uber.org/zap"

	"github.com/status-im/defi-native-core/internal/cerrors"
	"github.com/status-im/defi-native-core/internal/config"
	"github.com/status-im/defi-native-core/internal/interfaces"
	"github.com/status-im/defi-native-core/internal/market"
	"github.com/status-im/defi-native-core/internal/policy"
	"github.com/status-im/defi-native-core/internal/protocol"
	"github.com/status-im/defi-native-core/internal/registry"
	"github.com/status-im/defi-native-core/internal/rpc"
)

// handler produces the action-specific response fields for one request.
type handler func(ctx context.Context, params protocol.Params) ([]protocol.Field, error)

// Dispatcher routes one parsed request through the policy gate to exactly one
// handler and renders exactly one response payload.
type Dispatcher struct {
	cfg    *config.Config
	gate   *policy.Gate
	reader *rpc.Reader
	caller interfaces.MethodCaller
	engine *market.Engine
	logger *zap.Logger

	handlers map[string]handler
}

func New(cfg *config.Config, gate *policy.Gate, reader *rpc.Reader, caller interfaces.MethodCaller, engine *market.Engine, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		cfg:    cfg,
		gate:   gate,
		reader: reader,
		caller: caller,
		engine: engine,
		logger: logger,
	}
	d.handlers = map[string]handler{
		"listChains":          d.handleListChains,
		"resolveChain":        d.handleResolveChain,
		"resolveAsset":        d.handleResolveAsset,
		"rpcCall":             d.handleRPCCall,
		"getBalance":          d.handleGetBalance,
		"yieldOpportunities":  d.handleYieldOpportunities,
		"lendingRates":        d.handleLendingRates,
		"buildTransferNative": d.handleBuildTransferNative,
		"buildTransferErc20":  d.handleBuildTransferERC20,
		"buildApproveErc20":   d.handleBuildApproveERC20,
		"buildSwap":           d.handleBuildSwap,
		"sendRawTransaction":  d.handleSendRawTransaction,
	}
	return d
}

// Handle runs one request end to end and always returns a renderable payload;
// failures become the error envelope, never a panic or empty output.
func (d *Dispatcher) Handle(ctx context.Context, input []byte) []byte {
	payload, err := d.run(ctx, input)
	if err != nil {
		d.logger.Warn("Request failed",
			zap.Int("code", int(cerrors.CodeOf(err))),
			zap.Bool("retryable", cerrors.Retryable(err)),
			zap.Error(err))
		return protocol.EncodeError(err)
	}
	return payload
}

func (d *Dispatcher) run(ctx context.Context, input []byte) ([]byte, error) {
	req, err := protocol.Parse(input)
	if err != nil {
		return nil, err
	}

	// Policy first: a blocked action never gets its params materialized.
	if !d.gate.IsAllowed(req.Action) {
		return nil, cerrors.Newf(cerrors.CodeUnsupported, "action blocked by policy: %q", req.Action)
	}

	params, err := req.Params()
	if err != nil {
		return nil, err
	}

	h, ok := d.handlers[req.Action]
	if !ok {
		return nil, cerrors.Newf(cerrors.CodeUnsupported, "unsupported action: %q", req.Action)
	}

	// Validated before the handler runs: a side-effecting action must not
	// reach upstream only to fail on envelope options afterwards.
	resultsOnly, err := params.OptionalBool("resultsOnly", false)
	if err != nil {
		return nil, err
	}

	fields, err := h(ctx, params)
	if err != nil {
		return nil, err
	}
	return protocol.EncodeOK(fields, resultsOnly)
}

// resolveEndpoint picks the JSON-RPC endpoint for a request: an explicit
// endpoint wins, otherwise the chain alias maps through the configured
// per-chain endpoints. A chain without a configured endpoint is an
// availability problem, not a usage one.
func (d *Dispatcher) resolveEndpoint(params protocol.Params) (registry.Chain, string, error) {
	if params.Has("endpoint") {
		endpoint, err := params.String("endpoint")
		if err != nil {
			return registry.Chain{}, "", err
		}
		alias, err := params.OptionalString("chain", "")
		if err != nil {
			return registry.Chain{}, "", err
		}
		chain := registry.Chain{}
		if alias != "" {
			chain, err = registry.ResolveChain(alias)
			if err != nil {
				return registry.Chain{}, "", err
			}
		}
		return chain, endpoint, nil
	}

	alias, err := params.OptionalString("chain", "ethereum")
	if err != nil {
		return registry.Chain{}, "", err
	}
	chain, err := registry.ResolveChain(alias)
	if err != nil {
		return registry.Chain{}, "", err
	}
	for _, name := range chain.Aliases {
		if endpoint, ok := d.cfg.RPCEndpoints[name]; ok {
			return chain, endpoint, nil
		}
	}
	return registry.Chain{}, "", cerrors.Newf(cerrors.CodeUnavailable, "no RPC endpoint configured for chain %s", chain.ID)
}
