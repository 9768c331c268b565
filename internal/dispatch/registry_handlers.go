package dispatch

import (
	"context"

	"github.com/status-im/defi-native-core/internal/protocol"
	"github.com/status-im/defi-native-core/internal/registry"
)

func (d *Dispatcher) handleListChains(_ context.Context, _ protocol.Params) ([]protocol.Field, error) {
	return []protocol.Field{
		{Name: "chains", Value: registry.Chains()},
	}, nil
}

func (d *Dispatcher) handleResolveChain(_ context.Context, params protocol.Params) ([]protocol.Field, error) {
	input, err := params.String("chain")
	if err != nil {
		return nil, err
	}
	chain, err := registry.ResolveChain(input)
	if err != nil {
		return nil, err
	}
	return []protocol.Field{
		{Name: "chainId", Value: chain.ID},
		{Name: "name", Value: chain.Name},
		{Name: "nativeSymbol", Value: chain.NativeSymbol},
		{Name: "nativeDecimals", Value: chain.NativeDecimals},
	}, nil
}

func (d *Dispatcher) handleResolveAsset(_ context.Context, params protocol.Params) ([]protocol.Field, error) {
	chainInput, err := params.String("chain")
	if err != nil {
		return nil, err
	}
	assetInput, err := params.String("asset")
	if err != nil {
		return nil, err
	}
	chain, err := registry.ResolveChain(chainInput)
	if err != nil {
		return nil, err
	}
	ref, err := registry.ResolveAsset(chain, assetInput)
	if err != nil {
		return nil, err
	}

	fields := []protocol.Field{
		{Name: "chainId", Value: chain.ID},
		{Name: "assetId", Value: ref.AssetID},
	}
	if ref.Symbol != "" {
		fields = append(fields, protocol.Field{Name: "symbol", Value: ref.Symbol})
	}
	if ref.Address != "" {
		fields = append(fields, protocol.Field{Name: "address", Value: ref.Address})
	}
	if ref.Decimals > 0 {
		fields = append(fields, protocol.Field{Name: "decimals", Value: ref.Decimals})
	}
	return fields, nil
}
