package dispatch

import (
	"context"

	"github.com/status-im/defi-native-core/internal/encoder"
	"github.com/status-im/defi-native-core/internal/models"
	"github.com/status-im/defi-native-core/internal/protocol"
	"github.com/status-im/defi-native-core/internal/registry"
)

func (d *Dispatcher) handleBuildTransferNative(_ context.Context, params protocol.Params) ([]protocol.Field, error) {
	toAddress, err := params.String("toAddress")
	if err != nil {
		return nil, err
	}
	amountWei, err := params.String("amountWei")
	if err != nil {
		return nil, err
	}

	chainID := ""
	if alias, err := params.OptionalString("chain", ""); err != nil {
		return nil, err
	} else if alias != "" {
		chain, err := registry.ResolveChain(alias)
		if err != nil {
			return nil, err
		}
		chainID = chain.ID
	}

	tx, err := encoder.BuildTransferNative(toAddress, amountWei, chainID)
	if err != nil {
		return nil, err
	}
	return txFields(tx), nil
}

func (d *Dispatcher) handleBuildTransferERC20(_ context.Context, params protocol.Params) ([]protocol.Field, error) {
	tokenAddress, err := params.String("tokenAddress")
	if err != nil {
		return nil, err
	}
	toAddress, err := params.String("toAddress")
	if err != nil {
		return nil, err
	}
	amountRaw, err := params.String("amountRaw")
	if err != nil {
		return nil, err
	}

	tx, err := encoder.BuildTransferERC20(tokenAddress, toAddress, amountRaw)
	if err != nil {
		return nil, err
	}
	return txFields(tx), nil
}

func (d *Dispatcher) handleBuildApproveERC20(_ context.Context, params protocol.Params) ([]protocol.Field, error) {
	tokenAddress, err := params.String("tokenAddress")
	if err != nil {
		return nil, err
	}
	spenderAddress, err := params.String("spenderAddress")
	if err != nil {
		return nil, err
	}
	amountRaw, err := params.String("amountRaw")
	if err != nil {
		return nil, err
	}

	tx, err := encoder.BuildApproveERC20(tokenAddress, spenderAddress, amountRaw)
	if err != nil {
		return nil, err
	}
	return txFields(tx), nil
}

func (d *Dispatcher) handleBuildSwap(_ context.Context, params protocol.Params) ([]protocol.Field, error) {
	routerAddress, err := params.String("routerAddress")
	if err != nil {
		return nil, err
	}
	amountIn, err := params.String("amountIn")
	if err != nil {
		return nil, err
	}
	amountOutMin, err := params.String("amountOutMin")
	if err != nil {
		return nil, err
	}
	path, err := params.StringSlice("path")
	if err != nil {
		return nil, err
	}
	toAddress, err := params.String("toAddress")
	if err != nil {
		return nil, err
	}
	deadline, err := params.String("deadline")
	if err != nil {
		return nil, err
	}

	tx, err := encoder.BuildSwap(routerAddress, amountIn, amountOutMin, path, toAddress, deadline)
	if err != nil {
		return nil, err
	}
	return txFields(tx), nil
}

func txFields(tx *models.TxRequest) []protocol.Field {
	return []protocol.Field{
		{Name: "txRequest", Value: tx},
	}
}
