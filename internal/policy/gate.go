package policy

import (
	"github.com/status-im/defi-native-core/internal/config"
)

// Catalog is the static set of actions this core knows how to police.
// Handler-only actions not yet cataloged pass the gate by default.
var Catalog = []string{
	"listChains",
	"resolveChain",
	"resolveAsset",
	"rpcCall",
	"getBalance",
	"yieldOpportunities",
	"lendingRates",
	"buildTransferNative",
	"buildTransferErc20",
	"buildApproveErc20",
	"buildSwap",
	"sendRawTransaction",
}

// Gate decides action support and allowance from the static catalog and the
// optional allowlist, and exposes the global strict/broadcast flags.
type Gate struct {
	catalog        map[string]struct{}
	allowlist      map[string]struct{}
	allowlistSet   bool
	strict         bool
	allowBroadcast bool
}

func NewGate(cfg *config.Config) *Gate {
	g := &Gate{
		catalog:        make(map[string]struct{}, len(Catalog)),
		allowlistSet:   cfg.AllowlistSet,
		strict:         cfg.Strict,
		allowBroadcast: cfg.AllowBroadcast,
	}
	for _, action := range Catalog {
		g.catalog[action] = struct{}{}
	}
	if cfg.AllowlistSet {
		g.allowlist = make(map[string]struct{}, len(cfg.EnabledActions))
		for _, action := range cfg.EnabledActions {
			g.allowlist[action] = struct{}{}
		}
	}
	return g
}

// IsSupported distinguishes "doesn't exist" from "exists but disabled".
func (g *Gate) IsSupported(action string) bool {
	_, ok := g.catalog[action]
	return ok
}

// IsAllowed applies the allowlist to cataloged actions. Uncataloged actions
// pass so handler-only additions stay forward compatible.
func (g *Gate) IsAllowed(action string) bool {
	if _, cataloged := g.catalog[action]; !cataloged {
		return true
	}
	if !g.allowlistSet {
		return true
	}
	_, listed := g.allowlist[action]
	return listed
}

// Strict disables the RPC reader's fresh-cache short-circuit.
func (g *Gate) Strict() bool {
	return g.strict
}

// BroadcastAllowed gates the transaction-send handler.
func (g *Gate) BroadcastAllowed() bool {
	return g.allowBroadcast
}
