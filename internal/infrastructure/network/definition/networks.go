package definition

import (
	"strings"

	"synth_dashboard/internal/domain/entity"
)

// Networks Synthetix is deployed on.
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.NetworkDefinition{
		ChainID:          1,
		Name:             "Ethereum Mainnet",
		Identifier:       "ethereum",
		NativeSymbol:     "ETH",
		PrimaryRPCURL:    "https://ethereum-rpc.publicnode.com",
		FallbackRPCURLs:  []string{"https://rpc.ankr.com/eth", "https://ethereum.publicnode.com"},
		BlockExplorerURL: "https://etherscan.io",
	}
	Optimism = entity.NetworkDefinition{
		ChainID:          10,
		Name:             "OP Mainnet",
		Identifier:       "optimism",
		NativeSymbol:     "ETH",
		PrimaryRPCURL:    "https://mainnet.optimism.io",
		FallbackRPCURLs:  []string{"https://optimism.publicnode.com", "https://rpc.ankr.com/optimism"},
		BlockExplorerURL: "https://optimistic.etherscan.io",
	}
)

var allKnownDefinitions = map[string]entity.NetworkDefinition{ //nolint:gochecknoglobals
	Ethereum.Identifier: Ethereum,
	Optimism.Identifier: Optimism,
}

// ByIdentifier returns a copy of the predefined network with the given identifier.
func ByIdentifier(identifier string) (entity.NetworkDefinition, bool) {
	def, ok := allKnownDefinitions[strings.ToLower(strings.TrimSpace(identifier))]
	if !ok {
		return entity.NetworkDefinition{}, false
	}
	def.FallbackRPCURLs = append([]string(nil), def.FallbackRPCURLs...)
	return def, true
}

// ByChainID returns the predefined network with the given chain ID.
func ByChainID(chainID uint64) (entity.NetworkDefinition, bool) {
	for _, def := range allKnownDefinitions {
		if def.ChainID == chainID {
			return ByIdentifier(def.Identifier)
		}
	}
	return entity.NetworkDefinition{}, false
}
