package client

import (
	"context"
	"fmt"
	"time"

	"synth_dashboard/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
)

// ResolveContracts fills every unset address in contracts from the Synthetix AddressResolver.
// It returns the resolved set and the names the resolver did not know.
func ResolveContracts(
	ctx context.Context,
	backend ContractBackend,
	resolver common.Address,
	contracts Contracts,
	rpcCallTimeout time.Duration,
) (Contracts, []string, error) {
	initParsedABIs()
	c := &SynthetixClient{backend: backend, rpcCallTimeout: rpcCallTimeout}

	targets := []struct {
		name    string
		address *common.Address
	}{
		{"Synthetix", &contracts.Synthetix},
		{"SynthetixState", &contracts.SynthetixState},
		{"ExchangeRates", &contracts.ExchangeRates},
		{"FeePool", &contracts.FeePool},
		{"RewardEscrow", &contracts.RewardEscrow},
		{"SynthetixEscrow", &contracts.SynthetixEscrow},
	}

	var missing []string
	for _, target := range targets {
		if *target.address != (common.Address{}) {
			continue
		}
		unpacked, err := c.call(ctx, resolver, resolverABI, "getAddress", utils.CurrencyKey(target.name))
		if err != nil {
			return contracts, nil, fmt.Errorf("resolve %s: %w", target.name, err)
		}
		resolved, ok := unpacked[0].(common.Address)
		if !ok {
			return contracts, nil, fmt.Errorf("failed to assert getAddress result to common.Address. Got: %T", unpacked[0])
		}
		if resolved == (common.Address{}) {
			missing = append(missing, target.name)
			continue
		}
		*target.address = resolved
	}
	return contracts, missing, nil
}
