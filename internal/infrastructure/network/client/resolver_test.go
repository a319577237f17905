package client

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testResolver = common.HexToAddress("0x00000000000000000000000000000000000000c1")

func newResolverBackend(t *testing.T, registry map[string]common.Address) (*fakeBackend, *[]string) {
	backend := newFakeBackend(t)
	backend.abis[testResolver] = resolverABI

	var requested []string
	backend.on(testResolver, "getAddress", func(args []interface{}) ([]byte, error) {
		key := args[0].([32]byte)
		name := strings.TrimRight(string(key[:]), "\x00")
		requested = append(requested, name)
		return resolverABI.Methods["getAddress"].Outputs.Pack(registry[name])
	})
	return backend, &requested
}

func TestResolveContracts(t *testing.T) {
	backend, requested := newResolverBackend(t, map[string]common.Address{
		"SynthetixState": testContracts.SynthetixState,
		"ExchangeRates":  testContracts.ExchangeRates,
		"RewardEscrow":   testContracts.RewardEscrow,
	})
	configured := Contracts{Synthetix: testContracts.Synthetix, FeePool: testContracts.FeePool}

	resolved, missing, err := ResolveContracts(context.Background(), backend, testResolver, configured, time.Second)
	require.NoError(t, err)

	assert.Equal(t, []string{"SynthetixState", "ExchangeRates", "RewardEscrow", "SynthetixEscrow"}, *requested)
	assert.Equal(t, []string{"SynthetixEscrow"}, missing)
	assert.Equal(t, Contracts{
		Synthetix:      testContracts.Synthetix,
		SynthetixState: testContracts.SynthetixState,
		ExchangeRates:  testContracts.ExchangeRates,
		FeePool:        testContracts.FeePool,
		RewardEscrow:   testContracts.RewardEscrow,
	}, resolved)
}

func TestResolveContractsAllConfigured(t *testing.T) {
	backend, requested := newResolverBackend(t, nil)

	resolved, missing, err := ResolveContracts(context.Background(), backend, testResolver, testContracts, time.Second)
	require.NoError(t, err)
	assert.Empty(t, *requested)
	assert.Empty(t, missing)
	assert.Equal(t, testContracts, resolved)
}

func TestResolveContractsCallFails(t *testing.T) {
	backend := newFakeBackend(t)
	backend.abis[testResolver] = resolverABI
	backend.on(testResolver, "getAddress", func([]interface{}) ([]byte, error) {
		return nil, errors.New("connection reset")
	})

	_, _, err := ResolveContracts(context.Background(), backend, testResolver, Contracts{}, time.Second)
	assert.ErrorContains(t, err, "resolve Synthetix")
	assert.ErrorContains(t, err, "connection reset")
}
