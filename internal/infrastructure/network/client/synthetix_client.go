package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"synth_dashboard/internal/app/port"
	"synth_dashboard/internal/domain/entity"
	"synth_dashboard/internal/infrastructure/configloader"
	"synth_dashboard/internal/pkg/utils"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

var (
	// ErrContractNotConfigured is returned when a call targets a contract without an address.
	ErrContractNotConfigured = errors.New("contract address not configured")
	// ErrUnknownSynth is returned for synths missing from the registry.
	ErrUnknownSynth = errors.New("unknown synth")
)

// ContractBackend is the subset of ethclient.Client the reader needs.
type ContractBackend interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Contracts holds the resolved Synthetix contract addresses.
// A zero address marks a contract that is not configured.
type Contracts struct {
	Synthetix       common.Address
	SynthetixState  common.Address
	ExchangeRates   common.Address
	FeePool         common.Address
	RewardEscrow    common.Address
	SynthetixEscrow common.Address
}

// ContractsFromConfig converts configured hex addresses; empty entries stay zero.
func ContractsFromConfig(cfg configloader.ContractsConfig) Contracts {
	return Contracts{
		Synthetix:       common.HexToAddress(cfg.Synthetix),
		SynthetixState:  common.HexToAddress(cfg.SynthetixState),
		ExchangeRates:   common.HexToAddress(cfg.ExchangeRates),
		FeePool:         common.HexToAddress(cfg.FeePool),
		RewardEscrow:    common.HexToAddress(cfg.RewardEscrow),
		SynthetixEscrow: common.HexToAddress(cfg.SynthetixEscrow),
	}
}

// SynthetixClient implements port.SynthetixReader against an EVM JSON-RPC node.
type SynthetixClient struct {
	backend        ContractBackend
	netDef         entity.NetworkDefinition
	contracts      Contracts
	synths         []entity.SynthInfo
	synthAddresses map[string]common.Address
	rpcCallTimeout time.Duration
}

// Dial connects to the network's primary RPC URL, falling back to the others in order.
func Dial(netDef entity.NetworkDefinition, connectionTimeout time.Duration) (*ethclient.Client, error) {
	rpcURLs := append([]string{netDef.PrimaryRPCURL}, netDef.FallbackRPCURLs...)
	var lastErr error

	for _, rpcURL := range rpcURLs {
		if rpcURL == "" {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		client, err := ethclient.DialContext(ctx, rpcURL)
		cancel()

		if err == nil {
			return client, nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}
	if lastErr == nil {
		lastErr = errors.New("no RPC URL configured")
	}

	return nil, fmt.Errorf("all RPC connection attempts failed for network %s: %w", netDef.Name, lastErr)
}

// NewSynthetixClient creates a reader over backend. synths is the registry in canonical order.
func NewSynthetixClient(
	backend ContractBackend,
	netDef entity.NetworkDefinition,
	contracts Contracts,
	synths []entity.SynthInfo,
	rpcCallTimeout time.Duration,
) port.SynthetixReader {
	initParsedABIs()
	synthAddresses := make(map[string]common.Address, len(synths))
	for _, synth := range synths {
		synthAddresses[synth.Name] = common.HexToAddress(synth.Address)
	}
	return &SynthetixClient{
		backend:        backend,
		netDef:         netDef,
		contracts:      contracts,
		synths:         append([]entity.SynthInfo(nil), synths...),
		synthAddresses: synthAddresses,
		rpcCallTimeout: rpcCallTimeout,
	}
}

// call packs and executes a read-only contract call and unpacks its outputs.
func (c *SynthetixClient) call(ctx context.Context, contract common.Address, contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	if contract == (common.Address{}) {
		return nil, fmt.Errorf("%s: %w", method, ErrContractNotConfigured)
	}
	callData, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	rpcCallCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	raw, err := c.backend.CallContract(rpcCallCtx, ethereum.CallMsg{To: &contract, Data: callData}, nil)
	if err != nil {
		return nil, fmt.Errorf("eth_call %s on %s failed: %w", method, contract.Hex(), err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("eth_call %s on %s returned no data", method, contract.Hex())
	}

	unpacked, err := contractABI.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	if len(unpacked) == 0 {
		return nil, fmt.Errorf("%s unpack returned no data", method)
	}
	return unpacked, nil
}

func (c *SynthetixClient) callUint(ctx context.Context, contract common.Address, contractABI abi.ABI, method string, args ...interface{}) (*big.Int, error) {
	unpacked, err := c.call(ctx, contract, contractABI, method, args...)
	if err != nil {
		return nil, err
	}
	value, ok := unpacked[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("failed to assert %s result to *big.Int. Got: %T", method, unpacked[0])
	}
	return value, nil
}

// balanceOf reads an ERC20 balance. An empty response is treated as a zero balance.
func (c *SynthetixClient) balanceOf(ctx context.Context, token common.Address, walletAddress string) (*big.Int, error) {
	if token == (common.Address{}) {
		return nil, fmt.Errorf("balanceOf: %w", ErrContractNotConfigured)
	}
	callData, err := erc20ABI.Pack("balanceOf", common.HexToAddress(walletAddress))
	if err != nil {
		return nil, fmt.Errorf("failed to pack balanceOf call: %w", err)
	}

	rpcCallCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	raw, err := c.backend.CallContract(rpcCallCtx, ethereum.CallMsg{To: &token, Data: callData}, nil)
	if err != nil {
		return nil, fmt.Errorf("balanceOf on %s failed: %w", token.Hex(), err)
	}
	if len(raw) == 0 {
		return big.NewInt(0), nil
	}
	unpacked, err := erc20ABI.Unpack("balanceOf", raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack balanceOf result for %s: %w", token.Hex(), err)
	}
	balance, ok := unpacked[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("failed to assert balanceOf result to *big.Int. Got: %T", unpacked[0])
	}
	return balance, nil
}

func (c *SynthetixClient) Collateral(ctx context.Context, walletAddress string) (*big.Int, error) {
	return c.callUint(ctx, c.contracts.Synthetix, synthetixABI, "collateral", common.HexToAddress(walletAddress))
}

func (c *SynthetixClient) SynthBalance(ctx context.Context, synth string, walletAddress string) (*big.Int, error) {
	token, ok := c.synthAddresses[synth]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSynth, synth)
	}
	return c.balanceOf(ctx, token, walletAddress)
}

func (c *SynthetixClient) NativeBalance(ctx context.Context, walletAddress string) (*big.Int, error) {
	rpcCallCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	balance, err := c.backend.BalanceAt(rpcCallCtx, common.HexToAddress(walletAddress), nil)
	if err != nil {
		return nil, fmt.Errorf("eth_getBalance (%s) for %s on %s failed: %w", c.netDef.NativeSymbol, walletAddress, c.netDef.Name, err)
	}
	return balance, nil
}

func (c *SynthetixClient) RatesForCurrencies(ctx context.Context, currencyKeys []string) ([]*big.Int, error) {
	unpacked, err := c.call(ctx, c.contracts.ExchangeRates, exchangeRatesABI, "ratesForCurrencies", utils.CurrencyKeys(currencyKeys))
	if err != nil {
		return nil, err
	}
	rates, ok := unpacked[0].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("failed to assert ratesForCurrencies result to []*big.Int. Got: %T", unpacked[0])
	}
	if len(rates) != len(currencyKeys) {
		return nil, fmt.Errorf("ratesForCurrencies returned %d rates for %d keys", len(rates), len(currencyKeys))
	}
	return rates, nil
}

func (c *SynthetixClient) IsFeesClaimable(ctx context.Context, walletAddress string) (bool, error) {
	unpacked, err := c.call(ctx, c.contracts.FeePool, feePoolABI, "isFeesClaimable", common.HexToAddress(walletAddress))
	if err != nil {
		return false, err
	}
	claimable, ok := unpacked[0].(bool)
	if !ok {
		return false, fmt.Errorf("failed to assert isFeesClaimable result to bool. Got: %T", unpacked[0])
	}
	return claimable, nil
}

type feePeriodOutput struct {
	FeePeriodId         *big.Int
	StartingDebtIndex   *big.Int
	StartTime           *big.Int
	FeesToDistribute    *big.Int
	FeesClaimed         *big.Int
	RewardsToDistribute *big.Int
	RewardsClaimed      *big.Int
}

func (c *SynthetixClient) RecentFeePeriod(ctx context.Context, index int64) (entity.FeePeriod, error) {
	unpacked, err := c.call(ctx, c.contracts.FeePool, feePoolABI, "recentFeePeriods", big.NewInt(index))
	if err != nil {
		return entity.FeePeriod{}, err
	}

	var out feePeriodOutput
	if err := feePoolABI.Methods["recentFeePeriods"].Outputs.Copy(&out, unpacked); err != nil {
		return entity.FeePeriod{}, fmt.Errorf("failed to decode recentFeePeriods(%d): %w", index, err)
	}

	period := entity.FeePeriod{
		FeesToDistribute:    out.FeesToDistribute,
		FeesClaimed:         out.FeesClaimed,
		RewardsToDistribute: out.RewardsToDistribute,
		RewardsClaimed:      out.RewardsClaimed,
	}
	for _, field := range []struct {
		name  string
		value *big.Int
		dst   *uint64
	}{
		{"feePeriodId", out.FeePeriodId, &period.ID},
		{"startingDebtIndex", out.StartingDebtIndex, &period.StartingDebtIndex},
		{"startTime", out.StartTime, &period.StartTime},
	} {
		if field.value == nil {
			continue
		}
		if !field.value.IsUint64() {
			return entity.FeePeriod{}, fmt.Errorf("recentFeePeriods(%d).%s overflows uint64: %s", index, field.name, field.value)
		}
		*field.dst = field.value.Uint64()
	}
	return period, nil
}

func (c *SynthetixClient) FeePeriodDuration(ctx context.Context) (*big.Int, error) {
	return c.callUint(ctx, c.contracts.FeePool, feePoolABI, "feePeriodDuration")
}

func (c *SynthetixClient) IssuanceRatio(ctx context.Context) (*big.Int, error) {
	return c.callUint(ctx, c.contracts.SynthetixState, synthetixStateABI, "issuanceRatio")
}

func (c *SynthetixClient) CollateralisationRatio(ctx context.Context, walletAddress string) (*big.Int, error) {
	return c.callUint(ctx, c.contracts.Synthetix, synthetixABI, "collateralisationRatio", common.HexToAddress(walletAddress))
}

func (c *SynthetixClient) TransferableSynthetix(ctx context.Context, walletAddress string) (*big.Int, error) {
	return c.callUint(ctx, c.contracts.Synthetix, synthetixABI, "transferableSynthetix", common.HexToAddress(walletAddress))
}

func (c *SynthetixClient) DebtBalanceOf(ctx context.Context, walletAddress string, currencyKey string) (*big.Int, error) {
	return c.callUint(ctx, c.contracts.Synthetix, synthetixABI, "debtBalanceOf", common.HexToAddress(walletAddress), utils.CurrencyKey(currencyKey))
}

func (c *SynthetixClient) TotalEscrowedAccountBalance(ctx context.Context, walletAddress string) (*big.Int, error) {
	return c.callUint(ctx, c.contracts.RewardEscrow, rewardEscrowABI, "totalEscrowedAccountBalance", common.HexToAddress(walletAddress))
}

// TokenSaleEscrowBalance reads the SynthetixEscrow (token sale vesting) balance.
func (c *SynthetixClient) TokenSaleEscrowBalance(ctx context.Context, walletAddress string) (*big.Int, error) {
	return c.callUint(ctx, c.contracts.SynthetixEscrow, erc20ABI, "balanceOf", common.HexToAddress(walletAddress))
}

func (c *SynthetixClient) EffectiveValue(ctx context.Context, sourceKey string, amount *big.Int, destKey string) (*big.Int, error) {
	if amount == nil {
		amount = big.NewInt(0)
	}
	return c.callUint(ctx, c.contracts.Synthetix, synthetixABI, "effectiveValue",
		utils.CurrencyKey(sourceKey), amount, utils.CurrencyKey(destKey))
}

// Synths returns a copy of the configured registry.
func (c *SynthetixClient) Synths(_ context.Context) ([]entity.SynthInfo, error) {
	return append([]entity.SynthInfo(nil), c.synths...), nil
}
