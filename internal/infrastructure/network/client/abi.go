package client

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Minimal ABIs, read-only methods only.
const (
	synthetixABIJSON = `[
	{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"collateral","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"issuer","type":"address"}],"name":"collateralisationRatio","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"transferableSynthetix","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"issuer","type":"address"},{"name":"currencyKey","type":"bytes32"}],"name":"debtBalanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"sourceCurrencyKey","type":"bytes32"},{"name":"sourceAmount","type":"uint256"},{"name":"destinationCurrencyKey","type":"bytes32"}],"name":"effectiveValue","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

	synthetixStateABIJSON = `[
	{"constant":true,"inputs":[],"name":"issuanceRatio","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

	exchangeRatesABIJSON = `[
	{"constant":true,"inputs":[{"name":"currencyKeys","type":"bytes32[]"}],"name":"ratesForCurrencies","outputs":[{"name":"","type":"uint256[]"}],"stateMutability":"view","type":"function"}
]`

	feePoolABIJSON = `[
	{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"isFeesClaimable","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"feePeriodDuration","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"index","type":"uint256"}],"name":"recentFeePeriods","outputs":[
		{"name":"feePeriodId","type":"uint256"},
		{"name":"startingDebtIndex","type":"uint256"},
		{"name":"startTime","type":"uint256"},
		{"name":"feesToDistribute","type":"uint256"},
		{"name":"feesClaimed","type":"uint256"},
		{"name":"rewardsToDistribute","type":"uint256"},
		{"name":"rewardsClaimed","type":"uint256"}
	],"stateMutability":"view","type":"function"}
]`

	rewardEscrowABIJSON = `[
	{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"totalEscrowedAccountBalance","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

	addressResolverABIJSON = `[
	{"constant":true,"inputs":[{"name":"name","type":"bytes32"}],"name":"getAddress","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

	erc20ABIJSON = `[{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`
)

var (
	synthetixABI      abi.ABI
	synthetixStateABI abi.ABI
	exchangeRatesABI  abi.ABI
	feePoolABI        abi.ABI
	rewardEscrowABI   abi.ABI
	resolverABI       abi.ABI
	erc20ABI          abi.ABI
	parseABIsOnce     sync.Once
)

func initParsedABIs() {
	parseABIsOnce.Do(func() {
		synthetixABI = mustParseABI("Synthetix", synthetixABIJSON)
		synthetixStateABI = mustParseABI("SynthetixState", synthetixStateABIJSON)
		exchangeRatesABI = mustParseABI("ExchangeRates", exchangeRatesABIJSON)
		feePoolABI = mustParseABI("FeePool", feePoolABIJSON)
		rewardEscrowABI = mustParseABI("RewardEscrow", rewardEscrowABIJSON)
		resolverABI = mustParseABI("AddressResolver", addressResolverABIJSON)
		erc20ABI = mustParseABI("ERC20", erc20ABIJSON)
	})
}

func mustParseABI(name, raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		// The ABIs are compile-time constants.
		panic(fmt.Sprintf("failed to parse %s ABI: %v", name, err))
	}
	return parsed
}
