package port

import (
	"context"
	"math/big"

	"synth_dashboard/internal/domain/entity"
)

// SynthetixReader defines the read-only contract calls the dashboard needs.
// Fixed-point results are returned raw, scaled by 10^18.
type SynthetixReader interface {
	// Collateral returns the wallet's total SNX collateral.
	Collateral(ctx context.Context, walletAddress string) (*big.Int, error)
	// SynthBalance returns the wallet's balance of the named synth (e.g. "sUSD").
	SynthBalance(ctx context.Context, synth string, walletAddress string) (*big.Int, error)
	// NativeBalance returns the wallet's native currency (ETH) balance.
	NativeBalance(ctx context.Context, walletAddress string) (*big.Int, error)

	// RatesForCurrencies returns exchange rates in the same order as currencyKeys.
	RatesForCurrencies(ctx context.Context, currencyKeys []string) ([]*big.Int, error)

	IsFeesClaimable(ctx context.Context, walletAddress string) (bool, error)
	RecentFeePeriod(ctx context.Context, index int64) (entity.FeePeriod, error)
	// FeePeriodDuration returns the fee period length in seconds.
	FeePeriodDuration(ctx context.Context) (*big.Int, error)

	IssuanceRatio(ctx context.Context) (*big.Int, error)
	CollateralisationRatio(ctx context.Context, walletAddress string) (*big.Int, error)
	TransferableSynthetix(ctx context.Context, walletAddress string) (*big.Int, error)
	DebtBalanceOf(ctx context.Context, walletAddress string, currencyKey string) (*big.Int, error)

	TotalEscrowedAccountBalance(ctx context.Context, walletAddress string) (*big.Int, error)
	TokenSaleEscrowBalance(ctx context.Context, walletAddress string) (*big.Int, error)

	// EffectiveValue converts amount of sourceKey into the equivalent amount of destKey at current rates.
	EffectiveValue(ctx context.Context, sourceKey string, amount *big.Int, destKey string) (*big.Int, error)

	// Synths returns the synth registry in its canonical order.
	Synths(ctx context.Context) ([]entity.SynthInfo, error)
}
