package entity

import "time"

// BalanceSnapshot holds the wallet's collateral, stable synth and native currency balances.
type BalanceSnapshot struct {
	Collateral  float64 `json:"collateral"`
	StableSynth float64 `json:"stableSynth"`
	Native      float64 `json:"native"`
}

// PriceSnapshot holds the derived asset prices.
type PriceSnapshot struct {
	CollateralTokenPrice  float64 `json:"collateralTokenPrice"`
	StableSynthPriceInUSD float64 `json:"stableSynthPriceInUsd"`
	SecondarySynthPrice   float64 `json:"secondarySynthPrice"`
}

// RewardStatus describes fee claimability and the current fee period window.
// CurrentPeriodStart and CurrentPeriodEnd are nil when the chain did not report them.
type RewardStatus struct {
	FeesClaimable      bool       `json:"feesClaimable"`
	CurrentPeriodStart *time.Time `json:"currentPeriodStart"`
	CurrentPeriodEnd   *time.Time `json:"currentPeriodEnd"`
}

// DebtSnapshot holds collateralization ratios, transferable collateral and debt.
type DebtSnapshot struct {
	TargetRatio  float64 `json:"targetRatio"`
	CurrentRatio float64 `json:"currentRatio"`
	Transferable float64 `json:"transferable"`
	DebtBalance  float64 `json:"debtBalance"`
}

// EscrowSnapshot holds escrowed collateral balances.
type EscrowSnapshot struct {
	RewardEscrow    float64 `json:"rewardEscrow"`
	TokenSaleEscrow float64 `json:"tokenSaleEscrow"`
}

// SynthHolding is the wallet's balance of one synth, valued in the stable synth.
type SynthHolding struct {
	Synth   string  `json:"synth"`
	Balance float64 `json:"balance"`
}

// SynthPortfolio lists synth holdings in registry order with their total value.
type SynthPortfolio struct {
	Holdings []SynthHolding `json:"holdings"`
	Total    float64        `json:"total"`
}

// DashboardView is the aggregated dashboard payload for a single wallet.
// A nil section means it was unavailable; Errors says why.
type DashboardView struct {
	WalletAddress string           `json:"walletAddress"`
	Balances      *BalanceSnapshot `json:"balances"`
	Prices        *PriceSnapshot   `json:"prices"`
	Rewards       *RewardStatus    `json:"rewardData"`
	Debt          *DebtSnapshot    `json:"debtData"`
	Escrow        *EscrowSnapshot  `json:"escrowData"`
	Synths        *SynthPortfolio  `json:"synthData"`
	Errors        []SectionError   `json:"errors,omitempty"`
}

// Complete reports whether every section is available.
func (v *DashboardView) Complete() bool {
	return len(v.Errors) == 0
}
