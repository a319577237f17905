package entity

import "math/big"

// SynthInfo is an entry of the synth registry.
type SynthInfo struct {
	Name    string `json:"name" yaml:"name"`
	Asset   string `json:"asset" yaml:"asset"`
	Address string `json:"address" yaml:"address"`
}

// IsAssetBacked reports whether the synth tracks a real underlying asset.
func (s SynthInfo) IsAssetBacked() bool {
	return s.Asset != ""
}

// FeePeriod is a fee pool period record as returned by recentFeePeriods.
type FeePeriod struct {
	ID                  uint64
	StartingDebtIndex   uint64
	StartTime           uint64 // seconds since epoch
	FeesToDistribute    *big.Int
	FeesClaimed         *big.Int
	RewardsToDistribute *big.Int
	RewardsClaimed      *big.Int
}
