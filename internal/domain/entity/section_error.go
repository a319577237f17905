package entity

// Section names used in SectionError and metrics labels.
const (
	SectionBalances  = "balances"
	SectionPrices    = "prices"
	SectionRewards   = "rewards"
	SectionDebt      = "debt"
	SectionEscrow    = "escrow"
	SectionSynths    = "synths"
	SectionDashboard = "dashboard"
)

// SectionError represents a dashboard section that could not be fetched.
type SectionError struct {
	Section string `json:"section"`
	Message string `json:"message"`
}
