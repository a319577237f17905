package port

import (
	"context"

	"synth_dashboard/internal/domain/entity"
)

// DashboardService defines the interface for building a wallet's dashboard.
type DashboardService interface {
	// FetchData aggregates every dashboard section for the wallet. Sections that could not be
	// fetched are nil in the returned view; an error is only returned for invalid input.
	FetchData(ctx context.Context, walletAddress string) (*entity.DashboardView, error)

	// GetFailedWallets returns wallets whose most recent dashboard had unavailable sections.
	GetFailedWallets() []string
}
