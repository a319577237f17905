package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"synth_dashboard/internal/domain/entity"
	"synth_dashboard/internal/infrastructure/configloader"
	"synth_dashboard/internal/infrastructure/pricefeed"
	"synth_dashboard/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDashboardService(chain *fakeChain, feed *fakePriceFeed) *DashboardServiceImpl {
	cfg := &configloader.Config{
		Currencies:    testCurrencies,
		FailedWallets: configloader.FailedWalletsConfig{TTLMinutes: 60, CleanupIntervalMinutes: 10},
	}
	return NewDashboardService(chain, feed, logger.NewNopLogger(), cfg).(*DashboardServiceImpl)
}

func TestFetchDataComplete(t *testing.T) {
	svc := newTestDashboardService(newFakeChain(), &fakePriceFeed{rate: 0.005})

	view, err := svc.FetchData(context.Background(), testWallet)
	require.NoError(t, err)
	assert.True(t, view.Complete())
	assert.Empty(t, view.Errors)
	assert.Equal(t, testWallet, view.WalletAddress)
	assert.Equal(t, 1.5, view.Balances.Collateral)
	assert.InDelta(t, 200.0, view.Prices.StableSynthPriceInUSD, 1e-9)
	assert.True(t, view.Rewards.FeesClaimable)
	assert.Equal(t, 50.0, view.Debt.DebtBalance)
	assert.Equal(t, 30.0, view.Escrow.RewardEscrow)
	assert.Equal(t, 410.0, view.Synths.Total)
	assert.Empty(t, svc.GetFailedWallets())
}

func TestFetchDataPartialFailure(t *testing.T) {
	chain := newFakeChain()
	chain.errs["TotalEscrowedAccountBalance"] = errRPC
	feed := &fakePriceFeed{err: fmt.Errorf("%w: timeout", pricefeed.ErrPriceFeedUnavailable)}
	svc := newTestDashboardService(chain, feed)

	view, err := svc.FetchData(context.Background(), testWallet)
	require.NoError(t, err)
	assert.False(t, view.Complete())
	assert.Nil(t, view.Prices)
	assert.Nil(t, view.Escrow)
	assert.NotNil(t, view.Balances)
	assert.NotNil(t, view.Rewards)
	assert.NotNil(t, view.Debt)
	assert.NotNil(t, view.Synths)

	require.Len(t, view.Errors, 2)
	assert.Equal(t, entity.SectionPrices, view.Errors[0].Section)
	assert.Equal(t, entity.SectionEscrow, view.Errors[1].Section)
	assert.Contains(t, view.Errors[1].Message, errRPC.Error())

	assert.Equal(t, []string{strings.ToLower(testWallet)}, svc.GetFailedWallets())
}

func TestFetchDataRecoversWallet(t *testing.T) {
	chain := newFakeChain()
	chain.errs["Collateral"] = errRPC
	svc := newTestDashboardService(chain, &fakePriceFeed{rate: 0.005})

	_, err := svc.FetchData(context.Background(), testWallet)
	require.NoError(t, err)
	require.Len(t, svc.GetFailedWallets(), 1)

	delete(chain.errs, "Collateral")
	view, err := svc.FetchData(context.Background(), testWallet)
	require.NoError(t, err)
	assert.True(t, view.Complete())
	assert.Empty(t, svc.GetFailedWallets())
}

func TestFetchDataOrchestrationFailure(t *testing.T) {
	chain := newFakeChain()
	chain.panics["Synths"] = true
	svc := newTestDashboardService(chain, &fakePriceFeed{rate: 0.005})

	view, err := svc.FetchData(context.Background(), testWallet)
	require.NoError(t, err)
	assert.Equal(t, testWallet, view.WalletAddress)
	assert.Nil(t, view.Balances)
	assert.Nil(t, view.Prices)
	assert.Nil(t, view.Rewards)
	assert.Nil(t, view.Debt)
	assert.Nil(t, view.Escrow)
	assert.Nil(t, view.Synths)
	require.Len(t, view.Errors, 1)
	assert.Equal(t, entity.SectionDashboard, view.Errors[0].Section)
	assert.Equal(t, "synths fetcher panicked: Synths exploded", view.Errors[0].Message)
	assert.Len(t, svc.GetFailedWallets(), 1)
}

func TestFetchDataChildGoroutinePanic(t *testing.T) {
	chain := newFakeChain()
	chain.panics["NativeBalance"] = true
	svc := newTestDashboardService(chain, &fakePriceFeed{rate: 0.005})

	view, err := svc.FetchData(context.Background(), testWallet)
	require.NoError(t, err)
	assert.Nil(t, view.Balances)
	assert.Nil(t, view.Synths)
	require.Len(t, view.Errors, 1)
	assert.Equal(t, entity.SectionDashboard, view.Errors[0].Section)
	assert.Equal(t, "balances fetcher panicked: NativeBalance exploded", view.Errors[0].Message)
	assert.NotContains(t, view.Errors[0].Message, "goroutine")
}

func TestFetchDataInvalidWallet(t *testing.T) {
	svc := newTestDashboardService(newFakeChain(), &fakePriceFeed{rate: 0.005})

	for _, wallet := range []string{"", "0x123", "not-an-address"} {
		view, err := svc.FetchData(context.Background(), wallet)
		assert.Nil(t, view)
		assert.ErrorIs(t, err, ErrInvalidWalletAddress)
	}
	assert.Empty(t, svc.GetFailedWallets())
}
