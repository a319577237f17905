package service

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"time"

	"synth_dashboard/internal/app/port"
	"synth_dashboard/internal/domain/entity"

	"golang.org/x/sync/errgroup"
)

// currentFeePeriodIndex is the recentFeePeriods slot of the open period.
const currentFeePeriodIndex = 0

// RewardFetcher reads fee claimability and the current fee period window.
type RewardFetcher struct {
	chain port.SynthetixReader
}

func NewRewardFetcher(chain port.SynthetixReader) *RewardFetcher {
	return &RewardFetcher{chain: chain}
}

func (f *RewardFetcher) Fetch(ctx context.Context, walletAddress string) (*entity.RewardStatus, error) {
	var claimable bool
	var period entity.FeePeriod
	var duration *big.Int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if claimable, err = f.chain.IsFeesClaimable(gctx, walletAddress); err != nil {
			return fmt.Errorf("fees claimable: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if period, err = f.chain.RecentFeePeriod(gctx, currentFeePeriodIndex); err != nil {
			return fmt.Errorf("current fee period: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if duration, err = f.chain.FeePeriodDuration(gctx); err != nil {
			return fmt.Errorf("fee period duration: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	start, end := FeePeriodWindow(period.StartTime, duration)
	return &entity.RewardStatus{
		FeesClaimable:      claimable,
		CurrentPeriodStart: start,
		CurrentPeriodEnd:   end,
	}, nil
}

// FeePeriodWindow converts an on-chain start time (seconds) and duration (seconds) into the
// period's start and end. start is nil for a zero start time; end is nil unless both are set.
func FeePeriodWindow(startTime uint64, duration *big.Int) (start, end *time.Time) {
	if startTime == 0 || startTime > math.MaxInt64/1000 {
		return nil, nil
	}
	periodStart := time.UnixMilli(int64(startTime) * 1000).UTC()
	start = &periodStart

	maxSeconds := big.NewInt(int64(math.MaxInt64 / time.Second))
	if duration == nil || duration.Sign() <= 0 || duration.Cmp(maxSeconds) > 0 {
		return start, nil
	}
	periodEnd := periodStart.Add(time.Duration(duration.Int64()) * time.Second)
	return start, &periodEnd
}
