package service

import (
	"context"
	"fmt"
	"math/big"

	"synth_dashboard/internal/app/port"
	"synth_dashboard/internal/domain/entity"
	"synth_dashboard/internal/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// BalanceFetcher reads the wallet's collateral, stable synth and native balances.
type BalanceFetcher struct {
	chain       port.SynthetixReader
	stableSynth string
}

func NewBalanceFetcher(chain port.SynthetixReader, stableSynth string) *BalanceFetcher {
	return &BalanceFetcher{chain: chain, stableSynth: stableSynth}
}

// Fetch returns all three balances, or an error if any read failed.
func (f *BalanceFetcher) Fetch(ctx context.Context, walletAddress string) (*entity.BalanceSnapshot, error) {
	var collateral, stable, native *big.Int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if collateral, err = f.chain.Collateral(gctx, walletAddress); err != nil {
			return fmt.Errorf("collateral balance: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if stable, err = f.chain.SynthBalance(gctx, f.stableSynth, walletAddress); err != nil {
			return fmt.Errorf("%s balance: %w", f.stableSynth, err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if native, err = f.chain.NativeBalance(gctx, walletAddress); err != nil {
			return fmt.Errorf("native balance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &entity.BalanceSnapshot{
		Collateral:  utils.FromFixedPoint(collateral),
		StableSynth: utils.FromFixedPoint(stable),
		Native:      utils.FromFixedPoint(native),
	}, nil
}
