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

// DebtFetcher reads issuance and collateralisation ratios, transferable collateral and debt.
type DebtFetcher struct {
	chain       port.SynthetixReader
	stableSynth string
}

func NewDebtFetcher(chain port.SynthetixReader, stableSynth string) *DebtFetcher {
	return &DebtFetcher{chain: chain, stableSynth: stableSynth}
}

func (f *DebtFetcher) Fetch(ctx context.Context, walletAddress string) (*entity.DebtSnapshot, error) {
	var targetRatio, currentRatio, transferable, debt *big.Int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if targetRatio, err = f.chain.IssuanceRatio(gctx); err != nil {
			return fmt.Errorf("issuance ratio: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if currentRatio, err = f.chain.CollateralisationRatio(gctx, walletAddress); err != nil {
			return fmt.Errorf("collateralisation ratio: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if transferable, err = f.chain.TransferableSynthetix(gctx, walletAddress); err != nil {
			return fmt.Errorf("transferable collateral: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if debt, err = f.chain.DebtBalanceOf(gctx, walletAddress, f.stableSynth); err != nil {
			return fmt.Errorf("debt balance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &entity.DebtSnapshot{
		TargetRatio:  utils.FromFixedPoint(targetRatio),
		CurrentRatio: utils.FromFixedPoint(currentRatio),
		Transferable: utils.FromFixedPoint(transferable),
		DebtBalance:  utils.FromFixedPoint(debt),
	}, nil
}
