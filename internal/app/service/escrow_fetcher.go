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

type EscrowFetcher struct {
	chain port.SynthetixReader
}

func NewEscrowFetcher(chain port.SynthetixReader) *EscrowFetcher {
	return &EscrowFetcher{chain: chain}
}

func (f *EscrowFetcher) Fetch(ctx context.Context, walletAddress string) (*entity.EscrowSnapshot, error) {
	var reward, tokenSale *big.Int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if reward, err = f.chain.TotalEscrowedAccountBalance(gctx, walletAddress); err != nil {
			return fmt.Errorf("reward escrow: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if tokenSale, err = f.chain.TokenSaleEscrowBalance(gctx, walletAddress); err != nil {
			return fmt.Errorf("token sale escrow: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &entity.EscrowSnapshot{
		RewardEscrow:    utils.FromFixedPoint(reward),
		TokenSaleEscrow: utils.FromFixedPoint(tokenSale),
	}, nil
}
