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

// SynthPortfolioFetcher values every asset-backed synth the wallet holds in the stable synth.
type SynthPortfolioFetcher struct {
	chain       port.SynthetixReader
	stableSynth string
	logger      port.Logger
}

func NewSynthPortfolioFetcher(chain port.SynthetixReader, stableSynth string, logger port.Logger) *SynthPortfolioFetcher {
	return &SynthPortfolioFetcher{chain: chain, stableSynth: stableSynth, logger: logger}
}

// Fetch returns holdings in registry order. Zero balances are kept.
func (f *SynthPortfolioFetcher) Fetch(ctx context.Context, walletAddress string) (*entity.SynthPortfolio, error) {
	registry, err := f.chain.Synths(ctx)
	if err != nil {
		return nil, fmt.Errorf("synth registry: %w", err)
	}
	synths := make([]entity.SynthInfo, 0, len(registry))
	for _, synth := range registry {
		if synth.IsAssetBacked() {
			synths = append(synths, synth)
		}
	}
	f.logger.Debug("Fetching synth balances", "wallet", walletAddress, "synth_count", len(synths))

	// Slot i of each slice belongs to synths[i].
	balances := make([]*big.Int, len(synths))
	g, gctx := errgroup.WithContext(ctx)
	for i, synth := range synths {
		g.Go(func() error {
			balance, err := f.chain.SynthBalance(gctx, synth.Name, walletAddress)
			if err != nil {
				return fmt.Errorf("%s balance: %w", synth.Name, err)
			}
			balances[i] = balance
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	values := make([]*big.Int, len(synths))
	g, gctx = errgroup.WithContext(ctx)
	for i, synth := range synths {
		g.Go(func() error {
			value, err := f.chain.EffectiveValue(gctx, synth.Name, balances[i], f.stableSynth)
			if err != nil {
				return fmt.Errorf("%s effective value in %s: %w", synth.Name, f.stableSynth, err)
			}
			values[i] = value
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	portfolio := &entity.SynthPortfolio{Holdings: make([]entity.SynthHolding, 0, len(synths))}
	for i, synth := range synths {
		f.logger.Debug("Synth valued", "synth", synth.Name,
			"balance", utils.FormatBigInt(balances[i], utils.FixedPointDecimals),
			"value", utils.FormatBigInt(values[i], utils.FixedPointDecimals), "currency", f.stableSynth)
		value := utils.FromFixedPoint(values[i])
		portfolio.Total += value
		portfolio.Holdings = append(portfolio.Holdings, entity.SynthHolding{
			Synth:   synth.Name,
			Balance: value,
		})
	}
	return portfolio, nil
}
