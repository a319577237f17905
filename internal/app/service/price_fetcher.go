package service

import (
	"context"
	"fmt"
	"math/big"

	"synth_dashboard/internal/app/port"
	"synth_dashboard/internal/domain/entity"
	"synth_dashboard/internal/infrastructure/configloader"
	"synth_dashboard/internal/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// DeriveStableUSDPrice triangulates the stable synth's USD price through the secondary synth,
// whose native-currency rate is only observable on the external feed:
//
//	crossRate   = secondaryRate * (1 / stableRate)
//	nativeValue = crossRate * externalRate
//	result      = nativeValue * secondaryRate
//
// stableRate must be non-zero.
func DeriveStableUSDPrice(stableRate, secondaryRate, externalRate float64) float64 {
	crossRate := secondaryRate * (1 / stableRate)
	nativeValue := crossRate * externalRate
	return nativeValue * secondaryRate
}

// PriceFetcher reads on-chain exchange rates and the external secondary synth quote.
type PriceFetcher struct {
	chain      port.SynthetixReader
	priceFeed  port.PriceFeed
	currencies configloader.CurrenciesConfig
}

func NewPriceFetcher(chain port.SynthetixReader, priceFeed port.PriceFeed, currencies configloader.CurrenciesConfig) *PriceFetcher {
	return &PriceFetcher{chain: chain, priceFeed: priceFeed, currencies: currencies}
}

// Fetch returns the price snapshot. Any failure, including the external feed, fails the whole snapshot.
func (f *PriceFetcher) Fetch(ctx context.Context) (*entity.PriceSnapshot, error) {
	keys := []string{f.currencies.Collateral, f.currencies.StableSynth, f.currencies.SecondarySynth}

	var rates []*big.Int
	var externalRate float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if rates, err = f.chain.RatesForCurrencies(gctx, keys); err != nil {
			return fmt.Errorf("exchange rates: %w", err)
		}
		if len(rates) != len(keys) {
			return fmt.Errorf("exchange rates: got %d rates for %d currencies", len(rates), len(keys))
		}
		return nil
	})
	g.Go(func() (err error) {
		if externalRate, err = f.priceFeed.SecondaryToNativeRate(gctx); err != nil {
			return fmt.Errorf("%s quote: %w", f.currencies.SecondarySynth, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rateByKey := make(map[string]float64, len(keys))
	for i, key := range keys {
		rateByKey[key] = utils.FromFixedPoint(rates[i])
	}
	stableRate := rateByKey[f.currencies.StableSynth]
	secondaryRate := rateByKey[f.currencies.SecondarySynth]
	if stableRate <= 0 {
		return nil, fmt.Errorf("%s rate is %v, cannot derive USD price", f.currencies.StableSynth, stableRate)
	}

	return &entity.PriceSnapshot{
		CollateralTokenPrice:  rateByKey[f.currencies.Collateral],
		StableSynthPriceInUSD: DeriveStableUSDPrice(stableRate, secondaryRate, externalRate),
		SecondarySynthPrice:   secondaryRate,
	}, nil
}
