package service

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"

	"synth_dashboard/internal/app/port"
	"synth_dashboard/internal/domain/entity"
	"synth_dashboard/internal/infrastructure/configloader"
	"synth_dashboard/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/common"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidWalletAddress is returned by FetchData when the address is not a 20-byte hex address.
var ErrInvalidWalletAddress = errors.New("invalid wallet address")

// sectionOrder fixes the order of SectionErrors in a view.
var sectionOrder = map[string]int{
	entity.SectionBalances: 0,
	entity.SectionPrices:   1,
	entity.SectionRewards:  2,
	entity.SectionDebt:     3,
	entity.SectionEscrow:   4,
	entity.SectionSynths:   5,
}

// DashboardServiceImpl implements port.DashboardService.
type DashboardServiceImpl struct {
	balances *BalanceFetcher
	prices   *PriceFetcher
	rewards  *RewardFetcher
	debt     *DebtFetcher
	escrow   *EscrowFetcher
	synths   *SynthPortfolioFetcher

	failedWallets *cache.Cache
	logger        port.Logger
}

// NewDashboardService creates a new instance of DashboardServiceImpl.
func NewDashboardService(
	chain port.SynthetixReader,
	priceFeed port.PriceFeed,
	l port.Logger,
	config *configloader.Config,
) port.DashboardService {
	currencies := config.Currencies
	return &DashboardServiceImpl{
		balances: NewBalanceFetcher(chain, currencies.StableSynth),
		prices:   NewPriceFetcher(chain, priceFeed, currencies),
		rewards:  NewRewardFetcher(chain),
		debt:     NewDebtFetcher(chain, currencies.StableSynth),
		escrow:   NewEscrowFetcher(chain),
		synths:   NewSynthPortfolioFetcher(chain, currencies.StableSynth, l),
		failedWallets: cache.New(
			time.Duration(config.FailedWallets.TTLMinutes)*time.Minute,
			time.Duration(config.FailedWallets.CleanupIntervalMinutes)*time.Minute,
		),
		logger: l,
	}
}

// FetchData runs every section fetcher concurrently and merges the results into one view.
func (s *DashboardServiceImpl) FetchData(ctx context.Context, walletAddress string) (*entity.DashboardView, error) {
	if !common.IsHexAddress(walletAddress) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWalletAddress, walletAddress)
	}
	s.logger.Debug("Fetching dashboard", "wallet_address", walletAddress)
	started := time.Now()

	view := &entity.DashboardView{WalletAddress: walletAddress}
	var errMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	runSection := func(section string, fetch func(ctx context.Context) error) {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					value, stack := unwrapPanic(r)
					s.logger.Error("Dashboard section panicked", "wallet_address", walletAddress,
						"section", section, "panic", value, "stack", string(stack))
					err = fmt.Errorf("%s fetcher panicked: %v", section, value)
				}
			}()

			sectionStarted := time.Now()
			fetchErr := fetch(gctx)
			metrics.ObserveSection(section, sectionStarted, fetchErr)
			if fetchErr != nil {
				s.logger.Warn("Dashboard section unavailable", "wallet_address", walletAddress, "section", section, "error", fetchErr)
				errMu.Lock()
				view.Errors = append(view.Errors, entity.SectionError{Section: section, Message: fetchErr.Error()})
				errMu.Unlock()
			}
			return nil
		})
	}

	runSection(entity.SectionBalances, func(ctx context.Context) error {
		balances, err := s.balances.Fetch(ctx, walletAddress)
		if err == nil {
			view.Balances = balances
		}
		return err
	})
	runSection(entity.SectionPrices, func(ctx context.Context) error {
		prices, err := s.prices.Fetch(ctx)
		if err == nil {
			view.Prices = prices
		}
		return err
	})
	runSection(entity.SectionRewards, func(ctx context.Context) error {
		rewards, err := s.rewards.Fetch(ctx, walletAddress)
		if err == nil {
			view.Rewards = rewards
		}
		return err
	})
	runSection(entity.SectionDebt, func(ctx context.Context) error {
		debt, err := s.debt.Fetch(ctx, walletAddress)
		if err == nil {
			view.Debt = debt
		}
		return err
	})
	runSection(entity.SectionEscrow, func(ctx context.Context) error {
		escrow, err := s.escrow.Fetch(ctx, walletAddress)
		if err == nil {
			view.Escrow = escrow
		}
		return err
	})
	runSection(entity.SectionSynths, func(ctx context.Context) error {
		synths, err := s.synths.Fetch(ctx, walletAddress)
		if err == nil {
			view.Synths = synths
		}
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Dashboard orchestration failed", "wallet_address", walletAddress, "error", err)
		metrics.ObserveSection(entity.SectionDashboard, started, err)
		view = &entity.DashboardView{
			WalletAddress: walletAddress,
			Errors:        []entity.SectionError{{Section: entity.SectionDashboard, Message: err.Error()}},
		}
		s.markFailed(walletAddress, view.Errors)
		return view, nil
	}
	metrics.ObserveSection(entity.SectionDashboard, started, nil)

	sort.Slice(view.Errors, func(i, j int) bool {
		return sectionOrder[view.Errors[i].Section] < sectionOrder[view.Errors[j].Section]
	})
	if len(view.Errors) > 0 {
		s.markFailed(walletAddress, view.Errors)
	} else {
		s.failedWallets.Delete(strings.ToLower(walletAddress))
	}

	s.logger.Info("Dashboard fetched", "wallet_address", walletAddress,
		"unavailable_sections", len(view.Errors), "duration", time.Since(started))
	return view, nil
}

// unwrapPanic returns the recovered value and its stack, unwrapping errgroup re-panics.
func unwrapPanic(r any) (any, []byte) {
	switch p := r.(type) {
	case errgroup.PanicValue:
		return p.Recovered, p.Stack
	case errgroup.PanicError:
		return p.Recovered, p.Stack
	default:
		return r, debug.Stack()
	}
}

func (s *DashboardServiceImpl) markFailed(walletAddress string, sectionErrors []entity.SectionError) {
	sections := make([]string, 0, len(sectionErrors))
	for _, se := range sectionErrors {
		sections = append(sections, se.Section)
	}
	s.failedWallets.Set(strings.ToLower(walletAddress), sections, cache.DefaultExpiration)
}

// GetFailedWallets returns a list of wallet addresses whose last dashboard had unavailable sections.
func (s *DashboardServiceImpl) GetFailedWallets() []string {
	items := s.failedWallets.Items()
	failed := make([]string, 0, len(items))
	for addr := range items {
		failed = append(failed, addr)
	}
	sort.Strings(failed)
	return failed
}
