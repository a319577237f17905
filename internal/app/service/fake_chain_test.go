package service

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"synth_dashboard/internal/domain/entity"
	"synth_dashboard/internal/infrastructure/configloader"

	"github.com/shopspring/decimal"
)

const testWallet = "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"

var testCurrencies = configloader.CurrenciesConfig{
	Collateral:     "SNX",
	StableSynth:    "sUSD",
	SecondarySynth: "sETH",
}

// wei scales a decimal string to an 18-decimal fixed point integer.
func wei(amount string) *big.Int {
	return decimal.RequireFromString(amount).Shift(18).BigInt()
}

// fakeChain is an in-memory port.SynthetixReader. Its maps are read-only once a test starts.
type fakeChain struct {
	collateral *big.Int
	native     *big.Int
	rates      map[string]*big.Int

	claimable bool
	period    entity.FeePeriod
	duration  *big.Int

	issuanceRatio *big.Int
	cRatio        *big.Int
	transferable  *big.Int
	debt          *big.Int

	rewardEscrow    *big.Int
	tokenSaleEscrow *big.Int

	synths        []entity.SynthInfo
	synthBalances map[string]*big.Int
	// synthValues is the price of one unit of a synth in the stable synth.
	synthValues map[string]string

	errs   map[string]error
	panics map[string]bool
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		collateral: wei("1.5"),
		native:     wei("0.25"),
		rates: map[string]*big.Int{
			"SNX":  wei("2"),
			"sUSD": wei("1"),
			"sETH": wei("200"),
		},
		claimable:       true,
		period:          entity.FeePeriod{ID: 42, StartTime: 1_700_000_000},
		duration:        big.NewInt(604800),
		issuanceRatio:   wei("0.125"),
		cRatio:          wei("0.1"),
		transferable:    wei("100"),
		debt:            wei("50"),
		rewardEscrow:    wei("30"),
		tokenSaleEscrow: wei("5"),
		synths: []entity.SynthInfo{
			{Name: "sUSD", Asset: "USD"},
			{Name: "XDR"},
			{Name: "sETH", Asset: "ETH"},
			{Name: "sBTC", Asset: "BTC"},
		},
		synthBalances: map[string]*big.Int{
			"sUSD": wei("10"),
			"sETH": wei("2"),
		},
		synthValues: map[string]string{
			"sUSD": "1",
			"sETH": "200",
			"sBTC": "30000",
		},
		errs:   map[string]error{},
		panics: map[string]bool{},
	}
}

func (f *fakeChain) check(method string) error {
	if f.panics[method] {
		panic(fmt.Sprintf("%s exploded", method))
	}
	return f.errs[method]
}

func (f *fakeChain) Collateral(_ context.Context, _ string) (*big.Int, error) {
	if err := f.check("Collateral"); err != nil {
		return nil, err
	}
	return f.collateral, nil
}

func (f *fakeChain) SynthBalance(_ context.Context, synth string, _ string) (*big.Int, error) {
	if err := f.check("SynthBalance:" + synth); err != nil {
		return nil, err
	}
	if balance, ok := f.synthBalances[synth]; ok {
		return balance, nil
	}
	return big.NewInt(0), nil
}

func (f *fakeChain) NativeBalance(_ context.Context, _ string) (*big.Int, error) {
	if err := f.check("NativeBalance"); err != nil {
		return nil, err
	}
	return f.native, nil
}

func (f *fakeChain) RatesForCurrencies(_ context.Context, currencyKeys []string) ([]*big.Int, error) {
	if err := f.check("RatesForCurrencies"); err != nil {
		return nil, err
	}
	rates := make([]*big.Int, len(currencyKeys))
	for i, key := range currencyKeys {
		if rate, ok := f.rates[key]; ok {
			rates[i] = rate
		} else {
			rates[i] = big.NewInt(0)
		}
	}
	return rates, nil
}

func (f *fakeChain) IsFeesClaimable(_ context.Context, _ string) (bool, error) {
	if err := f.check("IsFeesClaimable"); err != nil {
		return false, err
	}
	return f.claimable, nil
}

func (f *fakeChain) RecentFeePeriod(_ context.Context, _ int64) (entity.FeePeriod, error) {
	if err := f.check("RecentFeePeriod"); err != nil {
		return entity.FeePeriod{}, err
	}
	return f.period, nil
}

func (f *fakeChain) FeePeriodDuration(_ context.Context) (*big.Int, error) {
	if err := f.check("FeePeriodDuration"); err != nil {
		return nil, err
	}
	return f.duration, nil
}

func (f *fakeChain) IssuanceRatio(_ context.Context) (*big.Int, error) {
	if err := f.check("IssuanceRatio"); err != nil {
		return nil, err
	}
	return f.issuanceRatio, nil
}

func (f *fakeChain) CollateralisationRatio(_ context.Context, _ string) (*big.Int, error) {
	if err := f.check("CollateralisationRatio"); err != nil {
		return nil, err
	}
	return f.cRatio, nil
}

func (f *fakeChain) TransferableSynthetix(_ context.Context, _ string) (*big.Int, error) {
	if err := f.check("TransferableSynthetix"); err != nil {
		return nil, err
	}
	return f.transferable, nil
}

func (f *fakeChain) DebtBalanceOf(_ context.Context, _ string, _ string) (*big.Int, error) {
	if err := f.check("DebtBalanceOf"); err != nil {
		return nil, err
	}
	return f.debt, nil
}

func (f *fakeChain) TotalEscrowedAccountBalance(_ context.Context, _ string) (*big.Int, error) {
	if err := f.check("TotalEscrowedAccountBalance"); err != nil {
		return nil, err
	}
	return f.rewardEscrow, nil
}

func (f *fakeChain) TokenSaleEscrowBalance(_ context.Context, _ string) (*big.Int, error) {
	if err := f.check("TokenSaleEscrowBalance"); err != nil {
		return nil, err
	}
	return f.tokenSaleEscrow, nil
}

func (f *fakeChain) EffectiveValue(_ context.Context, sourceKey string, amount *big.Int, _ string) (*big.Int, error) {
	if err := f.check("EffectiveValue:" + sourceKey); err != nil {
		return nil, err
	}
	price := decimal.RequireFromString(f.synthValues[sourceKey])
	return decimal.NewFromBigInt(amount, 0).Mul(price).BigInt(), nil
}

func (f *fakeChain) Synths(_ context.Context) ([]entity.SynthInfo, error) {
	if err := f.check("Synths"); err != nil {
		return nil, err
	}
	return f.synths, nil
}

type fakePriceFeed struct {
	rate float64
	err  error
}

func (p *fakePriceFeed) SecondaryToNativeRate(_ context.Context) (float64, error) {
	return p.rate, p.err
}

type logRecord struct {
	msg  string
	args []any
}

// recordingLogger keeps debug records for assertions.
type recordingLogger struct {
	mu      sync.Mutex
	records []logRecord
}

func (l *recordingLogger) Debug(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, logRecord{msg: msg, args: args})
}

func (l *recordingLogger) Info(string, ...any)  {}
func (l *recordingLogger) Warn(string, ...any)  {}
func (l *recordingLogger) Error(string, ...any) {}

// find returns the args of the first record with msg whose first arg pair matches key=value.
func (l *recordingLogger) find(msg, key string, value any) []any {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.records {
		if r.msg == msg && len(r.args) >= 2 && r.args[0] == key && r.args[1] == value {
			return r.args
		}
	}
	return nil
}
