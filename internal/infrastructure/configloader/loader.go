package configloader

import (
	"fmt"
	"os"
	"strings"

	"synth_dashboard/internal/domain/entity"
	"synth_dashboard/internal/infrastructure/network/definition"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                string `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `yaml:"writeTimeoutSeconds"`
	IdleTimeoutSeconds  int    `yaml:"idleTimeoutSeconds"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// NetworkConfig selects the chain and RPC endpoints the contracts are read from.
type NetworkConfig struct {
	Identifier      string   `yaml:"identifier"`
	ChainID         uint64   `yaml:"chainId"`
	PrimaryRPCURL   string   `yaml:"primaryRpcUrl"`
	FallbackRPCURLs []string `yaml:"fallbackRpcUrls"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	RPCCallTimeoutSeconds    int `yaml:"rpc_call_timeout_seconds"`
	ConnectionTimeoutSeconds int `yaml:"connection_timeout_seconds"`
}

// ContractsConfig holds the addresses of the Synthetix contracts.
// Empty entries are looked up in the AddressResolver at startup.
type ContractsConfig struct {
	AddressResolver string `yaml:"addressResolver"`
	Synthetix       string `yaml:"synthetix"`
	SynthetixState  string `yaml:"synthetixState"`
	ExchangeRates   string `yaml:"exchangeRates"`
	FeePool         string `yaml:"feePool"`
	RewardEscrow    string `yaml:"rewardEscrow"`
	SynthetixEscrow string `yaml:"synthetixEscrow"`
}

// CurrenciesConfig names the currency keys the dashboard is built around.
type CurrenciesConfig struct {
	Collateral     string `yaml:"collateral"`
	StableSynth    string `yaml:"stableSynth"`
	SecondarySynth string `yaml:"secondarySynth"`
}

// PriceFeedConfig holds the external quote service configuration.
type PriceFeedConfig struct {
	BaseURL              string `yaml:"baseURL"`
	ExchangeAddress      string `yaml:"exchangeAddress"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// FailedWalletsConfig controls how long wallets with unavailable sections are remembered.
type FailedWalletsConfig struct {
	TTLMinutes             int `yaml:"ttlMinutes"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Logging       LoggingConfig       `yaml:"logging"`
	Network       NetworkConfig       `yaml:"network"`
	Performance   PerformanceConfig   `yaml:"performance"`
	Contracts     ContractsConfig     `yaml:"contracts"`
	Currencies    CurrenciesConfig    `yaml:"currencies"`
	Synths        []entity.SynthInfo  `yaml:"synths"`
	PriceFeed     PriceFeedConfig     `yaml:"priceFeed"`
	FailedWallets FailedWalletsConfig `yaml:"failedWallets"`
}

// NetworkDefinition resolves the configured network against the predefined definitions.
// Explicit RPC URLs in the config win over the predefined ones.
func (c *Config) NetworkDefinition() (entity.NetworkDefinition, error) {
	netDef, ok := definition.ByIdentifier(c.Network.Identifier)
	if !ok && c.Network.ChainID != 0 {
		netDef, ok = definition.ByChainID(c.Network.ChainID)
	}
	if !ok {
		if c.Network.PrimaryRPCURL == "" {
			return entity.NetworkDefinition{}, fmt.Errorf("unknown network %q and no primaryRpcUrl configured", c.Network.Identifier)
		}
		netDef = entity.NetworkDefinition{Identifier: c.Network.Identifier, Name: c.Network.Identifier, NativeSymbol: "ETH"}
	}
	if c.Network.ChainID != 0 {
		netDef.ChainID = c.Network.ChainID
	}
	if c.Network.PrimaryRPCURL != "" {
		netDef.PrimaryRPCURL = c.Network.PrimaryRPCURL
		netDef.FallbackRPCURLs = c.Network.FallbackRPCURLs
	}
	return netDef, nil
}

// Load reads the YAML configuration file from the given path and unmarshals it.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals raw YAML, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
		logrus.Infof("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 15
	}
	if cfg.Server.WriteTimeoutSeconds <= 0 {
		cfg.Server.WriteTimeoutSeconds = 30
	}
	if cfg.Server.IdleTimeoutSeconds <= 0 {
		cfg.Server.IdleTimeoutSeconds = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Network.Identifier == "" {
		cfg.Network.Identifier = definition.Ethereum.Identifier
		logrus.Infof("Network.Identifier not set, defaulting to %s", cfg.Network.Identifier)
	}

	if cfg.Performance.RPCCallTimeoutSeconds <= 0 {
		cfg.Performance.RPCCallTimeoutSeconds = 10
		logrus.Infof("Performance.RPCCallTimeoutSeconds not set, defaulting to %d", cfg.Performance.RPCCallTimeoutSeconds)
	}
	if cfg.Performance.ConnectionTimeoutSeconds <= 0 {
		cfg.Performance.ConnectionTimeoutSeconds = 10
	}

	if cfg.Currencies.Collateral == "" {
		cfg.Currencies.Collateral = "SNX"
	}
	if cfg.Currencies.StableSynth == "" {
		cfg.Currencies.StableSynth = "sUSD"
	}
	if cfg.Currencies.SecondarySynth == "" {
		cfg.Currencies.SecondarySynth = "sETH"
	}

	if cfg.PriceFeed.BaseURL == "" {
		cfg.PriceFeed.BaseURL = "https://uniswap-api.loanscan.io"
		logrus.Infof("PriceFeed.BaseURL not set, defaulting to %s", cfg.PriceFeed.BaseURL)
	}
	if cfg.PriceFeed.ExchangeAddress == "" {
		// Uniswap v1 sETH/ETH exchange.
		cfg.PriceFeed.ExchangeAddress = "0xe9cf7887b93150d4f2da7dfc6d502b216438f244"
		logrus.Infof("PriceFeed.ExchangeAddress not set, defaulting to %s", cfg.PriceFeed.ExchangeAddress)
	}
	if cfg.PriceFeed.RequestTimeoutMillis <= 0 {
		cfg.PriceFeed.RequestTimeoutMillis = 10000
		logrus.Infof("PriceFeed.RequestTimeoutMillis not set, defaulting to %d ms", cfg.PriceFeed.RequestTimeoutMillis)
	}

	if cfg.FailedWallets.TTLMinutes <= 0 {
		cfg.FailedWallets.TTLMinutes = 60
	}
	if cfg.FailedWallets.CleanupIntervalMinutes <= 0 {
		cfg.FailedWallets.CleanupIntervalMinutes = 10
	}
}

func validate(cfg *Config) error {
	if _, err := cfg.NetworkDefinition(); err != nil {
		return err
	}

	contracts := map[string]string{
		"synthetix":       cfg.Contracts.Synthetix,
		"synthetixState":  cfg.Contracts.SynthetixState,
		"exchangeRates":   cfg.Contracts.ExchangeRates,
		"feePool":         cfg.Contracts.FeePool,
		"rewardEscrow":    cfg.Contracts.RewardEscrow,
		"synthetixEscrow": cfg.Contracts.SynthetixEscrow,
	}
	resolver := cfg.Contracts.AddressResolver
	if resolver != "" && !common.IsHexAddress(resolver) {
		return fmt.Errorf("contracts.addressResolver: invalid address %q", resolver)
	}
	for name, address := range contracts {
		if address == "" {
			if resolver != "" {
				logrus.Infof("Contract address for '%s' is not configured, it will be resolved via %s.", name, resolver)
				continue
			}
			// Sections depending on it will be reported unavailable.
			logrus.Errorf("Contract address for '%s' is not configured and no addressResolver is set.", name)
			continue
		}
		if !common.IsHexAddress(address) {
			return fmt.Errorf("contracts.%s: invalid address %q", name, address)
		}
	}

	seen := make(map[string]bool, len(cfg.Synths))
	for i, synth := range cfg.Synths {
		if synth.Name == "" {
			return fmt.Errorf("synths[%d]: name is required", i)
		}
		if seen[synth.Name] {
			return fmt.Errorf("synths[%d]: duplicate synth %s", i, synth.Name)
		}
		seen[synth.Name] = true
		if !common.IsHexAddress(synth.Address) {
			return fmt.Errorf("synths[%d] (%s): invalid address %q", i, synth.Name, synth.Address)
		}
	}
	if !seen[cfg.Currencies.StableSynth] {
		logrus.Warnf("Stable synth '%s' is missing from the synth registry; its balance will be unavailable.", cfg.Currencies.StableSynth)
	}
	if !strings.HasPrefix(cfg.PriceFeed.BaseURL, "http") {
		return fmt.Errorf("priceFeed.baseURL must be an http(s) URL, got %q", cfg.PriceFeed.BaseURL)
	}
	return nil
}
