package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
)

// Config defines the config for the bridge router server.
type Config struct {
	// Defines the web server configuration.
	ServerAddress string `mapstructure:"server-address"`

	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	ChainID uint64 `mapstructure:"chain-id"`

	// LocalDomain is the bridge domain number of this chain.
	LocalDomain uint32 `mapstructure:"local-domain"`

	// Owner is the address allowed to call the administrative endpoints.
	Owner string `mapstructure:"owner"`

	CORS *CORSConfig `mapstructure:"cors"`

	// Router encapsulates the router config.
	Router *RouterConfig `mapstructure:"router"`

	// Bridge encapsulates the bridge tokens and remote domains config.
	Bridge *BridgeConfig `mapstructure:"bridge"`

	// Pools lists the pools to register and attach at startup, in order.
	Pools []PoolConfig `mapstructure:"pools"`

	// Ledger seeds the in-process token ledger.
	Ledger *LedgerConfig `mapstructure:"ledger"`

	OTEL *OTELConfig `mapstructure:"otel"`
}

// CORSConfig encapsulates the CORS config.
type CORSConfig struct {
	AllowedHeaders string `mapstructure:"allowed-headers"`
	AllowedMethods string `mapstructure:"allowed-methods"`
	AllowedOrigin  string `mapstructure:"allowed-origin"`
}

// RouterConfig encapsulates the router config.
type RouterConfig struct {
	// RootToken is the token placed at node 0 of the tree.
	RootToken string `mapstructure:"root-token"`

	// Address under which the router is registered as a pool.
	Address string `mapstructure:"address"`

	BestPathCacheSize          int `mapstructure:"best-path-cache-size"`
	BestPathCacheExpirySeconds int `mapstructure:"best-path-cache-expiry-seconds"`

	// Number of workers quoting bridge token candidates concurrently.
	QuoteWorkers int `mapstructure:"quote-workers"`
}

// BridgeConfig encapsulates the bridge config.
type BridgeConfig struct {
	// Address of the bridge module on this chain.
	Address string `mapstructure:"address"`

	// RouterAdapter is the address reported as the executor of swap queries.
	RouterAdapter string `mapstructure:"router-adapter"`

	SymbolPrefix string `mapstructure:"symbol-prefix"`

	// AttesterKey is the hex secp256k1 key signing burn messages.
	// A random key is generated if empty.
	AttesterKey string `mapstructure:"attester-key"`

	// RequestsDBPath is the sqlite file for request records. Empty keeps them in memory.
	RequestsDBPath string `mapstructure:"requests-db-path"`

	Tokens        []BridgeTokenConfig        `mapstructure:"tokens"`
	RemoteDomains []RemoteDomainConfigEntry `mapstructure:"remote-domains"`
}

// BridgeTokenConfig is the config representation of a bridge token.
type BridgeTokenConfig struct {
	Symbol       string `mapstructure:"symbol"`
	Token        string `mapstructure:"token"`
	RemoteToken  string `mapstructure:"remote-token"`
	TransferMode string `mapstructure:"transfer-mode"`

	// PercentageFee is a decimal fraction, e.g. "0.0005" for 5 bps.
	PercentageFee string `mapstructure:"percentage-fee"`
	MinBaseFee    string `mapstructure:"min-base-fee"`
	MinSwapFee    string `mapstructure:"min-swap-fee"`
	MaxFee        string `mapstructure:"max-fee"`
}

// RemoteDomainConfigEntry maps a remote chain ID to its bridge domain and contract.
type RemoteDomainConfigEntry struct {
	ChainID  uint64 `mapstructure:"chain-id"`
	Domain   uint32 `mapstructure:"domain"`
	Contract string `mapstructure:"contract"`
}

// PoolConfig describes a pool to be created and attached to the tree.
type PoolConfig struct {
	Kind    string `mapstructure:"kind"`
	Address string `mapstructure:"address"`

	// Tokens and balances are used by the in-process pool kinds.
	Tokens   []string `mapstructure:"tokens"`
	Balances []string `mapstructure:"balances"`

	// Fee is a decimal fraction, e.g. "0.0004".
	Fee     string `mapstructure:"fee"`
	LPToken string `mapstructure:"lp-token"`

	// AttachToNode is the node index the pool gets attached to.
	AttachToNode int `mapstructure:"attach-to-node"`

	RPCEndpoint string `mapstructure:"rpc-endpoint"`

	// PausedRefreshSeconds refreshes the paused flag of rpc pools in the background when positive.
	PausedRefreshSeconds int `mapstructure:"paused-refresh-seconds"`
}

// LedgerConfig seeds balances of the in-process ledger.
type LedgerConfig struct {
	Balances []LedgerBalanceConfig `mapstructure:"balances"`
}

// LedgerBalanceConfig is a single seeded balance.
type LedgerBalanceConfig struct {
	Token   string `mapstructure:"token"`
	Holder  string `mapstructure:"holder"`
	Amount  string `mapstructure:"amount"`
	FeeBips uint64 `mapstructure:"fee-bips"`
}

// OTELConfig encapsulates the OTEL and sentry config.
type OTELConfig struct {
	DSN                string  `mapstructure:"dsn"`
	SampleRate         float64 `mapstructure:"sample-rate"`
	EnableTracing      bool    `mapstructure:"enable-tracing"`
	TracesSampleRate   float64 `mapstructure:"traces-sample-rate"`
	ProfilesSampleRate float64 `mapstructure:"profiles-sample-rate"`
	Environment        string  `mapstructure:"environment"`
}

// ParseAddress parses a hex address, rejecting malformed input.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, InvalidAddressError{Value: s}
	}
	return common.HexToAddress(s), nil
}

// ParseAmount parses a non-negative base-10 integer amount.
func ParseAmount(s string) (osmomath.Int, error) {
	amount, ok := osmomath.NewIntFromString(strings.TrimSpace(s))
	if !ok || amount.IsNegative() {
		return osmomath.Int{}, InvalidAmountError{Value: s}
	}
	return amount, nil
}

// ParseFeeFraction converts a decimal fraction into FeeDenominator units.
// For example, "0.0005" becomes 5_000_000.
func ParseFeeFraction(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}

	fraction, err := osmomath.NewDecFromStr(s)
	if err != nil {
		return 0, fmt.Errorf("invalid fee fraction %q: %w", s, err)
	}
	if fraction.IsNegative() || fraction.GT(osmomath.OneDec()) {
		return 0, fmt.Errorf("fee fraction %q must be within [0, 1]", s)
	}

	return fraction.MulInt64(FeeDenominator).TruncateInt().Uint64(), nil
}

// ToBridgeToken converts the config entry into a bridge token.
// Fee amounts default to zero when unset.
func (c BridgeTokenConfig) ToBridgeToken() (BridgeToken, error) {
	token, err := ParseAddress(c.Token)
	if err != nil {
		return BridgeToken{}, fmt.Errorf("bridge token %s: %w", c.Symbol, err)
	}

	var remoteToken common.Address
	if c.RemoteToken != "" {
		if remoteToken, err = ParseAddress(c.RemoteToken); err != nil {
			return BridgeToken{}, fmt.Errorf("bridge token %s remote token: %w", c.Symbol, err)
		}
	}

	mode, err := ParseTransferMode(c.TransferMode)
	if err != nil {
		return BridgeToken{}, fmt.Errorf("bridge token %s: %w", c.Symbol, err)
	}

	percentageFee, err := ParseFeeFraction(c.PercentageFee)
	if err != nil {
		return BridgeToken{}, fmt.Errorf("bridge token %s: %w", c.Symbol, err)
	}

	fee := FeeStructure{PercentageFee: percentageFee}
	for _, field := range []struct {
		value  string
		target *osmomath.Int
	}{
		{c.MinBaseFee, &fee.MinBaseFee},
		{c.MinSwapFee, &fee.MinSwapFee},
		{c.MaxFee, &fee.MaxFee},
	} {
		if field.value == "" {
			*field.target = osmomath.ZeroInt()
			continue
		}
		if *field.target, err = ParseAmount(field.value); err != nil {
			return BridgeToken{}, fmt.Errorf("bridge token %s fee: %w", c.Symbol, err)
		}
	}

	return BridgeToken{
		Symbol:       c.Symbol,
		Token:        token,
		RemoteToken:  remoteToken,
		TransferMode: mode,
		Fee:          fee,
	}, nil
}

// ToRemoteDomainConfig converts the config entry into a remote domain config.
func (c RemoteDomainConfigEntry) ToRemoteDomainConfig() (RemoteDomainConfig, error) {
	contract, err := ParseAddress(c.Contract)
	if err != nil {
		return RemoteDomainConfig{}, fmt.Errorf("remote domain of chain %d: %w", c.ChainID, err)
	}

	return RemoteDomainConfig{
		ChainID:  c.ChainID,
		Domain:   c.Domain,
		Contract: contract,
	}, nil
}
