package domain_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/MrCuPper/synapse-contracts/domain"
)

func TestBridgeTokenConfigToBridgeToken(t *testing.T) {
	const (
		usdc   = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
		remote = "0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E"
	)

	tests := []struct {
		name     string
		config   domain.BridgeTokenConfig
		expected domain.BridgeToken
		wantErr  bool
	}{
		{
			name: "full entry",
			config: domain.BridgeTokenConfig{
				Symbol:        "CCTP.USDC",
				Token:         usdc,
				RemoteToken:   remote,
				TransferMode:  "lock-mint",
				PercentageFee: "0.0005",
				MinBaseFee:    "1000000",
				MinSwapFee:    "5000000",
				MaxFee:        "100000000",
			},
			expected: domain.BridgeToken{
				Symbol:       "CCTP.USDC",
				Token:        common.HexToAddress(usdc),
				RemoteToken:  common.HexToAddress(remote),
				TransferMode: domain.TransferModeLockMint,
				Fee: domain.FeeStructure{
					PercentageFee: 5_000_000,
				},
			},
		},
		{
			name: "defaults",
			config: domain.BridgeTokenConfig{
				Symbol: "CCTP.USDC",
				Token:  usdc,
			},
			expected: domain.BridgeToken{
				Symbol:       "CCTP.USDC",
				Token:        common.HexToAddress(usdc),
				TransferMode: domain.TransferModeBurnMint,
			},
		},
		{
			name:    "malformed token",
			config:  domain.BridgeTokenConfig{Symbol: "CCTP.USDC", Token: "0x1234"},
			wantErr: true,
		},
		{
			name:    "unknown transfer mode",
			config:  domain.BridgeTokenConfig{Symbol: "CCTP.USDC", Token: usdc, TransferMode: "teleport"},
			wantErr: true,
		},
		{
			name:    "negative fee amount",
			config:  domain.BridgeTokenConfig{Symbol: "CCTP.USDC", Token: usdc, MaxFee: "-1"},
			wantErr: true,
		},
		{
			name:    "fee fraction above one",
			config:  domain.BridgeTokenConfig{Symbol: "CCTP.USDC", Token: usdc, PercentageFee: "1.5"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.config.ToBridgeToken()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			require.Equal(t, tt.expected.Symbol, token.Symbol)
			require.Equal(t, tt.expected.Token, token.Token)
			require.Equal(t, tt.expected.RemoteToken, token.RemoteToken)
			require.Equal(t, tt.expected.TransferMode, token.TransferMode)
			require.Equal(t, tt.expected.Fee.PercentageFee, token.Fee.PercentageFee)
		})
	}
}

func TestBridgeTokenConfigFeeAmounts(t *testing.T) {
	token, err := domain.BridgeTokenConfig{
		Symbol:     "CCTP.USDC",
		Token:      "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		MinBaseFee: "1000000",
		MaxFee:     "100000000",
	}.ToBridgeToken()
	require.NoError(t, err)

	require.Equal(t, "1000000", token.Fee.MinBaseFee.String())
	require.True(t, token.Fee.MinSwapFee.IsZero())
	require.Equal(t, "100000000", token.Fee.MaxFee.String())
}

func TestRemoteDomainConfigEntryToRemoteDomainConfig(t *testing.T) {
	config, err := domain.RemoteDomainConfigEntry{
		ChainID:  43114,
		Domain:   1,
		Contract: "0x00000000000000000000000000000000000000bb",
	}.ToRemoteDomainConfig()
	require.NoError(t, err)
	require.Equal(t, domain.RemoteDomainConfig{
		ChainID:  43114,
		Domain:   1,
		Contract: common.HexToAddress("0xbb"),
	}, config)

	_, err = domain.RemoteDomainConfigEntry{ChainID: 43114, Contract: "bb"}.ToRemoteDomainConfig()
	require.ErrorAs(t, err, &domain.InvalidAddressError{})
}

func TestParseFeeFraction(t *testing.T) {
	tests := []struct {
		value    string
		expected uint64
		wantErr  bool
	}{
		{value: "", expected: 0},
		{value: "0.0005", expected: 5_000_000},
		{value: "0.001", expected: 10_000_000},
		{value: "1", expected: domain.FeeDenominator},
		{value: "-0.1", wantErr: true},
		{value: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			fee, err := domain.ParseFeeFraction(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, fee)
		})
	}
}
