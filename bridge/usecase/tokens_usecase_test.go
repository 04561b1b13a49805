package usecase_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/MrCuPper/synapse-contracts/bridge/usecase"
	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
	"github.com/MrCuPper/synapse-contracts/log"
)

type TokensUsecaseTestSuite struct {
	suite.Suite

	tokens mvc.BridgeTokensUsecase
}

func TestTokensUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(TokensUsecaseTestSuite))
}

func (s *TokensUsecaseTestSuite) SetupTest() {
	s.tokens = usecase.NewTokensUsecase(owner, 43114, "", &log.NoOpLogger{})
}

func (s *TokensUsecaseTestSuite) TestAddToken() {
	ctx := context.Background()
	usdc := domain.BridgeToken{Symbol: usdcSymbol, Token: usdcB, RemoteToken: usdcA, Fee: usdcFee}

	tests := []struct {
		name   string
		caller common.Address
		token  domain.BridgeToken
		check  func(err error)
	}{
		{
			name:   "not owner",
			caller: user,
			token:  usdc,
			check:  func(err error) { s.Require().ErrorIs(err, domain.ErrUnauthorized) },
		},
		{
			name:   "zero token",
			caller: owner,
			token:  domain.BridgeToken{Symbol: usdcSymbol, Fee: usdcFee},
			check:  func(err error) { s.Require().ErrorIs(err, domain.ErrZeroAddress) },
		},
		{
			name:   "missing prefix",
			caller: owner,
			token:  domain.BridgeToken{Symbol: "USDC", Token: usdcB, Fee: usdcFee},
			check:  func(err error) { s.Require().ErrorAs(err, &domain.SymbolIncorrectError{}) },
		},
		{
			name:   "prefix only",
			caller: owner,
			token:  domain.BridgeToken{Symbol: usecase.DefaultSymbolPrefix, Token: usdcB, Fee: usdcFee},
			check:  func(err error) { s.Require().ErrorAs(err, &domain.SymbolIncorrectError{}) },
		},
		{
			name:   "min swap fee above max fee",
			caller: owner,
			token: domain.BridgeToken{Symbol: usdcSymbol, Token: usdcB, Fee: domain.FeeStructure{
				PercentageFee: 5_000_000,
				MinBaseFee:    osmomath.NewInt(1),
				MinSwapFee:    osmomath.NewInt(10),
				MaxFee:        osmomath.NewInt(5),
			}},
			check: func(err error) { s.Require().ErrorAs(err, &domain.IncorrectFeeConfigError{}) },
		},
		{
			name:   "percentage above cap",
			caller: owner,
			token: domain.BridgeToken{Symbol: usdcSymbol, Token: usdcB, Fee: domain.FeeStructure{
				PercentageFee: domain.MaxRelayerFee + 1,
				MinBaseFee:    osmomath.ZeroInt(),
				MinSwapFee:    osmomath.ZeroInt(),
				MaxFee:        osmomath.ZeroInt(),
			}},
			check: func(err error) { s.Require().ErrorAs(err, &domain.IncorrectFeeConfigError{}) },
		},
		{
			name:   "valid",
			caller: owner,
			token:  usdc,
			check:  func(err error) { s.Require().NoError(err) },
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.check(s.tokens.AddToken(ctx, tc.caller, tc.token))
		})
	}
}

func (s *TokensUsecaseTestSuite) TestAddToken_Duplicates() {
	ctx := context.Background()
	s.Require().NoError(s.tokens.AddToken(ctx, owner, domain.BridgeToken{Symbol: usdcSymbol, Token: usdcB, RemoteToken: usdcA, Fee: usdcFee}))

	duplicates := []domain.BridgeToken{
		{Symbol: "CCTP.USDC2", Token: usdcB, Fee: usdcFee},
		{Symbol: usdcSymbol, Token: usdtB, Fee: usdcFee},
		{Symbol: "CCTP.USDT", Token: usdtB, RemoteToken: usdcA, Fee: usdcFee},
	}
	for _, duplicate := range duplicates {
		err := s.tokens.AddToken(ctx, owner, duplicate)
		s.Require().ErrorAs(err, &domain.TokenAlreadyAddedError{})
	}

	// A zero remote token defaults to the token itself.
	s.Require().NoError(s.tokens.AddToken(ctx, owner, domain.BridgeToken{Symbol: "CCTP.USDT", Token: usdtB, Fee: usdcFee}))
	usdt, err := s.tokens.GetTokenByRemoteToken(usdtB)
	s.Require().NoError(err)
	s.Require().Equal(usdtB, usdt.RemoteToken)

	tokens := s.tokens.GetTokens()
	s.Require().Len(tokens, 2)
	s.Require().Equal(usdcSymbol, tokens[0].Symbol)
	s.Require().Equal("CCTP.USDT", tokens[1].Symbol)
}

func (s *TokensUsecaseTestSuite) TestLookups() {
	ctx := context.Background()
	s.Require().NoError(s.tokens.AddToken(ctx, owner, domain.BridgeToken{Symbol: usdcSymbol, Token: usdcB, RemoteToken: usdcA, Fee: usdcFee}))

	bySymbol, err := s.tokens.GetTokenBySymbol(usdcSymbol)
	s.Require().NoError(err)
	s.Require().Equal(usdcB, bySymbol.Token)

	byRemote, err := s.tokens.GetTokenByRemoteToken(usdcA)
	s.Require().NoError(err)
	s.Require().Equal(usdcB, byRemote.Token)

	_, err = s.tokens.GetTokenBySymbol("CCTP.EURC")
	s.Require().ErrorAs(err, &domain.UnknownSymbolError{})

	_, err = s.tokens.GetToken(usdtB)
	s.Require().ErrorAs(err, &domain.UnknownTokenError{})

	_, err = s.tokens.GetTokenByRemoteToken(usdcB)
	s.Require().ErrorAs(err, &domain.UnknownTokenError{})
}

func (s *TokensUsecaseTestSuite) TestRemoveToken() {
	ctx := context.Background()
	s.Require().NoError(s.tokens.AddToken(ctx, owner, domain.BridgeToken{Symbol: usdcSymbol, Token: usdcB, RemoteToken: usdcA, Fee: usdcFee}))

	s.Require().ErrorIs(s.tokens.RemoveToken(ctx, user, usdcB), domain.ErrUnauthorized)
	s.Require().NoError(s.tokens.RemoveToken(ctx, owner, usdcB))
	s.Require().ErrorAs(s.tokens.RemoveToken(ctx, owner, usdcB), &domain.UnknownTokenError{})

	_, err := s.tokens.GetTokenBySymbol(usdcSymbol)
	s.Require().ErrorAs(err, &domain.UnknownSymbolError{})
	_, err = s.tokens.GetTokenByRemoteToken(usdcA)
	s.Require().ErrorAs(err, &domain.UnknownTokenError{})
	s.Require().Empty(s.tokens.GetTokens())

	// Removed symbols can be added again.
	s.Require().NoError(s.tokens.AddToken(ctx, owner, domain.BridgeToken{Symbol: usdcSymbol, Token: usdcB, RemoteToken: usdcA, Fee: usdcFee}))
}

func (s *TokensUsecaseTestSuite) TestSetTokenFee() {
	ctx := context.Background()
	s.Require().NoError(s.tokens.AddToken(ctx, owner, domain.BridgeToken{Symbol: usdcSymbol, Token: usdcB, Fee: usdcFee}))

	newFee := domain.FeeStructure{
		PercentageFee: 1_000_000,
		MinBaseFee:    osmomath.NewInt(2),
		MinSwapFee:    osmomath.NewInt(3),
		MaxFee:        osmomath.NewInt(4),
	}

	s.Require().ErrorIs(s.tokens.SetTokenFee(ctx, user, usdcB, newFee), domain.ErrUnauthorized)
	s.Require().ErrorAs(s.tokens.SetTokenFee(ctx, owner, usdtB, newFee), &domain.UnknownTokenError{})
	s.Require().ErrorAs(s.tokens.SetTokenFee(ctx, owner, usdcB, domain.FeeStructure{}), &domain.IncorrectFeeConfigError{})

	s.Require().NoError(s.tokens.SetTokenFee(ctx, owner, usdcB, newFee))
	token, err := s.tokens.GetToken(usdcB)
	s.Require().NoError(err)
	s.Require().Equal(uint64(1_000_000), token.Fee.PercentageFee)
	s.Require().Equal("4", token.Fee.MaxFee.String())
}

func (s *TokensUsecaseTestSuite) TestSetRemoteDomainConfig() {
	ctx := context.Background()
	contract := bridgeAddress

	tests := []struct {
		name   string
		caller common.Address
		config domain.RemoteDomainConfig
		check  func(err error)
	}{
		{
			name:   "not owner",
			caller: user,
			config: domain.RemoteDomainConfig{ChainID: 10, Domain: 2, Contract: contract},
			check:  func(err error) { s.Require().ErrorIs(err, domain.ErrUnauthorized) },
		},
		{
			name:   "local chain",
			caller: owner,
			config: domain.RemoteDomainConfig{ChainID: 43114, Domain: 2, Contract: contract},
			check:  func(err error) { s.Require().ErrorAs(err, &domain.IncorrectRemoteDomainError{}) },
		},
		{
			name:   "zero chain",
			caller: owner,
			config: domain.RemoteDomainConfig{Domain: 2, Contract: contract},
			check:  func(err error) { s.Require().ErrorAs(err, &domain.IncorrectRemoteDomainError{}) },
		},
		{
			name:   "domain 0 outside of mainnet",
			caller: owner,
			config: domain.RemoteDomainConfig{ChainID: 10, Domain: 0, Contract: contract},
			check:  func(err error) { s.Require().ErrorAs(err, &domain.IncorrectRemoteDomainError{}) },
		},
		{
			name:   "zero contract",
			caller: owner,
			config: domain.RemoteDomainConfig{ChainID: 10, Domain: 2},
			check:  func(err error) { s.Require().ErrorIs(err, domain.ErrZeroAddress) },
		},
		{
			name:   "domain 0 on mainnet",
			caller: owner,
			config: domain.RemoteDomainConfig{ChainID: 1, Domain: 0, Contract: contract},
			check:  func(err error) { s.Require().NoError(err) },
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.check(s.tokens.SetRemoteDomainConfig(ctx, tc.caller, tc.config))
		})
	}
}

func (s *TokensUsecaseTestSuite) TestGetRemoteDomainConfigs() {
	ctx := context.Background()
	for _, config := range []domain.RemoteDomainConfig{
		{ChainID: 42161, Domain: 3, Contract: bridgeAddress},
		{ChainID: 1, Domain: 0, Contract: bridgeAddress},
		{ChainID: 10, Domain: 2, Contract: bridgeAddress},
	} {
		s.Require().NoError(s.tokens.SetRemoteDomainConfig(ctx, owner, config))
	}

	// Reconfiguring a chain replaces its config.
	s.Require().NoError(s.tokens.SetRemoteDomainConfig(ctx, owner, domain.RemoteDomainConfig{ChainID: 10, Domain: 7, Contract: bridgeAddress}))

	configs := s.tokens.GetRemoteDomainConfigs()
	s.Require().Len(configs, 3)
	s.Require().Equal([]uint64{1, 10, 42161}, []uint64{configs[0].ChainID, configs[1].ChainID, configs[2].ChainID})
	s.Require().Equal(uint32(7), configs[1].Domain)

	_, err := s.tokens.GetRemoteDomainConfig(56)
	s.Require().ErrorAs(err, &domain.RemoteDomainNotConfiguredError{})
}
