package usecase_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/MrCuPper/synapse-contracts/bridge/usecase"
	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mocks"
	"github.com/MrCuPper/synapse-contracts/log"
)

type BridgeQuoteTestSuite struct {
	BridgeTestHelper
}

func TestBridgeQuoteTestSuite(t *testing.T) {
	suite.Run(t, new(BridgeQuoteTestSuite))
}

func (s *BridgeQuoteTestSuite) decodeParams(query domain.SwapQuery) domain.DefaultParams {
	params, err := domain.DecodeDefaultParams(query.RawParams)
	s.Require().NoError(err)
	return params
}

func (s *BridgeQuoteTestSuite) TestGetOriginAmountOut() {
	unknown := common.HexToAddress("0x00000000000000000000000000000000000000ee")

	tests := []struct {
		name     string
		tokenIn  common.Address
		expected domain.SwapQuery
		params   *domain.DefaultParams
	}{
		{
			name:    "bridge token needs no action",
			tokenIn: usdcA,
			expected: domain.SwapQuery{
				TokenOut:     usdcA,
				MinAmountOut: amount,
				Deadline:     domain.NoDeadline,
			},
		},
		{
			name:    "swap into bridge token",
			tokenIn: daiA,
			expected: domain.SwapQuery{
				RouterAdapter: adapterAddress,
				TokenOut:      usdcA,
				MinAmountOut:  amount,
				Deadline:      domain.NoDeadline,
			},
			params: &domain.DefaultParams{
				Action:         domain.ActionSwap,
				Pool:           routerAddress,
				TokenIndexFrom: 1,
				TokenIndexTo:   0,
			},
		},
		{
			name:    "no path",
			tokenIn: unknown,
			expected: domain.SwapQuery{
				TokenOut:     usdcA,
				MinAmountOut: osmomath.ZeroInt(),
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			queries, err := s.a.quoter.GetOriginAmountOut(context.Background(), tc.tokenIn, []string{usdcSymbol}, amount)
			s.Require().NoError(err)
			s.Require().Len(queries, 1)

			query := queries[0]
			s.Require().Equal(tc.expected.RouterAdapter, query.RouterAdapter)
			s.Require().Equal(tc.expected.TokenOut, query.TokenOut)
			s.Require().Equal(tc.expected.MinAmountOut.String(), query.MinAmountOut.String())
			s.Require().Equal(tc.expected.Deadline, query.Deadline)

			if tc.params == nil {
				s.Require().False(query.HasAction())
				return
			}
			s.Require().Equal(*tc.params, s.decodeParams(query))
		})
	}
}

func (s *BridgeQuoteTestSuite) TestGetOriginAmountOut_UnknownSymbol() {
	// Fails fast even if other symbols are known.
	_, err := s.a.quoter.GetOriginAmountOut(context.Background(), daiA, []string{usdcSymbol, "CCTP.EURC"}, amount)
	s.Require().ErrorAs(err, &domain.UnknownSymbolError{})
}

func (s *BridgeQuoteTestSuite) TestGetDestinationAmountOut() {
	s.newLiquidityPool()

	tests := []struct {
		name                 string
		amountIn             osmomath.Int
		tokenOut             common.Address
		expectedMinAmountOut string
		expectedParams       *domain.DefaultParams
	}{
		{
			name:                 "bridge token deducts the base fee",
			amountIn:             amount,
			tokenOut:             usdcB,
			expectedMinAmountOut: "999000000",
		},
		{
			name:                 "swap deducts the swap fee before quoting",
			amountIn:             amount,
			tokenOut:             usdtB,
			expectedMinAmountOut: "995000000",
			expectedParams: &domain.DefaultParams{
				Action:         domain.ActionSwap,
				Pool:           routerAddress,
				TokenIndexFrom: 0,
				TokenIndexTo:   1,
			},
		},
		{
			name:                 "remove liquidity",
			amountIn:             amount,
			tokenOut:             fraxB,
			expectedMinAmountOut: "497500000",
			expectedParams: &domain.DefaultParams{
				Action:         domain.ActionRemoveLiquidity,
				Pool:           lpB,
				TokenIndexFrom: 0xFF,
				TokenIndexTo:   1,
			},
		},
		{
			name:                 "amount does not cover the fee",
			amountIn:             osmomath.NewInt(5_000_000),
			tokenOut:             usdtB,
			expectedMinAmountOut: "0",
		},
		{
			name:                 "no path",
			amountIn:             amount,
			tokenOut:             usdcA,
			expectedMinAmountOut: "0",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			queries, err := s.b.quoter.GetDestinationAmountOut(context.Background(), []domain.DestinationRequest{{Symbol: usdcSymbol, AmountIn: tc.amountIn}}, tc.tokenOut)
			s.Require().NoError(err)
			s.Require().Len(queries, 1)

			query := queries[0]
			s.Require().Equal(tc.expectedMinAmountOut, query.MinAmountOut.String())

			if tc.expectedParams == nil {
				s.Require().False(query.HasAction())
				return
			}
			s.Require().Equal(tc.tokenOut, query.TokenOut)
			s.Require().Equal(adapterAddress, query.RouterAdapter)
			s.Require().Equal(*tc.expectedParams, s.decodeParams(query))
			s.Require().NoError(s.b.quoter.ValidateDestinationQuery(query))
		})
	}
}

func (s *BridgeQuoteTestSuite) TestGetDestinationAmountOut_PreservesOrder() {
	requests := []domain.DestinationRequest{
		{Symbol: usdcSymbol, AmountIn: osmomath.NewInt(2_000_000_000)},
		{Symbol: usdcSymbol, AmountIn: amount},
		{Symbol: usdcSymbol, AmountIn: osmomath.NewInt(3_000_000_000)},
	}

	queries, err := s.b.quoter.GetDestinationAmountOut(context.Background(), requests, usdcB)
	s.Require().NoError(err)
	s.Require().Len(queries, 3)
	s.Require().Equal("1999000000", queries[0].MinAmountOut.String())
	s.Require().Equal("999000000", queries[1].MinAmountOut.String())
	s.Require().Equal("2998500000", queries[2].MinAmountOut.String())

	_, err = s.b.quoter.GetDestinationAmountOut(context.Background(), []domain.DestinationRequest{{Symbol: "USDC", AmountIn: amount}}, usdcB)
	s.Require().ErrorAs(err, &domain.UnknownSymbolError{})
}

func (s *BridgeQuoteTestSuite) TestValidateDestinationQuery() {
	encode := func(action domain.Action) []byte {
		raw, err := domain.DefaultParams{Action: action, Pool: poolB, TokenIndexTo: 1}.Encode()
		s.Require().NoError(err)
		return raw
	}

	s.Require().NoError(s.b.quoter.ValidateDestinationQuery(domain.SwapQuery{}))
	s.Require().NoError(s.b.quoter.ValidateDestinationQuery(domain.SwapQuery{RawParams: encode(domain.ActionSwap)}))
	s.Require().NoError(s.b.quoter.ValidateDestinationQuery(domain.SwapQuery{RawParams: encode(domain.ActionRemoveLiquidity)}))

	err := s.b.quoter.ValidateDestinationQuery(domain.SwapQuery{RawParams: encode(domain.ActionAddLiquidity)})
	s.Require().ErrorAs(err, &domain.UnsupportedActionError{})

	err = s.b.quoter.ValidateDestinationQuery(domain.SwapQuery{RawParams: []byte{0x01}})
	s.Require().ErrorAs(err, &domain.IncorrectParamsLengthError{})
}

func (s *BridgeQuoteTestSuite) TestNearMaxUint256Amounts() {
	s.newLiquidityPool()
	ctx := context.Background()

	tests := []struct {
		name     string
		amountIn osmomath.Int
	}{
		{
			name:     "fee and pool math overflow",
			amountIn: osmomath.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 250)),
		},
		{
			name:     "max uint256",
			amountIn: domain.MaxUint256,
		},
		{
			name:     "fee fits, pool math overflows",
			amountIn: osmomath.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 230)),
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			queries, err := s.a.quoter.GetOriginAmountOut(ctx, daiA, []string{usdcSymbol}, tc.amountIn)
			s.Require().NoError(err)
			s.Require().Len(queries, 1)
			s.Require().Equal(usdcA, queries[0].TokenOut)
			s.Require().True(queries[0].MinAmountOut.IsZero())
			s.Require().False(queries[0].HasAction())

			for _, tokenOut := range []common.Address{usdtB, fraxB} {
				queries, err = s.b.quoter.GetDestinationAmountOut(ctx, []domain.DestinationRequest{{Symbol: usdcSymbol, AmountIn: tc.amountIn}}, tokenOut)
				s.Require().NoError(err)
				s.Require().Len(queries, 1)
				s.Require().Equal(tokenOut, queries[0].TokenOut)
				s.Require().True(queries[0].MinAmountOut.IsZero())
				s.Require().False(queries[0].HasAction())
			}
		})
	}
}

func (s *BridgeQuoteTestSuite) TestPanickingCandidateYieldsEmptyQuery() {
	ctx := context.Background()
	router := &mocks.RouterUsecaseMock{
		FindBestPathFunc: func(context.Context, common.Address, common.Address, osmomath.Int) domain.BestPath {
			panic("Int overflow")
		},
	}
	quoter := usecase.NewBridgeQuoteUsecase(adapterAddress, router, s.a.tokens, s.a.fees, s.a.pools, 2, &log.NoOpLogger{})

	queries, err := quoter.GetOriginAmountOut(ctx, daiA, []string{usdcSymbol, usdcSymbol}, amount)
	s.Require().NoError(err)
	s.Require().Len(queries, 2)
	for _, query := range queries {
		s.Require().Equal(usdcA, query.TokenOut)
		s.Require().True(query.MinAmountOut.IsZero())
		s.Require().False(query.HasAction())
	}

	// The bridge token itself never reaches the router.
	queries, err = quoter.GetOriginAmountOut(ctx, usdcA, []string{usdcSymbol}, amount)
	s.Require().NoError(err)
	s.Require().Equal(amount.String(), queries[0].MinAmountOut.String())
}
