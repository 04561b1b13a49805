package usecase

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
	"github.com/MrCuPper/synapse-contracts/domain/workerpool"
	"github.com/MrCuPper/synapse-contracts/log"
)

// removeLiquidityIndexFrom fills the unused from index of remove liquidity params.
const removeLiquidityIndexFrom = 0xFF

type bridgeQuoteUseCase struct {
	routerAdapter common.Address

	router mvc.RouterUsecase
	tokens mvc.BridgeTokensUsecase
	fees   mvc.FeeUsecase
	pools  domain.PoolsRepository

	dispatcher *workerpool.Dispatcher[domain.SwapQuery]
	logger     log.Logger
}

var _ mvc.BridgeQuoteUsecase = &bridgeQuoteUseCase{}

// NewBridgeQuoteUsecase returns the quoter of bridge transactions.
// routerAdapter is reported as the executor of the returned queries.
func NewBridgeQuoteUsecase(routerAdapter common.Address, router mvc.RouterUsecase, tokens mvc.BridgeTokensUsecase, fees mvc.FeeUsecase, pools domain.PoolsRepository, workers int, logger log.Logger) mvc.BridgeQuoteUsecase {
	return &bridgeQuoteUseCase{
		routerAdapter: routerAdapter,
		router:        router,
		tokens:        tokens,
		fees:          fees,
		pools:         pools,
		dispatcher:    workerpool.NewDispatcher[domain.SwapQuery](workers),
		logger:        logger,
	}
}

// GetOriginAmountOut implements mvc.BridgeQuoteUsecase.
func (q *bridgeQuoteUseCase) GetOriginAmountOut(ctx context.Context, tokenIn common.Address, symbols []string, amountIn osmomath.Int) ([]domain.SwapQuery, error) {
	bridgeTokens, err := q.getTokensBySymbol(symbols)
	if err != nil {
		return nil, err
	}

	tasks := lo.Map(bridgeTokens, func(bridgeToken domain.BridgeToken, _ int) func(context.Context) (domain.SwapQuery, error) {
		return func(ctx context.Context) (domain.SwapQuery, error) {
			return q.originQuery(ctx, tokenIn, bridgeToken.Token, amountIn), nil
		}
	})

	return q.collect(ctx, tasks, lo.Map(bridgeTokens, func(bridgeToken domain.BridgeToken, _ int) common.Address { return bridgeToken.Token }))
}

func (q *bridgeQuoteUseCase) originQuery(ctx context.Context, tokenIn, bridgeToken common.Address, amountIn osmomath.Int) domain.SwapQuery {
	if tokenIn == bridgeToken {
		return domain.SwapQuery{
			TokenOut:     bridgeToken,
			MinAmountOut: amountIn,
			Deadline:     domain.NoDeadline,
		}
	}

	bestPath := q.router.FindBestPath(ctx, tokenIn, bridgeToken, amountIn)
	if !bestPath.AmountOut.IsPositive() {
		return emptyQuery(bridgeToken)
	}

	return q.swapQuery(bridgeToken, bestPath.AmountOut, domain.DefaultParams{
		Action:         domain.ActionSwap,
		Pool:           q.router.Address(),
		TokenIndexFrom: uint8(bestPath.NodeIndexFrom),
		TokenIndexTo:   uint8(bestPath.NodeIndexTo),
	})
}

// GetDestinationAmountOut implements mvc.BridgeQuoteUsecase.
func (q *bridgeQuoteUseCase) GetDestinationAmountOut(ctx context.Context, requests []domain.DestinationRequest, tokenOut common.Address) ([]domain.SwapQuery, error) {
	bridgeTokens, err := q.getTokensBySymbol(lo.Map(requests, func(r domain.DestinationRequest, _ int) string { return r.Symbol }))
	if err != nil {
		return nil, err
	}

	tasks := make([]func(context.Context) (domain.SwapQuery, error), len(requests))
	for i, request := range requests {
		bridgeToken := bridgeTokens[i].Token
		amountIn := request.AmountIn
		tasks[i] = func(ctx context.Context) (domain.SwapQuery, error) {
			return q.destinationQuery(ctx, bridgeToken, tokenOut, amountIn)
		}
	}

	return q.collect(ctx, tasks, lo.Map(requests, func(domain.DestinationRequest, int) common.Address { return tokenOut }))
}

// destinationQuery deducts the bridge fee from amountIn before quoting the destination action.
func (q *bridgeQuoteUseCase) destinationQuery(ctx context.Context, bridgeToken, tokenOut common.Address, amountIn osmomath.Int) (domain.SwapQuery, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return emptyQuery(tokenOut), nil
	}

	isSwap := tokenOut != bridgeToken
	fee, err := q.fees.CalculateFeeAmount(ctx, bridgeToken, amountIn, isSwap)
	if errors.Is(err, domain.ErrAmountOverflow) {
		q.logger.Debug("bridge fee overflows", zap.Stringer("token", bridgeToken), zap.Stringer("amount_in", amountIn))
		return emptyQuery(tokenOut), nil
	}
	if err != nil {
		return domain.SwapQuery{}, err
	}
	if amountIn.LTE(fee) {
		return emptyQuery(tokenOut), nil
	}
	amountIn = amountIn.Sub(fee)

	if !isSwap {
		return domain.SwapQuery{
			TokenOut:     bridgeToken,
			MinAmountOut: amountIn,
			Deadline:     domain.NoDeadline,
		}, nil
	}

	best := emptyQuery(tokenOut)

	bestPath := q.router.FindBestPath(ctx, bridgeToken, tokenOut, amountIn)
	if bestPath.AmountOut.IsPositive() {
		best = q.swapQuery(tokenOut, bestPath.AmountOut, domain.DefaultParams{
			Action:         domain.ActionSwap,
			Pool:           q.router.Address(),
			TokenIndexFrom: uint8(bestPath.NodeIndexFrom),
			TokenIndexTo:   uint8(bestPath.NodeIndexTo),
		})
	}

	if removeQuery, ok := q.removeLiquidityQuery(ctx, bridgeToken, tokenOut, amountIn); ok && removeQuery.MinAmountOut.GT(best.MinAmountOut) {
		best = removeQuery
	}

	return best, nil
}

// removeLiquidityQuery quotes withdrawing tokenOut from the registered pools whose LP token is lpToken.
func (q *bridgeQuoteUseCase) removeLiquidityQuery(ctx context.Context, lpToken, tokenOut common.Address, amountIn osmomath.Int) (domain.SwapQuery, bool) {
	var (
		best  domain.SwapQuery
		found bool
	)

	for _, address := range q.pools.GetAllPools() {
		poolValue, err := q.pools.GetPool(address)
		if err != nil {
			continue
		}
		pool, ok := poolValue.(domain.LiquidityPool)
		if !ok || pool.LPToken() != lpToken {
			continue
		}

		tokenIndex, ok := findTokenIndex(ctx, pool, tokenOut)
		if !ok {
			continue
		}

		amountOut, err := pool.CalculateRemoveLiquidityOneToken(ctx, amountIn, tokenIndex)
		if err != nil {
			q.logger.Debug("remove liquidity quote failed", zap.Stringer("pool", address), zap.Error(err))
			continue
		}

		if amountOut.IsPositive() && (!found || amountOut.GT(best.MinAmountOut)) {
			best = q.swapQuery(tokenOut, amountOut, domain.DefaultParams{
				Action:         domain.ActionRemoveLiquidity,
				Pool:           address,
				TokenIndexFrom: removeLiquidityIndexFrom,
				TokenIndexTo:   tokenIndex,
			})
			found = true
		}
	}

	return best, found
}

// ValidateDestinationQuery implements mvc.BridgeQuoteUsecase.
func (q *bridgeQuoteUseCase) ValidateDestinationQuery(query domain.SwapQuery) error {
	if !query.HasAction() {
		return nil
	}

	params, err := domain.DecodeDefaultParams(query.RawParams)
	if err != nil {
		return err
	}

	switch params.Action {
	case domain.ActionSwap, domain.ActionRemoveLiquidity:
		return nil
	default:
		return domain.UnsupportedActionError{Action: params.Action}
	}
}

// getTokensBySymbol fails on the first symbol that is not a bridge token.
func (q *bridgeQuoteUseCase) getTokensBySymbol(symbols []string) ([]domain.BridgeToken, error) {
	bridgeTokens := make([]domain.BridgeToken, 0, len(symbols))
	for _, symbol := range symbols {
		bridgeToken, err := q.tokens.GetTokenBySymbol(symbol)
		if err != nil {
			return nil, err
		}
		bridgeTokens = append(bridgeTokens, bridgeToken)
	}
	return bridgeTokens, nil
}

// collect runs the candidate tasks. A panicking candidate yields an empty query for tokensOut
// at the same index; any other error fails the whole call.
func (q *bridgeQuoteUseCase) collect(ctx context.Context, tasks []func(context.Context) (domain.SwapQuery, error), tokensOut []common.Address) ([]domain.SwapQuery, error) {
	results := q.dispatcher.Run(ctx, tasks)

	queries := make([]domain.SwapQuery, 0, len(results))
	for i, result := range results {
		var panicErr workerpool.PanicError
		if errors.As(result.Err, &panicErr) {
			domain.SBRBridgeQuoteCandidatePanicCounter.Inc()
			q.logger.Error("bridge quote candidate panicked", zap.Stringer("token_out", tokensOut[i]), zap.Error(result.Err))
			queries = append(queries, emptyQuery(tokensOut[i]))
			continue
		}
		if result.Err != nil {
			return nil, result.Err
		}
		queries = append(queries, result.Result)
	}
	return queries, nil
}

func (q *bridgeQuoteUseCase) swapQuery(tokenOut common.Address, amountOut osmomath.Int, params domain.DefaultParams) domain.SwapQuery {
	rawParams, err := params.Encode()
	if err != nil {
		// Fixed size arguments always encode.
		panic(err)
	}

	return domain.SwapQuery{
		RouterAdapter: q.routerAdapter,
		TokenOut:      tokenOut,
		MinAmountOut:  amountOut,
		Deadline:      domain.NoDeadline,
		RawParams:     rawParams,
	}
}

func emptyQuery(tokenOut common.Address) domain.SwapQuery {
	return domain.SwapQuery{
		TokenOut:     tokenOut,
		MinAmountOut: osmomath.ZeroInt(),
	}
}

func findTokenIndex(ctx context.Context, pool domain.Pool, token common.Address) (uint8, bool) {
	for i := 0; i <= 0xFF; i++ {
		poolToken, err := pool.GetToken(ctx, uint8(i))
		if err != nil {
			return 0, false
		}
		if poolToken == token {
			return uint8(i), true
		}
	}
	return 0, false
}
