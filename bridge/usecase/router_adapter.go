package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/MrCuPper/synapse-contracts/bridge/request"
	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
	"github.com/MrCuPper/synapse-contracts/log"
)

type routerAdapterUseCase struct {
	address common.Address

	ledger   domain.TokenLedger
	bridge   mvc.BridgeUsecase
	executor actionExecutor
	logger   log.Logger

	now func() time.Time
}

var _ mvc.RouterAdapterUsecase = &routerAdapterUseCase{}

// NewRouterAdapterUsecase returns the adapter executing origin queries before bridging.
func NewRouterAdapterUsecase(address common.Address, ledger domain.TokenLedger, bridge mvc.BridgeUsecase, pools domain.PoolsRepository, logger log.Logger) mvc.RouterAdapterUsecase {
	return &routerAdapterUseCase{
		address: address,
		ledger:  ledger,
		bridge:  bridge,
		executor: actionExecutor{
			address: address,
			ledger:  ledger,
			pools:   pools,
		},
		logger: logger,
		now:    time.Now,
	}
}

// WithAdapterClock sets the clock used to check origin query deadlines.
func WithAdapterClock(adapter mvc.RouterAdapterUsecase, now func() time.Time) mvc.RouterAdapterUsecase {
	useCaseImpl, ok := adapter.(*routerAdapterUseCase)
	if !ok {
		panic("error casting router adapter use case to router adapter use case impl")
	}
	useCaseImpl.now = now
	return adapter
}

// Address implements mvc.RouterAdapterUsecase.
func (a *routerAdapterUseCase) Address() common.Address {
	return a.address
}

// Bridge implements mvc.RouterAdapterUsecase.
// The sender must have approved the adapter for amount of token.
func (a *routerAdapterUseCase) Bridge(ctx context.Context, sender, recipient common.Address, chainID uint64, token common.Address, amount osmomath.Int, originQuery, destQuery domain.SwapQuery) (domain.RequestSentEvent, error) {
	if amount.IsNil() || !amount.IsPositive() {
		return domain.RequestSentEvent{}, domain.ErrZeroAmount
	}

	requestVersion, swapParams, err := destinationRequestParams(destQuery)
	if err != nil {
		return domain.RequestSentEvent{}, err
	}

	var event domain.RequestSentEvent
	err = a.ledger.Transact(ctx, func(ctx context.Context) error {
		received, err := pullToken(a.ledger, a.address, token, sender, amount)
		if err != nil {
			return err
		}

		bridgeToken, bridgeAmount, err := a.executeOriginQuery(ctx, token, received, originQuery)
		if err != nil {
			return err
		}

		if err := approveToken(a.ledger, a.address, bridgeToken, a.bridge.Address(), bridgeAmount); err != nil {
			return err
		}

		event, err = a.bridge.SendToken(ctx, a.address, recipient, chainID, bridgeToken, bridgeAmount, requestVersion, swapParams)
		return err
	})
	if err != nil {
		a.logger.Debug("bridge failed", zap.Stringer("sender", sender), zap.Uint64("chain_id", chainID), zap.Error(err))
		return domain.RequestSentEvent{}, err
	}

	return event, nil
}

// executeOriginQuery performs the origin action and returns the token and amount to bridge.
func (a *routerAdapterUseCase) executeOriginQuery(ctx context.Context, token common.Address, amount osmomath.Int, query domain.SwapQuery) (common.Address, osmomath.Int, error) {
	if !query.HasAction() {
		if query.TokenOut != (common.Address{}) && query.TokenOut != token {
			return common.Address{}, osmomath.Int{}, fmt.Errorf("origin query without action must keep token %s, got %s: %w", token, query.TokenOut, domain.ErrBadParamInput)
		}
		return token, amount, nil
	}

	params, err := domain.DecodeDefaultParams(query.RawParams)
	if err != nil {
		return common.Address{}, osmomath.Int{}, err
	}
	if params.Action != domain.ActionSwap {
		return common.Address{}, osmomath.Int{}, domain.UnsupportedActionError{Action: params.Action}
	}

	now := uint64(a.now().Unix())
	if now > query.Deadline {
		return common.Address{}, osmomath.Int{}, domain.DeadlineExceededError{Deadline: query.Deadline, Now: now}
	}

	tokenOut, amountOut, err := a.executor.execute(ctx, token, amount, domain.SwapParams{
		Action:         params.Action,
		Pool:           params.Pool,
		TokenIndexFrom: params.TokenIndexFrom,
		TokenIndexTo:   params.TokenIndexTo,
		Deadline:       query.Deadline,
		MinAmountOut:   query.MinAmountOut,
	})
	if err != nil {
		return common.Address{}, osmomath.Int{}, err
	}

	if tokenOut != query.TokenOut {
		return common.Address{}, osmomath.Int{}, fmt.Errorf("origin swap returned %s, query expects %s: %w", tokenOut, query.TokenOut, domain.ErrBadParamInput)
	}
	if !query.MinAmountOut.IsNil() && amountOut.LT(query.MinAmountOut) {
		return common.Address{}, osmomath.Int{}, domain.InsufficientOutputAmountError{AmountOut: amountOut, MinAmountOut: query.MinAmountOut}
	}

	return tokenOut, amountOut, nil
}

// destinationRequestParams converts the destination query into a request version and its swap params.
func destinationRequestParams(query domain.SwapQuery) (uint32, []byte, error) {
	if !query.HasAction() {
		return request.RequestBase, nil, nil
	}

	params, err := domain.DecodeDefaultParams(query.RawParams)
	if err != nil {
		return 0, nil, err
	}

	swapParams := domain.SwapParams{
		Action:         params.Action,
		Pool:           params.Pool,
		TokenIndexFrom: params.TokenIndexFrom,
		TokenIndexTo:   params.TokenIndexTo,
		Deadline:       query.Deadline,
		MinAmountOut:   query.MinAmountOut,
	}

	var version uint32
	switch params.Action {
	case domain.ActionSwap:
		version = request.RequestSwap
	case domain.ActionRemoveLiquidity:
		version = request.RequestAction
	default:
		return 0, nil, domain.UnsupportedActionError{Action: params.Action}
	}

	encoded, err := request.FormatSwapParams(version, swapParams)
	if err != nil {
		return 0, nil, err
	}
	return version, encoded, nil
}
