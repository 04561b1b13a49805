package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
)

// actionExecutor performs swap query actions with the tokens held by address.
type actionExecutor struct {
	address common.Address
	ledger  domain.TokenLedger
	pools   domain.PoolsRepository
}

// execute performs the action on amountIn of tokenIn and returns the token and amount received.
func (e actionExecutor) execute(ctx context.Context, tokenIn common.Address, amountIn osmomath.Int, params domain.SwapParams) (common.Address, osmomath.Int, error) {
	poolValue, err := e.pools.GetPool(params.Pool)
	if err != nil {
		return common.Address{}, osmomath.Int{}, err
	}

	switch params.Action {
	case domain.ActionSwap:
		pool, ok := poolValue.(domain.Pool)
		if !ok {
			return common.Address{}, osmomath.Int{}, fmt.Errorf("pool %s: %w", params.Pool, domain.ErrExecutionUnsupported)
		}
		return e.swap(ctx, pool, tokenIn, amountIn, params)
	case domain.ActionRemoveLiquidity:
		pool, ok := poolValue.(domain.LiquidityPool)
		if !ok {
			return common.Address{}, osmomath.Int{}, fmt.Errorf("pool %s: %w", params.Pool, domain.ErrExecutionUnsupported)
		}
		return e.removeLiquidity(ctx, pool, tokenIn, amountIn, params)
	default:
		return common.Address{}, osmomath.Int{}, domain.UnsupportedActionError{Action: params.Action}
	}
}

func (e actionExecutor) swap(ctx context.Context, pool domain.Pool, tokenIn common.Address, amountIn osmomath.Int, params domain.SwapParams) (common.Address, osmomath.Int, error) {
	tokenFrom, err := pool.GetToken(ctx, params.TokenIndexFrom)
	if err != nil {
		return common.Address{}, osmomath.Int{}, err
	}
	if tokenFrom != tokenIn {
		return common.Address{}, osmomath.Int{}, domain.TokenNotInPoolError{Token: tokenIn, Pool: params.Pool}
	}

	tokenOut, err := pool.GetToken(ctx, params.TokenIndexTo)
	if err != nil {
		return common.Address{}, osmomath.Int{}, err
	}

	if err := approveToken(e.ledger, e.address, tokenIn, params.Pool, amountIn); err != nil {
		return common.Address{}, osmomath.Int{}, err
	}

	balanceBefore := e.ledger.BalanceOf(tokenOut, e.address)
	if _, err := pool.Swap(ctx, e.address, params.TokenIndexFrom, params.TokenIndexTo, amountIn, minAmountOut(params), params.Deadline); err != nil {
		return common.Address{}, osmomath.Int{}, err
	}

	return tokenOut, e.ledger.BalanceOf(tokenOut, e.address).Sub(balanceBefore), nil
}

func (e actionExecutor) removeLiquidity(ctx context.Context, pool domain.LiquidityPool, tokenIn common.Address, amountIn osmomath.Int, params domain.SwapParams) (common.Address, osmomath.Int, error) {
	if pool.LPToken() != tokenIn {
		return common.Address{}, osmomath.Int{}, domain.TokenNotInPoolError{Token: tokenIn, Pool: params.Pool}
	}

	tokenOut, err := pool.GetToken(ctx, params.TokenIndexTo)
	if err != nil {
		return common.Address{}, osmomath.Int{}, err
	}

	if err := approveToken(e.ledger, e.address, tokenIn, params.Pool, amountIn); err != nil {
		return common.Address{}, osmomath.Int{}, err
	}

	balanceBefore := e.ledger.BalanceOf(tokenOut, e.address)
	if _, err := pool.RemoveLiquidityOneToken(ctx, e.address, amountIn, params.TokenIndexTo, minAmountOut(params), params.Deadline); err != nil {
		return common.Address{}, osmomath.Int{}, err
	}

	return tokenOut, e.ledger.BalanceOf(tokenOut, e.address).Sub(balanceBefore), nil
}

// pullToken transfers amount of token from holder to spender and returns the amount received.
func pullToken(ledger domain.TokenLedger, spender, token, holder common.Address, amount osmomath.Int) (osmomath.Int, error) {
	balanceBefore := ledger.BalanceOf(token, spender)
	if err := ledger.TransferFrom(token, spender, holder, spender, amount); err != nil {
		return osmomath.Int{}, err
	}
	return ledger.BalanceOf(token, spender).Sub(balanceBefore), nil
}

// approveToken grants spender an infinite allowance over the owner tokens if the current one
// does not cover amount. A non zero allowance is reset to zero first.
func approveToken(ledger domain.TokenLedger, owner, token, spender common.Address, amount osmomath.Int) error {
	allowance := ledger.Allowance(token, owner, spender)
	if !allowance.LT(amount) {
		return nil
	}

	if !allowance.IsZero() {
		if err := ledger.Approve(token, owner, spender, osmomath.ZeroInt()); err != nil {
			return err
		}
	}
	return ledger.Approve(token, owner, spender, domain.MaxUint256)
}

func minAmountOut(params domain.SwapParams) osmomath.Int {
	if params.MinAmountOut.IsNil() {
		return osmomath.ZeroInt()
	}
	return params.MinAmountOut
}
