package memorypool

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
)

// pairFee is the 0.3% fee of UniswapV2 style pairs in domain.FeeDenominator units.
const pairFee = 30_000_000

// PairPool is a UniswapV2 style pair. Its interface addresses tokens directly
// instead of by index, so it is reached through a pair pool module.
type PairPool struct {
	address common.Address
	token0  common.Address
	token1  common.Address
	ledger  domain.TokenLedger
}

var _ domain.PairPool = &PairPool{}

// NewPairPool creates a pair over token0 and token1.
func NewPairPool(address, token0, token1 common.Address, ledger domain.TokenLedger) *PairPool {
	return &PairPool{
		address: address,
		token0:  token0,
		token1:  token1,
		ledger:  ledger,
	}
}

// Address implements domain.PairPool.
func (p *PairPool) Address() common.Address { return p.address }

// Token0 implements domain.PairPool.
func (p *PairPool) Token0() common.Address { return p.token0 }

// Token1 implements domain.PairPool.
func (p *PairPool) Token1() common.Address { return p.token1 }

// GetAmountOut implements domain.PairPool.
func (p *PairPool) GetAmountOut(_ context.Context, tokenIn common.Address, amountIn osmomath.Int) (osmomath.Int, error) {
	tokenOut, err := p.otherToken(tokenIn)
	if err != nil {
		return osmomath.Int{}, err
	}

	return getAmountOut(amountIn, p.ledger.BalanceOf(tokenIn, p.address), p.ledger.BalanceOf(tokenOut, p.address), pairFee)
}

// SwapExactIn implements domain.PairPool.
func (p *PairPool) SwapExactIn(_ context.Context, caller common.Address, tokenIn common.Address, amountIn, minAmountOut osmomath.Int) (osmomath.Int, error) {
	tokenOut, err := p.otherToken(tokenIn)
	if err != nil {
		return osmomath.Int{}, err
	}

	reserveIn := p.ledger.BalanceOf(tokenIn, p.address)
	if err := p.ledger.TransferFrom(tokenIn, p.address, caller, p.address, amountIn); err != nil {
		return osmomath.Int{}, err
	}
	received := p.ledger.BalanceOf(tokenIn, p.address).Sub(reserveIn)

	amountOut, err := getAmountOut(received, reserveIn, p.ledger.BalanceOf(tokenOut, p.address), pairFee)
	if err != nil {
		return osmomath.Int{}, err
	}
	if amountOut.LT(minAmountOut) {
		return osmomath.Int{}, domain.InsufficientOutputAmountError{AmountOut: amountOut, MinAmountOut: minAmountOut}
	}

	if err := p.ledger.Transfer(tokenOut, p.address, caller, amountOut); err != nil {
		return osmomath.Int{}, err
	}
	return amountOut, nil
}

func (p *PairPool) otherToken(token common.Address) (common.Address, error) {
	switch token {
	case p.token0:
		return p.token1, nil
	case p.token1:
		return p.token0, nil
	default:
		return common.Address{}, domain.TokenNotInPoolError{Token: token, Pool: p.address}
	}
}
