package memorypool

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
)

// StablePool swaps its tokens 1:1 minus the fee, bounded by the output reserve.
// It exposes no paused method.
type StablePool struct {
	address common.Address
	tokens  []common.Address
	fee     uint64
	ledger  domain.TokenLedger
	now     func() time.Time
}

var _ domain.Pool = &StablePool{}

// NewStablePool creates a 1:1 pool over the tokens.
func NewStablePool(address common.Address, tokens []common.Address, fee uint64, ledger domain.TokenLedger) *StablePool {
	return &StablePool{
		address: address,
		tokens:  tokens,
		fee:     fee,
		ledger:  ledger,
		now:     time.Now,
	}
}

// Address implements domain.Pool.
func (p *StablePool) Address() common.Address {
	return p.address
}

// GetToken implements domain.Pool.
func (p *StablePool) GetToken(_ context.Context, index uint8) (common.Address, error) {
	if int(index) >= len(p.tokens) {
		return common.Address{}, domain.InvalidTokenIndexError{Pool: p.address, Index: index}
	}
	return p.tokens[index], nil
}

// CalculateSwap implements domain.Pool.
func (p *StablePool) CalculateSwap(_ context.Context, tokenIndexFrom, tokenIndexTo uint8, dx osmomath.Int) (osmomath.Int, error) {
	if err := p.validateIndexes(tokenIndexFrom, tokenIndexTo); err != nil {
		return osmomath.Int{}, err
	}
	return p.amountOut(tokenIndexTo, dx)
}

// Swap implements domain.Pool.
func (p *StablePool) Swap(_ context.Context, caller common.Address, tokenIndexFrom, tokenIndexTo uint8, dx, minDy osmomath.Int, deadline uint64) (osmomath.Int, error) {
	if err := p.validateIndexes(tokenIndexFrom, tokenIndexTo); err != nil {
		return osmomath.Int{}, err
	}
	if err := checkDeadline(deadline, p.now); err != nil {
		return osmomath.Int{}, err
	}

	tokenFrom := p.tokens[tokenIndexFrom]
	balanceBefore := p.ledger.BalanceOf(tokenFrom, p.address)
	if err := p.ledger.TransferFrom(tokenFrom, p.address, caller, p.address, dx); err != nil {
		return osmomath.Int{}, err
	}

	dy, err := p.amountOut(tokenIndexTo, p.ledger.BalanceOf(tokenFrom, p.address).Sub(balanceBefore))
	if err != nil {
		return osmomath.Int{}, err
	}
	if dy.LT(minDy) {
		return osmomath.Int{}, domain.InsufficientOutputAmountError{AmountOut: dy, MinAmountOut: minDy}
	}

	if err := p.ledger.Transfer(p.tokens[tokenIndexTo], p.address, caller, dy); err != nil {
		return osmomath.Int{}, err
	}
	return dy, nil
}

func (p *StablePool) amountOut(tokenIndexTo uint8, dx osmomath.Int) (osmomath.Int, error) {
	dy, err := applyFee(dx, p.fee)
	if err != nil {
		return osmomath.Int{}, err
	}

	reserveOut := p.ledger.BalanceOf(p.tokens[tokenIndexTo], p.address)
	if dy.GT(reserveOut) {
		return osmomath.Int{}, domain.InsufficientBalanceError{Token: p.tokens[tokenIndexTo], Holder: p.address, Balance: reserveOut, Amount: dy}
	}
	return dy, nil
}

func (p *StablePool) validateIndexes(tokenIndexFrom, tokenIndexTo uint8) error {
	if int(tokenIndexFrom) >= len(p.tokens) {
		return domain.InvalidTokenIndexError{Pool: p.address, Index: tokenIndexFrom}
	}
	if int(tokenIndexTo) >= len(p.tokens) {
		return domain.InvalidTokenIndexError{Pool: p.address, Index: tokenIndexTo}
	}
	if tokenIndexFrom == tokenIndexTo {
		return domain.ErrEqualSwapIndexes
	}
	return nil
}
