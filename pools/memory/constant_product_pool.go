package memorypool

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
)

// ConstantProductPool is an N token pool where every token pair trades on
// the constant product curve of their reserves. Reserves are the pool balances in the ledger.
// It issues an LP token that can be withdrawn into a single token, and can be paused.
type ConstantProductPool struct {
	address common.Address
	tokens  []common.Address
	lpToken common.Address
	// fee in domain.FeeDenominator units
	fee    uint64
	ledger domain.TokenLedger
	now    func() time.Time

	mu       sync.RWMutex
	lpSupply osmomath.Int
	paused   bool
}

var (
	_ domain.Pool          = &ConstantProductPool{}
	_ domain.PausablePool  = &ConstantProductPool{}
	_ domain.LiquidityPool = &ConstantProductPool{}
)

// NewConstantProductPool creates a pool over the tokens with the given fee.
func NewConstantProductPool(address common.Address, tokens []common.Address, lpToken common.Address, fee uint64, ledger domain.TokenLedger) *ConstantProductPool {
	return &ConstantProductPool{
		address:  address,
		tokens:   tokens,
		lpToken:  lpToken,
		fee:      fee,
		ledger:   ledger,
		now:      time.Now,
		lpSupply: osmomath.ZeroInt(),
	}
}

// WithClock overrides the clock used for deadline checks.
func (p *ConstantProductPool) WithClock(now func() time.Time) *ConstantProductPool {
	p.now = now
	return p
}

// Address implements domain.Pool.
func (p *ConstantProductPool) Address() common.Address {
	return p.address
}

// LPToken implements domain.LiquidityPool.
func (p *ConstantProductPool) LPToken() common.Address {
	return p.lpToken
}

// GetToken implements domain.Pool.
func (p *ConstantProductPool) GetToken(_ context.Context, index uint8) (common.Address, error) {
	if int(index) >= len(p.tokens) {
		return common.Address{}, domain.InvalidTokenIndexError{Pool: p.address, Index: index}
	}
	return p.tokens[index], nil
}

// Paused implements domain.PausablePool.
func (p *ConstantProductPool) Paused(context.Context) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.paused, nil
}

// SetPaused pauses or unpauses swaps and withdrawals.
func (p *ConstantProductPool) SetPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = paused
}

// CalculateSwap implements domain.Pool.
func (p *ConstantProductPool) CalculateSwap(_ context.Context, tokenIndexFrom, tokenIndexTo uint8, dx osmomath.Int) (osmomath.Int, error) {
	if err := p.validateIndexes(tokenIndexFrom, tokenIndexTo); err != nil {
		return osmomath.Int{}, err
	}
	return p.calculateSwap(tokenIndexFrom, tokenIndexTo, dx)
}

// Swap implements domain.Pool.
func (p *ConstantProductPool) Swap(_ context.Context, caller common.Address, tokenIndexFrom, tokenIndexTo uint8, dx, minDy osmomath.Int, deadline uint64) (osmomath.Int, error) {
	if err := p.validateIndexes(tokenIndexFrom, tokenIndexTo); err != nil {
		return osmomath.Int{}, err
	}
	if err := p.checkActive(deadline); err != nil {
		return osmomath.Int{}, err
	}

	tokenFrom, tokenTo := p.tokens[tokenIndexFrom], p.tokens[tokenIndexTo]

	// Quote on the amount actually received to support tokens with transfer fees.
	balanceBefore := p.ledger.BalanceOf(tokenFrom, p.address)
	if err := p.ledger.TransferFrom(tokenFrom, p.address, caller, p.address, dx); err != nil {
		return osmomath.Int{}, err
	}
	received := p.ledger.BalanceOf(tokenFrom, p.address).Sub(balanceBefore)

	dy, err := getAmountOut(received, balanceBefore, p.ledger.BalanceOf(tokenTo, p.address), p.fee)
	if err != nil {
		return osmomath.Int{}, err
	}
	if dy.LT(minDy) {
		return osmomath.Int{}, domain.InsufficientOutputAmountError{AmountOut: dy, MinAmountOut: minDy}
	}

	if err := p.ledger.Transfer(tokenTo, p.address, caller, dy); err != nil {
		return osmomath.Int{}, err
	}

	return dy, nil
}

// AddLiquidity pulls the amounts from the caller and mints LP tokens to it.
// The first deposit mints the sum of amounts, later ones mint proportionally
// to the smallest share of reserves deposited.
func (p *ConstantProductPool) AddLiquidity(ctx context.Context, caller common.Address, amounts []osmomath.Int) (osmomath.Int, error) {
	if len(amounts) != len(p.tokens) {
		return osmomath.Int{}, domain.IncorrectParamsLengthError{Expected: len(p.tokens), Actual: len(amounts)}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.paused {
		return osmomath.Int{}, domain.PoolPausedError{Address: p.address}
	}

	minted := osmomath.ZeroInt()
	for i, amount := range amounts {
		if p.lpSupply.IsZero() {
			minted = minted.Add(amount)
			continue
		}

		share, err := amount.SafeMul(p.lpSupply)
		if err != nil {
			return osmomath.Int{}, domain.ErrAmountOverflow
		}
		share = share.Quo(p.ledger.BalanceOf(p.tokens[i], p.address))
		if i == 0 || share.LT(minted) {
			minted = share
		}
	}
	if !minted.IsPositive() {
		return osmomath.Int{}, domain.ErrZeroAmount
	}

	for i, amount := range amounts {
		if err := p.ledger.TransferFrom(p.tokens[i], p.address, caller, p.address, amount); err != nil {
			return osmomath.Int{}, err
		}
	}

	if err := p.ledger.Mint(p.lpToken, caller, minted); err != nil {
		return osmomath.Int{}, err
	}
	p.lpSupply = p.lpSupply.Add(minted)
	p.ledger.OnRollback(ctx, func() { p.restoreLPSupply(minted.Neg()) })

	return minted, nil
}

// CalculateRemoveLiquidityOneToken implements domain.LiquidityPool.
func (p *ConstantProductPool) CalculateRemoveLiquidityOneToken(_ context.Context, lpAmount osmomath.Int, tokenIndex uint8) (osmomath.Int, error) {
	if int(tokenIndex) >= len(p.tokens) {
		return osmomath.Int{}, domain.InvalidTokenIndexError{Pool: p.address, Index: tokenIndex}
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.calculateRemoveLiquidityOneToken(lpAmount, tokenIndex)
}

// RemoveLiquidityOneToken implements domain.LiquidityPool.
func (p *ConstantProductPool) RemoveLiquidityOneToken(ctx context.Context, caller common.Address, lpAmount osmomath.Int, tokenIndex uint8, minAmount osmomath.Int, deadline uint64) (osmomath.Int, error) {
	if int(tokenIndex) >= len(p.tokens) {
		return osmomath.Int{}, domain.InvalidTokenIndexError{Pool: p.address, Index: tokenIndex}
	}
	if err := p.checkActive(deadline); err != nil {
		return osmomath.Int{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	amount, err := p.calculateRemoveLiquidityOneToken(lpAmount, tokenIndex)
	if err != nil {
		return osmomath.Int{}, err
	}
	if amount.LT(minAmount) {
		return osmomath.Int{}, domain.InsufficientOutputAmountError{AmountOut: amount, MinAmountOut: minAmount}
	}

	if err := p.ledger.Burn(p.lpToken, caller, lpAmount); err != nil {
		return osmomath.Int{}, err
	}
	p.lpSupply = p.lpSupply.Sub(lpAmount)
	p.ledger.OnRollback(ctx, func() { p.restoreLPSupply(lpAmount) })

	if err := p.ledger.Transfer(p.tokens[tokenIndex], p.address, caller, amount); err != nil {
		return osmomath.Int{}, err
	}

	return amount, nil
}

func (p *ConstantProductPool) calculateRemoveLiquidityOneToken(lpAmount osmomath.Int, tokenIndex uint8) (osmomath.Int, error) {
	if !lpAmount.IsPositive() {
		return osmomath.Int{}, domain.ErrZeroAmount
	}
	if lpAmount.GT(p.lpSupply) {
		return osmomath.Int{}, domain.InsufficientBalanceError{Token: p.lpToken, Holder: p.address, Balance: p.lpSupply, Amount: lpAmount}
	}

	reserve := p.ledger.BalanceOf(p.tokens[tokenIndex], p.address)
	amount, err := reserve.SafeMul(lpAmount)
	if err != nil {
		return osmomath.Int{}, domain.ErrAmountOverflow
	}
	return applyFee(amount.Quo(p.lpSupply), p.fee)
}

// restoreLPSupply undoes a supply change rolled back by the ledger.
func (p *ConstantProductPool) restoreLPSupply(delta osmomath.Int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lpSupply = p.lpSupply.Add(delta)
}

func (p *ConstantProductPool) calculateSwap(tokenIndexFrom, tokenIndexTo uint8, dx osmomath.Int) (osmomath.Int, error) {
	reserveIn := p.ledger.BalanceOf(p.tokens[tokenIndexFrom], p.address)
	reserveOut := p.ledger.BalanceOf(p.tokens[tokenIndexTo], p.address)
	return getAmountOut(dx, reserveIn, reserveOut, p.fee)
}

func (p *ConstantProductPool) validateIndexes(tokenIndexFrom, tokenIndexTo uint8) error {
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

func (p *ConstantProductPool) checkActive(deadline uint64) error {
	p.mu.RLock()
	paused := p.paused
	p.mu.RUnlock()

	if paused {
		return domain.PoolPausedError{Address: p.address}
	}
	return checkDeadline(deadline, p.now)
}

// getAmountOut returns the constant product output for amountIn after the fee is taken.
// Intermediate products above 256 bits fail with ErrAmountOverflow.
func getAmountOut(amountIn, reserveIn, reserveOut osmomath.Int, fee uint64) (osmomath.Int, error) {
	if !amountIn.IsPositive() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return osmomath.ZeroInt(), nil
	}

	amountInAfterFee, err := applyFee(amountIn, fee)
	if err != nil {
		return osmomath.Int{}, err
	}
	numerator, err := amountInAfterFee.SafeMul(reserveOut)
	if err != nil {
		return osmomath.Int{}, domain.ErrAmountOverflow
	}
	denominator, err := reserveIn.SafeAdd(amountInAfterFee)
	if err != nil {
		return osmomath.Int{}, domain.ErrAmountOverflow
	}
	return numerator.Quo(denominator), nil
}

func applyFee(amount osmomath.Int, fee uint64) (osmomath.Int, error) {
	scaled, err := amount.SafeMul(osmomath.NewIntFromUint64(domain.FeeDenominator - fee))
	if err != nil {
		return osmomath.Int{}, domain.ErrAmountOverflow
	}
	return scaled.QuoRaw(domain.FeeDenominator), nil
}

func checkDeadline(deadline uint64, now func() time.Time) error {
	current := uint64(now().Unix())
	if current > deadline {
		return domain.DeadlineExceededError{Deadline: deadline, Now: current}
	}
	return nil
}
