package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
)

const (
	DefaultPoolModuleName = "default"
	PairPoolModuleName    = "pair"

	// maxDiscoveredTokens bounds token discovery of pools added without a token count.
	maxDiscoveredTokens = 32
)

// DefaultPoolModule interacts with pools implementing domain.Pool.
type DefaultPoolModule struct {
	pools domain.PoolsRepository
}

var _ domain.PoolModule = &DefaultPoolModule{}

// NewDefaultPoolModule creates the module for pools conforming to domain.Pool.
func NewDefaultPoolModule(pools domain.PoolsRepository) *DefaultPoolModule {
	return &DefaultPoolModule{pools: pools}
}

// Name implements domain.PoolModule.
func (*DefaultPoolModule) Name() string {
	return DefaultPoolModuleName
}

// GetPoolTokens implements domain.PoolModule.
func (m *DefaultPoolModule) GetPoolTokens(ctx context.Context, poolAddress common.Address, count int) ([]common.Address, error) {
	pool, err := m.getPool(poolAddress)
	if err != nil {
		return nil, err
	}

	if count > 0 {
		tokens := make([]common.Address, 0, count)
		for i := 0; i < count; i++ {
			token, err := pool.GetToken(ctx, uint8(i))
			if err != nil {
				return nil, fmt.Errorf("getting token %d of pool %s: %w", i, poolAddress, err)
			}
			tokens = append(tokens, token)
		}
		return tokens, nil
	}

	var tokens []common.Address
	for i := 0; i < maxDiscoveredTokens; i++ {
		token, err := pool.GetToken(ctx, uint8(i))
		if err != nil {
			break
		}
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("pool %s has no tokens", poolAddress)
	}

	return tokens, nil
}

// GetPoolQuote implements domain.PoolModule.
func (m *DefaultPoolModule) GetPoolQuote(ctx context.Context, poolAddress common.Address, tokenFrom, tokenTo domain.IndexedToken, amountIn osmomath.Int, checkPaused bool) (osmomath.Int, error) {
	pool, err := m.getPool(poolAddress)
	if err != nil {
		return osmomath.Int{}, err
	}

	if checkPaused && isPaused(ctx, pool) {
		return osmomath.ZeroInt(), nil
	}

	return pool.CalculateSwap(ctx, tokenFrom.Index, tokenTo.Index, amountIn)
}

// PoolSwap implements domain.PoolModule.
func (m *DefaultPoolModule) PoolSwap(ctx context.Context, caller common.Address, poolAddress common.Address, tokenFrom, tokenTo domain.IndexedToken, amountIn osmomath.Int) (osmomath.Int, error) {
	pool, err := m.getPool(poolAddress)
	if err != nil {
		return osmomath.Int{}, err
	}

	return pool.Swap(ctx, caller, tokenFrom.Index, tokenTo.Index, amountIn, osmomath.ZeroInt(), domain.NoDeadline)
}

func (m *DefaultPoolModule) getPool(poolAddress common.Address) (domain.Pool, error) {
	poolAny, err := m.pools.GetPool(poolAddress)
	if err != nil {
		return nil, err
	}

	pool, ok := poolAny.(domain.Pool)
	if !ok {
		return nil, fmt.Errorf("pool %s does not implement the default pool interface", poolAddress)
	}
	return pool, nil
}

// isPaused calls the optional paused method. A missing method or an error reads as not paused.
func isPaused(ctx context.Context, pool any) bool {
	pausable, ok := pool.(domain.PausablePool)
	if !ok {
		return false
	}

	paused, err := pausable.Paused(ctx)
	if err != nil {
		return false
	}
	return paused
}

// PairPoolModule adapts token addressed two token pairs to the indexed interface.
type PairPoolModule struct {
	pools domain.PoolsRepository
}

var _ domain.PoolModule = &PairPoolModule{}

// NewPairPoolModule creates the module for domain.PairPool pools.
func NewPairPoolModule(pools domain.PoolsRepository) *PairPoolModule {
	return &PairPoolModule{pools: pools}
}

// Name implements domain.PoolModule.
func (*PairPoolModule) Name() string {
	return PairPoolModuleName
}

// GetPoolTokens implements domain.PoolModule.
func (m *PairPoolModule) GetPoolTokens(_ context.Context, poolAddress common.Address, count int) ([]common.Address, error) {
	pair, err := m.getPair(poolAddress)
	if err != nil {
		return nil, err
	}
	if count != 0 && count != 2 {
		return nil, fmt.Errorf("pair %s has 2 tokens, %d requested", poolAddress, count)
	}

	return []common.Address{pair.Token0(), pair.Token1()}, nil
}

// GetPoolQuote implements domain.PoolModule.
func (m *PairPoolModule) GetPoolQuote(ctx context.Context, poolAddress common.Address, tokenFrom, _ domain.IndexedToken, amountIn osmomath.Int, checkPaused bool) (osmomath.Int, error) {
	pair, err := m.getPair(poolAddress)
	if err != nil {
		return osmomath.Int{}, err
	}

	if checkPaused && isPaused(ctx, pair) {
		return osmomath.ZeroInt(), nil
	}

	return pair.GetAmountOut(ctx, tokenFrom.Token, amountIn)
}

// PoolSwap implements domain.PoolModule.
func (m *PairPoolModule) PoolSwap(ctx context.Context, caller common.Address, poolAddress common.Address, tokenFrom, _ domain.IndexedToken, amountIn osmomath.Int) (osmomath.Int, error) {
	pair, err := m.getPair(poolAddress)
	if err != nil {
		return osmomath.Int{}, err
	}

	return pair.SwapExactIn(ctx, caller, tokenFrom.Token, amountIn, osmomath.ZeroInt())
}

func (m *PairPoolModule) getPair(poolAddress common.Address) (domain.PairPool, error) {
	poolAny, err := m.pools.GetPool(poolAddress)
	if err != nil {
		return nil, err
	}

	pair, ok := poolAny.(domain.PairPool)
	if !ok {
		return nil, fmt.Errorf("pool %s does not implement the pair interface", poolAddress)
	}
	return pair, nil
}
