package mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
)

var _ domain.PoolModule = &PoolModuleMock{}

type PoolModuleMock struct {
	NameFunc          func() string
	GetPoolTokensFunc func(ctx context.Context, pool common.Address, count int) ([]common.Address, error)
	GetPoolQuoteFunc  func(ctx context.Context, pool common.Address, tokenFrom, tokenTo domain.IndexedToken, amountIn osmomath.Int, checkPaused bool) (osmomath.Int, error)
	PoolSwapFunc      func(ctx context.Context, caller common.Address, pool common.Address, tokenFrom, tokenTo domain.IndexedToken, amountIn osmomath.Int) (osmomath.Int, error)

	// PoolTokens is returned by GetPoolTokens when GetPoolTokensFunc is not set.
	PoolTokens map[common.Address][]common.Address
}

// Name implements domain.PoolModule.
func (m *PoolModuleMock) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "mock"
}

// GetPoolTokens implements domain.PoolModule.
func (m *PoolModuleMock) GetPoolTokens(ctx context.Context, pool common.Address, count int) ([]common.Address, error) {
	if m.GetPoolTokensFunc != nil {
		return m.GetPoolTokensFunc(ctx, pool, count)
	}
	if tokens, ok := m.PoolTokens[pool]; ok {
		return tokens, nil
	}
	return nil, domain.PoolNotFoundError{Address: pool}
}

// GetPoolQuote implements domain.PoolModule.
func (m *PoolModuleMock) GetPoolQuote(ctx context.Context, pool common.Address, tokenFrom, tokenTo domain.IndexedToken, amountIn osmomath.Int, checkPaused bool) (osmomath.Int, error) {
	if m.GetPoolQuoteFunc != nil {
		return m.GetPoolQuoteFunc(ctx, pool, tokenFrom, tokenTo, amountIn, checkPaused)
	}
	panic("unimplemented")
}

// PoolSwap implements domain.PoolModule.
func (m *PoolModuleMock) PoolSwap(ctx context.Context, caller common.Address, pool common.Address, tokenFrom, tokenTo domain.IndexedToken, amountIn osmomath.Int) (osmomath.Int, error) {
	if m.PoolSwapFunc != nil {
		return m.PoolSwapFunc(ctx, caller, pool, tokenFrom, tokenTo, amountIn)
	}
	panic("unimplemented")
}
