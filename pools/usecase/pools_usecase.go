package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
)

type poolsUseCase struct {
	mu      sync.RWMutex
	pools   map[common.Address]any
	ordered []common.Address

	defaultModule *DefaultPoolModule
	pairModule    *PairPoolModule
}

var _ mvc.PoolsUsecase = &poolsUseCase{}

// NewPoolsUsecase will create a new pools use case object
func NewPoolsUsecase() mvc.PoolsUsecase {
	p := &poolsUseCase{
		pools: make(map[common.Address]any),
	}
	p.defaultModule = NewDefaultPoolModule(p)
	p.pairModule = NewPairPoolModule(p)
	return p
}

// GetPool implements domain.PoolsRepository.
func (p *poolsUseCase) GetPool(address common.Address) (any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pool, ok := p.pools[address]
	if !ok {
		return nil, domain.PoolNotFoundError{Address: address}
	}
	return pool, nil
}

// StorePool implements domain.PoolsRepository.
func (p *poolsUseCase) StorePool(address common.Address, pool any) error {
	if address == (common.Address{}) {
		return domain.ErrZeroAddress
	}

	switch pool.(type) {
	case domain.Pool, domain.PairPool:
	default:
		return fmt.Errorf("pool %s of type %T implements no known pool interface", address, pool)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.pools[address]; ok {
		return fmt.Errorf("pool %s is already registered: %w", address, domain.ErrConflict)
	}

	p.pools[address] = pool
	p.ordered = append(p.ordered, address)
	return nil
}

// GetAllPools implements domain.PoolsRepository.
func (p *poolsUseCase) GetAllPools() []common.Address {
	p.mu.RLock()
	defer p.mu.RUnlock()

	addresses := make([]common.Address, len(p.ordered))
	copy(addresses, p.ordered)
	return addresses
}

// GetModule implements mvc.PoolsUsecase.
func (p *poolsUseCase) GetModule(address common.Address) (domain.PoolModule, error) {
	pool, err := p.GetPool(address)
	if err != nil {
		return nil, err
	}

	switch pool.(type) {
	case domain.Pool:
		return p.defaultModule, nil
	case domain.PairPool:
		return p.pairModule, nil
	default:
		return nil, fmt.Errorf("no module for pool %s", address)
	}
}

// GetPoolInfos implements mvc.PoolsUsecase.
func (p *poolsUseCase) GetPoolInfos(ctx context.Context) ([]domain.PoolInfo, error) {
	addresses := p.GetAllPools()

	infos := make([]domain.PoolInfo, 0, len(addresses))
	for _, address := range addresses {
		info, err := p.GetPoolInfo(ctx, address)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}

	return infos, nil
}

// GetPoolInfo implements mvc.PoolsUsecase.
func (p *poolsUseCase) GetPoolInfo(ctx context.Context, address common.Address) (domain.PoolInfo, error) {
	pool, err := p.GetPool(address)
	if err != nil {
		return domain.PoolInfo{}, err
	}

	module, err := p.GetModule(address)
	if err != nil {
		return domain.PoolInfo{}, err
	}

	tokens, err := module.GetPoolTokens(ctx, address, 0)
	if err != nil {
		return domain.PoolInfo{}, err
	}

	return domain.PoolInfo{
		Address: address,
		Kind:    module.Name(),
		Tokens:  tokens,
		Paused:  isPaused(ctx, pool),
	}, nil
}

// QuotePool implements mvc.PoolsUsecase.
// A paused pool quotes zero.
func (p *poolsUseCase) QuotePool(ctx context.Context, address common.Address, tokenIndexFrom, tokenIndexTo uint8, amountIn osmomath.Int) (osmomath.Int, error) {
	if tokenIndexFrom == tokenIndexTo {
		return osmomath.Int{}, domain.ErrEqualSwapIndexes
	}

	module, err := p.GetModule(address)
	if err != nil {
		return osmomath.Int{}, err
	}

	tokens, err := module.GetPoolTokens(ctx, address, 0)
	if err != nil {
		return osmomath.Int{}, err
	}
	for _, index := range []uint8{tokenIndexFrom, tokenIndexTo} {
		if int(index) >= len(tokens) {
			return osmomath.Int{}, domain.InvalidTokenIndexError{Pool: address, Index: index}
		}
	}

	return module.GetPoolQuote(ctx, address,
		domain.IndexedToken{Index: tokenIndexFrom, Token: tokens[tokenIndexFrom]},
		domain.IndexedToken{Index: tokenIndexTo, Token: tokens[tokenIndexTo]},
		amountIn, true)
}
