package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
	memorypool "github.com/MrCuPper/synapse-contracts/pools/memory"
	rpcpool "github.com/MrCuPper/synapse-contracts/pools/rpc"
)

// Pool kinds accepted in config.
const (
	PoolKindConstantProduct = "constant-product"
	PoolKindStable          = "stable"
	PoolKindPair            = "pair"
	PoolKindRPC             = "rpc"
)

// DialFunc connects to an on chain pool.
type DialFunc func(ctx context.Context, endpoint string, address common.Address) (domain.Pool, error)

// PoolFactory creates pools described in config and seeds their liquidity.
type PoolFactory struct {
	ledger   domain.TokenLedger
	provider common.Address
	dial     DialFunc
}

// NewPoolFactory creates a factory. Initial liquidity is provided by provider.
func NewPoolFactory(ledger domain.TokenLedger, provider common.Address) *PoolFactory {
	return &PoolFactory{
		ledger:   ledger,
		provider: provider,
		dial: func(ctx context.Context, endpoint string, address common.Address) (domain.Pool, error) {
			return rpcpool.Dial(ctx, endpoint, address)
		},
	}
}

// WithDialer overrides how on chain pools are reached.
func (f *PoolFactory) WithDialer(dial DialFunc) *PoolFactory {
	f.dial = dial
	return f
}

// CreatePool builds the pool described by the config.
func (f *PoolFactory) CreatePool(ctx context.Context, config domain.PoolConfig) (common.Address, any, error) {
	address, err := domain.ParseAddress(config.Address)
	if err != nil {
		return common.Address{}, nil, err
	}

	if config.Kind == PoolKindRPC {
		pool, err := f.dial(ctx, config.RPCEndpoint, address)
		if err != nil {
			return common.Address{}, nil, err
		}
		if rpcPool, ok := pool.(*rpcpool.Pool); ok && config.PausedRefreshSeconds > 0 {
			rpcPool.WithPausedRefresh(time.Duration(config.PausedRefreshSeconds) * time.Second)
		}
		return address, pool, nil
	}

	tokens, err := domain.ParseAddresses(strings.Join(config.Tokens, ","))
	if err != nil {
		return common.Address{}, nil, err
	}

	balances := make([]osmomath.Int, 0, len(config.Balances))
	for _, balanceStr := range config.Balances {
		balance, err := domain.ParseAmount(balanceStr)
		if err != nil {
			return common.Address{}, nil, err
		}
		balances = append(balances, balance)
	}
	if len(balances) != 0 && len(balances) != len(tokens) {
		return common.Address{}, nil, fmt.Errorf("pool %s: %d balances for %d tokens", address, len(balances), len(tokens))
	}

	fee, err := domain.ParseFeeFraction(config.Fee)
	if err != nil {
		return common.Address{}, nil, err
	}

	switch config.Kind {
	case PoolKindConstantProduct:
		lpToken := address
		if config.LPToken != "" {
			if lpToken, err = domain.ParseAddress(config.LPToken); err != nil {
				return common.Address{}, nil, err
			}
		}

		pool := memorypool.NewConstantProductPool(address, tokens, lpToken, fee, f.ledger)
		if len(balances) > 0 {
			if err := f.addLiquidity(ctx, pool, tokens, balances); err != nil {
				return common.Address{}, nil, err
			}
		}
		return address, pool, nil
	case PoolKindStable:
		pool := memorypool.NewStablePool(address, tokens, fee, f.ledger)
		if err := f.fund(address, tokens, balances); err != nil {
			return common.Address{}, nil, err
		}
		return address, pool, nil
	case PoolKindPair:
		if len(tokens) != 2 {
			return common.Address{}, nil, fmt.Errorf("pair %s must have 2 tokens, got %d", address, len(tokens))
		}
		pool := memorypool.NewPairPool(address, tokens[0], tokens[1], f.ledger)
		if err := f.fund(address, tokens, balances); err != nil {
			return common.Address{}, nil, err
		}
		return address, pool, nil
	default:
		return common.Address{}, nil, domain.UnknownPoolKindError{Kind: config.Kind}
	}
}

func (f *PoolFactory) addLiquidity(ctx context.Context, pool *memorypool.ConstantProductPool, tokens []common.Address, amounts []osmomath.Int) error {
	for i, token := range tokens {
		if err := f.ledger.Mint(token, f.provider, amounts[i]); err != nil {
			return err
		}
		if err := f.ledger.Approve(token, f.provider, pool.Address(), amounts[i]); err != nil {
			return err
		}
	}

	_, err := pool.AddLiquidity(ctx, f.provider, amounts)
	return err
}

func (f *PoolFactory) fund(pool common.Address, tokens []common.Address, amounts []osmomath.Int) error {
	for i, amount := range amounts {
		if err := f.ledger.Mint(tokens[i], pool, amount); err != nil {
			return err
		}
	}
	return nil
}
