package domain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
)

// Pool is a liquidity pool exposing the default swap interface:
// tokens are addressed by their index within the pool.
type Pool interface {
	// Address returns the pool address.
	Address() common.Address
	// GetToken returns the token at the given index. Errors if the index is out of range.
	GetToken(ctx context.Context, index uint8) (common.Address, error)
	// CalculateSwap quotes swapping dx of token at tokenIndexFrom into token at tokenIndexTo.
	CalculateSwap(ctx context.Context, tokenIndexFrom, tokenIndexTo uint8, dx osmomath.Int) (osmomath.Int, error)
	// Swap pulls dx of token at tokenIndexFrom from the caller and sends the
	// token at tokenIndexTo back. Fails if the output is below minDy or the deadline has passed.
	Swap(ctx context.Context, caller common.Address, tokenIndexFrom, tokenIndexTo uint8, dx, minDy osmomath.Int, deadline uint64) (osmomath.Int, error)
}

// PausablePool is implemented by pools that can be paused.
type PausablePool interface {
	Paused(ctx context.Context) (bool, error)
}

// LiquidityPool is implemented by pools issuing an LP token that can be
// withdrawn into a single underlying token.
type LiquidityPool interface {
	Pool
	LPToken() common.Address
	CalculateRemoveLiquidityOneToken(ctx context.Context, lpAmount osmomath.Int, tokenIndex uint8) (osmomath.Int, error)
	RemoveLiquidityOneToken(ctx context.Context, caller common.Address, lpAmount osmomath.Int, tokenIndex uint8, minAmount osmomath.Int, deadline uint64) (osmomath.Int, error)
}

// PairPool is a two token pool with a non conforming, token addressed interface.
type PairPool interface {
	Address() common.Address
	Token0() common.Address
	Token1() common.Address
	GetAmountOut(ctx context.Context, tokenIn common.Address, amountIn osmomath.Int) (osmomath.Int, error)
	SwapExactIn(ctx context.Context, caller common.Address, tokenIn common.Address, amountIn, minAmountOut osmomath.Int) (osmomath.Int, error)
}

// IndexedToken is a token together with its index in a pool.
type IndexedToken struct {
	Index uint8
	Token common.Address
}

// PoolModule abstracts over pool families with different native interfaces.
// Modules are stateless: the token indexes are passed in by the caller.
type PoolModule interface {
	// Name returns the module name, used in logs and snapshots.
	Name() string
	// GetPoolTokens returns the pool tokens. If count is zero, tokens are discovered
	// by probing indexes until the pool reports an error.
	GetPoolTokens(ctx context.Context, pool common.Address, count int) ([]common.Address, error)
	// GetPoolQuote quotes a swap. With checkPaused set, a paused pool quotes zero.
	GetPoolQuote(ctx context.Context, pool common.Address, tokenFrom, tokenTo IndexedToken, amountIn osmomath.Int, checkPaused bool) (osmomath.Int, error)
	// PoolSwap executes a swap on behalf of caller, which must have approved the pool.
	PoolSwap(ctx context.Context, caller common.Address, pool common.Address, tokenFrom, tokenTo IndexedToken, amountIn osmomath.Int) (osmomath.Int, error)
}

// PoolsRepository resolves pool addresses into pool implementations.
type PoolsRepository interface {
	// GetPool returns the pool registered under the address.
	// The returned value implements Pool, PairPool or both.
	GetPool(address common.Address) (any, error)
	// StorePool registers a pool. Errors if a pool with the same address exists.
	StorePool(address common.Address, pool any) error
	// GetAllPools returns the registered pool addresses in registration order.
	GetAllPools() []common.Address
}

// PoolInfo is the serializable description of a registered pool.
type PoolInfo struct {
	Address common.Address   `json:"address"`
	Kind    string           `json:"kind"`
	Tokens  []common.Address `json:"tokens"`
	Paused  bool             `json:"paused"`
}
