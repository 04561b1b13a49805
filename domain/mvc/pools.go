package mvc

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
)

// PoolsUsecase represent the pool's usecases
type PoolsUsecase interface {
	domain.PoolsRepository

	// GetPoolInfos returns the description of every registered pool.
	GetPoolInfos(ctx context.Context) ([]domain.PoolInfo, error)
	// GetPoolInfo returns the description of the pool at the address.
	GetPoolInfo(ctx context.Context, address common.Address) (domain.PoolInfo, error)
	// QuotePool quotes a swap between two token indexes of the pool through its module.
	QuotePool(ctx context.Context, address common.Address, tokenIndexFrom, tokenIndexTo uint8, amountIn osmomath.Int) (osmomath.Int, error)

	// GetModule returns the module able to interact with the pool at the address.
	GetModule(address common.Address) (domain.PoolModule, error)
}
