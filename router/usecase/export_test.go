package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/MrCuPper/synapse-contracts/domain"
)

type TokenTree = tokenTree

func NewTokenTree(rootToken common.Address) *TokenTree {
	return newTokenTree(rootToken)
}

func (t *tokenTree) AddPool(ctx context.Context, nodeIndex int, pool common.Address, module domain.PoolModule, tokenCount int) error {
	return t.addPool(ctx, nodeIndex, pool, module, tokenCount)
}

// SwapPathPools returns the pools of every hop between two nodes.
func (t *tokenTree) SwapPathPools(nodeFrom, nodeTo int) ([]common.Address, error) {
	steps, err := t.swapPath(nodeFrom, nodeTo)
	if err != nil {
		return nil, err
	}

	pools := make([]common.Address, len(steps))
	for i, step := range steps {
		pools[i] = step.pool.Address
	}
	return pools, nil
}

func (t *tokenTree) GetNodes() []domain.NodeView {
	return t.getNodes()
}
