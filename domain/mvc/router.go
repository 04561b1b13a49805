package mvc

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
)

// RouterUsecase represent the router's usecases.
// The router is itself a default pool whose token indexes are tree node indexes.
type RouterUsecase interface {
	domain.Pool

	// AddPool attaches a pool to the node at nodeIndex. Only the owner may add pools.
	// If module is nil, the module registered for the pool address is used.
	// tokenCount of zero discovers the pool tokens by probing.
	AddPool(ctx context.Context, caller common.Address, nodeIndex int, pool common.Address, module domain.PoolModule, tokenCount int) error
	// FindBestPath returns the pair of nodes holding tokenIn and tokenOut with the largest quote.
	// Returns a zero amount if no path yields output.
	FindBestPath(ctx context.Context, tokenIn, tokenOut common.Address, amountIn osmomath.Int) domain.BestPath
	// GetConnectedTokens reports which of tokensIn can be swapped into tokenOut.
	GetConnectedTokens(ctx context.Context, tokensIn []common.Address, tokenOut common.Address) (int, []bool)
	// GetAmountOut quotes a swap between two tokens along the best path, probing for paused pools.
	GetAmountOut(ctx context.Context, tokenIn, tokenOut common.Address, amountIn osmomath.Int) osmomath.Int

	// Owner returns the address allowed to add pools.
	Owner() common.Address
	// RootToken returns the token of the root node.
	RootToken() common.Address
	// TokenNodesAmount returns the number of nodes in the tree.
	TokenNodesAmount() int
	// GetNode returns the view of the node at index.
	GetNode(index int) (domain.NodeView, error)
	// GetNodes returns the views of all nodes.
	GetNodes() []domain.NodeView
	// GetTokenNodes returns the indexes of the nodes holding token.
	GetTokenNodes(token common.Address) []int
	// GetPools returns the pools of the tree in the order they were added.
	GetPools() []domain.TreePool
	// GetSnapshot returns the serializable state of the tree.
	GetSnapshot(ctx context.Context) domain.TreeSnapshot
	// StoreTreeState stores the tree state in a file in directory. Used for debugging.
	StoreTreeState(ctx context.Context, directory string) error
}
