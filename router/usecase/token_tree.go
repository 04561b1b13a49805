package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/ethereum/go-ethereum/common"

	"github.com/MrCuPper/synapse-contracts/domain"
)

// tokenTree is a rooted tree of token nodes. Every edge is a pool: a child node
// holds a token that can be obtained from its parent node's token through the
// pool the child was added with. A token may appear in many nodes.
type tokenTree struct {
	mu sync.RWMutex

	nodes []domain.Node
	// rootPaths[i] lists the node indexes from the root to node i, both included.
	rootPaths [][]uint8
	// attachedPools[i] has a bit set for every pool attached to node i.
	attachedPools []*bitset.BitSet

	// pools[0] is a sentinel so that the root node has a parent pool index that matches no pool.
	pools      []domain.TreePool
	poolByAddr map[common.Address]uint8
	poolTokens map[uint8][]common.Address
	// tokenIndexes maps pool index to the index of each of its tokens within the pool.
	tokenIndexes map[uint8]map[common.Address]uint8

	tokenNodes map[common.Address][]uint8
}

func newTokenTree(rootToken common.Address) *tokenTree {
	return &tokenTree{
		nodes:         []domain.Node{{Token: rootToken}},
		rootPaths:     [][]uint8{{0}},
		attachedPools: []*bitset.BitSet{bitset.New(domain.MaxPools + 1)},
		pools:         []domain.TreePool{{}},
		poolByAddr:    make(map[common.Address]uint8),
		poolTokens:    make(map[uint8][]common.Address),
		tokenIndexes:  make(map[uint8]map[common.Address]uint8),
		tokenNodes:    map[common.Address][]uint8{rootToken: {0}},
	}
}

func (t *tokenTree) rootToken() common.Address {
	return t.nodes[0].Token
}

// addPool attaches a pool to the node at nodeIndex, creating one child node for
// every pool token other than the node's token.
// The tree is left untouched if any validation fails.
func (t *tokenTree) addPool(ctx context.Context, nodeIndex int, poolAddress common.Address, module domain.PoolModule, tokenCount int) error {
	if poolAddress == (common.Address{}) {
		return domain.ErrZeroAddress
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if nodeIndex < 0 || nodeIndex >= len(t.nodes) {
		return domain.OutOfRangeError{Index: nodeIndex, Max: len(t.nodes)}
	}
	node := t.nodes[nodeIndex]

	poolIndex, isKnown := t.poolByAddr[poolAddress]

	var tokens []common.Address
	if isKnown {
		if nodeIndex != 0 && node.PoolIndex == poolIndex {
			return domain.ParentPoolCannotBeAttachedError{NodeIndex: nodeIndex, Pool: poolAddress}
		}
		if t.attachedPools[nodeIndex].Test(uint(poolIndex)) {
			return domain.PoolAlreadyAttachedError{NodeIndex: nodeIndex, Pool: poolAddress}
		}
		tokens = t.poolTokens[poolIndex]
		module = t.pools[poolIndex].Module
	} else {
		if len(t.pools) > domain.MaxPools {
			return domain.ErrTooManyPools
		}
		if module == nil {
			return fmt.Errorf("no module for pool %s: %w", poolAddress, domain.ErrBadParamInput)
		}

		var err error
		tokens, err = module.GetPoolTokens(ctx, poolAddress, tokenCount)
		if err != nil {
			return err
		}
	}

	if err := t.validatePoolTokens(nodeIndex, poolAddress, tokens); err != nil {
		return err
	}

	if len(t.nodes)+len(tokens)-1 > domain.MaxNodes {
		return domain.ErrTooManyNodes
	}

	if !isKnown {
		poolIndex = uint8(len(t.pools))
		t.pools = append(t.pools, domain.TreePool{
			Address: poolAddress,
			Module:  module,
			Index:   poolIndex,
		})
		t.poolByAddr[poolAddress] = poolIndex
		t.poolTokens[poolIndex] = tokens

		indexes := make(map[common.Address]uint8, len(tokens))
		for i, token := range tokens {
			indexes[token] = uint8(i)
		}
		t.tokenIndexes[poolIndex] = indexes
	}

	t.attachedPools[nodeIndex].Set(uint(poolIndex))

	for _, token := range tokens {
		if token == node.Token {
			continue
		}

		childIndex := uint8(len(t.nodes))
		t.nodes = append(t.nodes, domain.Node{
			Token:     token,
			Depth:     node.Depth + 1,
			PoolIndex: poolIndex,
			Parent:    uint8(nodeIndex),
		})

		parentPath := t.rootPaths[nodeIndex]
		rootPath := make([]uint8, len(parentPath), len(parentPath)+1)
		copy(rootPath, parentPath)
		t.rootPaths = append(t.rootPaths, append(rootPath, childIndex))

		t.attachedPools = append(t.attachedPools, bitset.New(domain.MaxPools+1))
		t.tokenNodes[token] = append(t.tokenNodes[token], childIndex)
	}

	return nil
}

// validatePoolTokens checks that the node token is present exactly once in the pool
// and that the pool does not bring the root token below the root.
func (t *tokenTree) validatePoolTokens(nodeIndex int, poolAddress common.Address, tokens []common.Address) error {
	nodeToken := t.nodes[nodeIndex].Token
	rootToken := t.rootToken()

	seen := make(map[common.Address]struct{}, len(tokens))
	nodeTokenFound := false
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			return fmt.Errorf("pool %s lists token %s twice: %w", poolAddress, token, domain.ErrBadParamInput)
		}
		seen[token] = struct{}{}

		if token == nodeToken {
			nodeTokenFound = true
			continue
		}
		if token == rootToken {
			return domain.RootTokenMustBeAtRootError{Token: token, Pool: poolAddress}
		}
	}

	if !nodeTokenFound {
		return domain.NodeTokenNotFoundInPoolError{NodeIndex: nodeIndex, Token: nodeToken, Pool: poolAddress}
	}

	return nil
}

func (t *tokenTree) nodeCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

func (t *tokenTree) nodeToken(index int) (common.Address, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if index < 0 || index >= len(t.nodes) {
		return common.Address{}, domain.OutOfRangeError{Index: index, Max: len(t.nodes)}
	}
	return t.nodes[index].Token, nil
}

func (t *tokenTree) hasToken(token common.Address) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.tokenNodes[token]
	return ok
}

func (t *tokenTree) getTokenNodes(token common.Address) []int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	nodes := t.tokenNodes[token]
	indexes := make([]int, len(nodes))
	for i, node := range nodes {
		indexes[i] = int(node)
	}
	return indexes
}

func (t *tokenTree) getPools() []domain.TreePool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	pools := make([]domain.TreePool, len(t.pools)-1)
	copy(pools, t.pools[1:])
	return pools
}

func (t *tokenTree) getPoolTokens(poolIndex uint8) []common.Address {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tokens := make([]common.Address, len(t.poolTokens[poolIndex]))
	copy(tokens, t.poolTokens[poolIndex])
	return tokens
}

func (t *tokenTree) getNode(index int) (domain.NodeView, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if index < 0 || index >= len(t.nodes) {
		return domain.NodeView{}, domain.OutOfRangeError{Index: index, Max: len(t.nodes)}
	}
	return t.nodeView(index), nil
}

func (t *tokenTree) getNodes() []domain.NodeView {
	t.mu.RLock()
	defer t.mu.RUnlock()

	views := make([]domain.NodeView, len(t.nodes))
	for i := range t.nodes {
		views[i] = t.nodeView(i)
	}
	return views
}

// nodeView must be called with the lock held.
func (t *tokenTree) nodeView(index int) domain.NodeView {
	node := t.nodes[index]

	rootPath := make([]uint8, len(t.rootPaths[index]))
	copy(rootPath, t.rootPaths[index])

	attached := make([]common.Address, 0, t.attachedPools[index].Count())
	for poolIndex, ok := t.attachedPools[index].NextSet(0); ok; poolIndex, ok = t.attachedPools[index].NextSet(poolIndex + 1) {
		attached = append(attached, t.pools[poolIndex].Address)
	}

	view := domain.NodeView{
		Index:         index,
		Token:         node.Token,
		Depth:         node.Depth,
		Parent:        int(node.Parent),
		ParentPool:    t.pools[node.PoolIndex].Address,
		RootPath:      rootPath,
		AttachedPools: attached,
	}
	if index == 0 {
		view.Parent = -1
	}
	return view
}
