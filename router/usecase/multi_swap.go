package usecase

import (
	"context"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/log"
)

// swapStep is a single pool hop between two adjacent nodes.
type swapStep struct {
	pool      domain.TreePool
	tokenFrom domain.IndexedToken
	tokenTo   domain.IndexedToken
}

type hop struct {
	poolIndex uint8
	nodeFrom  uint8
	nodeTo    uint8
}

// swapPath returns the pool hops between two nodes.
//
// The path climbs from nodeFrom to the lowest common ancestor of both nodes
// and descends to nodeTo. When the two branches below the ancestor were added
// with the same pool, the pair of hops through the ancestor is replaced by
// a single direct hop between the siblings.
//
// Errors if a pool would be used more than once on the path.
func (t *tokenTree) swapPath(nodeFrom, nodeTo int) ([]swapStep, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if nodeFrom < 0 || nodeFrom >= len(t.nodes) {
		return nil, domain.OutOfRangeError{Index: nodeFrom, Max: len(t.nodes)}
	}
	if nodeTo < 0 || nodeTo >= len(t.nodes) {
		return nil, domain.OutOfRangeError{Index: nodeTo, Max: len(t.nodes)}
	}
	if nodeFrom == nodeTo {
		return nil, domain.ErrEqualSwapIndexes
	}

	hops := t.pathHops(uint8(nodeFrom), uint8(nodeTo))

	usedPools := bitset.New(domain.MaxPools + 1)
	steps := make([]swapStep, 0, len(hops))
	for _, h := range hops {
		pool := t.pools[h.poolIndex]
		if usedPools.Test(uint(h.poolIndex)) {
			return nil, domain.PoolReusedError{PoolIndex: h.poolIndex, Pool: pool.Address}
		}
		usedPools.Set(uint(h.poolIndex))

		tokenFrom := t.nodes[h.nodeFrom].Token
		tokenTo := t.nodes[h.nodeTo].Token
		steps = append(steps, swapStep{
			pool:      pool,
			tokenFrom: domain.IndexedToken{Index: t.tokenIndexes[h.poolIndex][tokenFrom], Token: tokenFrom},
			tokenTo:   domain.IndexedToken{Index: t.tokenIndexes[h.poolIndex][tokenTo], Token: tokenTo},
		})
	}

	return steps, nil
}

// pathHops must be called with the lock held.
func (t *tokenTree) pathHops(nodeFrom, nodeTo uint8) []hop {
	pathFrom := t.rootPaths[nodeFrom]
	pathTo := t.rootPaths[nodeTo]
	depthFrom := len(pathFrom) - 1
	depthTo := len(pathTo) - 1

	// depthDiff is the first depth at which the root paths differ.
	// Both paths start at the root, so depthDiff is at least 1.
	depthDiff := 0
	for depthDiff <= depthFrom && depthDiff <= depthTo && pathFrom[depthDiff] == pathTo[depthDiff] {
		depthDiff++
	}

	hops := make([]hop, 0, depthFrom+depthTo)

	// nodeTo is an ancestor of nodeFrom.
	if depthDiff > depthTo {
		for depth := depthFrom; depth > depthTo; depth-- {
			hops = append(hops, t.hopUp(pathFrom[depth]))
		}
		return hops
	}

	// nodeFrom is an ancestor of nodeTo.
	if depthDiff > depthFrom {
		for depth := depthFrom + 1; depth <= depthTo; depth++ {
			hops = append(hops, t.hopDown(pathTo[depth]))
		}
		return hops
	}

	for depth := depthFrom; depth > depthDiff; depth-- {
		hops = append(hops, t.hopUp(pathFrom[depth]))
	}

	branchFrom, branchTo := pathFrom[depthDiff], pathTo[depthDiff]
	if t.nodes[branchFrom].PoolIndex == t.nodes[branchTo].PoolIndex {
		// Siblings added with the same pool swap directly.
		hops = append(hops, hop{
			poolIndex: t.nodes[branchFrom].PoolIndex,
			nodeFrom:  branchFrom,
			nodeTo:    branchTo,
		})
	} else {
		hops = append(hops, t.hopUp(branchFrom), t.hopDown(branchTo))
	}

	for depth := depthDiff + 1; depth <= depthTo; depth++ {
		hops = append(hops, t.hopDown(pathTo[depth]))
	}

	return hops
}

func (t *tokenTree) hopUp(node uint8) hop {
	return hop{poolIndex: t.nodes[node].PoolIndex, nodeFrom: node, nodeTo: t.nodes[node].Parent}
}

func (t *tokenTree) hopDown(node uint8) hop {
	return hop{poolIndex: t.nodes[node].PoolIndex, nodeFrom: t.nodes[node].Parent, nodeTo: node}
}

// quotePath chains the pool quotes along the steps.
// Any failing or empty quote yields zero.
func quotePath(ctx context.Context, steps []swapStep, amountIn osmomath.Int, checkPaused bool, logger log.Logger) osmomath.Int {
	amount := amountIn
	for _, step := range steps {
		if amount.IsNil() || !amount.IsPositive() {
			return osmomath.ZeroInt()
		}

		amountOut, err := quoteStep(ctx, step, amount, checkPaused)
		if err != nil {
			domain.SBRRouterPoolQuoteErrorCounter.WithLabelValues(step.pool.Address.Hex()).Inc()
			logger.Debug("pool quote failed", zap.Stringer("pool", step.pool.Address), zap.Error(err))
			return osmomath.ZeroInt()
		}
		amount = amountOut
	}

	if amount.IsNil() || amount.IsNegative() {
		return osmomath.ZeroInt()
	}
	return amount
}

// quoteStep turns a panic of the pool module into an error.
func quoteStep(ctx context.Context, step swapStep, amountIn osmomath.Int, checkPaused bool) (amountOut osmomath.Int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pool %s quote panicked: %v", step.pool.Address, r)
		}
	}()
	return step.pool.Module.GetPoolQuote(ctx, step.pool.Address, step.tokenFrom, step.tokenTo, amountIn, checkPaused)
}
