package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
	"github.com/MrCuPper/synapse-contracts/log"
	"github.com/MrCuPper/synapse-contracts/sbrutil"
)

const treeStateFileName = "tree_state.json"

var _ mvc.RouterUsecase = &routerUseCaseImpl{}

type routerUseCaseImpl struct {
	address common.Address
	owner   common.Address

	tree         *tokenTree
	ledger       domain.TokenLedger
	poolsUsecase mvc.PoolsUsecase
	config       domain.RouterConfig
	logger       log.Logger

	// bestPathCache is nil when caching is disabled. It is purged whenever the tree changes.
	bestPathCache *expirable.LRU[bestPathCacheKey, domain.BestPath]

	now func() time.Time
}

type bestPathCacheKey struct {
	tokenIn  common.Address
	tokenOut common.Address
	amountIn string
}

// executingCtxKey marks a context as running a swap through the router at address.
type executingCtxKey struct {
	address common.Address
}

// NewRouterUsecase will create a new router use case object.
// The router holds its tokens on the ledger under address.
func NewRouterUsecase(address, owner common.Address, ledger domain.TokenLedger, poolsUsecase mvc.PoolsUsecase, config domain.RouterConfig, logger log.Logger) (mvc.RouterUsecase, error) {
	rootToken, err := domain.ParseAddress(config.RootToken)
	if err != nil {
		return nil, fmt.Errorf("router root token: %w", err)
	}
	if rootToken == (common.Address{}) || address == (common.Address{}) {
		return nil, domain.ErrZeroAddress
	}

	r := &routerUseCaseImpl{
		address:      address,
		owner:        owner,
		tree:         newTokenTree(rootToken),
		ledger:       ledger,
		poolsUsecase: poolsUsecase,
		config:       config,
		logger:       logger,
		now:          time.Now,
	}

	if config.BestPathCacheSize > 0 {
		r.bestPathCache = expirable.NewLRU[bestPathCacheKey, domain.BestPath](
			config.BestPathCacheSize,
			nil,
			time.Duration(config.BestPathCacheExpirySeconds)*time.Second,
		)
	}

	domain.SBRRouterTreeNodesGauge.Set(1)

	return r, nil
}

// WithClock sets the clock used to check swap deadlines.
func WithClock(routerUsecase mvc.RouterUsecase, now func() time.Time) mvc.RouterUsecase {
	useCaseImpl, ok := routerUsecase.(*routerUseCaseImpl)
	if !ok {
		panic("error casting router use case to router use case impl")
	}
	useCaseImpl.now = now
	return routerUsecase
}

// Address implements domain.Pool.
func (r *routerUseCaseImpl) Address() common.Address {
	return r.address
}

// Owner implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) Owner() common.Address {
	return r.owner
}

// RootToken implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) RootToken() common.Address {
	return r.tree.rootToken()
}

// AddPool implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) AddPool(ctx context.Context, caller common.Address, nodeIndex int, pool common.Address, module domain.PoolModule, tokenCount int) error {
	if caller != r.owner {
		return domain.ErrUnauthorized
	}

	if module == nil {
		resolved, err := r.poolsUsecase.GetModule(pool)
		if err == nil {
			module = resolved
		}
	}

	if err := r.tree.addPool(ctx, nodeIndex, pool, module, tokenCount); err != nil {
		return err
	}

	if r.bestPathCache != nil {
		r.bestPathCache.Purge()
	}

	nodes := r.tree.nodeCount()
	domain.SBRRouterTreeNodesGauge.Set(float64(nodes))
	r.logger.Info("pool added to the tree", zap.Stringer("pool", pool), zap.Int("node_index", nodeIndex), zap.Int("nodes", nodes))

	return nil
}

// GetToken implements domain.Pool. Token indexes are node indexes.
func (r *routerUseCaseImpl) GetToken(_ context.Context, index uint8) (common.Address, error) {
	return r.tree.nodeToken(int(index))
}

// CalculateSwap implements domain.Pool.
// Returns zero for equal or out of range indexes and for paths that reuse a pool.
func (r *routerUseCaseImpl) CalculateSwap(ctx context.Context, nodeIndexFrom, nodeIndexTo uint8, dx osmomath.Int) (osmomath.Int, error) {
	return r.calculateSwap(ctx, int(nodeIndexFrom), int(nodeIndexTo), dx, false), nil
}

func (r *routerUseCaseImpl) calculateSwap(ctx context.Context, nodeIndexFrom, nodeIndexTo int, dx osmomath.Int, checkPaused bool) osmomath.Int {
	steps, err := r.tree.swapPath(nodeIndexFrom, nodeIndexTo)
	if err != nil {
		return osmomath.ZeroInt()
	}

	return quotePath(ctx, steps, dx, checkPaused, r.logger)
}

// Swap implements domain.Pool.
// Pulls dx of the token at nodeIndexFrom from the caller, swaps it along the
// tree path and sends the token at nodeIndexTo back to the caller.
// Every pool hop uses the amount actually received from the previous one.
func (r *routerUseCaseImpl) Swap(ctx context.Context, caller common.Address, nodeIndexFrom, nodeIndexTo uint8, dx, minDy osmomath.Int, deadline uint64) (amountOut osmomath.Int, err error) {
	executingKey := executingCtxKey{address: r.address}
	if ctx.Value(executingKey) != nil {
		return osmomath.Int{}, domain.ErrReentrantCall
	}
	ctx = context.WithValue(ctx, executingKey, struct{}{})

	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
		}
		domain.SBRRouterSwapsCounter.WithLabelValues(status).Inc()
	}()

	now := uint64(r.now().Unix())
	if now > deadline {
		return osmomath.Int{}, domain.DeadlineExceededError{Deadline: deadline, Now: now}
	}

	if dx.IsNil() || !dx.IsPositive() {
		return osmomath.Int{}, domain.ErrZeroAmount
	}

	steps, err := r.tree.swapPath(int(nodeIndexFrom), int(nodeIndexTo))
	if err != nil {
		return osmomath.Int{}, err
	}

	tokenIn := steps[0].tokenFrom.Token
	tokenOut := steps[len(steps)-1].tokenTo.Token

	err = r.ledger.Transact(ctx, func(ctx context.Context) error {
		received, err := r.pullToken(tokenIn, caller, dx)
		if err != nil {
			return err
		}

		amountOut, err = r.executeSteps(ctx, steps, received)
		if err != nil {
			return err
		}

		if amountOut.LT(minDy) {
			return domain.InsufficientOutputAmountError{AmountOut: amountOut, MinAmountOut: minDy}
		}

		return r.ledger.Transfer(tokenOut, r.address, caller, amountOut)
	})
	if err != nil {
		r.logger.Debug("router swap failed", zap.Stringer("caller", caller), zap.Uint8("from", nodeIndexFrom), zap.Uint8("to", nodeIndexTo), zap.Error(err))
		return osmomath.Int{}, err
	}

	return amountOut, nil
}

// pullToken transfers amount of token from the caller and returns the amount received.
func (r *routerUseCaseImpl) pullToken(token, from common.Address, amount osmomath.Int) (osmomath.Int, error) {
	balanceBefore := r.ledger.BalanceOf(token, r.address)
	if err := r.ledger.TransferFrom(token, r.address, from, r.address, amount); err != nil {
		return osmomath.Int{}, err
	}
	return r.ledger.BalanceOf(token, r.address).Sub(balanceBefore), nil
}

func (r *routerUseCaseImpl) executeSteps(ctx context.Context, steps []swapStep, amountIn osmomath.Int) (osmomath.Int, error) {
	amount := amountIn
	for _, step := range steps {
		if err := r.approveToken(step.tokenFrom.Token, step.pool.Address, amount); err != nil {
			return osmomath.Int{}, err
		}

		balanceBefore := r.ledger.BalanceOf(step.tokenTo.Token, r.address)
		if _, err := step.pool.Module.PoolSwap(ctx, r.address, step.pool.Address, step.tokenFrom, step.tokenTo, amount); err != nil {
			return osmomath.Int{}, fmt.Errorf("swap through pool %s: %w", step.pool.Address, err)
		}
		amount = r.ledger.BalanceOf(step.tokenTo.Token, r.address).Sub(balanceBefore)
	}
	return amount, nil
}

// approveToken grants spender an infinite allowance if the current one does not cover amount.
// A non zero allowance is reset to zero first.
func (r *routerUseCaseImpl) approveToken(token, spender common.Address, amount osmomath.Int) error {
	allowance := r.ledger.Allowance(token, r.address, spender)
	if !allowance.LT(amount) {
		return nil
	}

	if !allowance.IsZero() {
		if err := r.ledger.Approve(token, r.address, spender, osmomath.ZeroInt()); err != nil {
			return err
		}
	}
	return r.ledger.Approve(token, r.address, spender, domain.MaxUint256)
}

// FindBestPath implements mvc.RouterUsecase.
// Paused pools are skipped while searching.
func (r *routerUseCaseImpl) FindBestPath(ctx context.Context, tokenIn, tokenOut common.Address, amountIn osmomath.Int) domain.BestPath {
	if amountIn.IsNil() {
		return domain.BestPath{AmountOut: osmomath.ZeroInt()}
	}

	cacheKey := bestPathCacheKey{tokenIn: tokenIn, tokenOut: tokenOut, amountIn: amountIn.String()}
	if r.bestPathCache != nil {
		if bestPath, ok := r.bestPathCache.Get(cacheKey); ok {
			domain.SBRBestPathCacheHitsCounter.Inc()
			return bestPath
		}
		domain.SBRBestPathCacheMissesCounter.Inc()
	}

	bestPath := domain.BestPath{AmountOut: osmomath.ZeroInt()}
	for _, nodeFrom := range r.tree.getTokenNodes(tokenIn) {
		for _, nodeTo := range r.tree.getTokenNodes(tokenOut) {
			amountOut := r.calculateSwap(ctx, nodeFrom, nodeTo, amountIn, true)
			if amountOut.GT(bestPath.AmountOut) {
				bestPath = domain.BestPath{
					NodeIndexFrom: nodeFrom,
					NodeIndexTo:   nodeTo,
					AmountOut:     amountOut,
				}
			}
		}
	}

	if r.bestPathCache != nil {
		r.bestPathCache.Add(cacheKey, bestPath)
	}

	return bestPath
}

// GetAmountOut implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) GetAmountOut(ctx context.Context, tokenIn, tokenOut common.Address, amountIn osmomath.Int) osmomath.Int {
	return r.FindBestPath(ctx, tokenIn, tokenOut, amountIn).AmountOut
}

// GetConnectedTokens implements mvc.RouterUsecase.
// A token is connected to tokenOut if both are in the tree and either of them is the root token.
func (r *routerUseCaseImpl) GetConnectedTokens(_ context.Context, tokensIn []common.Address, tokenOut common.Address) (int, []bool) {
	isConnected := make([]bool, len(tokensIn))
	if !r.tree.hasToken(tokenOut) {
		return 0, isConnected
	}

	rootToken := r.tree.rootToken()
	amountFound := 0
	for i, tokenIn := range tokensIn {
		if !r.tree.hasToken(tokenIn) {
			continue
		}
		if tokenIn == rootToken || tokenOut == rootToken {
			isConnected[i] = true
			amountFound++
		}
	}

	return amountFound, isConnected
}

// TokenNodesAmount implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) TokenNodesAmount() int {
	return r.tree.nodeCount()
}

// GetNode implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) GetNode(index int) (domain.NodeView, error) {
	return r.tree.getNode(index)
}

// GetNodes implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) GetNodes() []domain.NodeView {
	return r.tree.getNodes()
}

// GetTokenNodes implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) GetTokenNodes(token common.Address) []int {
	return r.tree.getTokenNodes(token)
}

// GetPools implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) GetPools() []domain.TreePool {
	return r.tree.getPools()
}

// GetSnapshot implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) GetSnapshot(ctx context.Context) domain.TreeSnapshot {
	treePools := r.tree.getPools()

	pools := make([]domain.PoolInfo, 0, len(treePools))
	for _, pool := range treePools {
		pools = append(pools, domain.PoolInfo{
			Address: pool.Address,
			Kind:    pool.Module.Name(),
			Tokens:  r.tree.getPoolTokens(pool.Index),
			Paused:  r.poolsUsecase != nil && r.isPoolPaused(ctx, pool.Address),
		})
	}

	return domain.TreeSnapshot{
		RootToken: r.tree.rootToken(),
		Nodes:     r.tree.getNodes(),
		Pools:     pools,
	}
}

func (r *routerUseCaseImpl) isPoolPaused(ctx context.Context, address common.Address) bool {
	pool, err := r.poolsUsecase.GetPool(address)
	if err != nil {
		return false
	}
	pausable, ok := pool.(domain.PausablePool)
	if !ok {
		return false
	}
	paused, err := pausable.Paused(ctx)
	return err == nil && paused
}

// StoreTreeState implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) StoreTreeState(ctx context.Context, directory string) error {
	return sbrutil.WriteJSON(directory, treeStateFileName, r.GetSnapshot(ctx))
}
