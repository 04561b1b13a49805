package mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
)

var _ mvc.RouterUsecase = &RouterUsecaseMock{}

type RouterUsecaseMock struct {
	AddressFunc            func() common.Address
	GetTokenFunc           func(ctx context.Context, index uint8) (common.Address, error)
	CalculateSwapFunc      func(ctx context.Context, tokenIndexFrom, tokenIndexTo uint8, dx osmomath.Int) (osmomath.Int, error)
	SwapFunc               func(ctx context.Context, caller common.Address, tokenIndexFrom, tokenIndexTo uint8, dx, minDy osmomath.Int, deadline uint64) (osmomath.Int, error)
	AddPoolFunc            func(ctx context.Context, caller common.Address, nodeIndex int, pool common.Address, module domain.PoolModule, tokenCount int) error
	FindBestPathFunc       func(ctx context.Context, tokenIn, tokenOut common.Address, amountIn osmomath.Int) domain.BestPath
	GetConnectedTokensFunc func(ctx context.Context, tokensIn []common.Address, tokenOut common.Address) (int, []bool)
	GetAmountOutFunc       func(ctx context.Context, tokenIn, tokenOut common.Address, amountIn osmomath.Int) osmomath.Int
	GetNodesFunc           func() []domain.NodeView
	StoreTreeStateFunc     func(ctx context.Context, directory string) error

	OwnerAddress common.Address
	Root         common.Address
	Nodes        []domain.NodeView
}

// Address implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) Address() common.Address {
	if m.AddressFunc != nil {
		return m.AddressFunc()
	}
	panic("unimplemented")
}

// GetToken implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) GetToken(ctx context.Context, index uint8) (common.Address, error) {
	if m.GetTokenFunc != nil {
		return m.GetTokenFunc(ctx, index)
	}
	panic("unimplemented")
}

// CalculateSwap implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) CalculateSwap(ctx context.Context, tokenIndexFrom, tokenIndexTo uint8, dx osmomath.Int) (osmomath.Int, error) {
	if m.CalculateSwapFunc != nil {
		return m.CalculateSwapFunc(ctx, tokenIndexFrom, tokenIndexTo, dx)
	}
	panic("unimplemented")
}

// Swap implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) Swap(ctx context.Context, caller common.Address, tokenIndexFrom, tokenIndexTo uint8, dx, minDy osmomath.Int, deadline uint64) (osmomath.Int, error) {
	if m.SwapFunc != nil {
		return m.SwapFunc(ctx, caller, tokenIndexFrom, tokenIndexTo, dx, minDy, deadline)
	}
	panic("unimplemented")
}

// AddPool implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) AddPool(ctx context.Context, caller common.Address, nodeIndex int, pool common.Address, module domain.PoolModule, tokenCount int) error {
	if m.AddPoolFunc != nil {
		return m.AddPoolFunc(ctx, caller, nodeIndex, pool, module, tokenCount)
	}
	panic("unimplemented")
}

// FindBestPath implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) FindBestPath(ctx context.Context, tokenIn, tokenOut common.Address, amountIn osmomath.Int) domain.BestPath {
	if m.FindBestPathFunc != nil {
		return m.FindBestPathFunc(ctx, tokenIn, tokenOut, amountIn)
	}
	panic("unimplemented")
}

// GetConnectedTokens implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) GetConnectedTokens(ctx context.Context, tokensIn []common.Address, tokenOut common.Address) (int, []bool) {
	if m.GetConnectedTokensFunc != nil {
		return m.GetConnectedTokensFunc(ctx, tokensIn, tokenOut)
	}
	panic("unimplemented")
}

// GetAmountOut implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) GetAmountOut(ctx context.Context, tokenIn, tokenOut common.Address, amountIn osmomath.Int) osmomath.Int {
	if m.GetAmountOutFunc != nil {
		return m.GetAmountOutFunc(ctx, tokenIn, tokenOut, amountIn)
	}
	panic("unimplemented")
}

// Owner implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) Owner() common.Address {
	return m.OwnerAddress
}

// RootToken implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) RootToken() common.Address {
	return m.Root
}

// TokenNodesAmount implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) TokenNodesAmount() int {
	return len(m.Nodes)
}

// GetNode implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) GetNode(index int) (domain.NodeView, error) {
	if index < 0 || index >= len(m.Nodes) {
		return domain.NodeView{}, domain.OutOfRangeError{Index: index, Max: len(m.Nodes)}
	}
	return m.Nodes[index], nil
}

// GetNodes implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) GetNodes() []domain.NodeView {
	if m.GetNodesFunc != nil {
		return m.GetNodesFunc()
	}
	return m.Nodes
}

// GetTokenNodes implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) GetTokenNodes(token common.Address) []int {
	var indexes []int
	for _, node := range m.Nodes {
		if node.Token == token {
			indexes = append(indexes, node.Index)
		}
	}
	return indexes
}

// GetPools implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) GetPools() []domain.TreePool {
	panic("unimplemented")
}

// GetSnapshot implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) GetSnapshot(ctx context.Context) domain.TreeSnapshot {
	return domain.TreeSnapshot{RootToken: m.Root, Nodes: m.Nodes}
}

// StoreTreeState implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) StoreTreeState(ctx context.Context, directory string) error {
	if m.StoreTreeStateFunc != nil {
		return m.StoreTreeStateFunc(ctx, directory)
	}
	panic("unimplemented")
}
