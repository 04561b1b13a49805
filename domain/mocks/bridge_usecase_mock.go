package mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
)

var (
	_ mvc.BridgeQuoteUsecase   = &BridgeQuoteUsecaseMock{}
	_ mvc.BridgeUsecase        = &BridgeUsecaseMock{}
	_ mvc.RouterAdapterUsecase = &RouterAdapterUsecaseMock{}
)

type BridgeQuoteUsecaseMock struct {
	GetOriginAmountOutFunc       func(ctx context.Context, tokenIn common.Address, symbols []string, amountIn osmomath.Int) ([]domain.SwapQuery, error)
	GetDestinationAmountOutFunc  func(ctx context.Context, requests []domain.DestinationRequest, tokenOut common.Address) ([]domain.SwapQuery, error)
	ValidateDestinationQueryFunc func(query domain.SwapQuery) error
}

// GetOriginAmountOut implements mvc.BridgeQuoteUsecase.
func (m *BridgeQuoteUsecaseMock) GetOriginAmountOut(ctx context.Context, tokenIn common.Address, symbols []string, amountIn osmomath.Int) ([]domain.SwapQuery, error) {
	if m.GetOriginAmountOutFunc != nil {
		return m.GetOriginAmountOutFunc(ctx, tokenIn, symbols, amountIn)
	}
	panic("unimplemented")
}

// GetDestinationAmountOut implements mvc.BridgeQuoteUsecase.
func (m *BridgeQuoteUsecaseMock) GetDestinationAmountOut(ctx context.Context, requests []domain.DestinationRequest, tokenOut common.Address) ([]domain.SwapQuery, error) {
	if m.GetDestinationAmountOutFunc != nil {
		return m.GetDestinationAmountOutFunc(ctx, requests, tokenOut)
	}
	panic("unimplemented")
}

// ValidateDestinationQuery implements mvc.BridgeQuoteUsecase.
func (m *BridgeQuoteUsecaseMock) ValidateDestinationQuery(query domain.SwapQuery) error {
	if m.ValidateDestinationQueryFunc != nil {
		return m.ValidateDestinationQueryFunc(query)
	}
	panic("unimplemented")
}

type BridgeUsecaseMock struct {
	BridgeAddress common.Address

	SendTokenFunc          func(ctx context.Context, sender, recipient common.Address, chainID uint64, token common.Address, amount osmomath.Int, requestVersion uint32, swapParams []byte) (domain.RequestSentEvent, error)
	ReceiveTokenFunc       func(ctx context.Context, relayer common.Address, message, attestation []byte, requestVersion uint32, formattedRequest []byte) (domain.RequestFulfilledEvent, error)
	IsRequestFulfilledFunc func(ctx context.Context, requestID common.Hash) (bool, error)
}

// Address implements mvc.BridgeUsecase.
func (m *BridgeUsecaseMock) Address() common.Address {
	return m.BridgeAddress
}

// SendToken implements mvc.BridgeUsecase.
func (m *BridgeUsecaseMock) SendToken(ctx context.Context, sender, recipient common.Address, chainID uint64, token common.Address, amount osmomath.Int, requestVersion uint32, swapParams []byte) (domain.RequestSentEvent, error) {
	if m.SendTokenFunc != nil {
		return m.SendTokenFunc(ctx, sender, recipient, chainID, token, amount, requestVersion, swapParams)
	}
	panic("unimplemented")
}

// ReceiveToken implements mvc.BridgeUsecase.
func (m *BridgeUsecaseMock) ReceiveToken(ctx context.Context, relayer common.Address, message, attestation []byte, requestVersion uint32, formattedRequest []byte) (domain.RequestFulfilledEvent, error) {
	if m.ReceiveTokenFunc != nil {
		return m.ReceiveTokenFunc(ctx, relayer, message, attestation, requestVersion, formattedRequest)
	}
	panic("unimplemented")
}

// IsRequestFulfilled implements mvc.BridgeUsecase.
func (m *BridgeUsecaseMock) IsRequestFulfilled(ctx context.Context, requestID common.Hash) (bool, error) {
	if m.IsRequestFulfilledFunc != nil {
		return m.IsRequestFulfilledFunc(ctx, requestID)
	}
	panic("unimplemented")
}

type RouterAdapterUsecaseMock struct {
	AdapterAddress common.Address

	BridgeFunc func(ctx context.Context, sender, recipient common.Address, chainID uint64, token common.Address, amount osmomath.Int, originQuery, destQuery domain.SwapQuery) (domain.RequestSentEvent, error)
}

// Address implements mvc.RouterAdapterUsecase.
func (m *RouterAdapterUsecaseMock) Address() common.Address {
	return m.AdapterAddress
}

// Bridge implements mvc.RouterAdapterUsecase.
func (m *RouterAdapterUsecaseMock) Bridge(ctx context.Context, sender, recipient common.Address, chainID uint64, token common.Address, amount osmomath.Int, originQuery, destQuery domain.SwapQuery) (domain.RequestSentEvent, error) {
	if m.BridgeFunc != nil {
		return m.BridgeFunc(ctx, sender, recipient, chainID, token, amount, originQuery, destQuery)
	}
	panic("unimplemented")
}
