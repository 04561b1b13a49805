package mvc

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
)

// FeeUsecase computes and accounts bridge fees.
type FeeUsecase interface {
	// CalculateFeeAmount returns the fee charged for bridging amount of token.
	// Swap legs are charged at least the minimum swap fee.
	CalculateFeeAmount(ctx context.Context, token common.Address, amount osmomath.Int, isSwap bool) (osmomath.Int, error)
	// AccumulateFee credits fee to the accumulated fees of token.
	AccumulateFee(ctx context.Context, token common.Address, fee osmomath.Int)
	// GetAccumulatedFee returns the fees accumulated for token.
	GetAccumulatedFee(ctx context.Context, token common.Address) osmomath.Int
}

// BridgeTokensUsecase is the registry of bridge tokens and remote domains.
// All mutations are owner gated.
type BridgeTokensUsecase interface {
	AddToken(ctx context.Context, caller common.Address, token domain.BridgeToken) error
	RemoveToken(ctx context.Context, caller common.Address, token common.Address) error
	SetTokenFee(ctx context.Context, caller common.Address, token common.Address, fee domain.FeeStructure) error
	SetRemoteDomainConfig(ctx context.Context, caller common.Address, config domain.RemoteDomainConfig) error

	// GetTokenBySymbol returns UnknownSymbolError if no token is registered under symbol.
	GetTokenBySymbol(symbol string) (domain.BridgeToken, error)
	// GetToken returns UnknownTokenError if token is not a bridge token.
	GetToken(token common.Address) (domain.BridgeToken, error)
	// GetTokenByRemoteToken returns the local bridge token minted for remoteToken.
	GetTokenByRemoteToken(remoteToken common.Address) (domain.BridgeToken, error)
	GetTokens() []domain.BridgeToken
	// GetRemoteDomainConfig returns RemoteDomainNotConfiguredError if chainID is not configured.
	GetRemoteDomainConfig(chainID uint64) (domain.RemoteDomainConfig, error)
	GetRemoteDomainConfigs() []domain.RemoteDomainConfig
	Owner() common.Address
}

// BridgeQuoteUsecase quotes the origin and destination legs of a bridge transaction.
type BridgeQuoteUsecase interface {
	// GetOriginAmountOut returns one query per symbol, quoting tokenIn into the bridge token.
	GetOriginAmountOut(ctx context.Context, tokenIn common.Address, symbols []string, amountIn osmomath.Int) ([]domain.SwapQuery, error)
	// GetDestinationAmountOut returns one query per request, quoting the bridge token
	// minus the bridge fee into tokenOut.
	GetDestinationAmountOut(ctx context.Context, requests []domain.DestinationRequest, tokenOut common.Address) ([]domain.SwapQuery, error)
	// ValidateDestinationQuery fails if the query carries an action that cannot be executed on arrival.
	ValidateDestinationQuery(query domain.SwapQuery) error
}

// BridgeUsecase sends and receives bridge requests.
type BridgeUsecase interface {
	Address() common.Address
	// SendToken pulls amount of token from sender, burns it for the remote chain and records the request.
	SendToken(ctx context.Context, sender, recipient common.Address, chainID uint64, token common.Address, amount osmomath.Int, requestVersion uint32, swapParams []byte) (domain.RequestSentEvent, error)
	// ReceiveToken mints the bridged tokens and fulfills the request.
	// A failing destination action delivers the bridged token instead.
	ReceiveToken(ctx context.Context, relayer common.Address, message, attestation []byte, requestVersion uint32, formattedRequest []byte) (domain.RequestFulfilledEvent, error)
	// IsRequestFulfilled returns true if the request was fulfilled on this chain.
	IsRequestFulfilled(ctx context.Context, requestID common.Hash) (bool, error)
}

// RouterAdapterUsecase performs the origin swap and hands the result to the bridge.
type RouterAdapterUsecase interface {
	Address() common.Address
	Bridge(ctx context.Context, sender, recipient common.Address, chainID uint64, token common.Address, amount osmomath.Int, originQuery, destQuery domain.SwapQuery) (domain.RequestSentEvent, error)
}
