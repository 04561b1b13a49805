package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/MrCuPper/synapse-contracts/bridge/request"
	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
	"github.com/MrCuPper/synapse-contracts/log"
)

type bridgeUseCase struct {
	address common.Address

	ledger      domain.TokenLedger
	tokens      mvc.BridgeTokensUsecase
	fees        mvc.FeeUsecase
	messenger   domain.TokenMessenger
	transmitter domain.MessageTransmitter
	requests    domain.RequestsRepository
	executor    actionExecutor
	logger      log.Logger

	now func() time.Time
}

var _ mvc.BridgeUsecase = &bridgeUseCase{}

// NewBridgeUsecase returns the burn and mint bridge holding its tokens under address.
func NewBridgeUsecase(
	address common.Address,
	ledger domain.TokenLedger,
	tokens mvc.BridgeTokensUsecase,
	fees mvc.FeeUsecase,
	pools domain.PoolsRepository,
	messenger domain.TokenMessenger,
	transmitter domain.MessageTransmitter,
	requests domain.RequestsRepository,
	logger log.Logger,
) mvc.BridgeUsecase {
	return &bridgeUseCase{
		address:     address,
		ledger:      ledger,
		tokens:      tokens,
		fees:        fees,
		messenger:   messenger,
		transmitter: transmitter,
		requests:    requests,
		executor: actionExecutor{
			address: address,
			ledger:  ledger,
			pools:   pools,
		},
		logger: logger,
		now:    time.Now,
	}
}

// WithClock sets the clock used to check destination action deadlines.
func WithClock(bridgeUsecase mvc.BridgeUsecase, now func() time.Time) mvc.BridgeUsecase {
	useCaseImpl, ok := bridgeUsecase.(*bridgeUseCase)
	if !ok {
		panic("error casting bridge use case to bridge use case impl")
	}
	useCaseImpl.now = now
	return bridgeUsecase
}

// Address implements mvc.BridgeUsecase.
func (b *bridgeUseCase) Address() common.Address {
	return b.address
}

// SendToken implements mvc.BridgeUsecase.
// The sender must have approved the bridge for amount of token.
func (b *bridgeUseCase) SendToken(ctx context.Context, sender, recipient common.Address, chainID uint64, token common.Address, amount osmomath.Int, requestVersion uint32, swapParams []byte) (event domain.RequestSentEvent, err error) {
	if recipient == (common.Address{}) {
		return domain.RequestSentEvent{}, domain.ErrZeroAddress
	}
	if amount.IsNil() || !amount.IsPositive() {
		return domain.RequestSentEvent{}, domain.ErrZeroAmount
	}
	if _, err := b.tokens.GetToken(token); err != nil {
		return domain.RequestSentEvent{}, err
	}
	remote, err := b.tokens.GetRemoteDomainConfig(chainID)
	if err != nil {
		return domain.RequestSentEvent{}, err
	}
	if requestVersion != request.RequestBase {
		if _, err := request.DecodeSwapParams(requestVersion, swapParams); err != nil {
			return domain.RequestSentEvent{}, err
		}
	}

	err = b.ledger.Transact(ctx, func(ctx context.Context) error {
		received, err := pullToken(b.ledger, b.address, token, sender, amount)
		if err != nil {
			return err
		}

		nonce := b.messenger.NextAvailableNonce()
		baseRequest, err := request.FormatBaseRequest(domain.BridgeRequest{
			OriginDomain: b.messenger.LocalDomain(),
			Nonce:        nonce,
			BurnToken:    token,
			Amount:       received,
			Recipient:    recipient,
		})
		if err != nil {
			return err
		}

		formattedRequest, err := request.FormatRequest(requestVersion, baseRequest, swapParams)
		if err != nil {
			return err
		}

		requestID := request.RequestID(remote.Domain, requestVersion, formattedRequest)

		sentNonce, err := b.messenger.DepositForBurnWithCaller(ctx, b.address, received, remote.Domain, remote.Contract, token, requestID)
		if err != nil {
			return err
		}
		if sentNonce != nonce {
			return fmt.Errorf("burn sent with nonce %d, request formatted with nonce %d: %w", sentNonce, nonce, domain.ErrInternalServerError)
		}

		if err := b.requests.StoreRequest(ctx, domain.RequestRecord{
			RequestID:        requestID,
			Direction:        domain.RequestDirectionSent,
			Version:          requestVersion,
			Domain:           remote.Domain,
			Token:            token,
			Amount:           received,
			Recipient:        recipient,
			FormattedRequest: formattedRequest,
		}); err != nil {
			return err
		}

		event = domain.RequestSentEvent{
			ChainID:          chainID,
			Sender:           sender,
			Nonce:            nonce,
			Token:            token,
			Amount:           received,
			RequestVersion:   requestVersion,
			FormattedRequest: formattedRequest,
			RequestID:        requestID,
		}
		return nil
	})
	if err != nil {
		return domain.RequestSentEvent{}, err
	}

	domain.SBRBridgeRequestsCounter.WithLabelValues(domain.RequestDirectionSent, strconv.FormatUint(uint64(requestVersion), 10)).Inc()
	b.logger.Info("request sent", zap.Stringer("request_id", event.RequestID), zap.Uint64("chain_id", chainID), zap.Stringer("amount", event.Amount))

	return event, nil
}

// ReceiveToken implements mvc.BridgeUsecase.
func (b *bridgeUseCase) ReceiveToken(ctx context.Context, relayer common.Address, message, attestation []byte, requestVersion uint32, formattedRequest []byte) (event domain.RequestFulfilledEvent, err error) {
	req, err := request.Decode(requestVersion, formattedRequest)
	if err != nil {
		return domain.RequestFulfilledEvent{}, err
	}

	requestID := request.RequestID(b.messenger.LocalDomain(), requestVersion, formattedRequest)

	fulfilled, err := b.requests.IsFulfilled(ctx, requestID)
	if err != nil {
		return domain.RequestFulfilledEvent{}, err
	}
	if fulfilled {
		return domain.RequestFulfilledEvent{}, domain.RequestAlreadyFulfilledError{RequestID: requestID}
	}

	bridgeToken, err := b.tokens.GetTokenByRemoteToken(req.Base.BurnToken)
	if err != nil {
		return domain.RequestFulfilledEvent{}, err
	}
	token := bridgeToken.Token

	var fee osmomath.Int
	err = b.ledger.Transact(ctx, func(ctx context.Context) error {
		balanceBefore := b.ledger.BalanceOf(token, b.address)

		burn, err := b.transmitter.ReceiveMessage(ctx, message, attestation)
		if err != nil {
			return err
		}
		if burn.DestinationCaller != requestID {
			return domain.RequestMismatchError{RequestID: requestID, DestinationCaller: burn.DestinationCaller}
		}

		minted := b.ledger.BalanceOf(token, b.address).Sub(balanceBefore)
		if !minted.Equal(req.Base.Amount) {
			return fmt.Errorf("minted %s of %s, request amount is %s: %w", minted, token, req.Base.Amount, domain.ErrBadParamInput)
		}

		fee, err = b.fees.CalculateFeeAmount(ctx, token, minted, req.SwapParams != nil)
		if err != nil {
			return err
		}
		if fee.GT(minted) {
			fee = minted
		}
		amount := minted.Sub(fee)

		tokenOut, amountOut := token, amount
		if req.SwapParams != nil {
			tokenOut, amountOut = b.fulfillAction(ctx, requestID, token, amount, *req.SwapParams)
		}

		if amountOut.IsPositive() {
			if err := b.ledger.Transfer(tokenOut, b.address, req.Base.Recipient, amountOut); err != nil {
				return err
			}
		}

		if err := b.requests.StoreRequest(ctx, domain.RequestRecord{
			RequestID:        requestID,
			Direction:        domain.RequestDirectionFulfilled,
			Version:          requestVersion,
			Domain:           req.Base.OriginDomain,
			Token:            tokenOut,
			Amount:           amountOut,
			Recipient:        req.Base.Recipient,
			FormattedRequest: formattedRequest,
		}); err != nil {
			return err
		}

		event = domain.RequestFulfilledEvent{
			OriginDomain: req.Base.OriginDomain,
			MintToken:    token,
			Fee:          fee,
			Recipient:    req.Base.Recipient,
			Token:        tokenOut,
			Amount:       amountOut,
			RequestID:    requestID,
		}
		return nil
	})
	if err != nil {
		return domain.RequestFulfilledEvent{}, err
	}

	b.fees.AccumulateFee(ctx, token, fee)

	domain.SBRBridgeRequestsCounter.WithLabelValues(domain.RequestDirectionFulfilled, strconv.FormatUint(uint64(requestVersion), 10)).Inc()
	b.logger.Info("request fulfilled", zap.Stringer("request_id", requestID), zap.Stringer("relayer", relayer), zap.Stringer("token", event.Token), zap.Stringer("amount", event.Amount))

	return event, nil
}

// fulfillAction performs the destination action. If the deadline has passed or the
// action fails, its changes are rolled back and the bridged token is delivered instead.
func (b *bridgeUseCase) fulfillAction(ctx context.Context, requestID common.Hash, token common.Address, amount osmomath.Int, params domain.SwapParams) (common.Address, osmomath.Int) {
	now := uint64(b.now().Unix())
	if now > params.Deadline {
		b.fallback(requestID, domain.DeadlineExceededError{Deadline: params.Deadline, Now: now})
		return token, amount
	}

	var (
		tokenOut  common.Address
		amountOut osmomath.Int
	)
	err := b.ledger.Transact(ctx, func(ctx context.Context) (err error) {
		tokenOut, amountOut, err = b.executor.execute(ctx, token, amount, params)
		return err
	})
	if err != nil {
		b.fallback(requestID, err)
		return token, amount
	}

	return tokenOut, amountOut
}

func (b *bridgeUseCase) fallback(requestID common.Hash, err error) {
	domain.SBRBridgeDestinationFallbackCounter.Inc()
	b.logger.Warn("destination action failed, delivering bridged token", zap.Stringer("request_id", requestID), zap.Error(err))
}

// IsRequestFulfilled implements mvc.BridgeUsecase.
func (b *bridgeUseCase) IsRequestFulfilled(ctx context.Context, requestID common.Hash) (bool, error) {
	return b.requests.IsFulfilled(ctx, requestID)
}
