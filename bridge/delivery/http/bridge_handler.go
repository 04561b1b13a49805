package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/MrCuPper/synapse-contracts/bridge/messenger"
	"github.com/MrCuPper/synapse-contracts/bridge/request"
	"github.com/MrCuPper/synapse-contracts/bridge/types"
	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
	"github.com/MrCuPper/synapse-contracts/log"
)

// SentMessagesGetter exposes the attested burn messages to relayers.
type SentMessagesGetter interface {
	LocalDomain() uint32
	GetSentMessage(nonce uint64) (messenger.SentMessage, error)
}

// BridgeHandler represent the httphandler for the bridge
type BridgeHandler struct {
	QUsecase mvc.BridgeQuoteUsecase
	BUsecase mvc.BridgeUsecase
	TUsecase mvc.BridgeTokensUsecase
	FUsecase mvc.FeeUsecase
	AUsecase mvc.RouterAdapterUsecase

	messages SentMessagesGetter
	requests domain.RequestsRepository
	logger   log.Logger
}

// FeeResponse is returned by the /bridge/fee endpoint.
type FeeResponse struct {
	Fee            osmomath.Int `json:"fee"`
	AccumulatedFee osmomath.Int `json:"accumulated_fee"`
}

// RequestRecordsResponse is returned by the /bridge/requests/:id endpoint.
// A direction is omitted if the request was not seen in it on this chain.
type RequestRecordsResponse struct {
	Sent      *domain.RequestRecord `json:"sent,omitempty"`
	Fulfilled *domain.RequestRecord `json:"fulfilled,omitempty"`
}

const bridgeResource = "/bridge"

func formatBridgeResource(resource string) string {
	return bridgeResource + resource
}

// NewBridgeHandler will initialize the bridge/ resources endpoint
func NewBridgeHandler(
	e *echo.Echo,
	quoter mvc.BridgeQuoteUsecase,
	bridge mvc.BridgeUsecase,
	tokens mvc.BridgeTokensUsecase,
	fees mvc.FeeUsecase,
	adapter mvc.RouterAdapterUsecase,
	messages SentMessagesGetter,
	requests domain.RequestsRepository,
	logger log.Logger,
) {
	handler := &BridgeHandler{
		QUsecase: quoter,
		BUsecase: bridge,
		TUsecase: tokens,
		FUsecase: fees,
		AUsecase: adapter,
		messages: messages,
		requests: requests,
		logger:   logger,
	}

	e.GET(formatBridgeResource("/origin-amount-out"), handler.GetOriginAmountOut)
	e.POST(formatBridgeResource("/destination-amount-out"), handler.GetDestinationAmountOut)

	e.POST(formatBridgeResource("/request/format"), handler.FormatRequest)
	e.POST(formatBridgeResource("/request/decode"), handler.DecodeRequest)
	e.GET(formatBridgeResource("/request/id"), handler.GetRequestID)

	e.GET(formatBridgeResource("/tokens"), handler.GetTokens)
	e.POST(formatBridgeResource("/tokens"), handler.AddToken)
	e.DELETE(formatBridgeResource("/tokens"), handler.RemoveToken)
	e.PUT(formatBridgeResource("/tokens/fee"), handler.SetTokenFee)
	e.GET(formatBridgeResource("/remote-domains"), handler.GetRemoteDomains)
	e.PUT(formatBridgeResource("/remote-domains"), handler.SetRemoteDomainConfig)

	e.POST(formatBridgeResource("/send"), handler.Send)
	e.POST(formatBridgeResource("/receive"), handler.Receive)
	e.GET(formatBridgeResource("/fee"), handler.GetFee)
	e.GET(formatBridgeResource("/messages/:nonce"), handler.GetSentMessage)
	e.GET(formatBridgeResource("/requests/:id"), handler.GetRequestRecords)
}

// @Summary Origin quotes
// @Description returns one query per symbol, quoting tokenIn into the bridge token of that symbol. An unreachable bridge token is quoted as zero.
// @ID get-bridge-origin-amount-out
// @Produce  json
// @Param  tokenIn  query  string  true  "Address of the token in"
// @Param  symbols  query  string  true  "Comma separated bridge token symbols"
// @Param  amountIn  query  string  true  "Amount of token in"
// @Success 200  {array}  domain.SwapQuery  "Origin queries in the order of symbols"
// @Router /bridge/origin-amount-out [get]
func (a *BridgeHandler) GetOriginAmountOut(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.GetOriginAmountOutRequest
	if err := req.UnmarshalHTTPRequest(c); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	queries, err := a.QUsecase.GetOriginAmountOut(ctx, req.TokenIn, req.Symbols, req.AmountIn)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, queries)
}

// @Summary Destination quotes
// @Description returns one query per request, quoting the bridged amount minus the bridge fee into token_out.
// @ID post-bridge-destination-amount-out
// @Accept  json
// @Produce  json
// @Param  body  body  types.DestinationAmountOutRequest  true  "Requests and token out"
// @Success 200  {array}  domain.SwapQuery  "Destination queries in the order of requests"
// @Router /bridge/destination-amount-out [post]
func (a *BridgeHandler) GetDestinationAmountOut(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.DestinationAmountOutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	queries, err := a.QUsecase.GetDestinationAmountOut(ctx, req.Requests, req.TokenOut)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, queries)
}

// FormatRequest encodes a request of any version.
func (a *BridgeHandler) FormatRequest(c echo.Context) error {
	var req types.FormatRequestBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	formatted, err := request.Format(req)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, types.FormattedRequestResponse{FormattedRequest: formatted})
}

// DecodeRequest decodes a formatted request of the given version.
func (a *BridgeHandler) DecodeRequest(c echo.Context) error {
	var req types.DecodeRequestBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	decoded, err := request.Decode(req.Version, req.FormattedRequest)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, decoded)
}

// @Summary Request ID
// @ID get-bridge-request-id
// @Produce  json
// @Param  destinationDomain  query  int  true  "Domain the request is fulfilled on"
// @Param  version  query  int  true  "Request version"
// @Param  formattedRequest  query  string  true  "Hex encoded formatted request"
// @Success 200  {object}  types.RequestIDResponse  "The request ID"
// @Router /bridge/request/id [get]
func (a *BridgeHandler) GetRequestID(c echo.Context) error {
	var req types.GetRequestIDRequest
	if err := req.UnmarshalHTTPRequest(c); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, types.RequestIDResponse{
		RequestID: request.RequestID(req.DestinationDomain, req.Version, req.FormattedRequest),
	})
}

// @Summary Bridge tokens
// @ID get-bridge-tokens
// @Produce  json
// @Success 200  {array}  domain.BridgeToken  "Registered bridge tokens"
// @Router /bridge/tokens [get]
func (a *BridgeHandler) GetTokens(c echo.Context) error {
	return c.JSON(http.StatusOK, a.TUsecase.GetTokens())
}

// AddToken registers a bridge token. The caller header must carry the owner address.
func (a *BridgeHandler) AddToken(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := domain.ParseCaller(c)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	var req types.AddTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	if err := a.TUsecase.AddToken(ctx, caller, req.BridgeToken); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	a.logger.Info("bridge token added", zap.String("symbol", req.Symbol), zap.Stringer("token", req.Token))

	token, err := a.TUsecase.GetToken(req.Token)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, token)
}

// RemoveToken removes a bridge token. The caller header must carry the owner address.
func (a *BridgeHandler) RemoveToken(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := domain.ParseCaller(c)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	var req types.RemoveTokenRequest
	if err := req.UnmarshalHTTPRequest(c); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	if err := a.TUsecase.RemoveToken(ctx, caller, req.Token); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	a.logger.Info("bridge token removed", zap.Stringer("token", req.Token))

	return c.NoContent(http.StatusNoContent)
}

// SetTokenFee replaces the fee structure of a bridge token. The caller header must carry the owner address.
func (a *BridgeHandler) SetTokenFee(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := domain.ParseCaller(c)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	var req types.SetTokenFeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	if err := a.TUsecase.SetTokenFee(ctx, caller, req.Token, req.Fee); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	token, err := a.TUsecase.GetToken(req.Token)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, token)
}

// @Summary Remote domains
// @ID get-bridge-remote-domains
// @Produce  json
// @Success 200  {array}  domain.RemoteDomainConfig  "Configured remote domains, sorted by chain ID"
// @Router /bridge/remote-domains [get]
func (a *BridgeHandler) GetRemoteDomains(c echo.Context) error {
	return c.JSON(http.StatusOK, a.TUsecase.GetRemoteDomainConfigs())
}

// SetRemoteDomainConfig configures the domain and bridge contract of a remote chain.
// The caller header must carry the owner address.
func (a *BridgeHandler) SetRemoteDomainConfig(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := domain.ParseCaller(c)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	var req types.RemoteDomainRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	if err := a.TUsecase.SetRemoteDomainConfig(ctx, caller, req); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	a.logger.Info("remote domain configured", zap.Uint64("chain_id", req.ChainID), zap.Uint32("domain", req.Domain))

	return c.JSON(http.StatusOK, req)
}

// Send performs the origin query and sends the bridge token to the remote chain.
// The destination query is checked before anything is executed.
func (a *BridgeHandler) Send(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.SendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	if err := a.QUsecase.ValidateDestinationQuery(req.DestQuery); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	event, err := a.AUsecase.Bridge(ctx, req.Sender, req.Recipient, req.ChainID, req.Token, req.Amount, req.OriginQuery, req.DestQuery)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, event)
}

// Receive fulfills a bridge request with an attested burn message.
func (a *BridgeHandler) Receive(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.ReceiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	event, err := a.BUsecase.ReceiveToken(ctx, req.Relayer, req.Message, req.Attestation, req.RequestVersion, req.FormattedRequest)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, event)
}

// @Summary Bridge fee
// @Description returns the fee charged for bridging amount of token and the fees accumulated so far.
// @ID get-bridge-fee
// @Produce  json
// @Param  token  query  string  true  "Address of the bridge token"
// @Param  amount  query  string  true  "Amount bridged"
// @Param  isSwap  query  bool  false  "Whether a destination action is performed"
// @Success 200  {object}  FeeResponse  "The fee"
// @Router /bridge/fee [get]
func (a *BridgeHandler) GetFee(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.GetFeeRequest
	if err := req.UnmarshalHTTPRequest(c); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	fee, err := a.FUsecase.CalculateFeeAmount(ctx, req.Token, req.Amount, req.IsSwap)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, FeeResponse{
		Fee:            fee,
		AccumulatedFee: a.FUsecase.GetAccumulatedFee(ctx, req.Token),
	})
}

// @Summary Attested burn message
// @ID get-bridge-message
// @Produce  json
// @Param  nonce  path  int  true  "Nonce of the burn"
// @Success 200  {object}  messenger.SentMessage  "The message and its attestation"
// @Router /bridge/messages/{nonce} [get]
func (a *BridgeHandler) GetSentMessage(c echo.Context) error {
	nonce, err := types.ParseNonce(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	message, err := a.messages.GetSentMessage(nonce)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, message)
}

// @Summary Request records
// @ID get-bridge-request
// @Produce  json
// @Param  id  path  string  true  "Hex encoded request ID"
// @Success 200  {object}  RequestRecordsResponse  "Records of the request on this chain"
// @Router /bridge/requests/{id} [get]
func (a *BridgeHandler) GetRequestRecords(c echo.Context) error {
	ctx := c.Request().Context()

	requestID, err := types.ParseRequestID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	var response RequestRecordsResponse
	for _, direction := range []string{domain.RequestDirectionSent, domain.RequestDirectionFulfilled} {
		record, err := a.getRequestRecord(ctx, requestID, direction)
		if err != nil {
			return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
		if direction == domain.RequestDirectionSent {
			response.Sent = record
		} else {
			response.Fulfilled = record
		}
	}

	if response.Sent == nil && response.Fulfilled == nil {
		return c.JSON(http.StatusNotFound, domain.ResponseError{Message: domain.ErrNotFound.Error()})
	}

	return c.JSON(http.StatusOK, response)
}

func (a *BridgeHandler) getRequestRecord(ctx context.Context, requestID common.Hash, direction string) (*domain.RequestRecord, error) {
	record, err := a.requests.GetRequest(ctx, requestID, direction)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
