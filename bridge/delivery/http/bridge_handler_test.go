package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	bridgedelivery "github.com/MrCuPper/synapse-contracts/bridge/delivery/http"
	"github.com/MrCuPper/synapse-contracts/bridge/messenger"
	bridgerepo "github.com/MrCuPper/synapse-contracts/bridge/repository"
	"github.com/MrCuPper/synapse-contracts/bridge/request"
	"github.com/MrCuPper/synapse-contracts/bridge/usecase"
	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mocks"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
	feeusecase "github.com/MrCuPper/synapse-contracts/fees/usecase"
	"github.com/MrCuPper/synapse-contracts/log"
)

var (
	owner     = common.HexToAddress("0x0000000000000000000000000000000000000a11")
	user      = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	recipient = common.HexToAddress("0x0000000000000000000000000000000000000c0c")
	usdc      = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	usdt      = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	remote    = common.HexToAddress("0x00000000000000000000000000000000000000bb")

	usdcFee = domain.FeeStructure{
		PercentageFee: 5_000_000,
		MinBaseFee:    osmomath.NewInt(1_000_000),
		MinSwapFee:    osmomath.NewInt(5_000_000),
		MaxFee:        osmomath.NewInt(100_000_000),
	}
)

type sentMessagesStub map[uint64]messenger.SentMessage

func (s sentMessagesStub) LocalDomain() uint32 { return 0 }

func (s sentMessagesStub) GetSentMessage(nonce uint64) (messenger.SentMessage, error) {
	message, ok := s[nonce]
	if !ok {
		return messenger.SentMessage{}, fmt.Errorf("message with nonce %d: %w", nonce, domain.ErrNotFound)
	}
	return message, nil
}

type BridgeHandlerSuite struct {
	suite.Suite

	tokens   mvc.BridgeTokensUsecase
	fees     mvc.FeeUsecase
	requests domain.RequestsRepository
	messages sentMessagesStub
}

func TestBridgeHandlerSuite(t *testing.T) {
	suite.Run(t, new(BridgeHandlerSuite))
}

func (s *BridgeHandlerSuite) SetupTest() {
	s.tokens = usecase.NewTokensUsecase(owner, 1, "", &log.NoOpLogger{})
	s.Require().NoError(s.tokens.AddToken(context.Background(), owner, domain.BridgeToken{
		Symbol: "CCTP.USDC",
		Token:  usdc,
		Fee:    usdcFee,
	}))
	s.fees = feeusecase.NewFeeUsecase(s.tokens)
	s.requests = bridgerepo.NewMemoryRequestsRepository()
	s.messages = sentMessagesStub{
		3: {Nonce: 3, Message: hexutil.Bytes{0x01, 0x02}, Attestation: hexutil.Bytes{0x03}},
	}
}

func (s *BridgeHandlerSuite) newHandler(quoter mvc.BridgeQuoteUsecase, bridge mvc.BridgeUsecase, adapter mvc.RouterAdapterUsecase) *bridgedelivery.BridgeHandler {
	return bridgedelivery.NewTestBridgeHandler(quoter, bridge, s.tokens, s.fees, adapter, s.messages, s.requests)
}

func newRequest(method, target, body string, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func (s *BridgeHandlerSuite) TestGetOriginAmountOut() {
	testcases := []struct {
		name               string
		target             string
		quoteErr           error
		expectedStatusCode int
	}{
		{
			name:               "valid request",
			target:             "/bridge/origin-amount-out?tokenIn=" + usdt.Hex() + "&symbols=CCTP.USDC,%20CCTP.USDT&amountIn=1000",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "missing symbols",
			target:             "/bridge/origin-amount-out?tokenIn=" + usdt.Hex() + "&amountIn=1000",
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "zero amount",
			target:             "/bridge/origin-amount-out?tokenIn=" + usdt.Hex() + "&symbols=CCTP.USDC&amountIn=0",
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "unknown symbol",
			target:             "/bridge/origin-amount-out?tokenIn=" + usdt.Hex() + "&symbols=CCTP.DAI&amountIn=1000",
			quoteErr:           domain.UnknownSymbolError{Symbol: "CCTP.DAI"},
			expectedStatusCode: http.StatusNotFound,
		},
	}

	for _, tc := range testcases {
		s.Run(tc.name, func() {
			handler := s.newHandler(&mocks.BridgeQuoteUsecaseMock{
				GetOriginAmountOutFunc: func(ctx context.Context, tokenIn common.Address, symbols []string, amountIn osmomath.Int) ([]domain.SwapQuery, error) {
					if tc.quoteErr != nil {
						return nil, tc.quoteErr
					}
					s.Require().Equal(usdt, tokenIn)
					s.Require().Equal([]string{"CCTP.USDC", "CCTP.USDT"}, symbols)
					s.Require().Equal("1000", amountIn.String())
					return []domain.SwapQuery{
						{TokenOut: usdc, MinAmountOut: osmomath.NewInt(999), Deadline: domain.NoDeadline},
						{TokenOut: usdt, MinAmountOut: osmomath.ZeroInt()},
					}, nil
				},
			}, nil, nil)

			c, rec := newRequest(http.MethodGet, tc.target, "", nil)
			s.Require().NoError(handler.GetOriginAmountOut(c))
			s.Require().Equal(tc.expectedStatusCode, rec.Code)

			if tc.expectedStatusCode != http.StatusOK {
				return
			}

			var queries []domain.SwapQuery
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &queries))
			s.Require().Len(queries, 2)
			s.Require().Equal("999", queries[0].MinAmountOut.String())
			s.Require().True(queries[1].IsEmpty())
		})
	}
}

func (s *BridgeHandlerSuite) TestGetDestinationAmountOut() {
	testcases := []struct {
		name               string
		body               string
		expectedStatusCode int
		expectedResponse   string
	}{
		{
			name:               "valid request",
			body:               `{"requests":[{"symbol":"CCTP.USDC","amount_in":"1000000000"},{"symbol":"CCTP.USDC"}],"token_out":"` + usdt.Hex() + `"}`,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "no requests",
			body:               `{"requests":[],"token_out":"` + usdt.Hex() + `"}`,
			expectedStatusCode: http.StatusBadRequest,
			expectedResponse:   `{"message":"requests must not be empty"}`,
		},
		{
			name:               "missing token out",
			body:               `{"requests":[{"symbol":"CCTP.USDC","amount_in":"1"}]}`,
			expectedStatusCode: http.StatusBadRequest,
			expectedResponse:   `{"message":"token_out: zero address"}`,
		},
	}

	for _, tc := range testcases {
		s.Run(tc.name, func() {
			handler := s.newHandler(&mocks.BridgeQuoteUsecaseMock{
				GetDestinationAmountOutFunc: func(ctx context.Context, requests []domain.DestinationRequest, tokenOut common.Address) ([]domain.SwapQuery, error) {
					s.Require().Equal(usdt, tokenOut)
					s.Require().Len(requests, 2)
					s.Require().Equal("1000000000", requests[0].AmountIn.String())
					s.Require().True(requests[1].AmountIn.IsZero())
					return []domain.SwapQuery{
						{TokenOut: usdt, MinAmountOut: osmomath.NewInt(995_000_000)},
						{TokenOut: usdt, MinAmountOut: osmomath.ZeroInt()},
					}, nil
				},
			}, nil, nil)

			c, rec := newRequest(http.MethodPost, "/bridge/destination-amount-out", tc.body, nil)
			s.Require().NoError(handler.GetDestinationAmountOut(c))
			s.Require().Equal(tc.expectedStatusCode, rec.Code)

			if tc.expectedResponse != "" {
				s.Require().JSONEq(tc.expectedResponse, rec.Body.String())
			}
		})
	}
}

func (s *BridgeHandlerSuite) TestFormatAndDecodeRequest() {
	handler := s.newHandler(nil, nil, nil)

	body := fmt.Sprintf(`{"version":1,"base":{"origin_domain":1,"nonce":7,"burn_token":"%s","amount":"1000","recipient":"%s"},"swap_params":{"action":0,"pool":"%s","token_index_from":0,"token_index_to":1,"deadline":100,"min_amount_out":"990"}}`,
		usdc.Hex(), recipient.Hex(), remote.Hex())

	c, rec := newRequest(http.MethodPost, "/bridge/request/format", body, nil)
	s.Require().NoError(handler.FormatRequest(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var formatted struct {
		FormattedRequest hexutil.Bytes `json:"formatted_request"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &formatted))
	s.Require().Len(formatted.FormattedRequest, request.SwapRequestLength)

	decodeBody := fmt.Sprintf(`{"version":1,"formatted_request":"%s"}`, formatted.FormattedRequest)
	c, rec = newRequest(http.MethodPost, "/bridge/request/decode", decodeBody, nil)
	s.Require().NoError(handler.DecodeRequest(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var decoded request.Request
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &decoded))
	s.Require().Equal(uint64(7), decoded.Base.Nonce)
	s.Require().Equal(recipient, decoded.Base.Recipient)
	s.Require().NotNil(decoded.SwapParams)
	s.Require().Equal(uint64(100), decoded.SwapParams.Deadline)
	s.Require().Equal("990", decoded.SwapParams.MinAmountOut.String())

	// wrong version for the payload length
	decodeBody = fmt.Sprintf(`{"version":0,"formatted_request":"%s"}`, formatted.FormattedRequest)
	c, rec = newRequest(http.MethodPost, "/bridge/request/decode", decodeBody, nil)
	s.Require().NoError(handler.DecodeRequest(c))
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}

func (s *BridgeHandlerSuite) TestGetRequestID() {
	handler := s.newHandler(nil, nil, nil)
	formatted := []byte{0xde, 0xad, 0xbe, 0xef}

	c, rec := newRequest(http.MethodGet, "/bridge/request/id?destinationDomain=1&version=0&formattedRequest="+hexutil.Encode(formatted), "", nil)
	s.Require().NoError(handler.GetRequestID(c))
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(fmt.Sprintf(`{"request_id":"%s"}`, request.RequestID(1, 0, formatted).Hex()), rec.Body.String())

	c, rec = newRequest(http.MethodGet, "/bridge/request/id?destinationDomain=1&version=0&formattedRequest=0xzz", "", nil)
	s.Require().NoError(handler.GetRequestID(c))
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}

func (s *BridgeHandlerSuite) TestTokenAdministration() {
	handler := s.newHandler(nil, nil, nil)
	ownerHeader := map[string]string{domain.CallerHeader: owner.Hex()}

	addBody := `{"symbol":"CCTP.USDT","token":"` + usdt.Hex() + `","transfer_mode":"lock-mint","fee":{"percentage_fee":1000000}}`

	c, rec := newRequest(http.MethodPost, "/bridge/tokens", addBody, map[string]string{domain.CallerHeader: user.Hex()})
	s.Require().NoError(handler.AddToken(c))
	s.Require().Equal(http.StatusUnauthorized, rec.Code)

	c, rec = newRequest(http.MethodPost, "/bridge/tokens", addBody, nil)
	s.Require().NoError(handler.AddToken(c))
	s.Require().Equal(http.StatusUnauthorized, rec.Code)

	c, rec = newRequest(http.MethodPost, "/bridge/tokens", addBody, ownerHeader)
	s.Require().NoError(handler.AddToken(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	token, err := s.tokens.GetTokenBySymbol("CCTP.USDT")
	s.Require().NoError(err)
	s.Require().Equal(domain.TransferModeLockMint, token.TransferMode)
	s.Require().Equal(usdt, token.RemoteToken)

	c, rec = newRequest(http.MethodPost, "/bridge/tokens", addBody, ownerHeader)
	s.Require().NoError(handler.AddToken(c))
	s.Require().Equal(http.StatusConflict, rec.Code)

	feeBody := `{"token":"` + usdt.Hex() + `","fee":{"percentage_fee":2000000,"min_base_fee":"1","min_swap_fee":"2","max_fee":"3"}}`
	c, rec = newRequest(http.MethodPut, "/bridge/tokens/fee", feeBody, ownerHeader)
	s.Require().NoError(handler.SetTokenFee(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	token, err = s.tokens.GetToken(usdt)
	s.Require().NoError(err)
	s.Require().Equal(uint64(2_000_000), token.Fee.PercentageFee)
	s.Require().Equal("3", token.Fee.MaxFee.String())

	c, rec = newRequest(http.MethodPut, "/bridge/tokens/fee", `{"token":"`+usdt.Hex()+`","fee":{"percentage_fee":1}}`, ownerHeader)
	s.Require().NoError(handler.SetTokenFee(c))
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	c, rec = newRequest(http.MethodGet, "/bridge/tokens", "", nil)
	s.Require().NoError(handler.GetTokens(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var tokens []json.RawMessage
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &tokens))
	s.Require().Len(tokens, 2)

	c, rec = newRequest(http.MethodDelete, "/bridge/tokens?token="+usdt.Hex(), "", ownerHeader)
	s.Require().NoError(handler.RemoveToken(c))
	s.Require().Equal(http.StatusNoContent, rec.Code)

	_, err = s.tokens.GetToken(usdt)
	s.Require().ErrorAs(err, &domain.UnknownTokenError{})

	c, rec = newRequest(http.MethodDelete, "/bridge/tokens?token="+usdt.Hex(), "", ownerHeader)
	s.Require().NoError(handler.RemoveToken(c))
	s.Require().Equal(http.StatusNotFound, rec.Code)
}

func (s *BridgeHandlerSuite) TestRemoteDomains() {
	handler := s.newHandler(nil, nil, nil)
	ownerHeader := map[string]string{domain.CallerHeader: owner.Hex()}

	body := `{"chain_id":43114,"domain":1,"contract":"` + remote.Hex() + `"}`
	c, rec := newRequest(http.MethodPut, "/bridge/remote-domains", body, ownerHeader)
	s.Require().NoError(handler.SetRemoteDomainConfig(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	// the local chain cannot be a remote domain
	c, rec = newRequest(http.MethodPut, "/bridge/remote-domains", `{"chain_id":1,"domain":0,"contract":"`+remote.Hex()+`"}`, ownerHeader)
	s.Require().NoError(handler.SetRemoteDomainConfig(c))
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	c, rec = newRequest(http.MethodGet, "/bridge/remote-domains", "", nil)
	s.Require().NoError(handler.GetRemoteDomains(c))
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`[{"chain_id":43114,"domain":1,"contract":"`+strings.ToLower(remote.Hex())+`"}]`, rec.Body.String())
}

func (s *BridgeHandlerSuite) TestSend() {
	unsupportedParams, err := domain.DefaultParams{Action: domain.ActionHandleEth, Pool: remote}.Encode()
	s.Require().NoError(err)

	testcases := []struct {
		name               string
		body               string
		bridgeErr          error
		expectedStatusCode int
	}{
		{
			name:               "valid request",
			body:               `{"sender":"` + user.Hex() + `","recipient":"` + recipient.Hex() + `","chain_id":43114,"token":"` + usdc.Hex() + `","amount":"1000","origin_query":{},"dest_query":{}}`,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "zero amount",
			body:               `{"sender":"` + user.Hex() + `","recipient":"` + recipient.Hex() + `","chain_id":43114,"token":"` + usdc.Hex() + `","amount":"0"}`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "unsupported destination action",
			body:               `{"sender":"` + user.Hex() + `","recipient":"` + recipient.Hex() + `","chain_id":43114,"token":"` + usdc.Hex() + `","amount":"1000","dest_query":{"raw_params":"` + hexutil.Encode(unsupportedParams) + `"}}`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "remote domain not configured",
			body:               `{"sender":"` + user.Hex() + `","recipient":"` + recipient.Hex() + `","chain_id":10,"token":"` + usdc.Hex() + `","amount":"1000"}`,
			bridgeErr:          domain.RemoteDomainNotConfiguredError{ChainID: 10},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testcases {
		s.Run(tc.name, func() {
			quoter := usecase.NewBridgeQuoteUsecase(common.Address{}, nil, s.tokens, s.fees, nil, 1, &log.NoOpLogger{})
			handler := s.newHandler(quoter, nil, &mocks.RouterAdapterUsecaseMock{
				BridgeFunc: func(ctx context.Context, sender, to common.Address, chainID uint64, token common.Address, amount osmomath.Int, originQuery, destQuery domain.SwapQuery) (domain.RequestSentEvent, error) {
					if tc.bridgeErr != nil {
						return domain.RequestSentEvent{}, tc.bridgeErr
					}
					s.Require().Equal(user, sender)
					s.Require().Equal(recipient, to)
					return domain.RequestSentEvent{
						ChainID: chainID,
						Sender:  sender,
						Token:   token,
						Amount:  amount,
					}, nil
				},
			})

			c, rec := newRequest(http.MethodPost, "/bridge/send", tc.body, nil)
			s.Require().NoError(handler.Send(c))
			s.Require().Equal(tc.expectedStatusCode, rec.Code)

			if tc.expectedStatusCode == http.StatusOK {
				var event domain.RequestSentEvent
				s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &event))
				s.Require().Equal(uint64(43114), event.ChainID)
				s.Require().Equal("1000", event.Amount.String())
			}
		})
	}
}

func (s *BridgeHandlerSuite) TestReceive() {
	requestID := common.HexToHash("0x01")

	handler := s.newHandler(nil, &mocks.BridgeUsecaseMock{
		ReceiveTokenFunc: func(ctx context.Context, relayer common.Address, message, attestation []byte, requestVersion uint32, formattedRequest []byte) (domain.RequestFulfilledEvent, error) {
			if requestVersion != 0 {
				return domain.RequestFulfilledEvent{}, domain.RequestAlreadyFulfilledError{RequestID: requestID}
			}
			s.Require().Equal([]byte{0x01}, message)
			return domain.RequestFulfilledEvent{
				Token:     usdc,
				Amount:    osmomath.NewInt(999),
				Fee:       osmomath.NewInt(1),
				RequestID: requestID,
			}, nil
		},
	}, nil)

	c, rec := newRequest(http.MethodPost, "/bridge/receive", `{"relayer":"`+user.Hex()+`","message":"0x01","attestation":"0x02","request_version":0,"formatted_request":"0x03"}`, nil)
	s.Require().NoError(handler.Receive(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var event domain.RequestFulfilledEvent
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &event))
	s.Require().Equal(requestID, event.RequestID)
	s.Require().Equal("999", event.Amount.String())

	c, rec = newRequest(http.MethodPost, "/bridge/receive", `{"relayer":"`+user.Hex()+`","message":"0x01","attestation":"0x02","request_version":1,"formatted_request":"0x03"}`, nil)
	s.Require().NoError(handler.Receive(c))
	s.Require().Equal(http.StatusConflict, rec.Code)

	c, rec = newRequest(http.MethodPost, "/bridge/receive", `{"relayer":"`+user.Hex()+`","formatted_request":"0x03"}`, nil)
	s.Require().NoError(handler.Receive(c))
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.Require().JSONEq(`{"message":"message and attestation are required"}`, rec.Body.String())
}

func (s *BridgeHandlerSuite) TestGetFee() {
	handler := s.newHandler(nil, nil, nil)
	s.fees.AccumulateFee(context.Background(), usdc, osmomath.NewInt(42))

	testcases := []struct {
		name               string
		target             string
		expectedStatusCode int
		expectedResponse   string
	}{
		{
			name:               "base fee",
			target:             "/bridge/fee?token=" + usdc.Hex() + "&amount=1000000000",
			expectedStatusCode: http.StatusOK,
			expectedResponse:   `{"fee":"1000000","accumulated_fee":"42"}`,
		},
		{
			name:               "swap fee",
			target:             "/bridge/fee?token=" + usdc.Hex() + "&amount=1000000000&isSwap=true",
			expectedStatusCode: http.StatusOK,
			expectedResponse:   `{"fee":"5000000","accumulated_fee":"42"}`,
		},
		{
			name:               "unknown token",
			target:             "/bridge/fee?token=" + usdt.Hex() + "&amount=1000",
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "malformed flag",
			target:             "/bridge/fee?token=" + usdc.Hex() + "&amount=1000&isSwap=maybe",
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testcases {
		s.Run(tc.name, func() {
			c, rec := newRequest(http.MethodGet, tc.target, "", nil)
			s.Require().NoError(handler.GetFee(c))
			s.Require().Equal(tc.expectedStatusCode, rec.Code)
			if tc.expectedResponse != "" {
				s.Require().JSONEq(tc.expectedResponse, rec.Body.String())
			}
		})
	}
}

func (s *BridgeHandlerSuite) TestGetSentMessage() {
	handler := s.newHandler(nil, nil, nil)

	c, rec := newRequest(http.MethodGet, "/bridge/messages/3", "", nil)
	c.SetParamNames("nonce")
	c.SetParamValues("3")
	s.Require().NoError(handler.GetSentMessage(c))
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`{"nonce":3,"message":"0x0102","attestation":"0x03"}`, rec.Body.String())

	c, rec = newRequest(http.MethodGet, "/bridge/messages/4", "", nil)
	c.SetParamNames("nonce")
	c.SetParamValues("4")
	s.Require().NoError(handler.GetSentMessage(c))
	s.Require().Equal(http.StatusNotFound, rec.Code)

	c, rec = newRequest(http.MethodGet, "/bridge/messages/x", "", nil)
	c.SetParamNames("nonce")
	c.SetParamValues("x")
	s.Require().NoError(handler.GetSentMessage(c))
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}

func (s *BridgeHandlerSuite) TestGetRequestRecords() {
	handler := s.newHandler(nil, nil, nil)
	requestID := common.HexToHash("0xabcdef")

	s.Require().NoError(s.requests.StoreRequest(context.Background(), domain.RequestRecord{
		RequestID:        requestID,
		Direction:        domain.RequestDirectionSent,
		Version:          request.RequestBase,
		Domain:           1,
		Token:            usdc,
		Amount:           osmomath.NewInt(1000),
		Recipient:        recipient,
		FormattedRequest: []byte{0x01},
	}))

	c, rec := newRequest(http.MethodGet, "/bridge/requests/"+requestID.Hex(), "", nil)
	c.SetParamNames("id")
	c.SetParamValues(requestID.Hex())
	s.Require().NoError(handler.GetRequestRecords(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var response bridgedelivery.RequestRecordsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Require().NotNil(response.Sent)
	s.Require().Nil(response.Fulfilled)
	s.Require().Equal("1000", response.Sent.Amount.String())

	unknown := common.HexToHash("0x01")
	c, rec = newRequest(http.MethodGet, "/bridge/requests/"+unknown.Hex(), "", nil)
	c.SetParamNames("id")
	c.SetParamValues(unknown.Hex())
	s.Require().NoError(handler.GetRequestRecords(c))
	s.Require().Equal(http.StatusNotFound, rec.Code)

	c, rec = newRequest(http.MethodGet, "/bridge/requests/0x01", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("0x01")
	s.Require().NoError(handler.GetRequestRecords(c))
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}
