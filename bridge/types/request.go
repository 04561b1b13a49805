package types

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/bridge/request"
	"github.com/MrCuPper/synapse-contracts/domain"
)

// GetOriginAmountOutRequest represents the request for the /bridge/origin-amount-out endpoint.
type GetOriginAmountOutRequest struct {
	TokenIn  common.Address
	Symbols  []string
	AmountIn osmomath.Int
}

// UnmarshalHTTPRequest reads the request from the query parameters.
func (r *GetOriginAmountOutRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	if c.QueryParam("tokenIn") == "" {
		return ErrTokenInNotSpecified
	}
	if r.TokenIn, err = domain.ParseAddressQueryParam(c, "tokenIn"); err != nil {
		return err
	}

	if r.Symbols = domain.SplitAndTrim(c.QueryParam("symbols"), ","); len(r.Symbols) == 0 {
		return ErrSymbolsNotSpecified
	}

	if c.QueryParam("amountIn") == "" {
		return ErrAmountInNotSpecified
	}
	if r.AmountIn, err = domain.ParseAmountQueryParam(c, "amountIn"); err != nil {
		return err
	}
	if !r.AmountIn.IsPositive() {
		return ErrAmountInNotValid
	}
	return nil
}

// DestinationAmountOutRequest is the body of the /bridge/destination-amount-out endpoint.
type DestinationAmountOutRequest struct {
	Requests []domain.DestinationRequest `json:"requests"`
	TokenOut common.Address              `json:"token_out"`
}

// Validate validates the DestinationAmountOutRequest.
// Requests with an unset amount are quoted as zero.
func (r *DestinationAmountOutRequest) Validate() error {
	if len(r.Requests) == 0 {
		return ErrRequestsNotSpecified
	}
	if r.TokenOut == (common.Address{}) {
		return fmt.Errorf("token_out: %w", domain.ErrZeroAddress)
	}
	for i := range r.Requests {
		if r.Requests[i].AmountIn.IsNil() {
			r.Requests[i].AmountIn = osmomath.ZeroInt()
		}
		if r.Requests[i].AmountIn.IsNegative() {
			return ErrRequestAmountNotValid
		}
	}
	return nil
}

// FormatRequestBody is the body of the /bridge/request/format endpoint.
type FormatRequestBody = request.Request

// FormattedRequestResponse is returned by the /bridge/request/format endpoint.
type FormattedRequestResponse struct {
	FormattedRequest hexutil.Bytes `json:"formatted_request"`
}

// DecodeRequestBody is the body of the /bridge/request/decode endpoint.
type DecodeRequestBody struct {
	Version          uint32        `json:"version"`
	FormattedRequest hexutil.Bytes `json:"formatted_request"`
}

// Validate validates the DecodeRequestBody.
func (r *DecodeRequestBody) Validate() error {
	if len(r.FormattedRequest) == 0 {
		return ErrFormattedRequestRequired
	}
	return nil
}

// GetRequestIDRequest represents the request for the /bridge/request/id endpoint.
type GetRequestIDRequest struct {
	DestinationDomain uint32
	Version           uint32
	FormattedRequest  []byte
}

// UnmarshalHTTPRequest reads the request from the query parameters.
func (r *GetRequestIDRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	if r.DestinationDomain, err = parseUint32QueryParam(c, "destinationDomain"); err != nil {
		return err
	}
	if r.Version, err = parseUint32QueryParam(c, "version"); err != nil {
		return err
	}

	formattedRequest := c.QueryParam("formattedRequest")
	if formattedRequest == "" {
		return ErrFormattedRequestRequired
	}
	if r.FormattedRequest, err = hexutil.Decode(formattedRequest); err != nil {
		return fmt.Errorf("formattedRequest: %s: %w", err, domain.ErrBadParamInput)
	}
	return nil
}

// RequestIDResponse is returned by the /bridge/request/id endpoint.
type RequestIDResponse struct {
	RequestID common.Hash `json:"request_id"`
}

// AddTokenRequest is the body of the POST /bridge/tokens endpoint.
type AddTokenRequest struct {
	domain.BridgeToken
}

// Validate validates the AddTokenRequest. Unset fee amounts default to zero.
func (r *AddTokenRequest) Validate() error {
	if r.Token == (common.Address{}) {
		return fmt.Errorf("token: %w", domain.ErrZeroAddress)
	}
	r.Fee = withZeroFees(r.Fee)
	return nil
}

// RemoveTokenRequest represents the request for the DELETE /bridge/tokens endpoint.
type RemoveTokenRequest struct {
	Token common.Address
}

// UnmarshalHTTPRequest reads the request from the query parameters.
func (r *RemoveTokenRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	if c.QueryParam("token") == "" {
		return ErrTokenNotSpecified
	}
	r.Token, err = domain.ParseAddressQueryParam(c, "token")
	return err
}

// SetTokenFeeRequest is the body of the /bridge/tokens/fee endpoint.
type SetTokenFeeRequest struct {
	Token common.Address      `json:"token"`
	Fee   domain.FeeStructure `json:"fee"`
}

// Validate validates the SetTokenFeeRequest.
func (r *SetTokenFeeRequest) Validate() error {
	if r.Token == (common.Address{}) {
		return fmt.Errorf("token: %w", domain.ErrZeroAddress)
	}
	if r.Fee.MinBaseFee.IsNil() || r.Fee.MinSwapFee.IsNil() || r.Fee.MaxFee.IsNil() {
		return ErrFeeNotSpecified
	}
	return nil
}

// RemoteDomainRequest is the body of the /bridge/remote-domains endpoint.
type RemoteDomainRequest = domain.RemoteDomainConfig

// SendRequest is the body of the /bridge/send endpoint.
type SendRequest struct {
	Sender      common.Address   `json:"sender"`
	Recipient   common.Address   `json:"recipient"`
	ChainID     uint64           `json:"chain_id"`
	Token       common.Address   `json:"token"`
	Amount      osmomath.Int     `json:"amount"`
	OriginQuery domain.SwapQuery `json:"origin_query"`
	DestQuery   domain.SwapQuery `json:"dest_query"`
}

// Validate validates the SendRequest.
func (r *SendRequest) Validate() error {
	if r.Sender == (common.Address{}) {
		return fmt.Errorf("sender: %w", domain.ErrZeroAddress)
	}
	if r.Recipient == (common.Address{}) {
		return fmt.Errorf("recipient: %w", domain.ErrZeroAddress)
	}
	if r.Amount.IsNil() || !r.Amount.IsPositive() {
		return ErrAmountNotValid
	}
	return nil
}

// ReceiveRequest is the body of the /bridge/receive endpoint.
type ReceiveRequest struct {
	Relayer          common.Address `json:"relayer"`
	Message          hexutil.Bytes  `json:"message"`
	Attestation      hexutil.Bytes  `json:"attestation"`
	RequestVersion   uint32         `json:"request_version"`
	FormattedRequest hexutil.Bytes  `json:"formatted_request"`
}

// Validate validates the ReceiveRequest.
func (r *ReceiveRequest) Validate() error {
	if len(r.Message) == 0 || len(r.Attestation) == 0 {
		return ErrMessageNotSpecified
	}
	if len(r.FormattedRequest) == 0 {
		return ErrFormattedRequestRequired
	}
	return nil
}

// GetFeeRequest represents the request for the /bridge/fee endpoint.
type GetFeeRequest struct {
	Token  common.Address
	Amount osmomath.Int
	IsSwap bool
}

// UnmarshalHTTPRequest reads the request from the query parameters.
func (r *GetFeeRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	if c.QueryParam("token") == "" {
		return ErrTokenNotSpecified
	}
	if r.Token, err = domain.ParseAddressQueryParam(c, "token"); err != nil {
		return err
	}
	if r.Amount, err = domain.ParseAmountQueryParam(c, "amount"); err != nil {
		return err
	}
	r.IsSwap, err = domain.ParseBooleanQueryParam(c, "isSwap")
	return err
}

// ParseNonce parses the nonce path parameter.
func ParseNonce(c echo.Context) (uint64, error) {
	nonce, err := strconv.ParseUint(c.Param("nonce"), 10, 64)
	if err != nil {
		return 0, ErrNonceNotValid
	}
	return nonce, nil
}

// ParseRequestID parses the id path parameter.
func ParseRequestID(c echo.Context) (common.Hash, error) {
	raw, err := hexutil.Decode(c.Param("id"))
	if err != nil || len(raw) != common.HashLength {
		return common.Hash{}, ErrRequestIDNotValid
	}
	return common.BytesToHash(raw), nil
}

func parseUint32QueryParam(c echo.Context, paramName string) (uint32, error) {
	paramValueStr := c.QueryParam(paramName)
	if paramValueStr == "" {
		return 0, fmt.Errorf("%s is required: %w", paramName, domain.ErrBadParamInput)
	}

	value, err := strconv.ParseUint(paramValueStr, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be an unsigned 32 bit integer: %w", paramName, domain.ErrBadParamInput)
	}
	return uint32(value), nil
}

func withZeroFees(fee domain.FeeStructure) domain.FeeStructure {
	if fee.MinBaseFee.IsNil() {
		fee.MinBaseFee = osmomath.ZeroInt()
	}
	if fee.MinSwapFee.IsNil() {
		fee.MinSwapFee = osmomath.ZeroInt()
	}
	if fee.MaxFee.IsNil() {
		fee.MaxFee = osmomath.ZeroInt()
	}
	return fee
}
