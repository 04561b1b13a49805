package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
)

// GetQuoteRequest represents the request for the /router/quote endpoint.
// The indexes are tree node indexes.
type GetQuoteRequest struct {
	TokenIndexFrom uint8
	TokenIndexTo   uint8
	AmountIn       osmomath.Int
}

// UnmarshalHTTPRequest reads the request from the query parameters.
func (r *GetQuoteRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	if r.TokenIndexFrom, err = domain.ParseIndexQueryParam(c, "tokenIndexFrom"); err != nil {
		return err
	}
	if r.TokenIndexTo, err = domain.ParseIndexQueryParam(c, "tokenIndexTo"); err != nil {
		return err
	}
	r.AmountIn, err = parseAmountIn(c)
	return err
}

// GetBestPathRequest represents the request for the /router/best-path endpoint.
type GetBestPathRequest struct {
	TokenIn  common.Address
	TokenOut common.Address
	AmountIn osmomath.Int
}

// UnmarshalHTTPRequest reads the request from the query parameters.
func (r *GetBestPathRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	if c.QueryParam("tokenIn") == "" {
		return ErrTokenInNotSpecified
	}
	if c.QueryParam("tokenOut") == "" {
		return ErrTokenOutNotSpecified
	}

	if r.TokenIn, err = domain.ParseAddressQueryParam(c, "tokenIn"); err != nil {
		return err
	}
	if r.TokenOut, err = domain.ParseAddressQueryParam(c, "tokenOut"); err != nil {
		return err
	}
	r.AmountIn, err = parseAmountIn(c)
	return err
}

// GetConnectedTokensRequest represents the request for the /router/connected-tokens endpoint.
type GetConnectedTokensRequest struct {
	TokensIn []common.Address
	TokenOut common.Address
}

// UnmarshalHTTPRequest reads the request from the query parameters.
func (r *GetConnectedTokensRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	tokensIn := c.QueryParam("tokensIn")
	if tokensIn == "" {
		return ErrTokensInNotSpecified
	}
	if c.QueryParam("tokenOut") == "" {
		return ErrTokenOutNotSpecified
	}

	if r.TokensIn, err = domain.ParseAddresses(tokensIn); err != nil {
		return err
	}
	r.TokenOut, err = domain.ParseAddressQueryParam(c, "tokenOut")
	return err
}

// SwapRequest is the body of the /router/swap endpoint.
type SwapRequest struct {
	Caller         common.Address `json:"caller"`
	TokenIndexFrom uint8          `json:"token_index_from"`
	TokenIndexTo   uint8          `json:"token_index_to"`
	AmountIn       osmomath.Int   `json:"amount_in"`
	MinAmountOut   osmomath.Int   `json:"min_amount_out"`
	// Deadline is a unix timestamp in seconds. No deadline applies if unset.
	Deadline *uint64 `json:"deadline,omitempty"`
}

// Validate validates the SwapRequest and fills in defaults.
func (r *SwapRequest) Validate() error {
	if r.Caller == (common.Address{}) {
		return fmt.Errorf("caller: %w", domain.ErrZeroAddress)
	}
	if r.AmountIn.IsNil() || !r.AmountIn.IsPositive() {
		return ErrAmountInNotValid
	}
	if r.MinAmountOut.IsNil() {
		r.MinAmountOut = osmomath.ZeroInt()
	}
	if r.MinAmountOut.IsNegative() {
		return ErrMinAmountOutNotValid
	}
	return nil
}

// GetDeadline returns the request deadline or domain.NoDeadline if unset.
func (r *SwapRequest) GetDeadline() uint64 {
	if r.Deadline == nil {
		return domain.NoDeadline
	}
	return *r.Deadline
}

// AddPoolRequest is the body of the /router/pools endpoint.
type AddPoolRequest struct {
	NodeIndex  int            `json:"node_index"`
	Pool       common.Address `json:"pool"`
	TokenCount int            `json:"token_count"`
}

// Validate validates the AddPoolRequest.
func (r *AddPoolRequest) Validate() error {
	if r.Pool == (common.Address{}) {
		return ErrPoolNotSpecified
	}
	if r.TokenCount < 0 || r.TokenCount > domain.MaxNodes {
		return ErrTokenCountNotValid
	}
	return nil
}

func parseAmountIn(c echo.Context) (osmomath.Int, error) {
	if c.QueryParam("amountIn") == "" {
		return osmomath.Int{}, ErrAmountInNotSpecified
	}

	amountIn, err := domain.ParseAmountQueryParam(c, "amountIn")
	if err != nil {
		return osmomath.Int{}, err
	}
	if !amountIn.IsPositive() {
		return osmomath.Int{}, ErrAmountInNotValid
	}
	return amountIn, nil
}
