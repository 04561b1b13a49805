package types

import "errors"

// Handler Errors
var (
	ErrTokenInNotSpecified  = errors.New("tokenIn is required")
	ErrTokenOutNotSpecified = errors.New("tokenOut is required")
	ErrAmountInNotSpecified = errors.New("amountIn is required")
	ErrAmountInNotValid     = errors.New("amountIn must be a positive integer")
	ErrTokensInNotSpecified = errors.New("tokensIn is required")
	ErrPoolNotSpecified     = errors.New("pool is required")
	ErrTokenCountNotValid   = errors.New("token_count must be within [0, 256]")
	ErrMinAmountOutNotValid = errors.New("min_amount_out must not be negative")
)
