package types

import "errors"

// Handler Errors
var (
	ErrTokenInNotSpecified      = errors.New("tokenIn is required")
	ErrTokenNotSpecified        = errors.New("token is required")
	ErrSymbolsNotSpecified      = errors.New("symbols is required")
	ErrAmountInNotSpecified     = errors.New("amountIn is required")
	ErrAmountInNotValid         = errors.New("amountIn must be a positive integer")
	ErrAmountNotValid           = errors.New("amount must be a positive integer")
	ErrRequestsNotSpecified     = errors.New("requests must not be empty")
	ErrRequestAmountNotValid    = errors.New("amount_in of every request must not be negative")
	ErrFormattedRequestRequired = errors.New("formattedRequest is required")
	ErrMessageNotSpecified      = errors.New("message and attestation are required")
	ErrNonceNotValid            = errors.New("nonce must be an unsigned integer")
	ErrRequestIDNotValid        = errors.New("request id must be a 32 byte hex string")
	ErrFeeNotSpecified          = errors.New("fee amounts are required")
)
