package domain

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")

	ErrUnauthorized         = errors.New("caller is not the owner")
	ErrReentrantCall        = errors.New("reentrant call")
	ErrZeroAddress          = errors.New("zero address")
	ErrEqualSwapIndexes     = errors.New("swap indexes are equal")
	ErrTooManyPools         = fmt.Errorf("too many pools, at most %d are supported", MaxPools)
	ErrTooManyNodes         = fmt.Errorf("too many nodes, at most %d are supported", MaxNodes)
	ErrExecutionUnsupported = errors.New("pool does not support execution")
	ErrZeroAmount           = errors.New("amount must be positive")
	ErrAmountOverflow       = errors.New("amount overflows uint256")
)

// GetStatusCode returns the HTTP status code for the given error.
func GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		switch e {
		case ErrInternalServerError:
			return http.StatusInternalServerError
		case ErrNotFound:
			return http.StatusNotFound
		case ErrConflict:
			return http.StatusConflict
		case ErrUnauthorized:
			return http.StatusUnauthorized
		case ErrBadParamInput, ErrZeroAddress, ErrEqualSwapIndexes, ErrTooManyPools, ErrTooManyNodes, ErrZeroAmount, ErrAmountOverflow:
			return http.StatusBadRequest
		}

		switch e.(type) {
		case UnknownSymbolError, UnknownTokenError, PoolNotFoundError:
			return http.StatusNotFound
		case TokenAlreadyAddedError, PoolAlreadyAttachedError, RequestAlreadyFulfilledError:
			return http.StatusConflict
		case OutOfRangeError, NodeTokenNotFoundInPoolError, ParentPoolCannotBeAttachedError,
			RootTokenMustBeAtRootError, PoolReusedError, DeadlineExceededError,
			InsufficientOutputAmountError, UnknownRequestVersionError, IncorrectRequestLengthError,
			IncorrectParamsLengthError, UnsupportedActionError, SymbolIncorrectError,
			IncorrectFeeConfigError, RemoteDomainNotConfiguredError, IncorrectRemoteDomainError,
			InsufficientBalanceError, InsufficientAllowanceError, InvalidAddressError,
			InvalidAmountError, InvalidTokenIndexError, PoolPausedError, UnknownPoolKindError,
			TokenNotInPoolError, RequestMismatchError, InvalidAttestationError:
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type OutOfRangeError struct {
	Index int
	Max   int
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("index (%d) is out of range, must be below %d", e.Index, e.Max)
}

type NodeTokenNotFoundInPoolError struct {
	NodeIndex int
	Token     common.Address
	Pool      common.Address
}

func (e NodeTokenNotFoundInPoolError) Error() string {
	return fmt.Sprintf("token %s of node %d not found in pool %s", e.Token, e.NodeIndex, e.Pool)
}

type ParentPoolCannotBeAttachedError struct {
	NodeIndex int
	Pool      common.Address
}

func (e ParentPoolCannotBeAttachedError) Error() string {
	return fmt.Sprintf("pool %s is the parent pool of node %d and cannot be attached to it", e.Pool, e.NodeIndex)
}

type PoolAlreadyAttachedError struct {
	NodeIndex int
	Pool      common.Address
}

func (e PoolAlreadyAttachedError) Error() string {
	return fmt.Sprintf("pool %s is already attached to node %d", e.Pool, e.NodeIndex)
}

// RootTokenMustBeAtRootError is returned when a pool would introduce the root token below the root.
type RootTokenMustBeAtRootError struct {
	Token common.Address
	Pool  common.Address
}

func (e RootTokenMustBeAtRootError) Error() string {
	return fmt.Sprintf("root token %s of pool %s can only be at the root node", e.Token, e.Pool)
}

type PoolReusedError struct {
	PoolIndex uint8
	Pool      common.Address
}

func (e PoolReusedError) Error() string {
	return fmt.Sprintf("pool %s (index %d) is used more than once on the path", e.Pool, e.PoolIndex)
}

type DeadlineExceededError struct {
	Deadline uint64
	Now      uint64
}

func (e DeadlineExceededError) Error() string {
	return fmt.Sprintf("deadline (%d) exceeded, current time is %d", e.Deadline, e.Now)
}

type InsufficientOutputAmountError struct {
	AmountOut    osmomath.Int
	MinAmountOut osmomath.Int
}

func (e InsufficientOutputAmountError) Error() string {
	return fmt.Sprintf("insufficient output amount: got %s, expected at least %s", e.AmountOut, e.MinAmountOut)
}

type UnknownRequestVersionError struct {
	Version uint32
}

func (e UnknownRequestVersionError) Error() string {
	return fmt.Sprintf("unknown request version (%d)", e.Version)
}

type IncorrectRequestLengthError struct {
	Expected int
	Actual   int
}

func (e IncorrectRequestLengthError) Error() string {
	return fmt.Sprintf("incorrect request length: expected %d bytes, got %d", e.Expected, e.Actual)
}

type IncorrectParamsLengthError struct {
	Expected int
	Actual   int
}

func (e IncorrectParamsLengthError) Error() string {
	return fmt.Sprintf("incorrect params length: expected %d bytes, got %d", e.Expected, e.Actual)
}

type UnknownSymbolError struct {
	Symbol string
}

func (e UnknownSymbolError) Error() string {
	return fmt.Sprintf("symbol (%s) is not a supported bridge token", e.Symbol)
}

type UnknownTokenError struct {
	Token common.Address
}

func (e UnknownTokenError) Error() string {
	return fmt.Sprintf("token (%s) is not a supported bridge token", e.Token)
}

type UnsupportedActionError struct {
	Action Action
}

func (e UnsupportedActionError) Error() string {
	return fmt.Sprintf("action (%s) is not supported", e.Action)
}

type SymbolIncorrectError struct {
	Symbol string
	Prefix string
}

func (e SymbolIncorrectError) Error() string {
	return fmt.Sprintf("symbol (%s) must be of the form %s<NAME>", e.Symbol, e.Prefix)
}

type TokenAlreadyAddedError struct {
	Symbol string
	Token  common.Address
}

func (e TokenAlreadyAddedError) Error() string {
	return fmt.Sprintf("token %s or symbol %s is already added", e.Token, e.Symbol)
}

type IncorrectFeeConfigError struct {
	Reason string
}

func (e IncorrectFeeConfigError) Error() string {
	return "incorrect fee config: " + e.Reason
}

type RemoteDomainNotConfiguredError struct {
	ChainID uint64
}

func (e RemoteDomainNotConfiguredError) Error() string {
	return fmt.Sprintf("remote domain for chain (%d) is not configured", e.ChainID)
}

type IncorrectRemoteDomainError struct {
	ChainID uint64
	Domain  uint32
	Reason  string
}

func (e IncorrectRemoteDomainError) Error() string {
	return fmt.Sprintf("incorrect remote domain %d for chain %d: %s", e.Domain, e.ChainID, e.Reason)
}

type RequestAlreadyFulfilledError struct {
	RequestID common.Hash
}

func (e RequestAlreadyFulfilledError) Error() string {
	return fmt.Sprintf("request %s is already fulfilled", e.RequestID)
}

type RequestMismatchError struct {
	RequestID         common.Hash
	DestinationCaller common.Hash
}

func (e RequestMismatchError) Error() string {
	return fmt.Sprintf("message destination caller %s does not match request %s", e.DestinationCaller, e.RequestID)
}

type InvalidAttestationError struct {
	Reason string
}

func (e InvalidAttestationError) Error() string {
	return "invalid attestation: " + e.Reason
}

type InsufficientBalanceError struct {
	Token   common.Address
	Holder  common.Address
	Balance osmomath.Int
	Amount  osmomath.Int
}

func (e InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance of %s: have %s, need %s", e.Token, e.Holder, e.Balance, e.Amount)
}

type InsufficientAllowanceError struct {
	Token     common.Address
	Owner     common.Address
	Spender   common.Address
	Allowance osmomath.Int
	Amount    osmomath.Int
}

func (e InsufficientAllowanceError) Error() string {
	return fmt.Sprintf("insufficient %s allowance from %s to %s: have %s, need %s", e.Token, e.Owner, e.Spender, e.Allowance, e.Amount)
}

type PoolNotFoundError struct {
	Address common.Address
}

func (e PoolNotFoundError) Error() string {
	return fmt.Sprintf("pool (%s) is not found", e.Address)
}

type PoolPausedError struct {
	Address common.Address
}

func (e PoolPausedError) Error() string {
	return fmt.Sprintf("pool (%s) is paused", e.Address)
}

type InvalidTokenIndexError struct {
	Pool  common.Address
	Index uint8
}

func (e InvalidTokenIndexError) Error() string {
	return fmt.Sprintf("pool %s has no token at index %d", e.Pool, e.Index)
}

type InvalidAddressError struct {
	Value string
}

func (e InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address (%s)", e.Value)
}

type InvalidAmountError struct {
	Value string
}

func (e InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount (%s)", e.Value)
}

type TokenNotInPoolError struct {
	Token common.Address
	Pool  common.Address
}

func (e TokenNotInPoolError) Error() string {
	return fmt.Sprintf("token %s is not in pool %s", e.Token, e.Pool)
}

type UnknownPoolKindError struct {
	Kind string
}

func (e UnknownPoolKindError) Error() string {
	return fmt.Sprintf("unknown pool kind (%s)", e.Kind)
}
