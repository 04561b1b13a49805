// Package request formats and decodes the versioned requests sent along bridged tokens.
//
// A base request is abi.encode(uint32 originDomain, uint64 nonce, address burnToken, uint256 amount, address recipient).
// Versions carrying swap params are abi.encode(bytes baseRequest, bytes swapParams).
package request

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
)

const (
	// RequestBase carries no swap params.
	RequestBase uint32 = iota
	// RequestSwap carries (pool, tokenIndexFrom, tokenIndexTo, deadline, minAmountOut).
	RequestSwap
	// RequestAction carries (action, pool, tokenIndexFrom, tokenIndexTo, deadline, minAmountOut).
	RequestAction
)

const (
	wordLength = 32

	BaseRequestLength      = 5 * wordLength
	SwapParamsLength       = 5 * wordLength
	ActionSwapParamsLength = 6 * wordLength

	// offsets, then two length prefixed byte arrays
	SwapRequestLength   = 2*wordLength + (wordLength + BaseRequestLength) + (wordLength + SwapParamsLength)
	ActionRequestLength = 2*wordLength + (wordLength + BaseRequestLength) + (wordLength + ActionSwapParamsLength)
)

var (
	uint8Type   = mustNewType("uint8")
	uint32Type  = mustNewType("uint32")
	uint64Type  = mustNewType("uint64")
	uint256Type = mustNewType("uint256")
	addressType = mustNewType("address")
	bytesType   = mustNewType("bytes")

	baseRequestArguments = abi.Arguments{
		{Name: "originDomain", Type: uint32Type},
		{Name: "nonce", Type: uint64Type},
		{Name: "burnToken", Type: addressType},
		{Name: "amount", Type: uint256Type},
		{Name: "recipient", Type: addressType},
	}

	swapParamsArguments = abi.Arguments{
		{Name: "pool", Type: addressType},
		{Name: "tokenIndexFrom", Type: uint8Type},
		{Name: "tokenIndexTo", Type: uint8Type},
		{Name: "deadline", Type: uint256Type},
		{Name: "minAmountOut", Type: uint256Type},
	}

	actionSwapParamsArguments = abi.Arguments{
		{Name: "action", Type: uint8Type},
		{Name: "pool", Type: addressType},
		{Name: "tokenIndexFrom", Type: uint8Type},
		{Name: "tokenIndexTo", Type: uint8Type},
		{Name: "deadline", Type: uint256Type},
		{Name: "minAmountOut", Type: uint256Type},
	}

	requestArguments = abi.Arguments{
		{Name: "baseRequest", Type: bytesType},
		{Name: "swapParams", Type: bytesType},
	}
)

// Request is a decoded request. SwapParams is nil for RequestBase.
type Request struct {
	Version    uint32               `json:"version"`
	Base       domain.BridgeRequest `json:"base"`
	SwapParams *domain.SwapParams   `json:"swap_params,omitempty"`
}

// Format formats the request for its version.
func Format(r Request) ([]byte, error) {
	baseRequest, err := FormatBaseRequest(r.Base)
	if err != nil {
		return nil, err
	}

	var swapParams []byte
	if r.SwapParams != nil {
		swapParams, err = FormatSwapParams(r.Version, *r.SwapParams)
		if err != nil {
			return nil, err
		}
	}

	return FormatRequest(r.Version, baseRequest, swapParams)
}

// Decode decodes a formatted request of the given version.
func Decode(version uint32, formatted []byte) (Request, error) {
	baseRequest, swapParams, err := DecodeRequest(version, formatted)
	if err != nil {
		return Request{}, err
	}

	base, err := DecodeBaseRequest(baseRequest)
	if err != nil {
		return Request{}, err
	}

	request := Request{Version: version, Base: base}
	if version == RequestBase {
		return request, nil
	}

	params, err := DecodeSwapParams(version, swapParams)
	if err != nil {
		return Request{}, err
	}
	request.SwapParams = &params

	return request, nil
}

// FormatBaseRequest ABI encodes the base request.
func FormatBaseRequest(r domain.BridgeRequest) ([]byte, error) {
	if r.Amount.IsNil() || r.Amount.IsNegative() {
		return nil, domain.InvalidAmountError{Value: r.Amount.String()}
	}
	return baseRequestArguments.Pack(r.OriginDomain, r.Nonce, r.BurnToken, r.Amount.BigInt(), r.Recipient)
}

// DecodeBaseRequest decodes an ABI encoded base request.
func DecodeBaseRequest(baseRequest []byte) (domain.BridgeRequest, error) {
	if len(baseRequest) != BaseRequestLength {
		return domain.BridgeRequest{}, domain.IncorrectRequestLengthError{Expected: BaseRequestLength, Actual: len(baseRequest)}
	}

	values, err := baseRequestArguments.Unpack(baseRequest)
	if err != nil {
		return domain.BridgeRequest{}, fmt.Errorf("decoding base request: %w", err)
	}

	return domain.BridgeRequest{
		OriginDomain: values[0].(uint32),
		Nonce:        values[1].(uint64),
		BurnToken:    values[2].(common.Address),
		Amount:       osmomath.NewIntFromBigInt(values[3].(*big.Int)),
		Recipient:    values[4].(common.Address),
	}, nil
}

// FormatSwapParams ABI encodes the swap params of a SWAP or ACTION request.
// A SWAP request can only carry the swap action, an ACTION request the swap
// or remove liquidity action.
func FormatSwapParams(version uint32, p domain.SwapParams) ([]byte, error) {
	minAmountOut := p.MinAmountOut
	if minAmountOut.IsNil() {
		minAmountOut = osmomath.ZeroInt()
	}
	if minAmountOut.IsNegative() {
		return nil, domain.InvalidAmountError{Value: minAmountOut.String()}
	}
	deadline := new(big.Int).SetUint64(p.Deadline)

	switch version {
	case RequestSwap:
		if p.Action != domain.ActionSwap {
			return nil, domain.UnsupportedActionError{Action: p.Action}
		}
		return swapParamsArguments.Pack(p.Pool, p.TokenIndexFrom, p.TokenIndexTo, deadline, minAmountOut.BigInt())
	case RequestAction:
		if !isDestinationAction(p.Action) {
			return nil, domain.UnsupportedActionError{Action: p.Action}
		}
		return actionSwapParamsArguments.Pack(uint8(p.Action), p.Pool, p.TokenIndexFrom, p.TokenIndexTo, deadline, minAmountOut.BigInt())
	default:
		return nil, domain.UnknownRequestVersionError{Version: version}
	}
}

// DecodeSwapParams decodes the swap params of a SWAP or ACTION request.
// Deadlines beyond uint64 never expire.
func DecodeSwapParams(version uint32, swapParams []byte) (domain.SwapParams, error) {
	var (
		arguments abi.Arguments
		expected  int
	)
	switch version {
	case RequestSwap:
		arguments, expected = swapParamsArguments, SwapParamsLength
	case RequestAction:
		arguments, expected = actionSwapParamsArguments, ActionSwapParamsLength
	default:
		return domain.SwapParams{}, domain.UnknownRequestVersionError{Version: version}
	}

	if len(swapParams) != expected {
		return domain.SwapParams{}, domain.IncorrectParamsLengthError{Expected: expected, Actual: len(swapParams)}
	}

	values, err := arguments.Unpack(swapParams)
	if err != nil {
		return domain.SwapParams{}, fmt.Errorf("decoding swap params: %w", err)
	}

	params := domain.SwapParams{Action: domain.ActionSwap}
	if version == RequestAction {
		params.Action = domain.Action(values[0].(uint8))
		if !isDestinationAction(params.Action) {
			return domain.SwapParams{}, domain.UnsupportedActionError{Action: params.Action}
		}
		values = values[1:]
	}

	params.Pool = values[0].(common.Address)
	params.TokenIndexFrom = values[1].(uint8)
	params.TokenIndexTo = values[2].(uint8)
	params.Deadline = toDeadline(values[3].(*big.Int))
	params.MinAmountOut = osmomath.NewIntFromBigInt(values[4].(*big.Int))

	return params, nil
}

// isDestinationAction reports whether the action can be performed on the destination chain.
func isDestinationAction(action domain.Action) bool {
	return action == domain.ActionSwap || action == domain.ActionRemoveLiquidity
}

// FormatRequest combines the base request and swap params for the version.
func FormatRequest(version uint32, baseRequest, swapParams []byte) ([]byte, error) {
	if len(baseRequest) != BaseRequestLength {
		return nil, domain.IncorrectRequestLengthError{Expected: BaseRequestLength, Actual: len(baseRequest)}
	}

	switch version {
	case RequestBase:
		if len(swapParams) != 0 {
			return nil, domain.IncorrectParamsLengthError{Expected: 0, Actual: len(swapParams)}
		}
		return baseRequest, nil
	case RequestSwap, RequestAction:
		if _, err := DecodeSwapParams(version, swapParams); err != nil {
			return nil, err
		}
		return requestArguments.Pack(baseRequest, swapParams)
	default:
		return nil, domain.UnknownRequestVersionError{Version: version}
	}
}

// DecodeRequest splits a formatted request into the base request and swap params.
// Swap params are nil for RequestBase.
func DecodeRequest(version uint32, formatted []byte) (baseRequest, swapParams []byte, err error) {
	var expected int
	switch version {
	case RequestBase:
		expected = BaseRequestLength
	case RequestSwap:
		expected = SwapRequestLength
	case RequestAction:
		expected = ActionRequestLength
	default:
		return nil, nil, domain.UnknownRequestVersionError{Version: version}
	}

	if len(formatted) != expected {
		return nil, nil, domain.IncorrectRequestLengthError{Expected: expected, Actual: len(formatted)}
	}

	if version == RequestBase {
		return formatted, nil, nil
	}

	values, err := requestArguments.Unpack(formatted)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding request: %w", err)
	}

	baseRequest, swapParams = values[0].([]byte), values[1].([]byte)
	// Same total length with different offsets.
	if len(baseRequest) != BaseRequestLength {
		return nil, nil, domain.IncorrectRequestLengthError{Expected: BaseRequestLength, Actual: len(baseRequest)}
	}

	return baseRequest, swapParams, nil
}

// RequestID returns keccak256(abi.encodePacked(uint32 destDomain, uint32 version, keccak256(formatted))).
func RequestID(destinationDomain, version uint32, formatted []byte) common.Hash {
	packed := make([]byte, 0, 4+4+common.HashLength)
	packed = binary.BigEndian.AppendUint32(packed, destinationDomain)
	packed = binary.BigEndian.AppendUint32(packed, version)
	packed = append(packed, crypto.Keccak256(formatted)...)

	return crypto.Keccak256Hash(packed)
}

func toDeadline(deadline *big.Int) uint64 {
	if !deadline.IsUint64() {
		return math.MaxUint64
	}
	return deadline.Uint64()
}

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}
