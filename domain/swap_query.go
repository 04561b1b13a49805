package domain

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/osmosis-labs/osmosis/osmomath"
)

// NoDeadline is the deadline of queries that never expire.
const NoDeadline uint64 = math.MaxUint64

// Action is the action performed by a swap query executor.
type Action uint8

const (
	ActionSwap Action = iota
	ActionAddLiquidity
	ActionRemoveLiquidity
	ActionHandleEth
)

func (a Action) String() string {
	switch a {
	case ActionSwap:
		return "swap"
	case ActionAddLiquidity:
		return "add_liquidity"
	case ActionRemoveLiquidity:
		return "remove_liquidity"
	case ActionHandleEth:
		return "handle_eth"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// SwapQuery describes one leg of a bridge transaction.
// An empty RawParams means no action is performed on that leg.
type SwapQuery struct {
	RouterAdapter common.Address `json:"router_adapter"`
	TokenOut      common.Address `json:"token_out"`
	MinAmountOut  osmomath.Int   `json:"min_amount_out"`
	Deadline      uint64         `json:"deadline"`
	RawParams     hexutil.Bytes  `json:"raw_params"`
}

// HasAction returns true if the query carries action params.
func (q SwapQuery) HasAction() bool {
	return len(q.RawParams) > 0
}

// IsEmpty returns true if the query quotes nothing.
func (q SwapQuery) IsEmpty() bool {
	return q.MinAmountOut.IsNil() || q.MinAmountOut.IsZero()
}

// DefaultParams are the action params understood by the default executor.
type DefaultParams struct {
	Action         Action         `json:"action"`
	Pool           common.Address `json:"pool"`
	TokenIndexFrom uint8          `json:"token_index_from"`
	TokenIndexTo   uint8          `json:"token_index_to"`
}

var (
	uint8Type   = mustNewType("uint8")
	addressType = mustNewType("address")

	defaultParamsArguments = abi.Arguments{
		{Name: "action", Type: uint8Type},
		{Name: "pool", Type: addressType},
		{Name: "tokenIndexFrom", Type: uint8Type},
		{Name: "tokenIndexTo", Type: uint8Type},
	}
)

// DefaultParamsLength is the length of ABI encoded DefaultParams.
const DefaultParamsLength = 4 * 32

// Encode ABI encodes the params.
func (p DefaultParams) Encode() ([]byte, error) {
	return defaultParamsArguments.Pack(uint8(p.Action), p.Pool, p.TokenIndexFrom, p.TokenIndexTo)
}

// DecodeDefaultParams decodes ABI encoded DefaultParams.
func DecodeDefaultParams(raw []byte) (DefaultParams, error) {
	if len(raw) != DefaultParamsLength {
		return DefaultParams{}, IncorrectParamsLengthError{Expected: DefaultParamsLength, Actual: len(raw)}
	}

	values, err := defaultParamsArguments.Unpack(raw)
	if err != nil {
		return DefaultParams{}, fmt.Errorf("decoding default params: %w", err)
	}

	return DefaultParams{
		Action:         Action(values[0].(uint8)),
		Pool:           values[1].(common.Address),
		TokenIndexFrom: values[2].(uint8),
		TokenIndexTo:   values[3].(uint8),
	}, nil
}

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}
