package rpcpool

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/sbrutil/datafetchers"
)

const defaultPoolABIJSON = `[
{"inputs":[{"name":"index","type":"uint8"}],"name":"getToken","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"tokenIndexFrom","type":"uint8"},{"name":"tokenIndexTo","type":"uint8"},{"name":"dx","type":"uint256"}],"name":"calculateSwap","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"paused","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"}
]`

// DefaultPoolABI is the ABI subset of default pools read by this package.
var DefaultPoolABI abi.ABI

func init() {
	var err error
	DefaultPoolABI, err = abi.JSON(strings.NewReader(defaultPoolABIJSON))
	if err != nil {
		panic(err)
	}
}

// ContractCaller performs read only contract calls. Satisfied by *ethclient.Client.
type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Pool is a default pool deployed on chain, read over JSON-RPC.
// It can be quoted and attached to the tree but not swapped through.
type Pool struct {
	address common.Address
	caller  ContractCaller

	// paused is set by WithPausedRefresh.
	paused *datafetchers.IntervalFetcher[bool]
}

var (
	_ domain.Pool         = &Pool{}
	_ domain.PausablePool = &Pool{}
)

// New creates a pool reading the contract at address through caller.
func New(address common.Address, caller ContractCaller) *Pool {
	return &Pool{
		address: address,
		caller:  caller,
	}
}

// Dial connects to the RPC endpoint and creates a pool reading the contract at address.
func Dial(ctx context.Context, endpoint string, address common.Address) (*Pool, error) {
	client, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", endpoint, err)
	}
	return New(address, client), nil
}

// WithPausedRefresh reads the paused flag in the background every interval
// instead of on every Paused call.
func (p *Pool) WithPausedRefresh(interval time.Duration) *Pool {
	p.paused = datafetchers.NewIntervalFetcher(p.readPaused, interval)
	return p
}

// Close stops the background refresh, if any.
func (p *Pool) Close() {
	if p.paused != nil {
		p.paused.Close()
	}
}

// Address implements domain.Pool.
func (p *Pool) Address() common.Address {
	return p.address
}

// GetToken implements domain.Pool.
func (p *Pool) GetToken(ctx context.Context, index uint8) (common.Address, error) {
	values, err := p.call(ctx, "getToken", index)
	if err != nil {
		return common.Address{}, err
	}

	token, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected getToken return type %T", values[0])
	}
	if token == (common.Address{}) {
		return common.Address{}, domain.InvalidTokenIndexError{Pool: p.address, Index: index}
	}
	return token, nil
}

// CalculateSwap implements domain.Pool.
func (p *Pool) CalculateSwap(ctx context.Context, tokenIndexFrom, tokenIndexTo uint8, dx osmomath.Int) (osmomath.Int, error) {
	values, err := p.call(ctx, "calculateSwap", tokenIndexFrom, tokenIndexTo, dx.BigInt())
	if err != nil {
		return osmomath.Int{}, err
	}

	dy, ok := values[0].(*big.Int)
	if !ok {
		return osmomath.Int{}, fmt.Errorf("unexpected calculateSwap return type %T", values[0])
	}
	return osmomath.NewIntFromBigInt(dy), nil
}

// Swap implements domain.Pool. On chain pools are quote only.
func (p *Pool) Swap(context.Context, common.Address, uint8, uint8, osmomath.Int, osmomath.Int, uint64) (osmomath.Int, error) {
	return osmomath.Int{}, domain.ErrExecutionUnsupported
}

// Paused implements domain.PausablePool.
// With a background refresh, a stale flag is an error.
func (p *Pool) Paused(ctx context.Context) (bool, error) {
	if p.paused == nil {
		return p.readPaused(ctx)
	}

	paused, _, err := p.paused.Get()
	if err != nil {
		return false, err
	}
	if p.paused.IsStale() {
		return false, fmt.Errorf("paused flag of %s is stale", p.address)
	}
	return paused, nil
}

func (p *Pool) readPaused(ctx context.Context) (bool, error) {
	values, err := p.call(ctx, "paused")
	if err != nil {
		return false, err
	}

	paused, ok := values[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected paused return type %T", values[0])
	}
	return paused, nil
}

func (p *Pool) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := DefaultPoolABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", method, err)
	}

	output, err := p.caller.CallContract(ctx, ethereum.CallMsg{
		To:   &p.address,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("calling %s on %s: %w", method, p.address, err)
	}

	values, err := DefaultPoolABI.Unpack(method, output)
	if err != nil {
		return nil, fmt.Errorf("unpacking %s: %w", method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%s returned no values", method)
	}
	return values, nil
}
