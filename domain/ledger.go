package domain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
)

// TokenLedger is an ERC20 style token ledger shared by pools, the router and the bridge.
type TokenLedger interface {
	BalanceOf(token, holder common.Address) osmomath.Int
	Allowance(token, owner, spender common.Address) osmomath.Int
	// Approve sets the allowance of spender over the owner tokens.
	Approve(token, owner, spender common.Address, amount osmomath.Int) error
	// Transfer moves amount from one holder to another.
	// Tokens with a transfer fee deliver less than amount.
	Transfer(token, from, to common.Address, amount osmomath.Int) error
	// TransferFrom moves amount on behalf of spender, consuming its allowance.
	TransferFrom(token, spender, from, to common.Address, amount osmomath.Int) error
	Mint(token, to common.Address, amount osmomath.Int) error
	Burn(token, from common.Address, amount osmomath.Int) error

	// Transact runs fn as a single state transition: transitions never interleave
	// and every change made by fn is rolled back if it returns an error.
	// A call nested in a running transition joins it, rolling back only its own changes.
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
	// OnRollback registers undo to run if the transition running in ctx is rolled back.
	// State kept outside of the ledger uses it to follow the ledger state.
	// It is a no-op outside of a transition.
	OnRollback(ctx context.Context, undo func())
}

// LedgerSnapshot is an opaque copy of the ledger state.
type LedgerSnapshot interface{}

// MaxUint256 is used as the infinite allowance.
var MaxUint256 = osmomath.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)))
