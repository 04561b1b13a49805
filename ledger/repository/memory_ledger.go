package ledgerrepo

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
)

const feeBipsDenominator = 10_000

type allowanceKey struct {
	owner   common.Address
	spender common.Address
}

type txCtxKey struct {
	ledger *MemoryLedger
}

// txFrame collects the undo functions registered by one Transact call.
type txFrame struct {
	undo []func()
}

type ledgerState struct {
	balances   map[common.Address]map[common.Address]osmomath.Int
	allowances map[common.Address]map[allowanceKey]osmomath.Int
}

// MemoryLedger is an in-process ERC20 style ledger.
type MemoryLedger struct {
	// txMu serializes state transitions.
	txMu sync.Mutex

	mu    sync.RWMutex
	state ledgerState

	// transferFeeBips is the fee taken from every transfer of a token, burned on transfer.
	transferFeeBips map[common.Address]uint64
}

var _ domain.TokenLedger = &MemoryLedger{}

// New creates an empty ledger.
func New() *MemoryLedger {
	return &MemoryLedger{
		state: ledgerState{
			balances:   make(map[common.Address]map[common.Address]osmomath.Int),
			allowances: make(map[common.Address]map[allowanceKey]osmomath.Int),
		},
		transferFeeBips: make(map[common.Address]uint64),
	}
}

// SetTransferFee configures a fee-on-transfer token.
func (l *MemoryLedger) SetTransferFee(token common.Address, feeBips uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transferFeeBips[token] = feeBips
}

// BalanceOf implements domain.TokenLedger.
func (l *MemoryLedger) BalanceOf(token, holder common.Address) osmomath.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balanceOf(token, holder)
}

// Allowance implements domain.TokenLedger.
func (l *MemoryLedger) Allowance(token, owner, spender common.Address) osmomath.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.allowance(token, owner, spender)
}

// Approve implements domain.TokenLedger.
func (l *MemoryLedger) Approve(token, owner, spender common.Address, amount osmomath.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return domain.InvalidAmountError{Value: amount.String()}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	allowances, ok := l.state.allowances[token]
	if !ok {
		allowances = make(map[allowanceKey]osmomath.Int)
		l.state.allowances[token] = allowances
	}
	allowances[allowanceKey{owner: owner, spender: spender}] = amount

	return nil
}

// Transfer implements domain.TokenLedger.
func (l *MemoryLedger) Transfer(token, from, to common.Address, amount osmomath.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transfer(token, from, to, amount)
}

// TransferFrom implements domain.TokenLedger.
// An allowance of MaxUint256 is treated as infinite and never decreases.
func (l *MemoryLedger) TransferFrom(token, spender, from, to common.Address, amount osmomath.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	allowance := l.allowance(token, from, spender)
	if allowance.LT(amount) {
		return domain.InsufficientAllowanceError{Token: token, Owner: from, Spender: spender, Allowance: allowance, Amount: amount}
	}

	if err := l.transfer(token, from, to, amount); err != nil {
		return err
	}

	if !allowance.Equal(domain.MaxUint256) {
		l.state.allowances[token][allowanceKey{owner: from, spender: spender}] = allowance.Sub(amount)
	}

	return nil
}

// Mint implements domain.TokenLedger.
func (l *MemoryLedger) Mint(token, to common.Address, amount osmomath.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return domain.InvalidAmountError{Value: amount.String()}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.setBalance(token, to, l.balanceOf(token, to).Add(amount))
	return nil
}

// Burn implements domain.TokenLedger.
func (l *MemoryLedger) Burn(token, from common.Address, amount osmomath.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return domain.InvalidAmountError{Value: amount.String()}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance := l.balanceOf(token, from)
	if balance.LT(amount) {
		return domain.InsufficientBalanceError{Token: token, Holder: from, Balance: balance, Amount: amount}
	}
	l.setBalance(token, from, balance.Sub(amount))
	return nil
}

// Transact implements domain.TokenLedger.
func (l *MemoryLedger) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	key := txCtxKey{ledger: l}
	parent, nested := ctx.Value(key).(*txFrame)
	if !nested {
		l.txMu.Lock()
		defer l.txMu.Unlock()
	}

	frame := &txFrame{}
	ctx = context.WithValue(ctx, key, frame)

	snapshot := l.Snapshot()
	if err := fn(ctx); err != nil {
		l.Restore(snapshot)
		for i := len(frame.undo) - 1; i >= 0; i-- {
			frame.undo[i]()
		}
		return err
	}

	if nested {
		parent.undo = append(parent.undo, frame.undo...)
	}
	return nil
}

// OnRollback implements domain.TokenLedger.
func (l *MemoryLedger) OnRollback(ctx context.Context, undo func()) {
	if frame, ok := ctx.Value(txCtxKey{ledger: l}).(*txFrame); ok {
		frame.undo = append(frame.undo, undo)
	}
}

// Snapshot captures the ledger state.
func (l *MemoryLedger) Snapshot() domain.LedgerSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snapshot := ledgerState{
		balances:   make(map[common.Address]map[common.Address]osmomath.Int, len(l.state.balances)),
		allowances: make(map[common.Address]map[allowanceKey]osmomath.Int, len(l.state.allowances)),
	}
	for token, balances := range l.state.balances {
		copied := make(map[common.Address]osmomath.Int, len(balances))
		for holder, balance := range balances {
			copied[holder] = balance
		}
		snapshot.balances[token] = copied
	}
	for token, allowances := range l.state.allowances {
		copied := make(map[allowanceKey]osmomath.Int, len(allowances))
		for key, allowance := range allowances {
			copied[key] = allowance
		}
		snapshot.allowances[token] = copied
	}

	return snapshot
}

// Restore rolls the ledger back to a snapshot.
// Panics if the snapshot was not produced by a MemoryLedger.
func (l *MemoryLedger) Restore(snapshot domain.LedgerSnapshot) {
	state, ok := snapshot.(ledgerState)
	if !ok {
		panic("ledger snapshot of unexpected type")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = state
}

func (l *MemoryLedger) transfer(token, from, to common.Address, amount osmomath.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return domain.InvalidAmountError{Value: amount.String()}
	}

	balance := l.balanceOf(token, from)
	if balance.LT(amount) {
		return domain.InsufficientBalanceError{Token: token, Holder: from, Balance: balance, Amount: amount}
	}

	received := amount
	if feeBips := l.transferFeeBips[token]; feeBips > 0 {
		fee := amount.MulRaw(int64(feeBips)).QuoRaw(feeBipsDenominator)
		received = amount.Sub(fee)
	}

	l.setBalance(token, from, balance.Sub(amount))
	l.setBalance(token, to, l.balanceOf(token, to).Add(received))

	return nil
}

func (l *MemoryLedger) balanceOf(token, holder common.Address) osmomath.Int {
	balance, ok := l.state.balances[token][holder]
	if !ok {
		return osmomath.ZeroInt()
	}
	return balance
}

func (l *MemoryLedger) allowance(token, owner, spender common.Address) osmomath.Int {
	allowance, ok := l.state.allowances[token][allowanceKey{owner: owner, spender: spender}]
	if !ok {
		return osmomath.ZeroInt()
	}
	return allowance
}

func (l *MemoryLedger) setBalance(token, holder common.Address, balance osmomath.Int) {
	balances, ok := l.state.balances[token]
	if !ok {
		balances = make(map[common.Address]osmomath.Int)
		l.state.balances[token] = balances
	}
	balances[holder] = balance
}
