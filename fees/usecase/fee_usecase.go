package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
)

var feeDenominator = osmomath.NewInt(domain.FeeDenominator)

// FeeStructureGetter returns the fee structure of a bridge token.
type FeeStructureGetter interface {
	GetToken(token common.Address) (domain.BridgeToken, error)
}

type feeUsecase struct {
	tokens FeeStructureGetter

	mu              sync.Mutex
	accumulatedFees map[common.Address]osmomath.Int
}

var _ mvc.FeeUsecase = &feeUsecase{}

// NewFeeUsecase returns a fee usecase reading the fee structures from tokens.
func NewFeeUsecase(tokens FeeStructureGetter) mvc.FeeUsecase {
	return &feeUsecase{
		tokens:          tokens,
		accumulatedFees: make(map[common.Address]osmomath.Int),
	}
}

// CalculateFeeAmount implements mvc.FeeUsecase.
func (f *feeUsecase) CalculateFeeAmount(_ context.Context, token common.Address, amount osmomath.Int, isSwap bool) (osmomath.Int, error) {
	bridgeToken, err := f.tokens.GetToken(token)
	if err != nil {
		return osmomath.Int{}, err
	}

	return CalculateFee(bridgeToken.Fee, amount, isSwap)
}

// AccumulateFee implements mvc.FeeUsecase.
func (f *feeUsecase) AccumulateFee(_ context.Context, token common.Address, fee osmomath.Int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	accumulated, ok := f.accumulatedFees[token]
	if !ok {
		accumulated = osmomath.ZeroInt()
	}
	f.accumulatedFees[token] = accumulated.Add(fee)
}

// GetAccumulatedFee implements mvc.FeeUsecase.
func (f *feeUsecase) GetAccumulatedFee(_ context.Context, token common.Address) osmomath.Int {
	f.mu.Lock()
	defer f.mu.Unlock()

	accumulated, ok := f.accumulatedFees[token]
	if !ok {
		return osmomath.ZeroInt()
	}
	return accumulated
}

// CalculateFee returns amount * PercentageFee / FeeDenominator clamped to
// [minimum fee, MaxFee]. The minimum is MinSwapFee for swap legs and MinBaseFee otherwise.
// An amount whose product with PercentageFee exceeds 256 bits fails with domain.ErrAmountOverflow.
func CalculateFee(fee domain.FeeStructure, amount osmomath.Int, isSwap bool) (osmomath.Int, error) {
	scaled, err := amount.SafeMul(osmomath.NewIntFromUint64(fee.PercentageFee))
	if err != nil {
		return osmomath.Int{}, fmt.Errorf("fee of %s: %w", amount, domain.ErrAmountOverflow)
	}
	feeAmount := scaled.Quo(feeDenominator)

	minFee := fee.MinBaseFee
	if isSwap {
		minFee = fee.MinSwapFee
	}

	if feeAmount.LT(minFee) {
		feeAmount = minFee
	}
	if feeAmount.GT(fee.MaxFee) {
		feeAmount = fee.MaxFee
	}
	return feeAmount, nil
}
