package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/osmosis-labs/osmosis/osmomath"
)

const (
	// FeeDenominator is the denominator of percentage fees.
	FeeDenominator = 10_000_000_000
	// MaxRelayerFee caps the percentage fee at 0.1%.
	MaxRelayerFee = 10_000_000
)

// TransferMode is the way a bridge token moves between chains.
type TransferMode uint8

const (
	TransferModeBurnMint TransferMode = iota
	TransferModeLockMint
)

func (m TransferMode) String() string {
	switch m {
	case TransferModeBurnMint:
		return "burn-mint"
	case TransferModeLockMint:
		return "lock-mint"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseTransferMode parses the config representation of a transfer mode.
// An empty string defaults to burn-mint.
func ParseTransferMode(s string) (TransferMode, error) {
	switch s {
	case "", "burn-mint":
		return TransferModeBurnMint, nil
	case "lock-mint":
		return TransferModeLockMint, nil
	default:
		return 0, fmt.Errorf("unknown transfer mode (%s)", s)
	}
}

func (m TransferMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *TransferMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	mode, err := ParseTransferMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// FeeStructure is the per token fee record.
type FeeStructure struct {
	// PercentageFee is expressed in FeeDenominator units.
	PercentageFee uint64       `json:"percentage_fee"`
	MinBaseFee    osmomath.Int `json:"min_base_fee"`
	MinSwapFee    osmomath.Int `json:"min_swap_fee"`
	MaxFee        osmomath.Int `json:"max_fee"`
}

// Validate checks that minBaseFee <= minSwapFee <= maxFee and the percentage is capped.
func (f FeeStructure) Validate() error {
	if f.MinBaseFee.IsNil() || f.MinSwapFee.IsNil() || f.MaxFee.IsNil() {
		return IncorrectFeeConfigError{Reason: "fee amounts must be set"}
	}
	if f.PercentageFee > MaxRelayerFee {
		return IncorrectFeeConfigError{Reason: fmt.Sprintf("percentage fee %d exceeds %d", f.PercentageFee, MaxRelayerFee)}
	}
	if f.MinBaseFee.IsNegative() {
		return IncorrectFeeConfigError{Reason: "min base fee is negative"}
	}
	if f.MinBaseFee.GT(f.MinSwapFee) {
		return IncorrectFeeConfigError{Reason: "min base fee exceeds min swap fee"}
	}
	if f.MinSwapFee.GT(f.MaxFee) {
		return IncorrectFeeConfigError{Reason: "min swap fee exceeds max fee"}
	}
	return nil
}

// BridgeToken is a token that can be moved across chains.
type BridgeToken struct {
	Symbol       string         `json:"symbol"`
	Token        common.Address `json:"token"`
	RemoteToken  common.Address `json:"remote_token"`
	TransferMode TransferMode   `json:"transfer_mode"`
	Fee          FeeStructure   `json:"fee"`
}

// RemoteDomainConfig maps a remote chain to its bridge domain and contract.
type RemoteDomainConfig struct {
	ChainID  uint64         `json:"chain_id"`
	Domain   uint32         `json:"domain"`
	Contract common.Address `json:"contract"`
}

// BridgeRequest is a decoded cross chain request.
type BridgeRequest struct {
	OriginDomain uint32         `json:"origin_domain"`
	Nonce        uint64         `json:"nonce"`
	BurnToken    common.Address `json:"burn_token"`
	Amount       osmomath.Int   `json:"amount"`
	Recipient    common.Address `json:"recipient"`
}

// SwapParams are the destination action params carried by a request.
type SwapParams struct {
	Action         Action         `json:"action"`
	Pool           common.Address `json:"pool"`
	TokenIndexFrom uint8          `json:"token_index_from"`
	TokenIndexTo   uint8          `json:"token_index_to"`
	Deadline       uint64         `json:"deadline"`
	MinAmountOut   osmomath.Int   `json:"min_amount_out"`
}

// DestinationRequest is a single destination quote request.
type DestinationRequest struct {
	Symbol   string       `json:"symbol"`
	AmountIn osmomath.Int `json:"amount_in"`
}

// RequestRecord is a persisted sent or fulfilled request.
type RequestRecord struct {
	RequestID        common.Hash    `json:"request_id"`
	Direction        string         `json:"direction"`
	Version          uint32         `json:"version"`
	Domain           uint32         `json:"domain"`
	Token            common.Address `json:"token"`
	Amount           osmomath.Int   `json:"amount"`
	Recipient        common.Address `json:"recipient"`
	FormattedRequest hexutil.Bytes  `json:"formatted_request"`
}

const (
	RequestDirectionSent      = "sent"
	RequestDirectionFulfilled = "fulfilled"
)

// RequestSentEvent is emitted when a request leaves this chain.
type RequestSentEvent struct {
	ChainID          uint64         `json:"chain_id"`
	Sender           common.Address `json:"sender"`
	Nonce            uint64         `json:"nonce"`
	Token            common.Address `json:"token"`
	Amount           osmomath.Int   `json:"amount"`
	RequestVersion   uint32         `json:"request_version"`
	FormattedRequest hexutil.Bytes  `json:"formatted_request"`
	RequestID        common.Hash    `json:"request_id"`
}

// RequestFulfilledEvent is emitted when a request is completed on this chain.
type RequestFulfilledEvent struct {
	OriginDomain uint32         `json:"origin_domain"`
	MintToken    common.Address `json:"mint_token"`
	Fee          osmomath.Int   `json:"fee"`
	Recipient    common.Address `json:"recipient"`
	Token        common.Address `json:"token"`
	Amount       osmomath.Int   `json:"amount"`
	RequestID    common.Hash    `json:"request_id"`
}

// BurnMessage is the attested message of a burn on a remote domain.
type BurnMessage struct {
	SourceDomain      uint32         `json:"source_domain"`
	DestinationDomain uint32         `json:"destination_domain"`
	Nonce             uint64         `json:"nonce"`
	BurnToken         common.Address `json:"burn_token"`
	MintRecipient     common.Address `json:"mint_recipient"`
	Amount            osmomath.Int   `json:"amount"`
	// DestinationCaller binds the message to a single request on the destination chain.
	DestinationCaller common.Hash `json:"destination_caller"`
}

// TokenMessenger burns tokens on this chain for minting on a remote domain.
type TokenMessenger interface {
	// LocalDomain returns the domain of this chain.
	LocalDomain() uint32
	// NextAvailableNonce returns the nonce the next burn will be sent with.
	NextAvailableNonce() uint64
	// DepositForBurnWithCaller burns amount of burnToken held by sender and returns the message nonce.
	// Only destinationCaller may receive the message on the remote domain.
	DepositForBurnWithCaller(ctx context.Context, sender common.Address, amount osmomath.Int, destinationDomain uint32, mintRecipient, burnToken common.Address, destinationCaller common.Hash) (uint64, error)
}

// MessageTransmitter verifies attested messages and mints the bridged tokens.
type MessageTransmitter interface {
	// ReceiveMessage verifies the message attestation and mints the tokens to the mint recipient.
	ReceiveMessage(ctx context.Context, message []byte, attestation []byte) (BurnMessage, error)
}

// RequestsRepository persists request records.
type RequestsRepository interface {
	// StoreRequest stores a record. Errors with RequestAlreadyFulfilledError
	// if a record with the same ID and direction exists.
	StoreRequest(ctx context.Context, record RequestRecord) error
	// GetRequest returns the record for the ID and direction, ErrNotFound if absent.
	GetRequest(ctx context.Context, requestID common.Hash, direction string) (RequestRecord, error)
	// IsFulfilled returns true if the request was fulfilled on this chain.
	IsFulfilled(ctx context.Context, requestID common.Hash) (bool, error)
}
