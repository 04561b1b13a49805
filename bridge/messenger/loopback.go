// Package messenger implements an in-process burn and mint message bridge.
// Burns are recorded in an outbox together with an attestation signed by the
// attester key. Any messenger trusting the same attester can receive them.
package messenger

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
)

// MessageLength is the length of an ABI encoded burn message.
const MessageLength = 7 * 32

var messageArguments = abi.Arguments{
	{Name: "sourceDomain", Type: mustNewType("uint32")},
	{Name: "destinationDomain", Type: mustNewType("uint32")},
	{Name: "nonce", Type: mustNewType("uint64")},
	{Name: "burnToken", Type: mustNewType("address")},
	{Name: "mintRecipient", Type: mustNewType("address")},
	{Name: "amount", Type: mustNewType("uint256")},
	{Name: "destinationCaller", Type: mustNewType("bytes32")},
}

// SentMessage is an attested burn message waiting to be relayed.
type SentMessage struct {
	Nonce       uint64        `json:"nonce"`
	Message     hexutil.Bytes `json:"message"`
	Attestation hexutil.Bytes `json:"attestation"`
}

// LocalTokenResolver returns the local token minted for a token burnt on a remote domain.
type LocalTokenResolver func(remoteToken common.Address) (common.Address, error)

// Messenger is both the token messenger and the message transmitter of one domain.
type Messenger struct {
	localDomain uint32
	ledger      domain.TokenLedger
	localToken  LocalTokenResolver

	attesterKey     *ecdsa.PrivateKey
	attesterAddress common.Address

	mu         sync.Mutex
	nextNonce  uint64
	outbox     map[uint64]SentMessage
	usedNonces map[uint32]map[uint64]struct{}
}

var (
	_ domain.TokenMessenger     = &Messenger{}
	_ domain.MessageTransmitter = &Messenger{}
)

// New returns a messenger for localDomain. Burns are attested with attesterKey
// and received messages must be attested by the same key.
func New(localDomain uint32, ledger domain.TokenLedger, attesterKey *ecdsa.PrivateKey, localToken LocalTokenResolver) *Messenger {
	return &Messenger{
		localDomain:     localDomain,
		ledger:          ledger,
		localToken:      localToken,
		attesterKey:     attesterKey,
		attesterAddress: crypto.PubkeyToAddress(attesterKey.PublicKey),
		outbox:          make(map[uint64]SentMessage),
		usedNonces:      make(map[uint32]map[uint64]struct{}),
	}
}

// LocalDomain implements domain.TokenMessenger.
func (m *Messenger) LocalDomain() uint32 {
	return m.localDomain
}

// AttesterAddress returns the address whose attestations are accepted.
func (m *Messenger) AttesterAddress() common.Address {
	return m.attesterAddress
}

// NextAvailableNonce implements domain.TokenMessenger.
func (m *Messenger) NextAvailableNonce() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nextNonce
}

// DepositForBurnWithCaller implements domain.TokenMessenger.
func (m *Messenger) DepositForBurnWithCaller(ctx context.Context, sender common.Address, amount osmomath.Int, destinationDomain uint32, mintRecipient, burnToken common.Address, destinationCaller common.Hash) (uint64, error) {
	if amount.IsNil() || !amount.IsPositive() {
		return 0, domain.ErrZeroAmount
	}
	if mintRecipient == (common.Address{}) {
		return 0, domain.ErrZeroAddress
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	nonce := m.nextNonce

	message, err := EncodeMessage(domain.BurnMessage{
		SourceDomain:      m.localDomain,
		DestinationDomain: destinationDomain,
		Nonce:             nonce,
		BurnToken:         burnToken,
		MintRecipient:     mintRecipient,
		Amount:            amount,
		DestinationCaller: destinationCaller,
	})
	if err != nil {
		return 0, err
	}

	attestation, err := crypto.Sign(crypto.Keccak256(message), m.attesterKey)
	if err != nil {
		return 0, fmt.Errorf("attesting message: %w", err)
	}

	if err := m.ledger.Burn(burnToken, sender, amount); err != nil {
		return 0, err
	}

	m.outbox[nonce] = SentMessage{Nonce: nonce, Message: message, Attestation: attestation}
	m.nextNonce++
	m.ledger.OnRollback(ctx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.outbox, nonce)
		m.nextNonce = nonce
	})

	return nonce, nil
}

// GetSentMessage returns the attested message sent with nonce.
func (m *Messenger) GetSentMessage(nonce uint64) (SentMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	message, ok := m.outbox[nonce]
	if !ok {
		return SentMessage{}, fmt.Errorf("message with nonce %d: %w", nonce, domain.ErrNotFound)
	}
	return message, nil
}

// ReceiveMessage implements domain.MessageTransmitter.
// The tokens are minted once per source domain and nonce.
func (m *Messenger) ReceiveMessage(ctx context.Context, message []byte, attestation []byte) (domain.BurnMessage, error) {
	signer, err := crypto.SigToPub(crypto.Keccak256(message), attestation)
	if err != nil {
		return domain.BurnMessage{}, domain.InvalidAttestationError{Reason: err.Error()}
	}
	if crypto.PubkeyToAddress(*signer) != m.attesterAddress {
		return domain.BurnMessage{}, domain.InvalidAttestationError{Reason: "unknown attester"}
	}

	burn, err := DecodeMessage(message)
	if err != nil {
		return domain.BurnMessage{}, err
	}
	if burn.DestinationDomain != m.localDomain {
		return domain.BurnMessage{}, domain.InvalidAttestationError{Reason: fmt.Sprintf("message is for domain %d", burn.DestinationDomain)}
	}

	token, err := m.localToken(burn.BurnToken)
	if err != nil {
		return domain.BurnMessage{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.usedNonces[burn.SourceDomain][burn.Nonce]; ok {
		return domain.BurnMessage{}, domain.InvalidAttestationError{Reason: fmt.Sprintf("nonce %d of domain %d already used", burn.Nonce, burn.SourceDomain)}
	}

	if err := m.ledger.Mint(token, burn.MintRecipient, burn.Amount); err != nil {
		return domain.BurnMessage{}, err
	}

	if m.usedNonces[burn.SourceDomain] == nil {
		m.usedNonces[burn.SourceDomain] = make(map[uint64]struct{})
	}
	m.usedNonces[burn.SourceDomain][burn.Nonce] = struct{}{}
	m.ledger.OnRollback(ctx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.usedNonces[burn.SourceDomain], burn.Nonce)
	})

	return burn, nil
}

// EncodeMessage ABI encodes a burn message.
func EncodeMessage(burn domain.BurnMessage) ([]byte, error) {
	return messageArguments.Pack(
		burn.SourceDomain,
		burn.DestinationDomain,
		burn.Nonce,
		burn.BurnToken,
		burn.MintRecipient,
		burn.Amount.BigInt(),
		[32]byte(burn.DestinationCaller),
	)
}

// DecodeMessage decodes an ABI encoded burn message.
func DecodeMessage(message []byte) (domain.BurnMessage, error) {
	if len(message) != MessageLength {
		return domain.BurnMessage{}, domain.IncorrectRequestLengthError{Expected: MessageLength, Actual: len(message)}
	}

	values, err := messageArguments.Unpack(message)
	if err != nil {
		return domain.BurnMessage{}, fmt.Errorf("decoding burn message: %w", err)
	}

	return domain.BurnMessage{
		SourceDomain:      values[0].(uint32),
		DestinationDomain: values[1].(uint32),
		Nonce:             values[2].(uint64),
		BurnToken:         values[3].(common.Address),
		MintRecipient:     values[4].(common.Address),
		Amount:            osmomath.NewIntFromBigInt(values[5].(*big.Int)),
		DestinationCaller: common.Hash(values[6].([32]byte)),
	}, nil
}

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}
