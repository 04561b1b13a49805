package messenger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/MrCuPper/synapse-contracts/bridge/messenger"
	"github.com/MrCuPper/synapse-contracts/domain"
	ledgerrepo "github.com/MrCuPper/synapse-contracts/ledger/repository"
)

type MessengerTestSuite struct {
	suite.Suite

	originLedger      *ledgerrepo.MemoryLedger
	destinationLedger *ledgerrepo.MemoryLedger

	origin      *messenger.Messenger
	destination *messenger.Messenger
}

var (
	sender      = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	receiver    = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	originToken = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	localToken  = common.HexToAddress("0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E")
	caller      = common.HexToHash("0x01")

	amount = osmomath.NewInt(1_000_000)
)

func TestMessengerTestSuite(t *testing.T) {
	suite.Run(t, new(MessengerTestSuite))
}

func (s *MessengerTestSuite) SetupTest() {
	attesterKey, err := crypto.GenerateKey()
	s.Require().NoError(err)

	s.originLedger = ledgerrepo.New()
	s.destinationLedger = ledgerrepo.New()

	s.origin = messenger.New(0, s.originLedger, attesterKey, func(common.Address) (common.Address, error) {
		return common.Address{}, domain.ErrNotFound
	})
	s.destination = messenger.New(3, s.destinationLedger, attesterKey, func(remoteToken common.Address) (common.Address, error) {
		if remoteToken != originToken {
			return common.Address{}, domain.UnknownTokenError{Token: remoteToken}
		}
		return localToken, nil
	})

	s.Require().NoError(s.originLedger.Mint(originToken, sender, amount))
}

func (s *MessengerTestSuite) deposit() messenger.SentMessage {
	nonce, err := s.origin.DepositForBurnWithCaller(context.Background(), sender, amount, 3, receiver, originToken, caller)
	s.Require().NoError(err)

	sent, err := s.origin.GetSentMessage(nonce)
	s.Require().NoError(err)
	return sent
}

func (s *MessengerTestSuite) TestDepositAndReceive() {
	sent := s.deposit()

	s.Require().Equal(uint64(0), sent.Nonce)
	s.Require().Len(sent.Message, messenger.MessageLength)
	s.Require().True(s.originLedger.BalanceOf(originToken, sender).IsZero())
	s.Require().Equal(uint64(1), s.origin.NextAvailableNonce())

	burn, err := s.destination.ReceiveMessage(context.Background(), sent.Message, sent.Attestation)
	s.Require().NoError(err)
	s.Require().Equal(uint32(0), burn.SourceDomain)
	s.Require().Equal(uint32(3), burn.DestinationDomain)
	s.Require().Equal(originToken, burn.BurnToken)
	s.Require().Equal(receiver, burn.MintRecipient)
	s.Require().Equal(caller, burn.DestinationCaller)
	s.Require().Equal(amount.String(), s.destinationLedger.BalanceOf(localToken, receiver).String())

	// Messages are received once.
	_, err = s.destination.ReceiveMessage(context.Background(), sent.Message, sent.Attestation)
	s.Require().ErrorAs(err, &domain.InvalidAttestationError{})
	s.Require().Equal(amount.String(), s.destinationLedger.BalanceOf(localToken, receiver).String())
}

func (s *MessengerTestSuite) TestDepositForBurn_Errors() {
	ctx := context.Background()

	_, err := s.origin.DepositForBurnWithCaller(ctx, sender, osmomath.ZeroInt(), 3, receiver, originToken, caller)
	s.Require().ErrorIs(err, domain.ErrZeroAmount)

	_, err = s.origin.DepositForBurnWithCaller(ctx, sender, amount, 3, common.Address{}, originToken, caller)
	s.Require().ErrorIs(err, domain.ErrZeroAddress)

	_, err = s.origin.DepositForBurnWithCaller(ctx, sender, amount.AddRaw(1), 3, receiver, originToken, caller)
	s.Require().ErrorAs(err, &domain.InsufficientBalanceError{})
	s.Require().Equal(uint64(0), s.origin.NextAvailableNonce())
}

func (s *MessengerTestSuite) TestReceiveMessage_Errors() {
	ctx := context.Background()
	sent := s.deposit()

	// Tampered message.
	tampered := append([]byte{}, sent.Message...)
	tampered[len(tampered)-1] ^= 0x01
	_, err := s.destination.ReceiveMessage(ctx, tampered, sent.Attestation)
	s.Require().ErrorAs(err, &domain.InvalidAttestationError{})

	// Wrong destination domain.
	_, err = s.origin.ReceiveMessage(ctx, sent.Message, sent.Attestation)
	s.Require().ErrorAs(err, &domain.InvalidAttestationError{})

	// Malformed signature.
	_, err = s.destination.ReceiveMessage(ctx, sent.Message, sent.Attestation[:10])
	s.Require().ErrorAs(err, &domain.InvalidAttestationError{})

	s.Require().True(s.destinationLedger.BalanceOf(localToken, receiver).IsZero())
}

func (s *MessengerTestSuite) TestRollback() {
	errFailed := errors.New("failed")

	// A rolled back deposit frees its nonce.
	err := s.originLedger.Transact(context.Background(), func(ctx context.Context) error {
		_, err := s.origin.DepositForBurnWithCaller(ctx, sender, amount, 3, receiver, originToken, caller)
		s.Require().NoError(err)
		return errFailed
	})
	s.Require().ErrorIs(err, errFailed)
	s.Require().Equal(uint64(0), s.origin.NextAvailableNonce())
	s.Require().Equal(amount.String(), s.originLedger.BalanceOf(originToken, sender).String())

	sent := s.deposit()

	// A rolled back receive can be retried.
	err = s.destinationLedger.Transact(context.Background(), func(ctx context.Context) error {
		_, err := s.destination.ReceiveMessage(ctx, sent.Message, sent.Attestation)
		s.Require().NoError(err)
		return errFailed
	})
	s.Require().ErrorIs(err, errFailed)
	s.Require().True(s.destinationLedger.BalanceOf(localToken, receiver).IsZero())

	_, err = s.destination.ReceiveMessage(context.Background(), sent.Message, sent.Attestation)
	s.Require().NoError(err)
	s.Require().Equal(amount.String(), s.destinationLedger.BalanceOf(localToken, receiver).String())
}

func (s *MessengerTestSuite) TestEncodeDecodeMessage() {
	burn := domain.BurnMessage{
		SourceDomain:      7,
		DestinationDomain: 9,
		Nonce:             42,
		BurnToken:         originToken,
		MintRecipient:     receiver,
		Amount:            amount,
		DestinationCaller: caller,
	}

	message, err := messenger.EncodeMessage(burn)
	s.Require().NoError(err)

	decoded, err := messenger.DecodeMessage(message)
	s.Require().NoError(err)
	s.Require().Equal(burn.Nonce, decoded.Nonce)
	s.Require().Equal(burn.Amount.String(), decoded.Amount.String())
	s.Require().Equal(burn.DestinationCaller, decoded.DestinationCaller)

	_, err = messenger.DecodeMessage(message[1:])
	s.Require().ErrorAs(err, &domain.IncorrectRequestLengthError{})
}
