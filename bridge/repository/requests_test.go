package bridgerepo_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	bridgerepo "github.com/MrCuPper/synapse-contracts/bridge/repository"
	"github.com/MrCuPper/synapse-contracts/domain"
)

type RequestsRepositoryTestSuite struct {
	suite.Suite
}

var (
	requestID = common.HexToHash("0x5f8a7c3d2e1b0a9f8e7d6c5b4a3928170615f4e3d2c1b0a998877665544332211")
	record    = domain.RequestRecord{
		RequestID:        requestID,
		Direction:        domain.RequestDirectionSent,
		Version:          1,
		Domain:           3,
		Token:            common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
		Amount:           osmomath.NewInt(1_000_000_000),
		Recipient:        common.HexToAddress("0x00000000000000000000000000000000000000b1"),
		FormattedRequest: []byte{0x01, 0x02, 0x03},
	}
)

func TestRequestsRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RequestsRepositoryTestSuite))
}

func (s *RequestsRepositoryTestSuite) repositories() map[string]domain.RequestsRepository {
	sqliteRepository, err := bridgerepo.OpenSQLiteRequestsRepository(filepath.Join(s.T().TempDir(), "requests.db"))
	s.Require().NoError(err)
	s.T().Cleanup(func() { sqliteRepository.Close() })

	return map[string]domain.RequestsRepository{
		"memory": bridgerepo.NewMemoryRequestsRepository(),
		"sqlite": sqliteRepository,
	}
}

func (s *RequestsRepositoryTestSuite) TestStoreAndGetRequest() {
	for name, repository := range s.repositories() {
		s.Run(name, func() {
			ctx := context.Background()

			_, err := repository.GetRequest(ctx, requestID, domain.RequestDirectionSent)
			s.Require().ErrorIs(err, domain.ErrNotFound)

			s.Require().NoError(repository.StoreRequest(ctx, record))

			stored, err := repository.GetRequest(ctx, requestID, domain.RequestDirectionSent)
			s.Require().NoError(err)
			s.Require().Equal(record.Version, stored.Version)
			s.Require().Equal(record.Domain, stored.Domain)
			s.Require().Equal(record.Token, stored.Token)
			s.Require().Equal(record.Amount.String(), stored.Amount.String())
			s.Require().Equal(record.Recipient, stored.Recipient)
			s.Require().Equal(record.FormattedRequest, stored.FormattedRequest)

			// The same ID is stored once per direction.
			err = repository.StoreRequest(ctx, record)
			s.Require().ErrorAs(err, &domain.RequestAlreadyFulfilledError{})

			_, err = repository.GetRequest(ctx, requestID, domain.RequestDirectionFulfilled)
			s.Require().ErrorIs(err, domain.ErrNotFound)
		})
	}
}

func (s *RequestsRepositoryTestSuite) TestIsFulfilled() {
	for name, repository := range s.repositories() {
		s.Run(name, func() {
			ctx := context.Background()

			// A sent request is not fulfilled.
			s.Require().NoError(repository.StoreRequest(ctx, record))
			fulfilled, err := repository.IsFulfilled(ctx, requestID)
			s.Require().NoError(err)
			s.Require().False(fulfilled)

			fulfilledRecord := record
			fulfilledRecord.Direction = domain.RequestDirectionFulfilled
			s.Require().NoError(repository.StoreRequest(ctx, fulfilledRecord))

			fulfilled, err = repository.IsFulfilled(ctx, requestID)
			s.Require().NoError(err)
			s.Require().True(fulfilled)
		})
	}
}

func (s *RequestsRepositoryTestSuite) TestSQLiteReopen() {
	path := filepath.Join(s.T().TempDir(), "requests.db")

	repository, err := bridgerepo.OpenSQLiteRequestsRepository(path)
	s.Require().NoError(err)
	s.Require().NoError(repository.StoreRequest(context.Background(), record))
	s.Require().NoError(repository.Close())

	repository, err = bridgerepo.OpenSQLiteRequestsRepository(path)
	s.Require().NoError(err)
	defer repository.Close()
	s.Require().NoError(repository.Ping(context.Background()))

	stored, err := repository.GetRequest(context.Background(), requestID, domain.RequestDirectionSent)
	s.Require().NoError(err)
	s.Require().Equal(record.Amount.String(), stored.Amount.String())
}
