package bridgerepo

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/MrCuPper/synapse-contracts/domain"
)

type requestKey struct {
	requestID common.Hash
	direction string
}

// MemoryRequestsRepository keeps request records in memory.
type MemoryRequestsRepository struct {
	mu      sync.RWMutex
	records map[requestKey]domain.RequestRecord
}

var _ domain.RequestsRepository = &MemoryRequestsRepository{}

// NewMemoryRequestsRepository returns an empty repository.
func NewMemoryRequestsRepository() *MemoryRequestsRepository {
	return &MemoryRequestsRepository{
		records: make(map[requestKey]domain.RequestRecord),
	}
}

// StoreRequest implements domain.RequestsRepository.
func (r *MemoryRequestsRepository) StoreRequest(_ context.Context, record domain.RequestRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := requestKey{requestID: record.RequestID, direction: record.Direction}
	if _, ok := r.records[key]; ok {
		return domain.RequestAlreadyFulfilledError{RequestID: record.RequestID}
	}

	r.records[key] = record
	return nil
}

// GetRequest implements domain.RequestsRepository.
func (r *MemoryRequestsRepository) GetRequest(_ context.Context, requestID common.Hash, direction string) (domain.RequestRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[requestKey{requestID: requestID, direction: direction}]
	if !ok {
		return domain.RequestRecord{}, fmt.Errorf("%s request %s: %w", direction, requestID, domain.ErrNotFound)
	}
	return record, nil
}

// IsFulfilled implements domain.RequestsRepository.
func (r *MemoryRequestsRepository) IsFulfilled(_ context.Context, requestID common.Hash) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.records[requestKey{requestID: requestID, direction: domain.RequestDirectionFulfilled}]
	return ok, nil
}
