package http

import "github.com/MrCuPper/synapse-contracts/domain/mvc"

// NewTestPoolsHandler returns a pools handler without registering routes.
func NewTestPoolsHandler(us mvc.PoolsUsecase) *PoolsHandler {
	return &PoolsHandler{PUsecase: us}
}
