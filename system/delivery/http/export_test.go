package http

import (
	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
	"github.com/MrCuPper/synapse-contracts/log"
)

var ExtractVersion = extractVersion

// NewTestSystemHandler returns a system handler without registering routes.
func NewTestSystemHandler(config domain.Config, router mvc.RouterUsecase, requests domain.RequestsRepository) *SystemHandler {
	return &SystemHandler{
		logger:   &log.NoOpLogger{},
		RUsecase: router,
		requests: requests,
		config:   config,
	}
}
