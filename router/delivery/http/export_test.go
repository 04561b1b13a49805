package http

import (
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
	"github.com/MrCuPper/synapse-contracts/log"
)

func NewTestRouterHandler(us mvc.RouterUsecase, stateDirectory string) *RouterHandler {
	return &RouterHandler{
		RUsecase:       us,
		logger:         &log.NoOpLogger{},
		StateDirectory: stateDirectory,
	}
}
