package http

import (
	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
	"github.com/MrCuPper/synapse-contracts/log"
)

func NewTestBridgeHandler(
	quoter mvc.BridgeQuoteUsecase,
	bridge mvc.BridgeUsecase,
	tokens mvc.BridgeTokensUsecase,
	fees mvc.FeeUsecase,
	adapter mvc.RouterAdapterUsecase,
	messages SentMessagesGetter,
	requests domain.RequestsRepository,
) *BridgeHandler {
	return &BridgeHandler{
		QUsecase: quoter,
		BUsecase: bridge,
		TUsecase: tokens,
		FUsecase: fees,
		AUsecase: adapter,
		messages: messages,
		requests: requests,
		logger:   &log.NoOpLogger{},
	}
}
