package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
	"github.com/MrCuPper/synapse-contracts/log"
)

// DefaultSymbolPrefix is the prefix of bridge token symbols.
const DefaultSymbolPrefix = "CCTP."

// mainnetChainID is the only chain allowed to use remote domain 0.
const mainnetChainID = 1

type tokensUseCase struct {
	owner        common.Address
	chainID      uint64
	symbolPrefix string
	logger       log.Logger

	mu            sync.RWMutex
	tokens        map[common.Address]domain.BridgeToken
	symbolToToken map[string]common.Address
	remoteToLocal map[common.Address]common.Address
	remoteDomains map[uint64]domain.RemoteDomainConfig
	tokensInOrder []common.Address
}

var _ mvc.BridgeTokensUsecase = &tokensUseCase{}

// NewTokensUsecase returns an empty bridge token registry owned by owner.
// An empty symbolPrefix defaults to DefaultSymbolPrefix.
func NewTokensUsecase(owner common.Address, chainID uint64, symbolPrefix string, logger log.Logger) mvc.BridgeTokensUsecase {
	if symbolPrefix == "" {
		symbolPrefix = DefaultSymbolPrefix
	}

	return &tokensUseCase{
		owner:         owner,
		chainID:       chainID,
		symbolPrefix:  symbolPrefix,
		logger:        logger,
		tokens:        make(map[common.Address]domain.BridgeToken),
		symbolToToken: make(map[string]common.Address),
		remoteToLocal: make(map[common.Address]common.Address),
		remoteDomains: make(map[uint64]domain.RemoteDomainConfig),
	}
}

// Owner implements mvc.BridgeTokensUsecase.
func (t *tokensUseCase) Owner() common.Address {
	return t.owner
}

// AddToken implements mvc.BridgeTokensUsecase.
// A zero remote token defaults to the local token address.
func (t *tokensUseCase) AddToken(_ context.Context, caller common.Address, token domain.BridgeToken) error {
	if caller != t.owner {
		return domain.ErrUnauthorized
	}
	if token.Token == (common.Address{}) {
		return domain.ErrZeroAddress
	}
	if err := t.validateSymbol(token.Symbol); err != nil {
		return err
	}
	if err := token.Fee.Validate(); err != nil {
		return err
	}
	if token.RemoteToken == (common.Address{}) {
		token.RemoteToken = token.Token
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	_, tokenExists := t.tokens[token.Token]
	_, symbolExists := t.symbolToToken[token.Symbol]
	_, remoteExists := t.remoteToLocal[token.RemoteToken]
	if tokenExists || symbolExists || remoteExists {
		return domain.TokenAlreadyAddedError{Symbol: token.Symbol, Token: token.Token}
	}

	t.tokens[token.Token] = token
	t.symbolToToken[token.Symbol] = token.Token
	t.remoteToLocal[token.RemoteToken] = token.Token
	t.tokensInOrder = append(t.tokensInOrder, token.Token)

	t.logger.Info("bridge token added", zap.String("symbol", token.Symbol), zap.Stringer("token", token.Token))

	return nil
}

// RemoveToken implements mvc.BridgeTokensUsecase.
func (t *tokensUseCase) RemoveToken(_ context.Context, caller common.Address, token common.Address) error {
	if caller != t.owner {
		return domain.ErrUnauthorized
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	bridgeToken, ok := t.tokens[token]
	if !ok {
		return domain.UnknownTokenError{Token: token}
	}

	delete(t.tokens, token)
	delete(t.symbolToToken, bridgeToken.Symbol)
	delete(t.remoteToLocal, bridgeToken.RemoteToken)
	t.tokensInOrder = lo.Without(t.tokensInOrder, token)

	t.logger.Info("bridge token removed", zap.String("symbol", bridgeToken.Symbol), zap.Stringer("token", token))

	return nil
}

// SetTokenFee implements mvc.BridgeTokensUsecase.
func (t *tokensUseCase) SetTokenFee(_ context.Context, caller common.Address, token common.Address, fee domain.FeeStructure) error {
	if caller != t.owner {
		return domain.ErrUnauthorized
	}
	if err := fee.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	bridgeToken, ok := t.tokens[token]
	if !ok {
		return domain.UnknownTokenError{Token: token}
	}

	bridgeToken.Fee = fee
	t.tokens[token] = bridgeToken

	return nil
}

// SetRemoteDomainConfig implements mvc.BridgeTokensUsecase.
func (t *tokensUseCase) SetRemoteDomainConfig(_ context.Context, caller common.Address, config domain.RemoteDomainConfig) error {
	if caller != t.owner {
		return domain.ErrUnauthorized
	}

	if config.ChainID == 0 || config.ChainID == t.chainID {
		return domain.IncorrectRemoteDomainError{ChainID: config.ChainID, Domain: config.Domain, Reason: "remote chain must differ from the local chain"}
	}
	if config.Domain == 0 && config.ChainID != mainnetChainID {
		return domain.IncorrectRemoteDomainError{ChainID: config.ChainID, Domain: config.Domain, Reason: fmt.Sprintf("domain 0 is reserved for chain %d", mainnetChainID)}
	}
	if config.Contract == (common.Address{}) {
		return domain.ErrZeroAddress
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.remoteDomains[config.ChainID] = config

	t.logger.Info("remote domain configured", zap.Uint64("chain_id", config.ChainID), zap.Uint32("domain", config.Domain))

	return nil
}

// GetTokenBySymbol implements mvc.BridgeTokensUsecase.
func (t *tokensUseCase) GetTokenBySymbol(symbol string) (domain.BridgeToken, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	token, ok := t.symbolToToken[symbol]
	if !ok {
		return domain.BridgeToken{}, domain.UnknownSymbolError{Symbol: symbol}
	}
	return t.tokens[token], nil
}

// GetToken implements mvc.BridgeTokensUsecase.
func (t *tokensUseCase) GetToken(token common.Address) (domain.BridgeToken, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	bridgeToken, ok := t.tokens[token]
	if !ok {
		return domain.BridgeToken{}, domain.UnknownTokenError{Token: token}
	}
	return bridgeToken, nil
}

// GetTokenByRemoteToken implements mvc.BridgeTokensUsecase.
func (t *tokensUseCase) GetTokenByRemoteToken(remoteToken common.Address) (domain.BridgeToken, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	token, ok := t.remoteToLocal[remoteToken]
	if !ok {
		return domain.BridgeToken{}, domain.UnknownTokenError{Token: remoteToken}
	}
	return t.tokens[token], nil
}

// GetTokens implements mvc.BridgeTokensUsecase.
func (t *tokensUseCase) GetTokens() []domain.BridgeToken {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return lo.Map(t.tokensInOrder, func(token common.Address, _ int) domain.BridgeToken {
		return t.tokens[token]
	})
}

// GetRemoteDomainConfig implements mvc.BridgeTokensUsecase.
func (t *tokensUseCase) GetRemoteDomainConfig(chainID uint64) (domain.RemoteDomainConfig, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	config, ok := t.remoteDomains[chainID]
	if !ok {
		return domain.RemoteDomainConfig{}, domain.RemoteDomainNotConfiguredError{ChainID: chainID}
	}
	return config, nil
}

// GetRemoteDomainConfigs implements mvc.BridgeTokensUsecase.
// Configs are sorted by chain ID.
func (t *tokensUseCase) GetRemoteDomainConfigs() []domain.RemoteDomainConfig {
	t.mu.RLock()
	defer t.mu.RUnlock()

	configs := lo.Values(t.remoteDomains)
	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ChainID < configs[j].ChainID
	})
	return configs
}

// validateSymbol requires symbols of the form <prefix><name>.
func (t *tokensUseCase) validateSymbol(symbol string) error {
	name, ok := strings.CutPrefix(symbol, t.symbolPrefix)
	if !ok || name == "" {
		return domain.SymbolIncorrectError{Symbol: symbol, Prefix: t.symbolPrefix}
	}
	return nil
}
