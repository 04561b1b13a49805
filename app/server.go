package main

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	bridgeHttpDelivery "github.com/MrCuPper/synapse-contracts/bridge/delivery/http"
	"github.com/MrCuPper/synapse-contracts/bridge/messenger"
	bridgerepo "github.com/MrCuPper/synapse-contracts/bridge/repository"
	bridgeUseCase "github.com/MrCuPper/synapse-contracts/bridge/usecase"
	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
	feesUseCase "github.com/MrCuPper/synapse-contracts/fees/usecase"
	ledgerrepo "github.com/MrCuPper/synapse-contracts/ledger/repository"
	"github.com/MrCuPper/synapse-contracts/log"
	"github.com/MrCuPper/synapse-contracts/middleware"
	poolsHttpDelivery "github.com/MrCuPper/synapse-contracts/pools/delivery/http"
	poolsUseCase "github.com/MrCuPper/synapse-contracts/pools/usecase"
	routerHttpDelivery "github.com/MrCuPper/synapse-contracts/router/delivery/http"
	routerUseCase "github.com/MrCuPper/synapse-contracts/router/usecase"
	systemhttpdelivery "github.com/MrCuPper/synapse-contracts/system/delivery/http"
)

// BridgeRouterServer serves the router, pools and bridge endpoints over a simulated chain.
type BridgeRouterServer interface {
	GetRouterUsecase() mvc.RouterUsecase
	GetBridgeUsecase() mvc.BridgeUsecase
	GetLedger() *ledgerrepo.MemoryLedger
	GetLogger() log.Logger
	Handler() http.Handler
	Shutdown(context.Context) error
	Start(context.Context) error
}

type bridgeRouterServer struct {
	ledger   *ledgerrepo.MemoryLedger
	router   mvc.RouterUsecase
	bridge   mvc.BridgeUsecase
	requests domain.RequestsRepository
	e        *echo.Echo
	address  string
	logger   log.Logger
}

// GetRouterUsecase implements BridgeRouterServer.
func (s *bridgeRouterServer) GetRouterUsecase() mvc.RouterUsecase {
	return s.router
}

// GetBridgeUsecase implements BridgeRouterServer.
func (s *bridgeRouterServer) GetBridgeUsecase() mvc.BridgeUsecase {
	return s.bridge
}

// GetLedger implements BridgeRouterServer.
func (s *bridgeRouterServer) GetLedger() *ledgerrepo.MemoryLedger {
	return s.ledger
}

// GetLogger implements BridgeRouterServer.
func (s *bridgeRouterServer) GetLogger() log.Logger {
	return s.logger
}

// Handler implements BridgeRouterServer.
func (s *bridgeRouterServer) Handler() http.Handler {
	return s.e
}

// Shutdown implements BridgeRouterServer.
// The request store is closed after the HTTP server stops.
func (s *bridgeRouterServer) Shutdown(ctx context.Context) error {
	err := s.e.Shutdown(ctx)
	if closer, ok := s.requests.(io.Closer); ok {
		err = errors.Join(err, closer.Close())
	}
	return err
}

// Start implements BridgeRouterServer.
func (s *bridgeRouterServer) Start(context.Context) error {
	s.logger.Info("Starting bridge router server", zap.String("address", s.address))
	if err := s.e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// NewBridgeRouterServer wires the usecases described by config and registers the HTTP handlers.
func NewBridgeRouterServer(ctx context.Context, config domain.Config, logger log.Logger) (BridgeRouterServer, error) {
	if config.Router == nil {
		config.Router = DefaultConfig.Router
	}
	if config.Bridge == nil {
		config.Bridge = DefaultConfig.Bridge
	}

	owner, err := domain.ParseAddress(config.Owner)
	if err != nil {
		return nil, fmt.Errorf("owner: %w", err)
	}
	routerAddress, err := domain.ParseAddress(config.Router.Address)
	if err != nil {
		return nil, fmt.Errorf("router address: %w", err)
	}
	bridgeAddress, err := domain.ParseAddress(config.Bridge.Address)
	if err != nil {
		return nil, fmt.Errorf("bridge address: %w", err)
	}
	adapterAddress, err := domain.ParseAddress(config.Bridge.RouterAdapter)
	if err != nil {
		return nil, fmt.Errorf("router adapter address: %w", err)
	}

	// Setup echo server
	e := echo.New()
	e.HideBanner = true
	middleware := middleware.InitMiddleware(config.CORS)
	e.Use(middleware.CORS)
	e.Use(middleware.InstrumentMiddleware)
	e.Use(middleware.TraceWithParamsMiddleware("sbr"))

	ledger := ledgerrepo.New()
	if err := seedLedger(ledger, config.Ledger); err != nil {
		return nil, err
	}

	// Initialize pools registry and the router, which is itself a registered pool.
	poolsUsecase := poolsUseCase.NewPoolsUsecase()
	routerUsecase, err := routerUseCase.NewRouterUsecase(routerAddress, owner, ledger, poolsUsecase, *config.Router, logger)
	if err != nil {
		return nil, err
	}
	if err := poolsUsecase.StorePool(routerAddress, routerUsecase); err != nil {
		return nil, err
	}

	poolFactory := poolsUseCase.NewPoolFactory(ledger, owner)
	for _, poolConfig := range config.Pools {
		address, pool, err := poolFactory.CreatePool(ctx, poolConfig)
		if err != nil {
			return nil, err
		}
		if err := poolsUsecase.StorePool(address, pool); err != nil {
			return nil, err
		}
		if poolConfig.AttachToNode < 0 {
			continue
		}
		if err := routerUsecase.AddPool(ctx, owner, poolConfig.AttachToNode, address, nil, 0); err != nil {
			return nil, fmt.Errorf("attaching pool %s to node %d: %w", address, poolConfig.AttachToNode, err)
		}
	}
	logger.Info("token tree built", zap.Int("nodes", routerUsecase.TokenNodesAmount()), zap.Int("pools", len(routerUsecase.GetPools())))

	// Bridge tokens, remote domains and fees.
	tokensUsecase := bridgeUseCase.NewTokensUsecase(owner, config.ChainID, config.Bridge.SymbolPrefix, logger)
	for _, tokenConfig := range config.Bridge.Tokens {
		bridgeToken, err := tokenConfig.ToBridgeToken()
		if err != nil {
			return nil, err
		}
		if err := tokensUsecase.AddToken(ctx, owner, bridgeToken); err != nil {
			return nil, err
		}
	}
	for _, remoteConfig := range config.Bridge.RemoteDomains {
		remoteDomain, err := remoteConfig.ToRemoteDomainConfig()
		if err != nil {
			return nil, err
		}
		if err := tokensUsecase.SetRemoteDomainConfig(ctx, owner, remoteDomain); err != nil {
			return nil, err
		}
	}
	feesUsecase := feesUseCase.NewFeeUsecase(tokensUsecase)

	requests, err := newRequestsRepository(config.Bridge.RequestsDBPath)
	if err != nil {
		return nil, err
	}

	attesterKey, err := loadAttesterKey(config.Bridge.AttesterKey, logger)
	if err != nil {
		return nil, err
	}
	loopback := messenger.New(config.LocalDomain, ledger, attesterKey, func(remoteToken common.Address) (common.Address, error) {
		bridgeToken, err := tokensUsecase.GetTokenByRemoteToken(remoteToken)
		return bridgeToken.Token, err
	})
	logger.Info("messenger ready", zap.Uint32("local_domain", config.LocalDomain), zap.Stringer("attester", loopback.AttesterAddress()))

	bridgeUsecase := bridgeUseCase.NewBridgeUsecase(bridgeAddress, ledger, tokensUsecase, feesUsecase, poolsUsecase, loopback, loopback, requests, logger)
	adapterUsecase := bridgeUseCase.NewRouterAdapterUsecase(adapterAddress, ledger, bridgeUsecase, poolsUsecase, logger)
	quoteUsecase := bridgeUseCase.NewBridgeQuoteUsecase(adapterAddress, routerUsecase, tokensUsecase, feesUsecase, poolsUsecase, config.Router.QuoteWorkers, logger)

	// HTTP handlers
	routerHttpDelivery.NewRouterHandler(e, routerUsecase, logger)
	poolsHttpDelivery.NewPoolsHandler(e, poolsUsecase)
	bridgeHttpDelivery.NewBridgeHandler(e, quoteUsecase, bridgeUsecase, tokensUsecase, feesUsecase, adapterUsecase, loopback, requests, logger)
	systemhttpdelivery.NewSystemHandler(e, config, logger, routerUsecase, requests)

	return &bridgeRouterServer{
		ledger:   ledger,
		router:   routerUsecase,
		bridge:   bridgeUsecase,
		requests: requests,
		e:        e,
		address:  config.ServerAddress,
		logger:   logger,
	}, nil
}

func seedLedger(ledger *ledgerrepo.MemoryLedger, config *domain.LedgerConfig) error {
	if config == nil {
		return nil
	}

	for _, balance := range config.Balances {
		token, err := domain.ParseAddress(balance.Token)
		if err != nil {
			return fmt.Errorf("ledger token: %w", err)
		}
		holder, err := domain.ParseAddress(balance.Holder)
		if err != nil {
			return fmt.Errorf("ledger holder: %w", err)
		}
		amount, err := domain.ParseAmount(balance.Amount)
		if err != nil {
			return fmt.Errorf("ledger amount: %w", err)
		}

		if balance.FeeBips > 0 {
			ledger.SetTransferFee(token, balance.FeeBips)
		}
		if amount.IsPositive() {
			if err := ledger.Mint(token, holder, amount); err != nil {
				return err
			}
		}
	}
	return nil
}

func newRequestsRepository(path string) (domain.RequestsRepository, error) {
	if path == "" {
		return bridgerepo.NewMemoryRequestsRepository(), nil
	}
	return bridgerepo.OpenSQLiteRequestsRepository(path)
}

func loadAttesterKey(hexKey string, logger log.Logger) (*ecdsa.PrivateKey, error) {
	if hexKey == "" {
		logger.Warn("no attester key configured, generating one; messages will not be accepted after restart")
		return crypto.GenerateKey()
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("attester key: %w", err)
	}
	return key, nil
}
