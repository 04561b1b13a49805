package routertesting

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
	ledgerrepo "github.com/MrCuPper/synapse-contracts/ledger/repository"
	"github.com/MrCuPper/synapse-contracts/log"
	memorypool "github.com/MrCuPper/synapse-contracts/pools/memory"
	poolsusecase "github.com/MrCuPper/synapse-contracts/pools/usecase"
	routerusecase "github.com/MrCuPper/synapse-contracts/router/usecase"
)

// RouterTestHelper sets up a router over in memory pools.
type RouterTestHelper struct {
	suite.Suite

	Ledger *ledgerrepo.MemoryLedger
	Pools  mvc.PoolsUsecase
	Router mvc.RouterUsecase
}

var (
	RouterAddress = common.HexToAddress("0x7E7A0e201FD38d3ADAA9523Da6C109a07118C96a")
	Owner         = common.HexToAddress("0x0000000000000000000000000000000000000a11")
	Caller        = common.HexToAddress("0x0000000000000000000000000000000000000b0b")

	// BridgeToken is the root token of the tree.
	BridgeToken = common.HexToAddress("0x1B84765dE8B7566e4cEAF4D0fD3c5aF52D3DdE4F")
	USDC        = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	USDT        = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	DAI         = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	FRAX        = common.HexToAddress("0x853d955aCEf822Db058eb8505911ED77F175b99e")

	PoolAddress1 = common.HexToAddress("0x00000000000000000000000000000000000000f1")
	PoolAddress2 = common.HexToAddress("0x00000000000000000000000000000000000000f2")
	PoolAddress3 = common.HexToAddress("0x00000000000000000000000000000000000000f3")
	PoolAddress4 = common.HexToAddress("0x00000000000000000000000000000000000000f4")

	DefaultReserve = osmomath.NewInt(1_000_000_000_000)
)

// Setup creates a fresh ledger, pool registry and router with BridgeToken at the root.
func (s *RouterTestHelper) Setup(config domain.RouterConfig) {
	s.Ledger = ledgerrepo.New()
	s.Pools = poolsusecase.NewPoolsUsecase()

	if config.RootToken == "" {
		config.RootToken = BridgeToken.Hex()
	}

	router, err := routerusecase.NewRouterUsecase(RouterAddress, Owner, s.Ledger, s.Pools, config, &log.NoOpLogger{})
	s.Require().NoError(err)
	s.Router = router
}

// NewStablePool registers a 1:1 pool funded with DefaultReserve of every token.
func (s *RouterTestHelper) NewStablePool(address common.Address, fee uint64, tokens ...common.Address) *memorypool.StablePool {
	pool := memorypool.NewStablePool(address, tokens, fee, s.Ledger)
	for _, token := range tokens {
		s.Require().NoError(s.Ledger.Mint(token, address, DefaultReserve))
	}
	s.Require().NoError(s.Pools.StorePool(address, pool))
	return pool
}

// NewConstantProductPool registers a constant product pool funded with the reserves.
func (s *RouterTestHelper) NewConstantProductPool(address common.Address, fee uint64, tokens []common.Address, reserves []osmomath.Int) *memorypool.ConstantProductPool {
	pool := memorypool.NewConstantProductPool(address, tokens, address, fee, s.Ledger)
	for i, token := range tokens {
		s.Require().NoError(s.Ledger.Mint(token, Owner, reserves[i]))
		s.Require().NoError(s.Ledger.Approve(token, Owner, address, reserves[i]))
	}
	_, err := pool.AddLiquidity(context.Background(), Owner, reserves)
	s.Require().NoError(err)
	s.Require().NoError(s.Pools.StorePool(address, pool))
	return pool
}

// NewPairPool registers a pair funded with the reserves.
func (s *RouterTestHelper) NewPairPool(address, token0, token1 common.Address, reserve0, reserve1 osmomath.Int) *memorypool.PairPool {
	pair := memorypool.NewPairPool(address, token0, token1, s.Ledger)
	s.Require().NoError(s.Ledger.Mint(token0, address, reserve0))
	s.Require().NoError(s.Ledger.Mint(token1, address, reserve1))
	s.Require().NoError(s.Pools.StorePool(address, pair))
	return pair
}

// AddPool attaches a registered pool to a node as the owner.
func (s *RouterTestHelper) AddPool(nodeIndex int, pool common.Address) {
	s.Require().NoError(s.Router.AddPool(context.Background(), Owner, nodeIndex, pool, nil, 0))
}

// FundCaller mints amount of token to the caller and approves the router for it.
func (s *RouterTestHelper) FundCaller(token common.Address, amount osmomath.Int) {
	s.Require().NoError(s.Ledger.Mint(token, Caller, amount))
	s.Require().NoError(s.Ledger.Approve(token, Caller, RouterAddress, amount))
}
