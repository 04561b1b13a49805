package usecase_test

import (
	"context"
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/MrCuPper/synapse-contracts/bridge/messenger"
	bridgerepo "github.com/MrCuPper/synapse-contracts/bridge/repository"
	"github.com/MrCuPper/synapse-contracts/bridge/usecase"
	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
	feesusecase "github.com/MrCuPper/synapse-contracts/fees/usecase"
	ledgerrepo "github.com/MrCuPper/synapse-contracts/ledger/repository"
	"github.com/MrCuPper/synapse-contracts/log"
	memorypool "github.com/MrCuPper/synapse-contracts/pools/memory"
	poolsusecase "github.com/MrCuPper/synapse-contracts/pools/usecase"
	routerusecase "github.com/MrCuPper/synapse-contracts/router/usecase"
)

var (
	owner     = common.HexToAddress("0x0000000000000000000000000000000000000a11")
	user      = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	recipient = common.HexToAddress("0x0000000000000000000000000000000000000c0c")
	relayer   = common.HexToAddress("0x0000000000000000000000000000000000000d0d")

	bridgeAddress  = common.HexToAddress("0x00000000000000000000000000000000000b81d6")
	adapterAddress = common.HexToAddress("0x00000000000000000000000000000000000ada97")
	routerAddress  = common.HexToAddress("0x7E7A0e201FD38d3ADAA9523Da6C109a07118C96a")

	// Origin chain tokens.
	usdcA = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	daiA  = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")

	// Destination chain tokens.
	usdcB = common.HexToAddress("0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E")
	usdtB = common.HexToAddress("0x9702230A8Ea53601f5cD2dc00fDBc13d4dF4A8c7")
	daiB  = common.HexToAddress("0xd586E7F844cEa2F87f50152665BCbc2C279D8d70")
	fraxB = common.HexToAddress("0xD24C2Ad096400B6FBcd2ad8B24E7acBc21A1da64")

	poolA = common.HexToAddress("0x00000000000000000000000000000000000000f1")
	poolB = common.HexToAddress("0x00000000000000000000000000000000000000f2")
	lpB   = common.HexToAddress("0x00000000000000000000000000000000000000f3")

	usdcSymbol = "CCTP.USDC"

	// 5 bps, 1 USDC base, 5 USDC swap, 100 USDC cap.
	usdcFee = domain.FeeStructure{
		PercentageFee: 5_000_000,
		MinBaseFee:    osmomath.NewInt(1_000_000),
		MinSwapFee:    osmomath.NewInt(5_000_000),
		MaxFee:        osmomath.NewInt(100_000_000),
	}

	reserve = osmomath.NewInt(1_000_000_000_000)
	amount  = osmomath.NewInt(1_000_000_000)
)

// testChain is a full bridge deployment on a single ledger.
type testChain struct {
	chainID uint64
	domain  uint32
	usdc    common.Address

	ledger    *ledgerrepo.MemoryLedger
	pools     mvc.PoolsUsecase
	router    mvc.RouterUsecase
	tokens    mvc.BridgeTokensUsecase
	fees      mvc.FeeUsecase
	requests  *bridgerepo.MemoryRequestsRepository
	messenger *messenger.Messenger
	bridge    mvc.BridgeUsecase
	adapter   mvc.RouterAdapterUsecase
	quoter    mvc.BridgeQuoteUsecase
}

// BridgeTestHelper deploys an origin chain A and a destination chain B sharing an attester.
//
// Chain A tree: 0 (USDC) ── 1 (DAI, poolA)
// Chain B tree: 0 (USDC) ── 1 (USDT, poolB)
type BridgeTestHelper struct {
	suite.Suite

	attesterKey *ecdsa.PrivateKey

	a *testChain
	b *testChain
}

func (s *BridgeTestHelper) SetupTest() {
	attesterKey, err := crypto.GenerateKey()
	s.Require().NoError(err)
	s.attesterKey = attesterKey

	s.a = s.newChain(1, 0, usdcA, usdcB)
	s.b = s.newChain(43114, 1, usdcB, usdcA)

	s.linkChains(s.a, s.b)
	s.linkChains(s.b, s.a)

	s.newStablePool(s.a, poolA, usdcA, daiA)
	s.newStablePool(s.b, poolB, usdcB, usdtB)
}

func (s *BridgeTestHelper) newChain(chainID uint64, localDomain uint32, usdc, remoteUSDC common.Address) *testChain {
	ctx := context.Background()
	chain := &testChain{
		chainID:  chainID,
		domain:   localDomain,
		usdc:     usdc,
		ledger:   ledgerrepo.New(),
		pools:    poolsusecase.NewPoolsUsecase(),
		requests: bridgerepo.NewMemoryRequestsRepository(),
	}

	router, err := routerusecase.NewRouterUsecase(routerAddress, owner, chain.ledger, chain.pools, domain.RouterConfig{RootToken: usdc.Hex()}, &log.NoOpLogger{})
	s.Require().NoError(err)
	s.Require().NoError(chain.pools.StorePool(routerAddress, router))
	chain.router = router

	chain.tokens = usecase.NewTokensUsecase(owner, chainID, "", &log.NoOpLogger{})
	s.Require().NoError(chain.tokens.AddToken(ctx, owner, domain.BridgeToken{
		Symbol:      usdcSymbol,
		Token:       usdc,
		RemoteToken: remoteUSDC,
		Fee:         usdcFee,
	}))
	chain.fees = feesusecase.NewFeeUsecase(chain.tokens)

	chain.messenger = messenger.New(localDomain, chain.ledger, s.attesterKey, func(remoteToken common.Address) (common.Address, error) {
		bridgeToken, err := chain.tokens.GetTokenByRemoteToken(remoteToken)
		return bridgeToken.Token, err
	})

	chain.bridge = usecase.NewBridgeUsecase(bridgeAddress, chain.ledger, chain.tokens, chain.fees, chain.pools, chain.messenger, chain.messenger, chain.requests, &log.NoOpLogger{})
	chain.adapter = usecase.NewRouterAdapterUsecase(adapterAddress, chain.ledger, chain.bridge, chain.pools, &log.NoOpLogger{})
	chain.quoter = usecase.NewBridgeQuoteUsecase(adapterAddress, chain.router, chain.tokens, chain.fees, chain.pools, 2, &log.NoOpLogger{})

	return chain
}

func (s *BridgeTestHelper) linkChains(local, remote *testChain) {
	s.Require().NoError(local.tokens.SetRemoteDomainConfig(context.Background(), owner, domain.RemoteDomainConfig{
		ChainID:  remote.chainID,
		Domain:   remote.domain,
		Contract: bridgeAddress,
	}))
}

// newStablePool registers a fee free 1:1 pool and attaches it to the tree root.
func (s *BridgeTestHelper) newStablePool(chain *testChain, address common.Address, tokens ...common.Address) {
	pool := memorypool.NewStablePool(address, tokens, 0, chain.ledger)
	for _, token := range tokens {
		s.Require().NoError(chain.ledger.Mint(token, address, reserve))
	}
	s.Require().NoError(chain.pools.StorePool(address, pool))
	s.Require().NoError(chain.router.AddPool(context.Background(), owner, 0, address, nil, 0))
}

// newLiquidityPool registers a DAI/FRAX constant product pool on chain B whose LP token is USDC.
func (s *BridgeTestHelper) newLiquidityPool() *memorypool.ConstantProductPool {
	ctx := context.Background()
	pool := memorypool.NewConstantProductPool(lpB, []common.Address{daiB, fraxB}, usdcB, 0, s.b.ledger)
	for _, token := range []common.Address{daiB, fraxB} {
		s.Require().NoError(s.b.ledger.Mint(token, owner, reserve))
		s.Require().NoError(s.b.ledger.Approve(token, owner, lpB, reserve))
	}
	_, err := pool.AddLiquidity(ctx, owner, []osmomath.Int{reserve, reserve})
	s.Require().NoError(err)
	s.Require().NoError(s.b.pools.StorePool(lpB, pool))
	return pool
}

// fund mints amount of token to the user and approves spender for it.
func (s *BridgeTestHelper) fund(chain *testChain, token, spender common.Address, amount osmomath.Int) {
	s.Require().NoError(chain.ledger.Mint(token, user, amount))
	s.Require().NoError(chain.ledger.Approve(token, user, spender, amount))
}

// relay delivers the message of a sent request to the destination chain.
func (s *BridgeTestHelper) relay(from, to *testChain, event domain.RequestSentEvent) (domain.RequestFulfilledEvent, error) {
	sent, err := from.messenger.GetSentMessage(event.Nonce)
	s.Require().NoError(err)
	return to.bridge.ReceiveToken(context.Background(), relayer, sent.Message, sent.Attestation, event.RequestVersion, event.FormattedRequest)
}
