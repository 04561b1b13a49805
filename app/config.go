package main

import (
	"github.com/MrCuPper/synapse-contracts/domain"
)

// DefaultConfig defines the default config for the bridge router server.
var DefaultConfig = domain.Config{
	ServerAddress: ":9092",

	LoggerFilename:     "sbr.log",
	LoggerIsProduction: true,
	LoggerLevel:        "info",

	ChainID:     1,
	LocalDomain: 0,

	Owner: "0x0000000000000000000000000000000000000a11",

	CORS: &domain.CORSConfig{
		AllowedHeaders: "Origin, Accept, Content-Type, X-Requested-With, X-Caller",
		AllowedMethods: "GET, POST, PUT, DELETE, OPTIONS",
		AllowedOrigin:  "*",
	},

	Router: &domain.RouterConfig{
		// USDC on mainnet.
		RootToken: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		Address:   "0x7E7A0e201FD38d3ADAA9523Da6C109a07118C96a",

		BestPathCacheSize:          10_000,
		BestPathCacheExpirySeconds: 2,

		QuoteWorkers: 4,
	},

	Bridge: &domain.BridgeConfig{
		Address:       "0x00000000000000000000000000000000000b81d6",
		RouterAdapter: "0x00000000000000000000000000000000000ada97",
		SymbolPrefix:  "CCTP.",
	},

	Ledger: &domain.LedgerConfig{},

	OTEL: &domain.OTELConfig{},
}
