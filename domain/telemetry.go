package domain

import "github.com/prometheus/client_golang/prometheus"

var (
	// sbr_router_pool_quote_error_total
	//
	// counter that measures the number of pool errors swallowed while quoting a path
	//
	// Has the following labels:
	// * pool - the address of the pool that failed
	SBRRouterPoolQuoteErrorMetricName = "sbr_router_pool_quote_error_total"

	// sbr_router_swaps_total
	//
	// counter that measures the number of executed swaps
	//
	// Has the following labels:
	// * status - success or failure
	SBRRouterSwapsMetricName = "sbr_router_swaps_total"

	// sbr_router_best_path_cache_hits_total
	//
	// counter that measures the number of best path cache hits
	SBRBestPathCacheHitsMetricName = "sbr_router_best_path_cache_hits_total"

	// sbr_router_best_path_cache_misses_total
	//
	// counter that measures the number of best path cache misses
	SBRBestPathCacheMissesMetricName = "sbr_router_best_path_cache_misses_total"

	// sbr_router_tree_nodes
	//
	// gauge that tracks the number of nodes in the token tree
	SBRRouterTreeNodesMetricName = "sbr_router_tree_nodes"

	// sbr_bridge_requests_total
	//
	// counter that measures the number of bridge requests
	//
	// Has the following labels:
	// * direction - sent or fulfilled
	// * version - the request version
	SBRBridgeRequestsMetricName = "sbr_bridge_requests_total"

	// sbr_bridge_destination_fallback_total
	//
	// counter that measures the number of fulfilled requests where the destination
	// action failed and the bridged token was delivered instead
	SBRBridgeDestinationFallbackMetricName = "sbr_bridge_destination_fallback_total"

	// sbr_bridge_quote_candidate_panic_total
	//
	// counter that measures the number of bridge quote candidates that panicked
	// and were answered with an empty query
	SBRBridgeQuoteCandidatePanicMetricName = "sbr_bridge_quote_candidate_panic_total"

	SBRRouterPoolQuoteErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SBRRouterPoolQuoteErrorMetricName,
			Help: "counter that measures the number of pool errors swallowed while quoting a path",
		},
		[]string{"pool"},
	)

	SBRRouterSwapsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SBRRouterSwapsMetricName,
			Help: "counter that measures the number of executed swaps",
		},
		[]string{"status"},
	)

	SBRBestPathCacheHitsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SBRBestPathCacheHitsMetricName,
			Help: "counter that measures the number of best path cache hits",
		},
	)

	SBRBestPathCacheMissesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SBRBestPathCacheMissesMetricName,
			Help: "counter that measures the number of best path cache misses",
		},
	)

	SBRRouterTreeNodesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: SBRRouterTreeNodesMetricName,
			Help: "gauge that tracks the number of nodes in the token tree",
		},
	)

	SBRBridgeRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SBRBridgeRequestsMetricName,
			Help: "counter that measures the number of bridge requests",
		},
		[]string{"direction", "version"},
	)

	SBRBridgeDestinationFallbackCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SBRBridgeDestinationFallbackMetricName,
			Help: "counter that measures the number of fulfilled requests delivered without the destination action",
		},
	)

	SBRBridgeQuoteCandidatePanicCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SBRBridgeQuoteCandidatePanicMetricName,
			Help: "counter that measures the number of bridge quote candidates that panicked",
		},
	)
)

func init() {
	prometheus.MustRegister(SBRRouterPoolQuoteErrorCounter)
	prometheus.MustRegister(SBRRouterSwapsCounter)
	prometheus.MustRegister(SBRBestPathCacheHitsCounter)
	prometheus.MustRegister(SBRBestPathCacheMissesCounter)
	prometheus.MustRegister(SBRRouterTreeNodesGauge)
	prometheus.MustRegister(SBRBridgeRequestsCounter)
	prometheus.MustRegister(SBRBridgeDestinationFallbackCounter)
	prometheus.MustRegister(SBRBridgeQuoteCandidatePanicCounter)
}
