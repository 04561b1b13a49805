package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
)

const (
	// MaxPools is the maximum number of pools in the tree, excluding the sentinel at index 0.
	MaxPools = 255
	// MaxNodes is the maximum number of nodes in the tree.
	MaxNodes = 256
)

// Node is one occurrence of a token in the tree.
// The root node has index 0, depth 0 and the sentinel pool index 0.
type Node struct {
	Token     common.Address `json:"token"`
	Depth     uint8          `json:"depth"`
	PoolIndex uint8          `json:"pool_index"`
	Parent    uint8          `json:"parent"`
}

// TreePool is a pool registered in the tree.
type TreePool struct {
	Address common.Address `json:"address"`
	Module  PoolModule     `json:"-"`
	Index   uint8          `json:"index"`
}

// NodeView is the introspection view of a node.
type NodeView struct {
	Index         int              `json:"index"`
	Token         common.Address   `json:"token"`
	Depth         uint8            `json:"depth"`
	Parent        int              `json:"parent"`
	ParentPool    common.Address   `json:"parent_pool"`
	RootPath      []uint8          `json:"root_path"`
	AttachedPools []common.Address `json:"attached_pools"`
}

// BestPath is the result of a best path search.
type BestPath struct {
	NodeIndexFrom int          `json:"node_index_from"`
	NodeIndexTo   int          `json:"node_index_to"`
	AmountOut     osmomath.Int `json:"amount_out"`
}

// TreeSnapshot is the serializable state of the tree.
type TreeSnapshot struct {
	RootToken common.Address `json:"root_token"`
	Nodes     []NodeView     `json:"nodes"`
	Pools     []PoolInfo     `json:"pools"`
}
