package lint

import "github.com/yaklabco/tsdoclint/pkg/tsast"

// NodeCache indexes the nodes of one file by kind, built by a single tree
// walk the first time a rule asks for it.
//
// The returned slices are shared by every rule run against the file; copy
// before sorting or filtering in place. NodeCache is not safe for concurrent
// use, which is fine because rules for one file run sequentially.
type NodeCache struct {
	byKind map[tsast.NodeKind][]*tsast.Node
	built  bool
}

func newNodeCache() *NodeCache {
	return &NodeCache{}
}

func (nc *NodeCache) build(root *tsast.Node) {
	if nc.built || root == nil {
		return
	}

	nc.byKind = make(map[tsast.NodeKind][]*tsast.Node)

	//nolint:errcheck // the visitor never fails
	tsast.Walk(root, func(node *tsast.Node) error {
		nc.byKind[node.Kind] = append(nc.byKind[node.Kind], node)
		return nil
	})

	nc.built = true
}

// OfKind returns the nodes of the given kind in pre-order.
func (nc *NodeCache) OfKind(kind tsast.NodeKind) []*tsast.Node {
	return nc.byKind[kind]
}
