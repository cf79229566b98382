package bptree

import (
	"fmt"
)

// Verify walks the whole tree and checks its structural invariants: equal
// leaf depth, occupancy bounds for non-root nodes, separator correctness,
// strictly increasing keys, and a leaf chain that visits every key once in
// both directions. A failure wraps ErrCorruption and indicates a defect in
// the tree itself, never in the caller.
func (t *Tree[K, V]) Verify() error {
	var leaves []*node[K, V]
	if err := t.verifyNode(t.root, 1, &leaves); err != nil {
		return err
	}
	return t.verifyChain(leaves)
}

func (t *Tree[K, V]) verifyNode(n *node[K, V], depth int, leaves *[]*node[K, V]) error {
	isRoot := n == t.root

	if len(n.keys) > t.order-1 {
		return fmt.Errorf("%w: node at depth %d has %d keys, max %d", ErrCorruption, depth, len(n.keys), t.order-1)
	}
	if !isRoot && n.isUnderflow(t.order) {
		return fmt.Errorf("%w: node at depth %d has %d keys, min %d", ErrCorruption, depth, len(n.keys), n.minKeys(t.order))
	}
	for i := 1; i < len(n.keys); i++ {
		if t.compare(n.keys[i-1], n.keys[i]) >= 0 {
			return fmt.Errorf("%w: keys out of order at depth %d: %v >= %v", ErrCorruption, depth, n.keys[i-1], n.keys[i])
		}
	}

	if n.leaf {
		if depth != t.height {
			return fmt.Errorf("%w: leaf at depth %d, height %d", ErrCorruption, depth, t.height)
		}
		if len(n.values) != len(n.keys) {
			return fmt.Errorf("%w: leaf has %d keys and %d values", ErrCorruption, len(n.keys), len(n.values))
		}
		*leaves = append(*leaves, n)
		return nil
	}

	if len(n.children) != len(n.keys)+1 {
		return fmt.Errorf("%w: branch at depth %d has %d keys and %d children", ErrCorruption, depth, len(n.keys), len(n.children))
	}
	if isRoot && len(n.keys) == 0 {
		return fmt.Errorf("%w: branch root with a single child", ErrCorruption)
	}

	for i, child := range n.children {
		if err := t.verifyNode(child, depth+1, leaves); err != nil {
			return err
		}
		if i == 0 {
			continue
		}
		// Separator i-1 must equal the minimum of child i
		if first := child.firstKey(); t.compare(n.keys[i-1], first) != 0 {
			return fmt.Errorf("%w: separator %v at depth %d, subtree starts at %v", ErrCorruption, n.keys[i-1], depth, first)
		}
		// and everything in child i-1 must sort below it
		last := n.children[i-1]
		for !last.leaf {
			last = last.children[len(last.children)-1]
		}
		if t.compare(last.keys[len(last.keys)-1], n.keys[i-1]) >= 0 {
			return fmt.Errorf("%w: key %v left of separator %v", ErrCorruption, last.keys[len(last.keys)-1], n.keys[i-1])
		}
	}
	return nil
}

// verifyChain checks that the linked leaves are exactly the leaves found by
// descent, in the same order, with consistent back links.
func (t *Tree[K, V]) verifyChain(leaves []*node[K, V]) error {
	if leaves[0].prev != nil {
		return fmt.Errorf("%w: leftmost leaf has a prev link", ErrCorruption)
	}

	count := 0
	var prev *node[K, V]
	n := leaves[0]
	for i := 0; n != nil; i++ {
		if i >= len(leaves) || leaves[i] != n {
			return fmt.Errorf("%w: leaf chain diverges from tree at leaf %d", ErrCorruption, i)
		}
		if n.prev != prev {
			return fmt.Errorf("%w: leaf %d has a wrong prev link", ErrCorruption, i)
		}
		if prev != nil && t.compare(prev.keys[len(prev.keys)-1], n.keys[0]) >= 0 {
			return fmt.Errorf("%w: leaf chain out of order at leaf %d", ErrCorruption, i)
		}
		count += len(n.keys)
		prev, n = n, n.next
	}

	if prev != leaves[len(leaves)-1] {
		return fmt.Errorf("%w: leaf chain ends early", ErrCorruption)
	}
	if count != t.length {
		return fmt.Errorf("%w: leaf chain holds %d keys, tree length %d", ErrCorruption, count, t.length)
	}
	return nil
}
