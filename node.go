package bptree

const searchThreshold = 32

// node is either a leaf or a branch. Leaves hold the data and are chained
// through next/prev; branches hold routing keys only.
type node[K any, V any] struct {
	leaf bool

	keys     []K
	values   []V            // Empty and unused in branch nodes
	children []*node[K, V] // Empty and unused in leaf nodes

	// Leaf chain, nil at either end.
	next *node[K, V]
	prev *node[K, V]
}

func newLeaf[K any, V any](order int) *node[K, V] {
	return &node[K, V]{
		leaf:   true,
		keys:   make([]K, 0, order),
		values: make([]V, 0, order),
	}
}

func newBranch[K any, V any](order int) *node[K, V] {
	return &node[K, V]{
		keys:     make([]K, 0, order),
		children: make([]*node[K, V], 0, order+1),
	}
}

// search returns the index of key in n and whether it is present. When key is
// absent the index is where it would be inserted.
func (n *node[K, V]) search(compare func(a, b K) int, key K) (int, bool) {
	if len(n.keys) < searchThreshold {
		i := 0
		for i < len(n.keys) {
			c := compare(key, n.keys[i])
			if c == 0 {
				return i, true
			}
			if c < 0 {
				break
			}
			i++
		}
		return i, false
	}

	low, high := 0, len(n.keys)
	for low < high {
		mid := int(uint(low+high) >> 1)
		switch c := compare(key, n.keys[mid]); {
		case c > 0:
			low = mid + 1
		case c < 0:
			high = mid
		default:
			return mid, true
		}
	}
	return low, false
}

// childIndex returns the child to follow for key: the index of the first
// separator strictly greater than key. Separators are the minimum of their
// right subtree, so key >= separator goes right.
func (n *node[K, V]) childIndex(compare func(a, b K) int, key K) int {
	if len(n.keys) < searchThreshold {
		i := 0
		for i < len(n.keys) && compare(key, n.keys[i]) >= 0 {
			i++
		}
		return i
	}

	low, high := 0, len(n.keys)
	for low < high {
		mid := int(uint(low+high) >> 1)
		if compare(key, n.keys[mid]) >= 0 {
			low = mid + 1
		} else {
			high = mid
		}
	}
	return low
}

// firstKey returns the smallest key stored under n. n must not be an empty leaf.
func (n *node[K, V]) firstKey() K {
	for !n.leaf {
		n = n.children[0]
	}
	return n.keys[0]
}

// isEmptyLeaf reports whether n is a leaf without keys. Only a leaf root may
// stay empty after an operation returns.
func (n *node[K, V]) isEmptyLeaf() bool {
	return n.leaf && len(n.keys) == 0
}

// ceilDiv is the only rounding used for occupancy bounds.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// minLeafKeys is ⌈(m−1)/2⌉.
func minLeafKeys(order int) int {
	return ceilDiv(order-1, 2)
}

// minBranchKeys is one less than ⌈m/2⌉ children. Equal to minLeafKeys for odd
// orders; for even orders an internal split of m keys leaves m/2−1 on the
// right, so the bound has to be expressed in children.
func minBranchKeys(order int) int {
	return ceilDiv(order, 2) - 1
}

func (n *node[K, V]) minKeys(order int) int {
	if n.leaf {
		return minLeafKeys(order)
	}
	return minBranchKeys(order)
}

// isUnderflow reports whether a non-root node has fewer keys than allowed.
func (n *node[K, V]) isUnderflow(order int) bool {
	return len(n.keys) < n.minKeys(order)
}

// canLend reports whether n stays at or above minimum after giving up a key.
func (n *node[K, V]) canLend(order int) bool {
	return len(n.keys) > n.minKeys(order)
}

// isOverflow reports whether n holds more than order-1 keys and must split.
func (n *node[K, V]) isOverflow(order int) bool {
	return len(n.keys) >= order
}

// insertAt inserts v at index i, shifting the tail right.
func insertAt[T any](s []T, i int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// removeAt removes the element at index i, clearing the vacated slot.
func removeAt[T any](s []T, i int) []T {
	copy(s[i:], s[i+1:])
	var zero T
	s[len(s)-1] = zero
	return s[:len(s)-1]
}

// truncate drops s[n:], clearing the dropped slots so they can be collected.
func truncate[T any](s []T, n int) []T {
	clear(s[n:])
	return s[:n]
}
