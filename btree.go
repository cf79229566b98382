package bptree

import (
	"cmp"
)

// Tree is an in-memory B+ tree of order m: every node holds at most m-1 keys,
// branches have at most m children, and only leaves carry values. Leaves are
// linked in key order for range scans.
//
// A Tree is not safe for concurrent use. Callers sharing a tree between
// goroutines must synchronize access themselves.
type Tree[K any, V any] struct {
	root    *node[K, V]
	order   int
	compare func(a, b K) int
	length  int
	height  int // Levels from root to leaf, 1 for a leaf root
	logger  Logger
}

// New creates an empty tree of the given order for naturally ordered keys.
// Returns ErrInvalidOrder if order < MinOrder.
func New[K cmp.Ordered, V any](order int, opts ...Option) (*Tree[K, V], error) {
	return NewFunc[K, V](order, cmp.Compare[K], opts...)
}

// NewFunc creates an empty tree ordered by compare, which must return a
// negative number when a < b, zero when a == b and a positive number when a > b.
func NewFunc[K any, V any](order int, compare func(a, b K) int, opts ...Option) (*Tree[K, V], error) {
	if order < MinOrder {
		return nil, ErrInvalidOrder
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Tree[K, V]{
		root:    newLeaf[K, V](order),
		order:   order,
		compare: compare,
		height:  1,
		logger:  o.logger,
	}, nil
}

// Order returns the maximum number of children of a branch node.
func (t *Tree[K, V]) Order() int {
	return t.order
}

// Len returns the number of keys in the tree.
func (t *Tree[K, V]) Len() int {
	return t.length
}

// Height returns the number of levels, 1 when the root is a leaf.
func (t *Tree[K, V]) Height() int {
	return t.height
}

// findLeaf descends from the root to the leaf whose range covers key.
func (t *Tree[K, V]) findLeaf(key K) *node[K, V] {
	n := t.root
	for !n.leaf {
		n = n.children[n.childIndex(t.compare, key)]
	}
	return n
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (t *Tree[K, V]) Get(key K) (V, error) {
	leaf := t.findLeaf(key)
	if i, found := leaf.search(t.compare, key); found {
		return leaf.values[i], nil
	}
	var zero V
	return zero, ErrKeyNotFound
}

// Has reports whether key is present.
func (t *Tree[K, V]) Has(key K) bool {
	_, found := t.findLeaf(key).search(t.compare, key)
	return found
}

// Min returns the smallest key and its value. ok is false for an empty tree.
func (t *Tree[K, V]) Min() (key K, value V, ok bool) {
	n := t.root
	for !n.leaf {
		n = n.children[0]
	}
	if len(n.keys) == 0 {
		return key, value, false
	}
	return n.keys[0], n.values[0], true
}

// Max returns the largest key and its value. ok is false for an empty tree.
func (t *Tree[K, V]) Max() (key K, value V, ok bool) {
	n := t.root
	for !n.leaf {
		n = n.children[len(n.children)-1]
	}
	if len(n.keys) == 0 {
		return key, value, false
	}
	last := len(n.keys) - 1
	return n.keys[last], n.values[last], true
}

// Insert adds key with value. A key that is already present is rejected with
// ErrKeyExists and the stored value is left untouched.
func (t *Tree[K, V]) Insert(key K, value V) error {
	if t.Has(key) {
		return ErrKeyExists
	}
	t.put(key, value)
	return nil
}

// Upsert inserts key or replaces the value of an existing key. It reports
// whether a value was replaced.
func (t *Tree[K, V]) Upsert(key K, value V) (replaced bool) {
	return !t.put(key, value)
}

// put stores key and grows the tree by one level when the root splits.
// Returns true if a new key was added.
func (t *Tree[K, V]) put(key K, value V) bool {
	sp, inserted := t.insertNode(t.root, key, value)
	if sp != nil {
		root := newBranch[K, V](t.order)
		root.keys = append(root.keys, sp.separator)
		root.children = append(root.children, t.root, sp.right)
		t.root = root
		t.height++
		t.logger.Debug("root split", "height", t.height, "keys", t.length+1)
	}
	if inserted {
		t.length++
	}
	return inserted
}

// split carries the result of an overflowing node back to its parent.
type split[K any, V any] struct {
	separator K
	right     *node[K, V]
}

// insertNode inserts into the subtree rooted at n. If n overflows it is split
// and the new right sibling is returned for the caller to link in.
func (t *Tree[K, V]) insertNode(n *node[K, V], key K, value V) (*split[K, V], bool) {
	if n.leaf {
		i, found := n.search(t.compare, key)
		if found {
			n.values[i] = value
			return nil, false
		}

		n.keys = insertAt(n.keys, i, key)
		n.values = insertAt(n.values, i, value)
		if !n.isOverflow(t.order) {
			return nil, true
		}
		return t.splitLeaf(n), true
	}

	i := n.childIndex(t.compare, key)
	sp, inserted := t.insertNode(n.children[i], key, value)
	if sp == nil {
		return nil, inserted
	}

	// Child i kept the left half; the new node goes immediately to its right.
	n.keys = insertAt(n.keys, i, sp.separator)
	n.children = insertAt(n.children, i+1, sp.right)
	if !n.isOverflow(t.order) {
		return nil, inserted
	}
	return t.splitBranch(n), inserted
}

// splitLeaf moves keys [m/2, m) into a new leaf and copies the new leaf's
// first key up as the separator. The key stays in the leaf.
func (t *Tree[K, V]) splitLeaf(n *node[K, V]) *split[K, V] {
	mid := t.order / 2

	right := newLeaf[K, V](t.order)
	right.keys = append(right.keys, n.keys[mid:]...)
	right.values = append(right.values, n.values[mid:]...)
	n.keys = truncate(n.keys, mid)
	n.values = truncate(n.values, mid)

	// Splice right into the chain after n
	right.prev = n
	right.next = n.next
	if n.next != nil {
		n.next.prev = right
	}
	n.next = right

	return &split[K, V]{separator: right.keys[0], right: right}
}

// splitBranch moves the key at m/2 up to the parent. Keys after it and the
// children to its right go to the new node.
func (t *Tree[K, V]) splitBranch(n *node[K, V]) *split[K, V] {
	mid := t.order / 2
	separator := n.keys[mid]

	right := newBranch[K, V](t.order)
	right.keys = append(right.keys, n.keys[mid+1:]...)
	right.children = append(right.children, n.children[mid+1:]...)
	n.keys = truncate(n.keys, mid)
	n.children = truncate(n.children, mid+1)

	return &split[K, V]{separator: separator, right: right}
}
