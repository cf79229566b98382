package bptree

import (
	"iter"
)

// Cursor provides ordered iteration over the leaf chain. It starts in an
// invalid state; call First, Last or Seek to position it.
//
// A cursor is invalidated by any Insert, Upsert or Delete on its tree.
type Cursor[K any, V any] struct {
	tree  *Tree[K, V]
	leaf  *node[K, V]
	index int
}

// Cursor returns a new unpositioned cursor.
func (t *Tree[K, V]) Cursor() *Cursor[K, V] {
	return &Cursor[K, V]{tree: t}
}

// First positions the cursor at the smallest key.
// Returns false if the tree is empty.
func (c *Cursor[K, V]) First() bool {
	n := c.tree.root
	for !n.leaf {
		n = n.children[0]
	}
	c.leaf, c.index = n, 0
	return c.settle()
}

// Last positions the cursor at the largest key.
// Returns false if the tree is empty.
func (c *Cursor[K, V]) Last() bool {
	n := c.tree.root
	for !n.leaf {
		n = n.children[len(n.children)-1]
	}
	c.leaf, c.index = n, len(n.keys)-1
	return c.Valid()
}

// Seek positions the cursor at the first key >= key.
// Returns false if no such key exists.
func (c *Cursor[K, V]) Seek(key K) bool {
	leaf := c.tree.findLeaf(key)
	i, _ := leaf.search(c.tree.compare, key)
	c.leaf, c.index = leaf, i
	return c.settle()
}

// Next advances to the following key, crossing into the next leaf when the
// current one is exhausted.
func (c *Cursor[K, V]) Next() bool {
	if !c.Valid() {
		return false
	}
	c.index++
	return c.settle()
}

// Prev moves to the preceding key, crossing into the previous leaf when needed.
func (c *Cursor[K, V]) Prev() bool {
	if !c.Valid() {
		return false
	}
	c.index--
	for c.leaf != nil && c.index < 0 {
		c.leaf = c.leaf.prev
		if c.leaf != nil {
			c.index = len(c.leaf.keys) - 1
		}
	}
	return c.Valid()
}

// settle moves forward along the chain until index points at a key.
func (c *Cursor[K, V]) settle() bool {
	for c.leaf != nil && c.index >= len(c.leaf.keys) {
		c.leaf = c.leaf.next
		c.index = 0
	}
	return c.Valid()
}

// Valid reports whether the cursor is positioned on a key.
func (c *Cursor[K, V]) Valid() bool {
	return c.leaf != nil && c.index >= 0 && c.index < len(c.leaf.keys)
}

// Key returns the current key. Only meaningful while Valid.
func (c *Cursor[K, V]) Key() K {
	return c.leaf.keys[c.index]
}

// Value returns the current value. Only meaningful while Valid.
func (c *Cursor[K, V]) Value() V {
	return c.leaf.values[c.index]
}

// Scan returns the entries within the given bounds in ascending key order.
// Without options it yields the whole tree. Each call to the returned
// sequence starts from a fresh descent, so a sequence can be ranged over more
// than once as long as the tree is not modified mid-iteration.
//
//	for k, v := range tree.Scan(bptree.From(10), bptree.To(20)) {
//	    ...
//	}
func (t *Tree[K, V]) Scan(opts ...ScanOption[K]) iter.Seq2[K, V] {
	var o scanOptions[K]
	for _, opt := range opts {
		opt(&o)
	}

	return func(yield func(K, V) bool) {
		c := t.Cursor()
		var ok bool
		if o.hasFrom {
			ok = c.Seek(o.from)
		} else {
			ok = c.First()
		}

		for ; ok; ok = c.Next() {
			if o.hasTo && t.compare(c.Key(), o.to) > 0 {
				return
			}
			if !yield(c.Key(), c.Value()) {
				return
			}
		}
	}
}

// Keys returns the keys of the tree in ascending order.
func (t *Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range t.Scan() {
			if !yield(k) {
				return
			}
		}
	}
}
