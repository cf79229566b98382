package bptree

// Delete removes key from the tree, or returns ErrKeyNotFound without
// modifying anything.
func (t *Tree[K, V]) Delete(key K) error {
	found, _ := t.deleteNode(t.root, key)
	if !found {
		return ErrKeyNotFound
	}
	t.length--

	// Root is exempt from the minimum; collapse it once it routes to a single child
	if !t.root.leaf && len(t.root.children) == 1 {
		t.root = t.root.children[0]
		t.height--
		t.logger.Debug("root collapse", "height", t.height, "keys", t.length)
	}
	return nil
}

// deleteNode removes key from the subtree rooted at n. underflow reports that
// n dropped below its minimum and must be repaired by the caller.
func (t *Tree[K, V]) deleteNode(n *node[K, V], key K) (found, underflow bool) {
	if n.leaf {
		i, ok := n.search(t.compare, key)
		if !ok {
			return false, false
		}
		n.keys = removeAt(n.keys, i)
		n.values = removeAt(n.values, i)
		return true, n.isUnderflow(t.order)
	}

	i := n.childIndex(t.compare, key)
	child := n.children[i]

	found, underflow = t.deleteNode(child, key)
	if !found {
		return false, false
	}

	// A separator equal to the deleted key was copied from the first key of
	// child i and is now stale. Refresh it before a merge can pull it down.
	if i > 0 && t.compare(n.keys[i-1], key) == 0 && !child.isEmptyLeaf() {
		n.keys[i-1] = child.firstKey()
	}

	if underflow {
		i = t.fixUnderflow(n, i)
		if i > 0 {
			n.keys[i-1] = n.children[i].firstKey()
		}
	}

	return true, n.isUnderflow(t.order)
}

// fixUnderflow repairs child i of parent by borrowing from a sibling that can
// spare a key, or by merging with one. Returns the index of the node that now
// holds child i's keys.
func (t *Tree[K, V]) fixUnderflow(parent *node[K, V], i int) int {
	if i > 0 && parent.children[i-1].canLend(t.order) {
		t.borrowFromLeft(parent, i)
		return i
	}

	if i < len(parent.children)-1 && parent.children[i+1].canLend(t.order) {
		t.borrowFromRight(parent, i)
		return i
	}

	if i > 0 {
		t.mergeNodes(parent, i-1)
		return i - 1
	}
	t.mergeNodes(parent, i)
	return i
}

// borrowFromLeft moves the last entry of child i-1 to the front of child i.
func (t *Tree[K, V]) borrowFromLeft(parent *node[K, V], i int) {
	n := parent.children[i]
	left := parent.children[i-1]
	last := len(left.keys) - 1

	if n.leaf {
		n.keys = insertAt(n.keys, 0, left.keys[last])
		n.values = insertAt(n.values, 0, left.values[last])
		left.keys = truncate(left.keys, last)
		left.values = truncate(left.values, last)

		// Separator is the new minimum of the right-hand leaf
		parent.keys[i-1] = n.keys[0]
		return
	}

	// Branch: rotate through the parent. The old separator comes down in front
	// of the borrowed child and the left sibling's last key goes up.
	n.keys = insertAt(n.keys, 0, parent.keys[i-1])
	n.children = insertAt(n.children, 0, left.children[last+1])
	parent.keys[i-1] = left.keys[last]
	left.keys = truncate(left.keys, last)
	left.children = truncate(left.children, last+1)
}

// borrowFromRight moves the first entry of child i+1 to the end of child i.
func (t *Tree[K, V]) borrowFromRight(parent *node[K, V], i int) {
	n := parent.children[i]
	right := parent.children[i+1]

	if n.leaf {
		n.keys = append(n.keys, right.keys[0])
		n.values = append(n.values, right.values[0])
		right.keys = removeAt(right.keys, 0)
		right.values = removeAt(right.values, 0)

		parent.keys[i] = right.keys[0]
		return
	}

	n.keys = append(n.keys, parent.keys[i])
	n.children = append(n.children, right.children[0])
	parent.keys[i] = right.keys[0]
	right.keys = removeAt(right.keys, 0)
	right.children = removeAt(right.children, 0)
}

// mergeNodes folds child idx+1 into child idx and removes separator idx from
// the parent. Leaves absorb no separator since leaf splits never consumed one.
func (t *Tree[K, V]) mergeNodes(parent *node[K, V], idx int) {
	left := parent.children[idx]
	right := parent.children[idx+1]

	if left.leaf {
		left.keys = append(left.keys, right.keys...)
		left.values = append(left.values, right.values...)

		// Unlink right from the chain
		left.next = right.next
		if right.next != nil {
			right.next.prev = left
		}
		right.next, right.prev = nil, nil
	} else {
		left.keys = append(left.keys, parent.keys[idx])
		left.keys = append(left.keys, right.keys...)
		left.children = append(left.children, right.children...)
	}

	parent.keys = removeAt(parent.keys, idx)
	parent.children = removeAt(parent.children, idx+1)

	right.keys, right.values, right.children = nil, nil, nil
}
