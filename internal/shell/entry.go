package shell

import (
	"bptree"
)

// Entry is a file or a directory. A directory keeps its children in its own
// B+ tree keyed by name.
type Entry struct {
	name     string
	children *bptree.Tree[string, *Entry] // nil for files
}

func newFile(name string) *Entry {
	return &Entry{name: name}
}

func newDir(name string, order int, logger bptree.Logger) (*Entry, error) {
	children, err := bptree.New[string, *Entry](order, bptree.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &Entry{name: name, children: children}, nil
}

// Name returns the entry's name within its parent.
func (e *Entry) Name() string {
	return e.name
}

// IsDir reports whether e is a directory.
func (e *Entry) IsDir() bool {
	return e.children != nil
}

// IsEmpty reports whether a directory has no children. Files are always empty.
func (e *Entry) IsEmpty() bool {
	if !e.IsDir() {
		return true
	}
	for range e.children.Scan() {
		return false
	}
	return true
}
