package bptree

import (
	"errors"
)

//goland:noinspection GoUnusedGlobalVariable
var (
	ErrKeyNotFound  = errors.New("key not found")
	ErrKeyExists    = errors.New("key already exists")
	ErrInvalidOrder = errors.New("order must be at least 3")
	ErrCorruption   = errors.New("tree invariant violated")
)
