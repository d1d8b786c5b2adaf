// Package kvstore is the string-keyed, JSON-valued store that backs per-user recipe
// history and metrics. Every backend applies a Batch all-or-nothing.
package kvstore

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New(ErrMsgStoreClosed)

// Store is a key-value store with atomic multi-key writes
type Store interface {
	// Get returns the value stored at key. found is false when the key does not exist.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Apply writes every operation in the batch, or none of them.
	Apply(ctx context.Context, batch *Batch) error
	// Keys lists the keys starting with prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Op is a single set or delete inside a Batch
type Op struct {
	Key    string `json:"key"`
	Value  []byte `json:"value,omitempty"`
	Delete bool   `json:"delete,omitempty"`
}

// Batch collects writes to apply atomically. Later operations on the same key win.
type Batch struct {
	ops map[string]Op
}

// NewBatch returns an empty batch
func NewBatch() *Batch {
	return &Batch{ops: make(map[string]Op)}
}

// Set stores value at key
func (b *Batch) Set(key string, value []byte) *Batch {
	b.ops[key] = Op{Key: key, Value: value}
	return b
}

// Delete removes key
func (b *Batch) Delete(key string) *Batch {
	b.ops[key] = Op{Key: key, Delete: true}
	return b
}

// Len returns the number of distinct keys touched
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.ops)
}

// Ops returns the operations sorted by key
func (b *Batch) Ops() []Op {
	if b == nil {
		return nil
	}
	out := make([]Op, 0, len(b.ops))
	for _, op := range b.ops {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// JoinKey builds a hierarchical key from its parts
func JoinKey(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}

// Ping reads the probe key to check that s is reachable
func Ping(ctx context.Context, s Store) error {
	_, _, err := s.Get(ctx, ProbeKey)
	return err
}
