// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package reftab implements an identity-keyed reference table.
//
// A Table maps a source identity to the output already produced for it, and
// separately tracks which identities are in progress, that is, currently
// being visited by a recursive traversal. A table belongs to a single
// traversal and is not safe for concurrent use.
package reftab

// A Table records produced outputs and in-progress entries keyed by identity.
// Keys are compared with ==, so for pointer and reference types the
// comparison is by identity and never by structure.
type Table[K comparable, V any] struct {
	done map[K]V
	open map[K]int // key -> position in stk
	stk  []K
}

// New constructs a new empty table.
func New[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{done: make(map[K]V), open: make(map[K]int)}
}

// Lookup reports the output recorded for k, if any.
func (t *Table[K, V]) Lookup(k K) (V, bool) {
	v, ok := t.done[k]
	return v, ok
}

// Record records v as the output for k, replacing any previous output.
func (t *Table[K, V]) Record(k K, v V) { t.done[k] = v }

// Forget discards the output recorded for k, if any.
func (t *Table[K, V]) Forget(k K) { delete(t.done, k) }

// Enter marks k as in progress and reports true, or reports false without
// changing t if k is already in progress.
func (t *Table[K, V]) Enter(k K) bool {
	if _, ok := t.open[k]; ok {
		return false
	}
	t.open[k] = len(t.stk)
	t.stk = append(t.stk, k)
	return true
}

// Leave ends the in-progress entry for k and all entries entered after it.
func (t *Table[K, V]) Leave(k K) {
	i, ok := t.open[k]
	if !ok {
		return
	}
	for _, x := range t.stk[i:] {
		delete(t.open, x)
	}
	t.stk = t.stk[:i]
}

// Active reports whether k is in progress.
func (t *Table[K, V]) Active(k K) bool {
	_, ok := t.open[k]
	return ok
}

// Depth reports the distance of k from the innermost in-progress entry:
// 0 for the innermost, 1 for the one entered before it, and so on.
// It reports false if k is not in progress.
func (t *Table[K, V]) Depth(k K) (int, bool) {
	i, ok := t.open[k]
	if !ok {
		return 0, false
	}
	return len(t.stk) - 1 - i, true
}

// Outer returns the in-progress entry at distance n from the innermost, as
// reported by Depth. It reports false if there is no such entry.
func (t *Table[K, V]) Outer(n int) (K, bool) {
	if n < 0 || n >= len(t.stk) {
		var zero K
		return zero, false
	}
	return t.stk[len(t.stk)-1-n], true
}

// Open reports the number of in-progress entries.
func (t *Table[K, V]) Open() int { return len(t.stk) }
