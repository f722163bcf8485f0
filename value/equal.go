// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

import "github.com/creachadair/mds/mapset"

// Equal reports whether a and b are structurally equal. Scalars are equal if
// they have the same type and value, so Int32(1) and Int64(1) differ. Arrays
// are equal if they have equal elements in the same order, and objects if
// they have equal members in the same order.
//
// Equal terminates on cyclic values: a pair of containers already under
// comparison is assumed equal, so two graphs with the same cycle shape are
// equal even if their containers are not identical.
func Equal(a, b Value) bool {
	return equal(mapset.New[pair](), orNull(a), orNull(b))
}

type pair struct{ a, b Value }

func equal(seen mapset.Set[pair], a, b Value) bool {
	switch ta := a.(type) {
	case *Array:
		tb, ok := b.(*Array)
		if !ok {
			return false
		} else if ta == tb {
			return true
		} else if ta.Len() != tb.Len() {
			return false
		}
		p := pair{a, b}
		if seen.Has(p) {
			return true
		}
		seen.Add(p)
		for i, v := range ta.Values {
			if !equal(seen, v, tb.Values[i]) {
				return false
			}
		}
		return true

	case *Object:
		tb, ok := b.(*Object)
		if !ok {
			return false
		} else if ta == tb {
			return true
		} else if ta.Len() != tb.Len() {
			return false
		}
		p := pair{a, b}
		if seen.Has(p) {
			return true
		}
		seen.Add(p)
		for i, m := range ta.members {
			n := tb.members[i]
			if !equal(seen, m.Key, n.Key) || !equal(seen, m.Value, n.Value) {
				return false
			}
		}
		return true

	default:
		return a == b
	}
}
