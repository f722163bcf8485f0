// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

import "fmt"

// Path traverses a sequence of nested values starting from v. Each element of
// path is a string, which selects the member of an object with that key, or
// an int, which selects the element of an array at that offset. A negative
// offset counts backward from the end of the array.
//
// Path returns nil if any step of the path does not exist. It panics if an
// element of path is not a string or an int.
func Path(v Value, path ...any) Value {
	cur := orNull(v)
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			o, ok := cur.(*Object)
			if !ok {
				return nil
			}
			next, ok := o.Get(String(t))
			if !ok {
				return nil
			}
			cur = next

		case int:
			a, ok := cur.(*Array)
			if !ok {
				return nil
			}
			i := t
			if i < 0 {
				i += a.Len()
			}
			if i < 0 || i >= a.Len() {
				return nil
			}
			cur = a.Values[i]

		default:
			panic(fmt.Sprintf("invalid path element %T", elt))
		}
	}
	return cur
}
