// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"fmt"
	"iter"
)

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   Value
	Value Value
}

// Field constructs an object member with a string key.
func Field(key string, v Value) Member { return Member{Key: String(key), Value: orNull(v)} }

// An Object is a collection of key-value members with unique keys, kept in
// the order the keys were first added.
//
// Keys are compared as Go interface values: scalar keys match by value, and
// array and object keys match by identity. Int32(1) and Int64(1) are
// different keys.
type Object struct {
	members []Member
	index   map[Value]int // key -> offset in members
}

// NewObject constructs an object containing the given members. If a key
// occurs more than once, the last value wins.
func NewObject(ms ...Member) *Object {
	o := &Object{members: make([]Member, 0, len(ms))}
	for _, m := range ms {
		o.Set(m.Key, m.Value)
	}
	return o
}

func (*Object) Kind() Kind { return ObjectKind }

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.members) }

// Get returns the value of the member of o with the given key, and reports
// whether the key was found.
func (o *Object) Get(key Value) (Value, bool) {
	if i, ok := o.index[orNull(key)]; ok {
		return o.members[i].Value, true
	}
	return nil, false
}

// Has reports whether o has a member with the given key.
func (o *Object) Has(key Value) bool {
	_, ok := o.index[orNull(key)]
	return ok
}

// Find returns the value of the member of o with the given string key, or nil.
func (o *Object) Find(key string) Value {
	v, _ := o.Get(String(key))
	return v
}

// Set sets the value of the member of o with the given key. If the key is
// already present, its value is replaced in place; otherwise a new member is
// added at the end.
func (o *Object) Set(key, v Value) {
	key, v = orNull(key), orNull(v)
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	if o.index == nil {
		o.index = make(map[Value]int)
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

// Delete removes the member of o with the given key, and reports whether the
// key was present.
func (o *Object) Delete(key Value) bool {
	i, ok := o.index[orNull(key)]
	if !ok {
		return false
	}
	delete(o.index, o.members[i].Key)
	o.members = append(o.members[:i], o.members[i+1:]...)
	for j := i; j < len(o.members); j++ {
		o.index[o.members[j].Key] = j
	}
	return true
}

// At returns the member at offset i of o, in insertion order.
func (o *Object) At(i int) Member { return o.members[i] }

// All is a range function over the keys and values of o in insertion order.
// The object must not be modified during iteration, except by replacing the
// value of an existing key.
func (o *Object) All() iter.Seq2[Value, Value] {
	return func(yield func(Value, Value) bool) {
		for i := 0; i < len(o.members); i++ {
			if !yield(o.members[i].Key, o.members[i].Value) {
				return
			}
		}
	}
}

// Keys is a range function over the keys of o in insertion order.
func (o *Object) Keys() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for i := 0; i < len(o.members); i++ {
			if !yield(o.members[i].Key) {
				return
			}
		}
	}
}

func (o *Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o.members)) }
