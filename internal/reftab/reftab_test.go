// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package reftab_test

import (
	"testing"

	"github.com/creachadair/rjson/internal/reftab"
)

type node struct{ name string }

func TestRecord(t *testing.T) {
	a, b := &node{"x"}, &node{"x"}
	tab := reftab.New[*node, string]()

	tab.Record(a, "A")
	if v, ok := tab.Lookup(a); !ok || v != "A" {
		t.Errorf("Lookup(a): got (%q, %v), want (A, true)", v, ok)
	}
	if v, ok := tab.Lookup(b); ok {
		t.Errorf("Lookup(b): got (%q, %v), want not found", v, ok)
	}
	tab.Record(b, "B")
	tab.Record(a, "A2")
	if v, _ := tab.Lookup(a); v != "A2" {
		t.Errorf("Lookup(a): got %q, want A2", v)
	}
	tab.Forget(a)
	if _, ok := tab.Lookup(a); ok {
		t.Error("Lookup(a) after Forget: unexpectedly found")
	}
	if v, ok := tab.Lookup(b); !ok || v != "B" {
		t.Errorf("Lookup(b) after Forget(a): got (%q, %v), want (B, true)", v, ok)
	}
}

func TestStack(t *testing.T) {
	a, b, c := &node{"a"}, &node{"b"}, &node{"c"}
	tab := reftab.New[*node, struct{}]()

	for _, n := range []*node{a, b, c} {
		if !tab.Enter(n) {
			t.Fatalf("Enter(%s): unexpectedly active", n.name)
		}
	}
	if tab.Enter(b) {
		t.Error("Enter(b) twice: got true, want false")
	}
	if got := tab.Open(); got != 3 {
		t.Errorf("Open: got %d, want 3", got)
	}

	for want, n := range []*node{c, b, a} {
		if d, ok := tab.Depth(n); !ok || d != want {
			t.Errorf("Depth(%s): got (%d, %v), want (%d, true)", n.name, d, ok, want)
		}
		if got, ok := tab.Outer(want); !ok || got != n {
			t.Errorf("Outer(%d): got (%v, %v), want %s", want, got, ok, n.name)
		}
	}
	if got, ok := tab.Outer(3); ok {
		t.Errorf("Outer(3): got %v, want not found", got)
	}
	if got, ok := tab.Outer(-1); ok {
		t.Errorf("Outer(-1): got %v, want not found", got)
	}

	// Leaving b also leaves c, which was entered after it.
	tab.Leave(b)
	if tab.Active(b) || tab.Active(c) {
		t.Error("Leave(b): b or c still active")
	}
	if !tab.Active(a) {
		t.Error("Leave(b): a is no longer active")
	}
	if d, ok := tab.Depth(a); !ok || d != 0 {
		t.Errorf("Depth(a): got (%d, %v), want (0, true)", d, ok)
	}
	if _, ok := tab.Depth(c); ok {
		t.Error("Depth(c): unexpectedly found")
	}

	tab.Leave(c) // not active, no effect
	if got := tab.Open(); got != 1 {
		t.Errorf("Open: got %d, want 1", got)
	}
	tab.Leave(a)
	if got := tab.Open(); got != 0 {
		t.Errorf("Open: got %d, want 0", got)
	}
	if _, ok := tab.Lookup(a); ok {
		t.Error("Lookup(a): entering records no output")
	}
}
