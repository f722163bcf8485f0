// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tree

import "github.com/fatih/color"

// A ColorAttr identifies a syntactic role that a Formatter may color.
type ColorAttr int

// Constants defining the valid ColorAttr values.
const (
	KeyColor      ColorAttr = iota // object keys
	StringColor                    // string values
	NumberColor                    // numeric values
	ConstantColor                  // true, false, null
	PunctColor                     // braces, brackets, separators
	SelfColor                      // self references
)

// Colors maps syntactic roles to functions that decorate text. A nil *Colors
// leaves all text undecorated.
type Colors struct {
	Default func(string) string
	Map     map[ColorAttr]func(string) string
}

// NewColors returns a Colors with a terminal color for each role.
//
// Whether escapes are actually emitted is controlled by color.NoColor, which
// defaults to false only when standard output is a terminal.
func NewColors() *Colors {
	return &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string) string{
			KeyColor:      sprint(color.RGB(128, 168, 196).SprintfFunc()),
			StringColor:   sprint(color.RGB(8, 196, 16).SprintfFunc()),
			NumberColor:   sprint(color.RGB(128, 216, 236).SprintfFunc()),
			ConstantColor: sprint(color.CyanString),
			PunctColor:    sprint(color.RGB(196, 128, 128).SprintfFunc()),
			SelfColor:     sprint(color.RGB(196, 168, 128).SprintfFunc()),
		},
	}
}

func sprint(f func(string, ...any) string) func(string) string {
	return func(s string) string { return f("%s", s) }
}

func colorDefault(s string) string { return s }

// Color decorates s for the role a. It is safe to call on a nil *Colors.
func (c *Colors) Color(a ColorAttr, s string) string {
	if c == nil {
		return s
	}
	if f := c.Map[a]; f != nil {
		return f(s)
	} else if c.Default != nil {
		return c.Default(s)
	}
	return s
}
