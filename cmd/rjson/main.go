// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program rjson reads, checks and reformats rjson text, and converts between
// rjson and other formats.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
