// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package rjson_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/creachadair/rjson"
	"github.com/creachadair/rjson/value"
)

// benchInput constructs a JSON document of n records, using only syntax the
// standard library also accepts.
func benchInput(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i := range n {
		if i > 0 {
			buf.WriteString(",\n")
		}
		fmt.Fprintf(&buf, `{"id": %d, "name": "item\t%d", "score": %d.25, "tags": ["a", "bé"], "ok": %v, "next": null}`,
			i, i, i, i%2 == 0)
	}
	buf.WriteString("\n]\n")
	return buf.Bytes()
}

func BenchmarkScanner(b *testing.B) {
	input := benchInput(500)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for b.Loop() {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Scanner", func(b *testing.B) {
		for b.Loop() {
			dec := rjson.NewScanner(bytes.NewReader(input))
			for {
				err := dec.Next()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}

				// The standard library Decoder converts tokens to values.
				// For a fair comparison, do the same for strings and numbers.
				switch tok := dec.Token(); tok {
				case rjson.String, rjson.Integer, rjson.Number:
					if _, err := value.Decode(tok, dec.Text()); err != nil {
						b.Fatalf("Decode %q: %v", dec.Text(), err)
					}
				}
			}
		}
	})
}
