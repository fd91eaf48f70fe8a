// Package argonaut is a high-throughput JSON parser and schema-driven
// value loader. Parsed values are lightweight Node records that borrow
// their text directly from the source buffer; object key-sets are
// deduplicated across an entire parser's lifetime by a shared trie, so
// repeated key sequences (as in log records or CDC payloads) cost one trie
// map lookup per key and reuse a single cached field layout instead of
// re-deriving it each time.
//
// A Parser is reused across many inputs:
//
//	p := argonaut.NewParser()
//	root, err := p.Parse(src)
//	if err != nil {
//		log.Fatal(err)
//	}
//	values, _ := root.ArrayValues()
//
// Load projects a Node tree onto a Go type, resolving object fields by
// name and falling back to positional tuple semantics for arrays:
//
//	type Point struct {
//		X int `json:"x"`
//		Y int `json:"y"`
//	}
//	pt, err := argonaut.Load[Point](root)
package argonaut
