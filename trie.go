package argonaut

import "math"

// ObjectClass is the shared, indexed descriptor for an ordered key
// sequence. It is immutable once returned by a shadowTrieNode's getClass:
// Names holds each key's raw (possibly still-escaped) text as it appeared
// in the source, UnescapedNames holds the parallel decoded forms, and
// IndexMap maps a decoded name to its ordinal for O(1) field resolution.
type ObjectClass struct {
	Names          [][]byte
	UnescapedNames [][]byte
	IndexMap       map[string]uint32
}

// indexNone is the root's sentinel ordinal.
const indexNone = ^uint32(0)

// shadowTrieNode is one node of the persistent key-sequence trie. Besides
// the root, every node corresponds to one (parent key-set, next key) edge;
// parent back-links exist solely so getClass can walk from a node to the
// root to recover the key sequence ending there.
type shadowTrieNode struct {
	parent   *shadowTrieNode
	name     []byte
	children map[string]*shadowTrieNode
	index    uint32
	usage    uint64
	class    *ObjectClass
}

// size reports how many keys are in the sequence ending at n: 0 at the
// root, index+1 everywhere else.
func (n *shadowTrieNode) size() int {
	if n.index == indexNone {
		return 0
	}
	return int(n.index) + 1
}

// shadowTrie is the persistent trie of object key sequences that memoises
// each distinct sequence into a single reusable ObjectClass. It is owned
// exclusively by one Parser.
type shadowTrie struct {
	root *shadowTrieNode
}

func newShadowTrie() *shadowTrie {
	return &shadowTrie{root: &shadowTrieNode{index: indexNone, children: map[string]*shadowTrieNode{}}}
}

// startWalk returns the trie root, incrementing its usage counter
// (saturating at the uint64 max rather than wrapping).
func (t *shadowTrie) startWalk() *shadowTrieNode {
	bumpUsage(t.root)
	return t.root
}

// getNext descends to (or creates) the child reached by the next key name
// in an object's key sequence. name is the key's raw text as captured by
// the parser (quotes excluded, escapes not yet decoded); it is copied on
// first insertion so the trie does not retain a reference into the source
// buffer.
func (n *shadowTrieNode) getNext(name []byte) *shadowTrieNode {
	key := string(name)
	child, ok := n.children[key]
	if !ok {
		child = &shadowTrieNode{
			parent:   n,
			name:     append([]byte(nil), name...),
			index:    uint32(n.size()),
			children: map[string]*shadowTrieNode{},
		}
		n.children[key] = child
	}
	bumpUsage(child)
	return child
}

func bumpUsage(n *shadowTrieNode) {
	if n.usage < math.MaxUint64 {
		n.usage++
	}
}

// getClass lazily materialises and caches the ObjectClass for the key
// sequence ending at n, by walking parent links back to the root.
func (n *shadowTrieNode) getClass() (*ObjectClass, error) {
	if n.class != nil {
		return n.class, nil
	}
	size := n.size()
	names := make([][]byte, size)
	for cur := n; cur.index != indexNone; cur = cur.parent {
		names[cur.index] = cur.name
	}
	unescaped := make([][]byte, size)
	index := make(map[string]uint32, size)
	for i, raw := range names {
		dec, err := decodeKeyName(raw)
		if err != nil {
			return nil, err
		}
		unescaped[i] = dec
		index[string(dec)] = uint32(i)
	}
	n.class = &ObjectClass{Names: names, UnescapedNames: unescaped, IndexMap: index}
	return n.class, nil
}

// decodeKeyName decodes a raw (possibly escaped) key into its UTF-8 form.
// Keys with no backslash are returned as-is: no allocation, the common
// case for the vast majority of real-world key sets.
func decodeKeyName(raw []byte) ([]byte, error) {
	hasEscape := false
	for _, b := range raw {
		if b == '\\' {
			hasEscape = true
			break
		}
	}
	if !hasEscape {
		return raw, nil
	}
	n, err := UnescapedLength(raw)
	if err != nil {
		return nil, err
	}
	dec := make([]byte, n)
	UnescapeToBuffer(dec, raw)
	return dec, nil
}
