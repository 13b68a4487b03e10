// Package attr provides the ordered attribute block shared by facts, types
// and resolved graph elements.
//
// A [Block] maps attribute names to values and remembers the order in which
// names first appeared. Setting a name that is already present replaces its
// value in place (last wins), so layering several blocks with [Block.Merge]
// yields the precedence rule used throughout relviz: the block merged last
// wins for every key it defines.
package attr

import (
	"maps"
	"slices"
	"strings"
)

// LabelKey is the attribute name that carries a label or label template.
const LabelKey = "label"

// Pair is a single name/value entry of a Block.
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Block is an ordered attribute mapping. The zero value is an empty block
// ready to use. Block is a value type: copies share no state after
// [Block.Clone], but plain assignment shares the underlying storage.
type Block struct {
	keys   []string
	values map[string]string
}

// FromPairs builds a block from pairs, applying last-wins for repeated keys.
func FromPairs(pairs ...Pair) Block {
	var b Block
	for _, p := range pairs {
		b.Set(p.Key, p.Value)
	}
	return b
}

// Set assigns value to key. A key that is already present keeps its
// position and takes the new value.
func (b *Block) Set(key, value string) {
	if b.values == nil {
		b.values = make(map[string]string)
	}
	if _, ok := b.values[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
}

// Get returns the value for key and whether it is present.
func (b Block) Get(key string) (string, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Has reports whether key is present.
func (b Block) Has(key string) bool {
	_, ok := b.values[key]
	return ok
}

// Delete removes key. It is a no-op when key is absent.
func (b *Block) Delete(key string) {
	if _, ok := b.values[key]; !ok {
		return
	}
	delete(b.values, key)
	b.keys = slices.DeleteFunc(b.keys, func(k string) bool { return k == key })
}

// Len returns the number of distinct keys.
func (b Block) Len() int { return len(b.keys) }

// Keys returns the keys in first-appearance order.
func (b Block) Keys() []string { return slices.Clone(b.keys) }

// Pairs returns the entries in first-appearance order.
func (b Block) Pairs() []Pair {
	pairs := make([]Pair, len(b.keys))
	for i, k := range b.keys {
		pairs[i] = Pair{Key: k, Value: b.values[k]}
	}
	return pairs
}

// Map returns the entries as an unordered map.
func (b Block) Map() map[string]string {
	return maps.Clone(b.values)
}

// Clone returns an independent copy of b.
func (b Block) Clone() Block {
	return Block{keys: slices.Clone(b.keys), values: maps.Clone(b.values)}
}

// Merge layers other on top of b: every key of other is set on b, so
// other's values win.
func (b *Block) Merge(other Block) {
	for _, k := range other.keys {
		b.Set(k, other.values[k])
	}
}

// Equal reports whether a and b hold the same keys with the same values.
// Key order is not significant.
func (a Block) Equal(b Block) bool {
	return len(a.values) == len(b.values) && maps.Equal(a.values, b.values)
}

// String renders the block as "k=v, k=v" for logs and test failures.
func (b Block) String() string {
	parts := make([]string, len(b.keys))
	for i, k := range b.keys {
		parts[i] = k + "=" + b.values[k]
	}
	return strings.Join(parts, ", ")
}

// Layer merges blocks in order into a fresh block; later blocks win.
func Layer(blocks ...Block) Block {
	var out Block
	for _, b := range blocks {
		out.Merge(b)
	}
	return out
}
