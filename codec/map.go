package codec

import (
	"bytes"
	"slices"

	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/schema"
)

// Map returns a codec for maps, written as a counted array of key/value
// tuples.
//
// Pairs are emitted in ascending order of their encoded key bytes, so the
// same map always encodes to the same bytes regardless of Go's randomized
// iteration order. Decoding keeps the last value for a repeated key.
func Map[K comparable, V any](k Codec[K], v Codec[V]) Codec[map[K]V] {
	return mapCodec[K, V]{
		key:   k,
		value: v,
		pairs: Array(Tuple2(k, v)),
	}
}

type mapCodec[K comparable, V any] struct {
	key   Codec[K]
	value Codec[V]
	pairs Codec[[]T2[K, V]]
}

type sortablePair[K comparable, V any] struct {
	key  []byte
	pair T2[K, V]
}

func (m mapCodec[K, V]) Encode(c *cursor.Cursor, v map[K]V) error {
	scratch := cursor.New(0, 0)
	entries := make([]sortablePair[K, V], 0, len(v))
	for key, value := range v {
		start := scratch.Pos()
		if err := m.key.Encode(scratch, key); err != nil {
			return err
		}
		entries = append(entries, sortablePair[K, V]{
			key:  scratch.Written()[start:scratch.Pos()],
			pair: T2[K, V]{V1: key, V2: value},
		})
	}

	// Key slices stay valid across scratch growth: the cursor only appends,
	// and growing copies into a fresh buffer without touching the old one.
	slices.SortFunc(entries, func(a, b sortablePair[K, V]) int {
		return bytes.Compare(a.key, b.key)
	})

	pairs := make([]T2[K, V], len(entries))
	for i := range entries {
		pairs[i] = entries[i].pair
	}

	return m.pairs.Encode(c, pairs)
}

func (m mapCodec[K, V]) Decode(c *cursor.Cursor) (map[K]V, error) {
	pairs, err := m.pairs.Decode(c)
	if err != nil {
		return nil, err
	}

	out := make(map[K]V, len(pairs))
	for _, p := range pairs {
		out[p.V1] = p.V2
	}

	return out, nil
}

func (m mapCodec[K, V]) Describe() schema.Node {
	return schema.Node{Kind: "map", Children: []schema.Node{schema.Of(m.key), schema.Of(m.value)}}
}
