package codec

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/errs"
	"github.com/arloliu/squash/format"
	"github.com/arloliu/squash/schema"
)

// Container is a dynamically shaped value handled by the table codec:
// either a List or a Dict.
type Container interface {
	container()
}

// List is an array-like container of dynamically typed entries.
type List []any

// Dict is a key-value container of dynamically typed entries.
type Dict map[string]any

func (List) container() {}
func (Dict) container() {}

// TableSchema maps the closed set of entry kinds to the codecs used for
// them. Build one with NewTableSchema and the With methods; every method
// returns a new schema and leaves the receiver untouched.
//
// An entry's kind is decided by its Go type:
//   - bool: format.KindBoolean
//   - float64, float32 and Go integer types: format.KindNumber, written as float64
//   - string: format.KindString
//   - List or Dict: format.KindTable
//   - slices and arrays: format.KindArray
//   - maps: format.KindMap
//
// Array and map entries are only written when their exact type is the one
// registered with TableArray or TableMap. Entries of any other type, such as
// structs or nil, cannot be classified and fail with ErrDomain.
type TableSchema struct {
	keys     Codec[string]
	slots    map[format.Kind]tableSlot
	strict   bool
	maxDepth int
}

// DefaultMaxTableDepth is the default bound on nested table depth.
const DefaultMaxTableDepth = 1000

type tableSlot struct {
	codec  Codec[any]
	match  func(any) bool // array and map kinds only
	nested *TableSchema   // table kind only; nil nests the owning schema
}

// NewTableSchema returns an empty schema whose Dict keys use String().
func NewTableSchema() *TableSchema {
	return &TableSchema{
		keys:     String(),
		slots:    make(map[format.Kind]tableSlot),
		maxDepth: DefaultMaxTableDepth,
	}
}

func (s *TableSchema) clone() *TableSchema {
	next := &TableSchema{
		keys:     s.keys,
		slots:    make(map[format.Kind]tableSlot, len(s.slots)+1),
		strict:   s.strict,
		maxDepth: s.maxDepth,
	}
	for k, v := range s.slots {
		next.slots[k] = v
	}

	return next
}

func (s *TableSchema) with(kind format.Kind, slot tableSlot) *TableSchema {
	next := s.clone()
	next.slots[kind] = slot

	return next
}

// WithKeys sets the codec used for Dict keys.
func (s *TableSchema) WithKeys(c Codec[string]) *TableSchema {
	next := s.clone()
	next.keys = c

	return next
}

// Strict makes entries whose kind has no codec, or whose array or map type
// was not registered, fail with ErrDomain instead of being skipped.
func (s *TableSchema) Strict() *TableSchema {
	next := s.clone()
	next.strict = true

	return next
}

// MaxDepth bounds how deeply tables may nest, counting the outermost
// container as depth 1. Encode and Decode fail with ErrRange beyond it.
// The bound only guards against hostile input and is not part of the wire
// format or the schema descriptor.
func (s *TableSchema) MaxDepth(n int) *TableSchema {
	if n < 1 {
		invalidSchema("table depth %d is not positive", n)
	}
	next := s.clone()
	next.maxDepth = n

	return next
}

// WithBoolean sets the codec for bool entries.
func (s *TableSchema) WithBoolean(c Codec[bool]) *TableSchema {
	return s.with(format.KindBoolean, tableSlot{codec: Erase(c)})
}

// WithNumber sets the codec for float64 entries.
func (s *TableSchema) WithNumber(c Codec[float64]) *TableSchema {
	return s.with(format.KindNumber, tableSlot{codec: Erase(c)})
}

// WithString sets the codec for string entries.
func (s *TableSchema) WithString(c Codec[string]) *TableSchema {
	return s.with(format.KindString, tableSlot{codec: Erase(c)})
}

// WithNestedTable sets the schema for nested List and Dict entries. A nil
// nested schema reuses the schema being built, allowing arbitrary depth.
func (s *TableSchema) WithNestedTable(nested *TableSchema) *TableSchema {
	return s.with(format.KindTable, tableSlot{nested: nested})
}

// TableArray sets the codec for array entries of type []T.
func TableArray[T any](s *TableSchema, c Codec[[]T]) *TableSchema {
	return s.with(format.KindArray, tableSlot{
		codec: Erase(c),
		match: func(v any) bool {
			_, ok := v.([]T)
			return ok
		},
	})
}

// TableMap sets the codec for map entries of type map[K]V.
func TableMap[K comparable, V any](s *TableSchema, c Codec[map[K]V]) *TableSchema {
	return s.with(format.KindMap, tableSlot{
		codec: Erase(c),
		match: func(v any) bool {
			_, ok := v.(map[K]V)
			return ok
		},
	})
}

// Table returns the polymorphic codec for containers described by s.
//
// Wire format:
//   - [entry count:vlq]
//   - per entry: [tag:1][key, Dict only][value]
//
// The tag is the entry's format.Kind, with format.KindKeyed set for Dict
// entries. Entries whose kind has no codec in the schema are skipped and
// not counted. Dict entries are written in ascending key order. A container
// decodes as a Dict when its entries are keyed and as a List otherwise, so
// an empty Dict decodes as an empty List. Numbers always decode as float64.
// Nesting deeper than the schema's MaxDepth fails with ErrRange.
//
// Every entry pays a tag byte and a dynamic dispatch; prefer Record, Array
// or Map when the shape is known ahead of time.
func Table(s *TableSchema) Codec[Container] {
	return compileTable(s)
}

type tableCodec struct {
	keys     Codec[string]
	slots    map[format.Kind]Codec[any]
	match    map[format.Kind]func(any) bool
	strict   bool
	maxDepth int
	nested   *tableCodec // may be the codec itself
}

func compileTable(s *TableSchema) *tableCodec {
	if s == nil {
		invalidSchema("table schema is nil")
	}

	t := &tableCodec{
		keys:     s.keys,
		slots:    make(map[format.Kind]Codec[any], len(s.slots)),
		match:    make(map[format.Kind]func(any) bool, 2),
		strict:   s.strict,
		maxDepth: s.maxDepth,
	}

	for kind, slot := range s.slots {
		if slot.match != nil {
			t.match[kind] = slot.match
		}
		if kind != format.KindTable {
			t.slots[kind] = slot.codec
			continue
		}

		if slot.nested == nil {
			t.nested = t
		} else {
			t.nested = compileTable(slot.nested)
		}
		// nested containers are dispatched through decode and encode
		// directly so the depth bound carries over
		t.slots[kind] = nil
	}

	return t
}

// classify decides an entry's kind from its Go type and returns the value
// to hand to the kind's codec. Numbers are widened to float64.
func classify(v any) (format.Kind, any, error) {
	switch x := v.(type) {
	case bool:
		return format.KindBoolean, x, nil
	case float64:
		return format.KindNumber, x, nil
	case string:
		return format.KindString, x, nil
	case List, Dict:
		return format.KindTable, x, nil
	case float32:
		return format.KindNumber, float64(x), nil
	case int:
		return format.KindNumber, float64(x), nil
	case int8:
		return format.KindNumber, float64(x), nil
	case int16:
		return format.KindNumber, float64(x), nil
	case int32:
		return format.KindNumber, float64(x), nil
	case int64:
		return format.KindNumber, float64(x), nil
	case uint:
		return format.KindNumber, float64(x), nil
	case uint8:
		return format.KindNumber, float64(x), nil
	case uint16:
		return format.KindNumber, float64(x), nil
	case uint32:
		return format.KindNumber, float64(x), nil
	case uint64:
		return format.KindNumber, float64(x), nil
	}

	// shape only; the registered codec decides whether the exact type fits
	switch reflect.ValueOf(v).Kind() { //nolint:exhaustive
	case reflect.Slice, reflect.Array:
		return format.KindArray, v, nil
	case reflect.Map:
		return format.KindMap, v, nil
	default:
		return 0, nil, fmt.Errorf("%w: table entry of type %T has no kind", errs.ErrDomain, v)
	}
}

// accepts reports whether the schema has a codec for an entry of kind
// holding v.
func (t *tableCodec) accepts(kind format.Kind, v any) bool {
	if _, ok := t.slots[kind]; !ok {
		return false
	}
	if match, ok := t.match[kind]; ok {
		return match(v)
	}

	return true
}

type tableEntry struct {
	key   string
	kind  format.Kind
	value any
}

func (t *tableCodec) Encode(c *cursor.Cursor, v Container) error {
	return t.encode(c, v, 1, t.maxDepth)
}

func (t *tableCodec) encode(c *cursor.Cursor, v Container, depth, limit int) error {
	if depth > limit {
		return fmt.Errorf("%w: table nesting exceeds depth %d", errs.ErrRange, limit)
	}

	var (
		entries []tableEntry
		keyed   bool
	)

	switch container := v.(type) {
	case List:
		entries = make([]tableEntry, 0, len(container))
		for _, value := range container {
			entries = append(entries, tableEntry{value: value})
		}
	case Dict:
		keyed = true
		keys := make([]string, 0, len(container))
		for key := range container {
			keys = append(keys, key)
		}
		slices.Sort(keys)

		entries = make([]tableEntry, 0, len(container))
		for _, key := range keys {
			entries = append(entries, tableEntry{key: key, value: container[key]})
		}
	default:
		return fmt.Errorf("%w: table value of type %T is not a List or Dict", errs.ErrDomain, v)
	}

	kept := entries[:0]
	for _, e := range entries {
		kind, value, err := classify(e.value)
		if err != nil {
			return err
		}
		if !t.accepts(kind, value) {
			if t.strict {
				return fmt.Errorf("%w: table schema has no codec for %s entries of type %T", errs.ErrDomain, kind, e.value)
			}

			continue
		}
		e.kind, e.value = kind, value
		kept = append(kept, e)
	}

	writeVLQ(c, uint64(len(kept)))
	for i, e := range kept {
		tag := e.kind
		if keyed {
			tag |= format.KindKeyed
		}
		_ = c.WriteByte(byte(tag))

		if keyed {
			if err := t.keys.Encode(c, e.key); err != nil {
				return fmt.Errorf("table key %q: %w", e.key, err)
			}
		}

		var err error
		if e.kind == format.KindTable {
			container, _ := e.value.(Container)
			err = t.nested.encode(c, container, depth+1, limit)
		} else {
			err = t.slots[e.kind].Encode(c, e.value)
		}
		if err != nil {
			return fmt.Errorf("table entry %d (%s): %w", i, e.kind, err)
		}
	}

	return nil
}

func (t *tableCodec) Decode(c *cursor.Cursor) (Container, error) {
	return t.decode(c, 1, t.maxDepth)
}

func (t *tableCodec) decode(c *cursor.Cursor, depth, limit int) (Container, error) {
	if depth > limit {
		return nil, fmt.Errorf("%w: table nesting exceeds depth %d", errs.ErrRange, limit)
	}

	n, err := readLength(c)
	if err != nil {
		return nil, err
	}

	var (
		list List
		dict Dict
	)
	for i := range n {
		b, err := c.ReadByte()
		if err != nil {
			return nil, err
		}

		tag := format.Kind(b)
		if !tag.Valid() {
			return nil, fmt.Errorf("%w: invalid table tag 0x%02x at entry %d", errs.ErrDomain, b, i)
		}
		kind := tag &^ format.KindKeyed
		slot, ok := t.slots[kind]
		if !ok {
			return nil, fmt.Errorf("%w: table schema has no codec for %s entries", errs.ErrDomain, tag)
		}
		if i > 0 && tag.Keyed() != (dict != nil) {
			return nil, fmt.Errorf("%w: table mixes keyed and unkeyed entries", errs.ErrDomain)
		}

		var key string
		if tag.Keyed() {
			if dict == nil {
				dict = make(Dict, capHint(n, c))
			}
			if key, err = t.keys.Decode(c); err != nil {
				return nil, fmt.Errorf("table key %d: %w", i, err)
			}
		} else if list == nil {
			list = make(List, 0, capHint(n, c))
		}

		var value any
		if kind == format.KindTable {
			value, err = t.nested.decode(c, depth+1, limit)
		} else {
			value, err = slot.Decode(c)
		}
		if err != nil {
			return nil, fmt.Errorf("table entry %d (%s): %w", i, tag, err)
		}

		if dict != nil {
			dict[key] = value
		} else {
			list = append(list, value)
		}
	}

	if dict != nil {
		return dict, nil
	}
	if list == nil {
		list = List{}
	}

	return list, nil
}

func (t *tableCodec) Describe() schema.Node {
	return t.describe(map[*tableCodec]bool{})
}

func (t *tableCodec) describe(visiting map[*tableCodec]bool) schema.Node {
	if visiting[t] {
		return schema.Node{Kind: "table", Params: []string{"self"}}
	}
	visiting[t] = true
	defer delete(visiting, t)

	node := schema.Node{Kind: "table", Children: []schema.Node{schema.Of(t.keys).Named("keys")}}
	if t.strict {
		node.Params = []string{"strict"}
	}

	for kind := format.KindBoolean; kind <= format.KindTable; kind++ {
		slot, ok := t.slots[kind]
		if !ok {
			continue
		}

		var child schema.Node
		if kind == format.KindTable {
			child = t.nested.describe(visiting)
		} else {
			child = schema.Of(slot)
		}
		node.Children = append(node.Children, child.Named(kind.String()))
	}

	return node
}
