package codec

import (
	"fmt"

	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/schema"
)

// FieldDef describes one field of a record of type T. Create field
// definitions with Field and OptionalField.
type FieldDef[T any] interface {
	fieldName() string
	encodeField(c *cursor.Cursor, v *T) error
	decodeField(c *cursor.Cursor, v *T) error
	describeField() schema.Node
}

// Field declares a required record field.
//
// Parameters:
//   - name: Field name, recorded in the schema descriptor only
//   - c: Codec for the field value
//   - get: Reads the field from a record
//   - set: Stores a decoded value into a record
func Field[T, F any](name string, c Codec[F], get func(*T) F, set func(*T, F)) FieldDef[T] {
	return requiredField[T, F]{name: name, codec: c, get: get, set: set}
}

type requiredField[T, F any] struct {
	name  string
	codec Codec[F]
	get   func(*T) F
	set   func(*T, F)
}

func (f requiredField[T, F]) fieldName() string {
	return f.name
}

func (f requiredField[T, F]) encodeField(c *cursor.Cursor, v *T) error {
	return f.codec.Encode(c, f.get(v))
}

func (f requiredField[T, F]) decodeField(c *cursor.Cursor, v *T) error {
	value, err := f.codec.Decode(c)
	if err != nil {
		return err
	}
	f.set(v, value)

	return nil
}

func (f requiredField[T, F]) describeField() schema.Node {
	return schema.Of(f.codec).Named(f.name)
}

// OptionalField declares a field that may be absent. get reports whether
// the field is present; an absent field costs one presence byte and set is
// not called for it on decode, so the decoded record has no value there.
func OptionalField[T, F any](name string, c Codec[F], get func(*T) (F, bool), set func(*T, F)) FieldDef[T] {
	return optionalField[T, F]{name: name, codec: Optional(c), get: get, set: set}
}

type optionalField[T, F any] struct {
	name  string
	codec Codec[*F]
	get   func(*T) (F, bool)
	set   func(*T, F)
}

func (f optionalField[T, F]) fieldName() string {
	return f.name
}

func (f optionalField[T, F]) encodeField(c *cursor.Cursor, v *T) error {
	value, ok := f.get(v)
	if !ok {
		return f.codec.Encode(c, nil)
	}

	return f.codec.Encode(c, &value)
}

func (f optionalField[T, F]) decodeField(c *cursor.Cursor, v *T) error {
	value, err := f.codec.Decode(c)
	if err != nil {
		return err
	}
	if value != nil {
		f.set(v, *value)
	}

	return nil
}

func (f optionalField[T, F]) describeField() schema.Node {
	return schema.Of(f.codec).Named(f.name)
}

// Record returns a codec for a struct-like value whose fields are encoded in
// declaration order with no names or framing on the wire.
//
// Field names must be non-empty and unique; they exist only in the schema
// descriptor, whose fingerprint both ends can compare.
func Record[T any](fields ...FieldDef[T]) Codec[T] {
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		if f == nil {
			invalidSchema("record field %d is nil", i)
		}
		name := f.fieldName()
		if name == "" {
			invalidSchema("record field %d has no name", i)
		}
		if _, dup := seen[name]; dup {
			invalidSchema("duplicate record field %q", name)
		}
		seen[name] = struct{}{}
	}

	return recordCodec[T]{fields: fields}
}

type recordCodec[T any] struct {
	fields []FieldDef[T]
}

func (r recordCodec[T]) Encode(c *cursor.Cursor, v T) error {
	for _, f := range r.fields {
		if err := f.encodeField(c, &v); err != nil {
			return fmt.Errorf("field %q: %w", f.fieldName(), err)
		}
	}

	return nil
}

func (r recordCodec[T]) Decode(c *cursor.Cursor) (T, error) {
	var v T
	for _, f := range r.fields {
		if err := f.decodeField(c, &v); err != nil {
			var zero T
			return zero, fmt.Errorf("field %q: %w", f.fieldName(), err)
		}
	}

	return v, nil
}

func (r recordCodec[T]) Describe() schema.Node {
	node := schema.Node{Kind: "record", Children: make([]schema.Node, len(r.fields))}
	for i, f := range r.fields {
		node.Children[i] = f.describeField()
	}

	return node
}
