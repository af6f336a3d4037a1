// Package schema describes codec trees as serializable descriptors.
//
// Field names, literal sets and declared alphabets never appear on the wire,
// so a producer and a consumer only interoperate when they share the same
// codec tree. A Node captures that tree; its deterministic CBOR encoding can
// be stored or exchanged, and its xxHash64 fingerprint lets the frame
// package reject payloads produced under a different schema.
//
//	node := schema.Of(myCodec)
//	fmt.Println(node)               // record{x:float(8),y:float(8)}
//	id := node.Fingerprint()        // stable across processes
package schema

import (
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/squash/internal/hash"
)

// maxNestedLevels bounds CBOR nesting on decode, allowing descriptors about
// 120 codecs deep.
const maxNestedLevels = 256

// KindOpaque is reported for codecs that do not describe themselves.
const KindOpaque = "opaque"

// Node is a schema descriptor for one codec in a codec tree.
type Node struct {
	// Kind names the codec, e.g. "uint", "array", "record".
	Kind string `cbor:"1,keyasint"`
	// Name is the field name when the node is a record field.
	Name string `cbor:"2,keyasint,omitempty"`
	// Width is the byte width of fixed-width numbers and literal indexes.
	Width int `cbor:"3,keyasint,omitempty"`
	// Length is the declared arity of fixed-length arrays and byte strings.
	Length int `cbor:"4,keyasint,omitempty"`
	// Params carries codec parameters such as byte order, alphabets or literal values.
	Params []string `cbor:"5,keyasint,omitempty"`
	// Children are the nested codecs in declaration order.
	Children []Node `cbor:"6,keyasint,omitempty"`
}

// Describer is implemented by codecs that can describe their schema.
type Describer interface {
	Describe() Node
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// Core Deterministic Encoding: same descriptor, same bytes. Node
	// implements encoding.BinaryMarshaler itself, so the codec must encode
	// it as a plain struct instead of calling back into MarshalBinary.
	encOpts := cbor.CoreDetEncOptions()
	encOpts.BinaryMarshaler = cbor.BinaryMarshalerNone
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic("schema: CBOR encoder initialization failed: " + err.Error())
	}

	// every descriptor level nests a map and a children array
	decMode, err = cbor.DecOptions{
		BinaryUnmarshaler: cbor.BinaryUnmarshalerNone,
		MaxNestedLevels:   maxNestedLevels,
	}.DecMode()
	if err != nil {
		panic("schema: CBOR decoder initialization failed: " + err.Error())
	}
}

// Of returns the descriptor of c, or an opaque node when c does not
// implement Describer.
func Of(c any) Node {
	if d, ok := c.(Describer); ok {
		return d.Describe()
	}

	return Node{Kind: KindOpaque, Params: []string{fmt.Sprintf("%T", c)}}
}

// Named returns a copy of n carrying a field name.
func (n Node) Named(name string) Node {
	n.Name = name
	return n
}

// MarshalBinary encodes n with deterministic CBOR.
func (n Node) MarshalBinary() ([]byte, error) {
	return encMode.Marshal(n)
}

// UnmarshalBinary decodes a descriptor produced by MarshalBinary.
func (n *Node) UnmarshalBinary(data []byte) error {
	return decMode.Unmarshal(data, n)
}

// Fingerprint returns the xxHash64 of the deterministic encoding of n.
func (n Node) Fingerprint() uint64 {
	data, err := n.MarshalBinary()
	if err != nil {
		return hash.ID(n.String())
	}

	return hash.Sum(data)
}

// Fingerprint returns the fingerprint of the schema of c.
func Fingerprint(c any) uint64 {
	return Of(c).Fingerprint()
}

// String renders n in a compact single-line form.
func (n Node) String() string {
	var sb strings.Builder
	n.write(&sb)

	return sb.String()
}

func (n Node) write(sb *strings.Builder) {
	if n.Name != "" {
		sb.WriteString(n.Name)
		sb.WriteByte(':')
	}
	sb.WriteString(n.Kind)

	var args []string
	if n.Width > 0 {
		args = append(args, fmt.Sprint(n.Width))
	}
	if n.Length > 0 {
		args = append(args, fmt.Sprintf("len=%d", n.Length))
	}
	for _, p := range n.Params {
		args = append(args, fmt.Sprintf("%q", p))
	}
	if len(args) > 0 {
		sb.WriteByte('(')
		sb.WriteString(strings.Join(args, ","))
		sb.WriteByte(')')
	}

	if len(n.Children) == 0 {
		return
	}
	sb.WriteByte('{')
	for i, child := range n.Children {
		if i > 0 {
			sb.WriteByte(',')
		}
		child.write(sb)
	}
	sb.WriteByte('}')
}
