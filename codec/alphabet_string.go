package codec

import (
	"fmt"

	"github.com/arloliu/squash/alphabet"
	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/errs"
	"github.com/arloliu/squash/internal/options"
	"github.com/arloliu/squash/schema"
)

// stringConfig holds the options of the alphabet string codec.
type stringConfig struct {
	alphabet alphabet.Alphabet
	fixed    int
}

// StringOption configures AlphabetString.
type StringOption = options.Option[*stringConfig]

// WithAlphabet declares the source alphabet shared by both ends. The alphabet
// is not written to the wire, and Encode fails with ErrAlphabet for strings
// containing other characters.
func WithAlphabet(a alphabet.Alphabet) StringOption {
	return options.New(func(c *stringConfig) error {
		if err := a.Validate(); err != nil {
			return err
		}
		c.alphabet = a

		return nil
	})
}

// WithFixedLength declares that the compressed payload is exactly n bytes.
// No length prefix is written and Encode fails with ErrArity when the
// compressed form has any other length.
func WithFixedLength(n int) StringOption {
	return options.New(func(c *stringConfig) error {
		if n < 0 {
			return fmt.Errorf("fixed length %d is negative", n)
		}
		c.fixed = n

		return nil
	})
}

// AlphabetString returns a codec that compresses strings by radix
// conversion from their source alphabet to the full byte alphabet.
//
// Without WithAlphabet, Encode derives the smallest alphabet of each string
// and writes it ahead of the payload as a vlq length plus its characters.
// The payload is then written behind a vlq length, or raw when
// WithFixedLength is set. The empty string has an empty payload.
//
// Wire format:
//   - [alphabet length:vlq][alphabet bytes]  (only without WithAlphabet)
//   - [payload length:vlq]                   (only without WithFixedLength)
//   - [payload bytes]
func AlphabetString(opts ...StringOption) Codec[string] {
	cfg := stringConfig{fixed: -1}
	if err := options.Apply(&cfg, opts...); err != nil {
		invalidSchema("%v", err)
	}

	return alphabetStringCodec{cfg: cfg}
}

type alphabetStringCodec struct {
	cfg stringConfig
}

func (a alphabetStringCodec) Encode(c *cursor.Cursor, v string) error {
	src := a.cfg.alphabet
	if src == "" {
		src = alphabet.Of(v)
		writeVLQ(c, uint64(len(src)))
		c.WriteRaw([]byte(src))
	}

	var payload string
	if v != "" {
		var err error
		if payload, err = alphabet.Convert(v, src, alphabet.UTF8); err != nil {
			return err
		}
	}

	if a.cfg.fixed >= 0 {
		if len(payload) != a.cfg.fixed {
			return fmt.Errorf("%w: compressed string is %d bytes, expected %d", errs.ErrArity, len(payload), a.cfg.fixed)
		}
	} else {
		writeVLQ(c, uint64(len(payload)))
	}
	copy(c.Extend(len(payload)), payload)

	return nil
}

func (a alphabetStringCodec) Decode(c *cursor.Cursor) (string, error) {
	src := a.cfg.alphabet
	if src == "" {
		n, err := readLength(c)
		if err != nil {
			return "", err
		}
		raw, err := c.ReadRaw(n)
		if err != nil {
			return "", err
		}
		src = alphabet.Alphabet(raw)
	}

	n := a.cfg.fixed
	if n < 0 {
		var err error
		if n, err = readLength(c); err != nil {
			return "", err
		}
	}

	payload, err := c.ReadRaw(n)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}

	return alphabet.Convert(string(payload), alphabet.UTF8, src)
}

func (a alphabetStringCodec) Describe() schema.Node {
	node := schema.Node{Kind: "alphabet-string"}
	if a.cfg.alphabet != "" {
		node.Params = []string{string(a.cfg.alphabet)}
	}
	if a.cfg.fixed >= 0 {
		node.Length = a.cfg.fixed
	}

	return node
}
