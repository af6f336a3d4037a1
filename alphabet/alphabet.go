// Package alphabet implements radix conversion of strings between arbitrary
// character alphabets.
//
// An Alphabet is an ordered set of unique byte characters; a character's
// index in the alphabet is its digit value. A string over an alphabet of N
// characters is read as a base-N numeral and can be re-expressed over any
// other alphabet. Leading zero digits (runs of the alphabet's first
// character) are significant and survive conversion one-for-one, so
// "000" and "" remain distinct.
//
// The main use is compressing text whose character set is smaller than 256
// symbols: converting it to the UTF8 alphabet (all 256 byte values) yields
// fewer bytes than the source string.
//
//	out, _ := alphabet.Convert("FF", alphabet.Hexadecimal, alphabet.Decimal) // "255"
//	alphabet.Of("aabbbc")                                                    // "abc"
package alphabet

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/squash/errs"
)

// Alphabet is an ordered set of unique characters. Order defines digit values.
type Alphabet string

// Named alphabets.
const (
	Binary      Alphabet = "01"
	Octal       Alphabet = "01234567"
	Decimal     Alphabet = "0123456789"
	Duodecimal  Alphabet = "0123456789AB"
	Hexadecimal Alphabet = "0123456789ABCDEF"
	Lower       Alphabet = "abcdefghijklmnopqrstuvwxyz"
	Upper       Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Letters     Alphabet = Lower + Upper
	Punctuation Alphabet = " .,?!:;'\"-_"
	English     Alphabet = Letters + Punctuation
	Filepath    Alphabet = Letters + ":/"
)

var (
	// UTF8 holds all 256 byte values in ascending order.
	UTF8 = byteRange(0, 255, "")
	// Datastore holds every printable ASCII character that JSON encoding
	// leaves unescaped.
	Datastore = byteRange(0x20, 0x7e, "\"\\")
)

func byteRange(lo, hi int, exclude string) Alphabet {
	var sb strings.Builder
	for i := lo; i <= hi; i++ {
		if strings.IndexByte(exclude, byte(i)) >= 0 {
			continue
		}
		sb.WriteByte(byte(i))
	}

	return Alphabet(sb.String())
}

// New validates chars and returns it as an Alphabet.
//
// Returns:
//   - Alphabet: The validated alphabet
//   - error: ErrAlphabet if chars is empty or has a repeated character
func New(chars string) (Alphabet, error) {
	a := Alphabet(chars)
	if err := a.Validate(); err != nil {
		return "", err
	}

	return a, nil
}

// Of returns the smallest sorted alphabet covering every character of source.
func Of(source string) Alphabet {
	var seen [256]bool
	for i := 0; i < len(source); i++ {
		seen[source[i]] = true
	}

	out := make([]byte, 0, 16)
	for ch, ok := range seen {
		if ok {
			out = append(out, byte(ch))
		}
	}

	return Alphabet(out)
}

// Len returns the base of the alphabet.
func (a Alphabet) Len() int {
	return len(a)
}

// Validate reports whether the alphabet is non-empty with unique characters.
func (a Alphabet) Validate() error {
	if len(a) == 0 {
		return fmt.Errorf("%w: empty alphabet", errs.ErrAlphabet)
	}

	var seen [256]bool
	for i := 0; i < len(a); i++ {
		if seen[a[i]] {
			return fmt.Errorf("%w: duplicate character %q at index %d", errs.ErrAlphabet, a[i], i)
		}
		seen[a[i]] = true
	}

	return nil
}

// Contains reports whether every character of s belongs to the alphabet.
func (a Alphabet) Contains(s string) bool {
	table := a.digits()
	for i := 0; i < len(s); i++ {
		if table[s[i]] < 0 {
			return false
		}
	}

	return true
}

// IsSorted reports whether the characters are in ascending byte order.
func (a Alphabet) IsSorted() bool {
	return slices.IsSorted([]byte(a))
}

// digits maps each byte to its digit value, or -1 when absent.
func (a Alphabet) digits() [256]int16 {
	var table [256]int16
	for i := range table {
		table[i] = -1
	}
	for i := 0; i < len(a); i++ {
		table[a[i]] = int16(i) //nolint:gosec
	}

	return table
}

// Convert treats str as a numeral over in and re-expresses it over out.
//
// Leading zero digits are preserved one-for-one. The empty string converts
// to the empty string.
//
// Parameters:
//   - str: Source numeral
//   - in: Source alphabet
//   - out: Target alphabet
//
// Returns:
//   - string: str expressed over out
//   - error: ErrAlphabet if an alphabet is invalid, str has a character outside in,
//     or out has a single character and the value is non-zero
func Convert(str string, in, out Alphabet) (string, error) {
	if err := in.Validate(); err != nil {
		return "", fmt.Errorf("source alphabet: %w", err)
	}
	if err := out.Validate(); err != nil {
		return "", fmt.Errorf("target alphabet: %w", err)
	}

	digits, err := in.decodeDigits(str)
	if err != nil {
		return "", err
	}

	converted, err := convertDigits(digits, in.Len(), out.Len())
	if err != nil {
		return "", err
	}

	result := make([]byte, len(converted))
	for i, d := range converted {
		result[i] = out[d]
	}

	return string(result), nil
}

func (a Alphabet) decodeDigits(str string) ([]int, error) {
	table := a.digits()
	digits := make([]int, len(str))
	for i := 0; i < len(str); i++ {
		d := table[str[i]]
		if d < 0 {
			return nil, fmt.Errorf("%w: %q at index %d", errs.ErrAlphabet, str[i], i)
		}
		digits[i] = int(d)
	}

	return digits, nil
}

// convertDigits re-expresses a most-significant-first digit sequence from
// base inBase to base outBase by repeated division.
func convertDigits(digits []int, inBase, outBase int) ([]int, error) {
	zeros := 0
	for zeros < len(digits) && digits[zeros] == 0 {
		zeros++
	}

	num := digits[zeros:]
	if len(num) > 0 && outBase == 1 {
		return nil, fmt.Errorf("%w: non-zero value has no unary representation", errs.ErrAlphabet)
	}

	// least-significant first while building
	var tail []int
	for len(num) > 0 {
		quotient := make([]int, 0, len(num))
		rem := 0
		for _, d := range num {
			acc := rem*inBase + d
			q := acc / outBase
			rem = acc % outBase
			if len(quotient) > 0 || q > 0 {
				quotient = append(quotient, q)
			}
		}
		tail = append(tail, rem)
		num = quotient
	}

	out := make([]int, zeros, zeros+len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, tail[i])
	}

	return out, nil
}
