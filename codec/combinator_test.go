package codec

import (
	"testing"

	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/errs"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestOptional(t *testing.T) {
	c := Optional(Uint(1))

	require.Equal(t, []byte{0x00}, roundTrip[*uint64](t, c, nil))
	require.Equal(t, []byte{0x01, 0x05}, roundTrip(t, c, ptr[uint64](5)))

	nested := Optional(Optional(String()))
	require.Equal(t, []byte{0x01, 0x00}, roundTrip(t, nested, ptr[*string](nil)))
}

func TestArray(t *testing.T) {
	c := Array(Uint(1))

	require.Equal(t, []byte{0x03, 0x01, 0x02, 0x03}, roundTrip(t, c, []uint64{1, 2, 3}))
	require.Equal(t, []byte{0x00}, roundTrip(t, c, []uint64{}))

	got, err := decode(c, []byte{0x00})
	require.NoError(t, err)
	require.NotNil(t, got)

	_, err = decode(c, []byte{0x03, 0x01})
	require.ErrorIs(t, err, errs.ErrUnderflow)

	_, err = encode(c, []uint64{1, 256})
	require.ErrorIs(t, err, errs.ErrRange)
	require.ErrorContains(t, err, "element 1")
}

func TestFixedArray(t *testing.T) {
	c := FixedArray(Uint(1), 3)

	require.Equal(t, []byte{0x01, 0x02, 0x03}, roundTrip(t, c, []uint64{1, 2, 3}))

	_, err := encode(c, []uint64{1, 2})
	require.ErrorIs(t, err, errs.ErrArity)
	_, err = encode(c, []uint64{1, 2, 3, 4})
	require.ErrorIs(t, err, errs.ErrArity)

	requireInvalidSchema(t, func() { FixedArray(Bool(), -1) })
}

func TestMap(t *testing.T) {
	c := Map(String(), Uint(1))
	m := map[string]uint64{"b": 2, "a": 1, "c": 3}

	want := []byte{0x03, 0x01, 'a', 0x01, 0x01, 'b', 0x02, 0x01, 'c', 0x03}
	require.Equal(t, want, roundTrip(t, c, m))

	// deterministic across Go's randomized map iteration
	for range 20 {
		require.Equal(t, want, mustEncode(t, c, m))
	}

	require.Equal(t, []byte{0x00}, roundTrip(t, c, map[string]uint64{}))
}

func TestMap_DuplicateKeysLastWins(t *testing.T) {
	c := Map(Uint(1), Bool())

	got, err := decode(c, []byte{0x02, 0x07, 0x00, 0x07, 0x01})
	require.NoError(t, err)
	require.Equal(t, map[uint64]bool{7: true}, got)
}

func TestTuple2To4(t *testing.T) {
	t2 := Tuple2(Uint(1), String())
	require.Equal(t, []byte{0x09, 0x01, 'x'}, roundTrip(t, t2, T2[uint64, string]{V1: 9, V2: "x"}))

	t3 := Tuple3(Float(8), Float(8), Float(8))
	roundTrip(t, t3, T3[float64, float64, float64]{V1: 1, V2: -2, V3: 0.5})

	t4 := Tuple4(Bool(), ZigZag(), Bytes(), Optional(Int(2)))
	roundTrip(t, t4, T4[bool, int64, []byte, *int64]{V1: true, V2: -7, V3: []byte{1}, V4: ptr[int64](300)})

	_, err := decode(t3, make([]byte, 20))
	require.ErrorIs(t, err, errs.ErrUnderflow)
}

func TestTuple_Dynamic(t *testing.T) {
	c := Tuple(Erase(Uint(1)), Erase(String()), Erase(Optional(Bool())))

	require.Equal(t, []byte{0x01, 0x01, 'a', 0x01, 0x01},
		roundTrip(t, c, []any{uint64(1), "a", ptr(true)}))

	// omitted trailing optional values encode as absent
	data := mustEncode(t, c, []any{uint64(1), "a"})
	require.Equal(t, []byte{0x01, 0x01, 'a', 0x00}, data)

	got, err := decode(c, data)
	require.NoError(t, err)
	require.Equal(t, []any{uint64(1), "a", nil}, got)

	_, err = encode(c, []any{uint64(1)})
	require.ErrorIs(t, err, errs.ErrArity)

	_, err = encode(c, []any{uint64(1), "a", nil, nil})
	require.ErrorIs(t, err, errs.ErrArity)

	_, err = encode(c, []any{"a", "a"})
	require.ErrorIs(t, err, errs.ErrDomain)
}

type player struct {
	Name  string
	Level uint64
	Tags  []string
	Guild string
	Rank  string
}

func playerCodec() Codec[player] {
	return Record(
		Field("name", AlphabetString(),
			func(p *player) string { return p.Name },
			func(p *player, v string) { p.Name = v }),
		Field("level", Uint(2),
			func(p *player) uint64 { return p.Level },
			func(p *player, v uint64) { p.Level = v }),
		Field("tags", Array(String()),
			func(p *player) []string { return p.Tags },
			func(p *player, v []string) { p.Tags = v }),
		OptionalField("guild", String(),
			func(p *player) (string, bool) { return p.Guild, p.Guild != "" },
			func(p *player, v string) { p.Guild = v }),
		Field("rank", Literal("novice", "adept", "master"),
			func(p *player) string { return p.Rank },
			func(p *player, v string) { p.Rank = v }),
	)
}

func TestRecord(t *testing.T) {
	c := playerCodec()

	roundTrip(t, c, player{Name: "ada", Level: 42, Tags: []string{"pvp"}, Guild: "owls", Rank: "adept"})

	data := roundTrip(t, c, player{Name: "bob", Level: 1, Tags: []string{}, Rank: "novice"})
	// absent guild costs one byte, literal one byte
	require.Equal(t, []byte{0x00, 0x00}, data[len(data)-2:])

	_, err := encode(c, player{Name: "x", Tags: []string{}, Rank: "king"})
	require.ErrorIs(t, err, errs.ErrDomain)
	require.ErrorContains(t, err, `field "rank"`)
}

func TestRecord_InvalidSchema(t *testing.T) {
	name := Field("name", String(),
		func(p *player) string { return p.Name },
		func(p *player, v string) { p.Name = v })

	requireInvalidSchema(t, func() { Record(name, name) })
	requireInvalidSchema(t, func() { Record[player](nil) })
	requireInvalidSchema(t, func() {
		Record(Field("", String(),
			func(p *player) string { return p.Name },
			func(p *player, v string) { p.Name = v }))
	})
}

func TestLiteral(t *testing.T) {
	c := Literal("a", "b", "c")

	require.Equal(t, []byte{0x01}, roundTrip(t, c, "b"))

	_, err := encode(c, "d")
	require.ErrorIs(t, err, errs.ErrDomain)

	_, err = decode(c, []byte{0x03})
	require.ErrorIs(t, err, errs.ErrDomain)

	values := make([]int, 300)
	for i := range values {
		values[i] = i * 10
	}
	wide := Literal(values...)
	require.Equal(t, []byte{0x2b, 0x01}, roundTrip(t, wide, 2990))

	requireInvalidSchema(t, func() { Literal[string]() })
	requireInvalidSchema(t, func() { Literal(1, 2, 1) })
}

type vec2 struct{ X, Y float64 }

func TestAdapt(t *testing.T) {
	c := Adapt("vec2", Tuple2(Float(4), Float(4)),
		func(v vec2) T2[float64, float64] { return T2[float64, float64]{V1: v.X, V2: v.Y} },
		func(p T2[float64, float64]) vec2 { return vec2{X: p.V1, Y: p.V2} },
	)

	data := roundTrip(t, c, vec2{X: 1.5, Y: -2})
	require.Len(t, data, 8)
}

func TestErase(t *testing.T) {
	c := Erase(Uint(1))

	require.Equal(t, []byte{0x07}, roundTrip[any](t, c, uint64(7)))

	cur := cursor.New(0, 0)
	require.ErrorIs(t, c.Encode(cur, 7), errs.ErrDomain)
	require.ErrorIs(t, c.Encode(cur, nil), errs.ErrDomain)

	opt := Erase(Optional(Uint(1)))
	require.Equal(t, []byte{0x00}, roundTrip[any](t, opt, nil))
}
