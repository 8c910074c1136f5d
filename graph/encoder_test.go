package graph

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/revive/errs"
	"github.com/arloliu/revive/resolver"
)

type wireNode struct {
	Name string
	Next *wireNode
}

type renamed struct {
	Public  string `revive:"pub"`
	Skipped string `revive:"-"`
	Plain   int
}

func newTestRegistry(t *testing.T) *resolver.Registry {
	t.Helper()

	reg := resolver.NewRegistry()
	require.NoError(t, reg.Register("wireNode", wireNode{}))

	return reg
}

// decodeRaw parses the uncompressed JSON payload so tests can assert on the
// wire shape directly.
func decodeRaw(t *testing.T, data []byte) any {
	t.Helper()

	var v any
	require.NoError(t, json.Unmarshal(data, &v))

	return v
}

func TestEncodeAtomicRoots(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"int", 42, float64(42)},
		{"string", "hello", "hello"},
		{"bool", true, true},
		{"float", 1.5, 1.5},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := enc.Encode(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, decodeRaw(t, data))
		})
	}
}

func TestEncodeSharedNodeEmitsSingleSlot(t *testing.T) {
	enc, err := NewEncoder(WithRevive(false))
	require.NoError(t, err)

	shared := map[string]any{"x": int64(1)}
	root := []any{shared, shared}

	data, err := enc.Encode(root)
	require.NoError(t, err)

	table, ok := decodeRaw(t, data).([]any)
	require.True(t, ok, "composite root must encode as a reference table")
	require.Len(t, table, 2, "the shared map must occupy exactly one slot")

	slots, ok := table[0].([]any)
	require.True(t, ok)
	require.Equal(t, map[string]any{"#": float64(1)}, slots[0])
	require.Equal(t, map[string]any{"#": float64(1)}, slots[1])
}

func TestEncodeSelfCycleTerminates(t *testing.T) {
	reg := newTestRegistry(t)
	enc, err := NewEncoder(WithResolver(reg))
	require.NoError(t, err)

	n := &wireNode{Name: "loop"}
	n.Next = n

	data, err := enc.Encode(n)
	require.NoError(t, err)

	table, ok := decodeRaw(t, data).([]any)
	require.True(t, ok)
	require.Len(t, table, 1)

	slot, ok := table[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "wireNode", slot["#"])
	require.Equal(t, map[string]any{"#": float64(0)}, slot["Next"])
}

func TestEncodeDistinguishesPointerToFirstField(t *testing.T) {
	// A struct pointer and a pointer to its first field share an address;
	// they must still encode as distinct nodes.
	type inner struct {
		X int
	}
	type outer struct {
		In inner
	}

	enc, err := NewEncoder(WithRevive(false))
	require.NoError(t, err)
	dec, err := NewDecoder(WithRevive(false))
	require.NoError(t, err)

	p := &outer{In: inner{X: 7}}
	data, err := enc.Encode([]any{p, &p.In})
	require.NoError(t, err)

	out, err := dec.Decode(data)
	require.NoError(t, err)

	root, ok := out.([]any)
	require.True(t, ok)
	require.Equal(t, map[string]any{"In": map[string]any{"X": int64(7)}}, root[0])
	require.Equal(t, map[string]any{"X": int64(7)}, root[1])
}

func TestEncodeDoesNotMutateInput(t *testing.T) {
	enc, err := NewEncoder(WithRevive(false))
	require.NoError(t, err)

	inner := map[string]any{"k": "v"}
	root := map[string]any{"inner": inner, "n": int64(7)}

	_, err = enc.Encode(root)
	require.NoError(t, err)

	require.Equal(t, map[string]any{"inner": inner, "n": int64(7)}, root)
	require.Equal(t, map[string]any{"k": "v"}, inner)
}

func TestEncodeFieldTags(t *testing.T) {
	enc, err := NewEncoder(WithRevive(false))
	require.NoError(t, err)

	data, err := enc.Encode(&renamed{Public: "a", Skipped: "b", Plain: 3})
	require.NoError(t, err)

	table := decodeRaw(t, data).([]any)
	slot := table[0].(map[string]any)
	require.Equal(t, "a", slot["pub"])
	require.Equal(t, float64(3), slot["Plain"])
	require.NotContains(t, slot, "Skipped")
	require.NotContains(t, slot, "Public")
}

func TestEncodeFieldFilter(t *testing.T) {
	enc, err := NewEncoder(
		WithRevive(false),
		WithFieldFilter(func(_ reflect.Type, name string, _ any) bool {
			return name != "secret"
		}),
	)
	require.NoError(t, err)

	data, err := enc.Encode(map[string]any{"secret": "x", "open": "y"})
	require.NoError(t, err)

	table := decodeRaw(t, data).([]any)
	slot := table[0].(map[string]any)
	require.NotContains(t, slot, "secret")
	require.Equal(t, "y", slot["open"])
}

func TestEncodeUndefinedRoot(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	data, err := enc.Encode(Undefined{})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"#": float64(-1)}, decodeRaw(t, data))
}

func TestEncodeBuilderAtoms(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	t.Run("non-finite floats", func(t *testing.T) {
		data, err := enc.Encode(math.Inf(1))
		require.NoError(t, err)
		require.Equal(t, map[string]any{"#b": "number", "#v": "Infinity"}, decodeRaw(t, data))

		data, err = enc.Encode(math.NaN())
		require.NoError(t, err)
		require.Equal(t, map[string]any{"#b": "number", "#v": "NaN"}, decodeRaw(t, data))
	})

	t.Run("bytes", func(t *testing.T) {
		data, err := enc.Encode([]byte{0x01, 0x02})
		require.NoError(t, err)
		require.Equal(t, map[string]any{"#b": "bytes", "#v": "AQI="}, decodeRaw(t, data))
	})
}

func TestEncodeErrors(t *testing.T) {
	reg := newTestRegistry(t)

	tests := []struct {
		name string
		opts []Option
		in   any
		want error
	}{
		{"func", nil, func() {}, errs.ErrUnencodable},
		{"channel", nil, make(chan int), errs.ErrUnencodable},
		{"complex", nil, complex(1, 2), errs.ErrUnencodable},
		{
			"anonymous struct",
			[]Option{WithResolver(reg)},
			struct{ X int }{X: 1},
			errs.ErrAnonymousType,
		},
		{
			"unregistered type",
			[]Option{WithResolver(reg)},
			renamed{},
			errs.ErrUnresolvedType,
		},
		{
			"no resolver",
			nil,
			wireNode{Name: "n"},
			errs.ErrUnresolvedType,
		},
		{
			"non-string map key",
			nil,
			map[int]string{1: "a"},
			errs.ErrUnsupportedKey,
		},
		{
			"reserved map key",
			nil,
			map[string]any{"#": "clash"},
			errs.ErrReservedKey,
		},
		{
			"reserved builder key",
			nil,
			map[string]any{"#b": "clash"},
			errs.ErrReservedKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewEncoder(tt.opts...)
			require.NoError(t, err)

			_, err = enc.Encode(tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEncodeConstructorMismatch(t *testing.T) {
	enc, err := NewEncoder(WithResolver(mismatchResolver{}))
	require.NoError(t, err)

	_, err = enc.Encode(wireNode{Name: "n"})
	require.ErrorIs(t, err, errs.ErrConstructorMismatch)
}

// mismatchResolver names every type but constructs something else back.
type mismatchResolver struct{}

func (mismatchResolver) NameOf(reflect.Type) (string, bool) {
	return "anything", true
}

func (mismatchResolver) TypeOf(string) (reflect.Type, bool) {
	return reflect.TypeOf(renamed{}), true
}

func TestEncodeCustomPrefix(t *testing.T) {
	enc, err := NewEncoder(WithRevive(false), WithPrefix("@@"))
	require.NoError(t, err)

	shared := map[string]any{"x": int64(1)}
	data, err := enc.Encode([]any{shared, shared})
	require.NoError(t, err)

	table := decodeRaw(t, data).([]any)
	slots := table[0].([]any)
	require.Equal(t, map[string]any{"@@": float64(1)}, slots[0])

	// The default marker is now an ordinary key.
	data, err = enc.Encode(map[string]any{"#": "plain"})
	require.NoError(t, err)
	table = decodeRaw(t, data).([]any)
	require.Equal(t, map[string]any{"#": "plain"}, table[0])
}

func TestEncodeEmptyPrefixRejected(t *testing.T) {
	_, err := NewEncoder(WithPrefix(""))
	require.ErrorIs(t, err, errs.ErrInvalidPrefix)
}
