// internal/layout/decode_test.go
package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatBits32(v float32) uint32 { return math.Float32bits(v) }

func floatBits64(v float64) uint64 { return math.Float64bits(v) }

// energyMeterLayout mirrors a real three-phase meter deployment: three
// grouped float32 fields plus a single energy counter, little-endian.
func energyMeterLayout() Layout {
	return Layout{
		WordsPerModule: 20,
		BigEndian:      false,
		Fields: []FieldSpec{
			{Name: "voltage", Offset: 0, Words: 2, Count: 3, Type: Float32},
			{Name: "current", Offset: 6, Words: 2, Count: 3, Type: Float32},
			{Name: "power", Offset: 12, Words: 2, Count: 3, Type: Float32},
			{Name: "energy", Offset: 18, Words: 2, Count: 1, Type: Float32},
		},
	}
}

// energyMeterWords is the register image of the meter values
// [230.03, 229.87, 230.15], [3.03, 0.63, 0.19], [697.87, 144.21, 43.62],
// 21490440.0, IEEE-754 encoded and split low word first.
var energyMeterWords = []uint16{
	1966, 17254, 57016, 17253, 9830, 17254, 60293, 16449, 18350, 16161,
	36700, 15938, 30638, 17454, 13763, 17168, 31457, 16942, 62852, 19363,
}

func TestDecodeEnergyMeterBuffer(t *testing.T) {
	l := energyMeterLayout()
	require.NoError(t, l.Validate())

	modules, err := l.Decode(energyMeterWords)
	require.NoError(t, err)
	require.Len(t, modules, 1)

	m := modules[0]
	assert.Equal(t, 0, m.Index)

	voltage, ok := m.Get("voltage")
	require.True(t, ok)
	assert.Equal(t, []any{230.03, 229.87, 230.15}, voltage)

	current, ok := m.Get("current")
	require.True(t, ok)
	assert.Equal(t, []any{3.03, 0.63, 0.19}, current)

	power, ok := m.Get("power")
	require.True(t, ok)
	assert.Equal(t, []any{697.87, 144.21, 43.62}, power)

	energy, ok := m.Get("energy")
	require.True(t, ok)
	assert.Equal(t, 21490440.0, energy)
}

func TestDecodeLittleEndianFloat32(t *testing.T) {
	l := Layout{
		WordsPerModule: 2,
		Fields: []FieldSpec{
			{Name: "v", Offset: 0, Words: 2, Count: 1, Type: Float32},
		},
	}
	require.NoError(t, l.Validate())

	// 0x4365deb8 split low word first
	modules, err := l.Decode([]uint16{0xdeb8, 0x4365})
	require.NoError(t, err)

	v, _ := modules[0].Get("v")
	assert.InDelta(t, 229.87, v, 0.001)
}

func TestDecodeBigEndianFloat32(t *testing.T) {
	l := Layout{
		WordsPerModule: 2,
		BigEndian:      true,
		Fields: []FieldSpec{
			{Name: "v", Offset: 0, Words: 2, Count: 1, Type: Float32},
		},
	}
	require.NoError(t, l.Validate())

	// same bit pattern, high word first, big-endian bytes
	modules, err := l.Decode([]uint16{0x4365, 0xdeb8})
	require.NoError(t, err)

	v, _ := modules[0].Get("v")
	assert.InDelta(t, 229.87, v, 0.001)
}

func TestDecodeIntegerTypes(t *testing.T) {
	l := Layout{
		WordsPerModule: 8,
		Fields: []FieldSpec{
			{Name: "i16", Offset: 0, Words: 1, Count: 1, Type: Int16},
			{Name: "u16", Offset: 1, Words: 1, Count: 1, Type: UInt16},
			{Name: "i32", Offset: 2, Words: 2, Count: 1, Type: Int32},
			{Name: "u32", Offset: 4, Words: 2, Count: 1, Type: UInt32},
			{Name: "pad", Offset: 6, Words: 2, Count: 1, Type: Int32},
		},
	}
	require.NoError(t, l.Validate())

	words := []uint16{
		0xFFFF,         // i16: -1
		0xFFFF,         // u16: 65535
		0xFFFE, 0xFFFF, // i32 little-endian: 0xFFFFFFFE = -2
		0x0001, 0x0002, // u32 little-endian: 0x00020001
		0x0000, 0x0000,
	}

	modules, err := l.Decode(words)
	require.NoError(t, err)

	m := modules[0]
	i16, _ := m.Get("i16")
	assert.Equal(t, int16(-1), i16)

	u16, _ := m.Get("u16")
	assert.Equal(t, uint16(65535), u16)

	i32, _ := m.Get("i32")
	assert.Equal(t, int32(-2), i32)

	u32, _ := m.Get("u32")
	assert.Equal(t, uint32(0x00020001), u32)
}

func TestDecodeModuleCount(t *testing.T) {
	l := Layout{
		WordsPerModule: 2,
		Fields: []FieldSpec{
			{Name: "a", Offset: 0, Words: 1, Count: 1, Type: UInt16},
			{Name: "b", Offset: 1, Words: 1, Count: 1, Type: UInt16},
		},
	}
	require.NoError(t, l.Validate())

	modules, err := l.Decode([]uint16{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	require.Len(t, modules, 3)

	for i, m := range modules {
		assert.Equal(t, i, m.Index)
		assert.Len(t, m.Fields, 2)
	}

	b, _ := modules[2].Get("b")
	assert.Equal(t, uint16(6), b)
}

func TestDecodeGroupOrder(t *testing.T) {
	l := Layout{
		WordsPerModule: 3,
		Fields: []FieldSpec{
			{Name: "g", Offset: 0, Words: 1, Count: 3, Type: UInt16},
		},
	}
	require.NoError(t, l.Validate())

	modules, err := l.Decode([]uint16{10, 20, 30})
	require.NoError(t, err)

	g, _ := modules[0].Get("g")
	assert.Equal(t, []any{uint16(10), uint16(20), uint16(30)}, g)
}

func TestDecodeIsPure(t *testing.T) {
	l := energyMeterLayout()

	first, err := l.Decode(energyMeterWords)
	require.NoError(t, err)
	second, err := l.Decode(energyMeterWords)
	require.NoError(t, err)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("decode is not deterministic:\nfirst:  %#v\nsecond: %#v", first, second)
	}
}

func TestDecodeLengthMismatch(t *testing.T) {
	l := energyMeterLayout()

	_, err := l.Decode(make([]uint16, 19))
	require.ErrorIs(t, err, ErrLayoutMismatch)

	_, err = l.Decode(nil)
	require.ErrorIs(t, err, ErrLayoutMismatch)

	_, err = l.Decode(make([]uint16, 41))
	require.ErrorIs(t, err, ErrLayoutMismatch)
}

// encodeWords is the inverse of the decoder's chunk rule, used to verify
// the round trip against independently constructed buffers.
func encodeWords(bits uint64, words int, bigEndian bool) []uint16 {
	out := make([]uint16, words)
	for i := 0; i < words; i++ {
		// word index 0 holds the lowest 16 bits when little-endian
		shift := uint(16 * i)
		if bigEndian {
			shift = uint(16 * (words - 1 - i))
		}
		out[i] = uint16(bits >> shift)
	}
	return out
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, bigEndian := range []bool{false, true} {
		l := Layout{
			WordsPerModule: 8,
			BigEndian:      bigEndian,
			Fields: []FieldSpec{
				{Name: "f32", Offset: 0, Words: 2, Count: 1, Type: Float32},
				{Name: "f64", Offset: 2, Words: 4, Count: 1, Type: Float64},
				{Name: "u32", Offset: 6, Words: 2, Count: 1, Type: UInt32},
			},
		}
		require.NoError(t, l.Validate())

		var words []uint16
		words = append(words, encodeWords(uint64(floatBits32(42.625)), 2, bigEndian)...)
		words = append(words, encodeWords(floatBits64(-1234.5), 4, bigEndian)...)
		words = append(words, encodeWords(uint64(3000000000), 2, bigEndian)...)

		modules, err := l.Decode(words)
		require.NoError(t, err)

		m := modules[0]
		f32, _ := m.Get("f32")
		assert.Equal(t, 42.625, f32, "big_endian=%v", bigEndian)

		f64, _ := m.Get("f64")
		assert.Equal(t, -1234.5, f64, "big_endian=%v", bigEndian)

		u32, _ := m.Get("u32")
		assert.Equal(t, uint32(3000000000), u32, "big_endian=%v", bigEndian)
	}
}
