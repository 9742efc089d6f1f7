// internal/layout/decode.go
package layout

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrLayoutMismatch reports a raw buffer whose length does not fit the
// layout. Per-cycle recoverable: the caller logs it and skips the cycle.
var ErrLayoutMismatch = errors.New("buffer length does not match module span")

// Decode interprets a raw register buffer as consecutive module blocks.
// The buffer length must be a nonzero multiple of WordsPerModule; the
// quotient is the module count. Decode is pure: no IO, no side effects,
// identical input always yields identical output.
//
// The layout must have passed Validate. Decode does not re-check it.
func (l Layout) Decode(words []uint16) ([]Module, error) {
	if len(words) == 0 || len(words)%l.WordsPerModule != 0 {
		return nil, fmt.Errorf(
			"%w: got %d words, module span is %d",
			ErrLayoutMismatch, len(words), l.WordsPerModule,
		)
	}

	count := len(words) / l.WordsPerModule
	modules := make([]Module, count)

	for i := 0; i < count; i++ {
		block := words[i*l.WordsPerModule : (i+1)*l.WordsPerModule]

		m := Module{
			Index:  i,
			Fields: make([]Field, 0, len(l.Fields)),
		}
		for _, f := range l.Fields {
			m.Fields = append(m.Fields, Field{
				Name:  f.Name,
				Value: decodeField(block, f, l.BigEndian),
			})
		}
		modules[i] = m
	}

	return modules, nil
}

// decodeField extracts one field from a module block: Count consecutive
// chunks of Words registers each, starting at Offset. A single-value
// field yields a scalar, a grouped field an ordered slice.
func decodeField(block []uint16, f FieldSpec, bigEndian bool) any {
	if f.Count == 1 {
		return decodeValue(block[f.Offset:f.Offset+f.Words], f.Type, bigEndian)
	}

	values := make([]any, 0, f.Count)
	for i := 0; i < f.Count; i++ {
		start := f.Offset + i*f.Words
		values = append(values, decodeValue(block[start:start+f.Words], f.Type, bigEndian))
	}
	return values
}

// decodeValue concatenates one chunk of registers into a byte sequence and
// reinterprets it. Word order and the byte order inside each word both
// follow the endianness flag: the chunk is one multi-byte value laid out
// across consecutive registers, high word first when big-endian.
func decodeValue(chunk []uint16, t Type, bigEndian bool) any {
	buf := make([]byte, 0, len(chunk)*2)
	for _, w := range chunk {
		if bigEndian {
			buf = append(buf, byte(w>>8), byte(w))
		} else {
			buf = append(buf, byte(w), byte(w>>8))
		}
	}

	var order binary.ByteOrder = binary.LittleEndian
	if bigEndian {
		order = binary.BigEndian
	}

	switch t {
	case Int16:
		return int16(order.Uint16(buf))
	case UInt16:
		return order.Uint16(buf)
	case Int32:
		return int32(order.Uint32(buf))
	case UInt32:
		return order.Uint32(buf)
	case Float32:
		return round3(float64(math.Float32frombits(order.Uint32(buf))))
	case Float64:
		return round3(math.Float64frombits(order.Uint64(buf)))
	}

	// Unreachable for a validated layout.
	return nil
}

// round3 rounds floating-point values to three fractional digits.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
