// internal/layout/layout.go
package layout

import "fmt"

// Type identifies how a field's registers are reinterpreted.
// The set is fixed; anything else is rejected at validation time.
type Type string

const (
	Int16   Type = "int16"
	UInt16  Type = "uint16"
	Int32   Type = "int32"
	UInt32  Type = "uint32"
	Float32 Type = "float32"
	Float64 Type = "float64"
)

// words returns the register span one value of this type occupies.
func (t Type) words() (int, bool) {
	switch t {
	case Int16, UInt16:
		return 1, true
	case Int32, UInt32, Float32:
		return 2, true
	case Float64:
		return 4, true
	}
	return 0, false
}

// FieldSpec describes one named entry in the module's register layout:
// where it starts, how many words a single value spans, how many
// consecutive values there are, and how to reinterpret them.
type FieldSpec struct {
	Name   string `yaml:"name"`
	Offset int    `yaml:"offset"`
	Words  int    `yaml:"words"`
	Count  int    `yaml:"count"`
	Type   Type   `yaml:"type"`
}

// Layout describes the full register layout of one module block.
// Immutable after validation and safe to share without locking.
type Layout struct {
	WordsPerModule int         `yaml:"words_per_module"`
	BigEndian      bool        `yaml:"big_endian"`
	Fields         []FieldSpec `yaml:"fields"`
}

// Validate checks layout correctness. It performs declarative validation
// only and MUST NOT mutate the layout. Any error here is fatal: a layout
// that fails validation must never reach the decoder.
func (l Layout) Validate() error {
	type span struct {
		start int
		end   int
		name  string
	}

	if l.WordsPerModule <= 0 {
		return fmt.Errorf("layout: words_per_module must be > 0, got %d", l.WordsPerModule)
	}
	if len(l.Fields) == 0 {
		return fmt.Errorf("layout: at least one field required")
	}

	seen := make(map[string]bool, len(l.Fields))
	var spans []span

	for _, f := range l.Fields {
		if f.Name == "" {
			return fmt.Errorf("layout: field name required")
		}
		if seen[f.Name] {
			return fmt.Errorf("layout: duplicate field %q", f.Name)
		}
		seen[f.Name] = true

		need, ok := f.Type.words()
		if !ok {
			return fmt.Errorf("layout: field %q: unsupported type %q", f.Name, f.Type)
		}
		if f.Words != need {
			return fmt.Errorf(
				"layout: field %q: type %s spans %d word(s), got words=%d",
				f.Name, f.Type, need, f.Words,
			)
		}
		if f.Count < 1 {
			return fmt.Errorf("layout: field %q: count must be >= 1, got %d", f.Name, f.Count)
		}
		if f.Offset < 0 {
			return fmt.Errorf("layout: field %q: offset must be >= 0, got %d", f.Name, f.Offset)
		}

		start := f.Offset
		end := f.Offset + f.Words*f.Count - 1

		if end >= l.WordsPerModule {
			return fmt.Errorf(
				"layout: field %q: range %d-%d exceeds module span of %d words",
				f.Name, start, end, l.WordsPerModule,
			)
		}

		for _, s := range spans {
			// overlap check (inclusive)
			if !(end < s.start || start > s.end) {
				return fmt.Errorf(
					"layout: field %q range %d-%d overlaps with field %q range %d-%d",
					f.Name, start, end, s.name, s.start, s.end,
				)
			}
		}

		spans = append(spans, span{start: start, end: end, name: f.Name})
	}

	return nil
}
