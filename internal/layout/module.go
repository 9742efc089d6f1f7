// internal/layout/module.go
package layout

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Field is one decoded named value within a module. Value is either a
// scalar or an ordered []any for grouped fields.
type Field struct {
	Name  string
	Value any
}

// Module is the decoded view of one module block within a read.
// Fields preserve layout declaration order.
type Module struct {
	Index  int
	Fields []Field
}

// Get returns the decoded value for a field name.
func (m Module) Get(name string) (any, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON emits a flat object with fields in declaration order and the
// module index last. A plain map would not preserve the order.
func (m Module) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for _, f := range m.Fields {
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
		buf.WriteByte(',')
	}

	buf.WriteString(`"index":`)
	buf.WriteString(strconv.Itoa(m.Index))
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
