package odoo

import (
	"encoding/json"
	"strconv"
)

// Many2One is how the ERP serializes a cross-reference field: a bare numeric
// id, an [id, "display name"] pair, or false/null when unset. Decoding never
// fails on shape; an unresolved reference just stays invalid.
type Many2One struct {
	Id    int
	Name  string
	Valid bool
}

func (m *Many2One) UnmarshalJSON(data []byte) error {
	*m = Many2One{}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		m.Id = int(v)
		m.Valid = true
	case []any:
		if len(v) > 0 {
			if id, ok := v[0].(float64); ok {
				m.Id = int(id)
				m.Valid = true
			}
		}
		if len(v) > 1 {
			if name, ok := v[1].(string); ok {
				m.Name = name
			}
		}
	}
	// null, false and anything else mean "not set"
	return nil
}

// Float is a numeric field; the ERP sends false when it is not set, and
// partial data quality means the wire value may not be numeric at all.
// Non-numeric input degrades to zero rather than failing the whole fetch.
type Float struct {
	Value float64
	Valid bool
}

func (f *Float) UnmarshalJSON(data []byte) error {
	*f = Float{}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw.(float64); ok {
		f.Value = v
		f.Valid = true
	}
	return nil
}

// Int behaves like Float for integer-valued fields (years, counters).
type Int struct {
	Value int
	Valid bool
}

func (i *Int) UnmarshalJSON(data []byte) error {
	*i = Int{}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw.(float64); ok {
		i.Value = int(v)
		i.Valid = true
	}
	return nil
}

// Text is a string field. House numbers and similar fields arrive either as
// strings or as numbers depending on how the record was keyed in.
type Text struct {
	Value string
	Valid bool
}

func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text{}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		t.Value = v
		t.Valid = true
	case float64:
		t.Value = strconv.FormatFloat(v, 'f', -1, 64)
		t.Valid = true
	}
	return nil
}
