package domain

import (
	"encoding/json"
)

type TypeClass string

const (
	Primitive            TypeClass = "primitive"
	Compound             TypeClass = "compound"
	ControlledVocabulary TypeClass = "controlledVocabulary"
)

// Field is a single metadata field from a Dataverse metadata block.
type Field struct {
	TypeName  string
	TypeClass TypeClass
	Multiple  bool
	Value     FieldValue
}

// FieldValue is one of Single, Multi or Compounds. A field whose value could not be
// recognised has a nil Value.
type FieldValue interface {
	fieldValue()
}

// Single is the value of a single valued primitive or controlled vocabulary field.
type Single string

// Multi is the value of a multi valued primitive or controlled vocabulary field.
type Multi []string

// Compounds is the value of a compound field, one entry per occurrence.
type Compounds []CompoundEntry

func (Single) fieldValue()    {}
func (Multi) fieldValue()     {}
func (Compounds) fieldValue() {}

// CompoundEntry maps sub field names to sub fields, e.g. "authorName" or "authorAffiliation".
type CompoundEntry map[string]Field

// Value returns the scalar value of the named sub field. The boolean result reports
// whether the sub field was present at all, so an empty but present value can be
// told apart from a missing one.
func (ce CompoundEntry) Value(subField string) (string, bool) {
	f, ok := ce[subField]
	if !ok {
		return "", false
	}

	if s, ok := f.Value.(Single); ok {
		return string(s), true
	}

	return "", true
}

type rawField struct {
	TypeName  string          `json:"typeName"`
	TypeClass TypeClass       `json:"typeClass"`
	Multiple  bool            `json:"multiple"`
	Value     json.RawMessage `json:"value"`
}

// UnmarshalJSON never fails on a well formed JSON value. Values that do not match the
// declared type class are dropped, leaving the field without a value.
func (f *Field) UnmarshalJSON(data []byte) error {
	raw := rawField{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	f.TypeName = raw.TypeName
	f.TypeClass = raw.TypeClass
	f.Multiple = raw.Multiple
	f.Value = decodeFieldValue(raw)

	return nil
}

func decodeFieldValue(raw rawField) FieldValue {
	if len(raw.Value) == 0 {
		return nil
	}

	switch raw.TypeClass {
	case Compound:
		return decodeCompounds(raw.Value)
	case Primitive, ControlledVocabulary:
		return decodeScalars(raw.Value)
	}

	return nil
}

func decodeScalars(data json.RawMessage) FieldValue {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return Single(s)
	}

	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err != nil {
		return nil
	}

	values := make(Multi, 0, len(list))
	for _, item := range list {
		var v string
		// non string items become empty strings to keep positions stable
		_ = json.Unmarshal(item, &v)
		values = append(values, v)
	}

	return values
}

func decodeCompounds(data json.RawMessage) FieldValue {
	var list []CompoundEntry
	if err := json.Unmarshal(data, &list); err == nil {
		return Compounds(list)
	}

	var entry CompoundEntry
	if err := json.Unmarshal(data, &entry); err == nil {
		return Compounds{entry}
	}

	return nil
}
