package domain

// Fields is a name index over the fields of one metadata block. Field names are
// expected to be unique within a block. Should a name occur more than once, each
// lookup uses the first occurrence of the kind it asks for.
type Fields struct {
	byName map[string][]Field
}

func NewFields(fields []Field) Fields {
	idx := Fields{byName: make(map[string][]Field, len(fields))}

	for _, f := range fields {
		idx.byName[f.TypeName] = append(idx.byName[f.TypeName], f)
	}

	return idx
}

func (fs Fields) lookup(typeName string, matches func(Field) bool) (Field, bool) {
	for _, f := range fs.byName[typeName] {
		if matches(f) {
			return f, true
		}
	}
	return Field{}, false
}

func isSinglePrimitive(f Field) bool { return f.TypeClass == Primitive && !f.Multiple }
func isPrimitive(f Field) bool       { return f.TypeClass == Primitive }
func isMultiple(f Field) bool        { return f.Multiple }
func isCompound(f Field) bool        { return f.TypeClass == Compound }

// PrimitiveValue returns the value of a single valued primitive field. A multi valued
// field of the same name does not match.
func (fs Fields) PrimitiveValue(typeName string) (string, bool) {
	f, ok := fs.lookup(typeName, isSinglePrimitive)
	if !ok {
		return "", false
	}

	if v, ok := f.Value.(Single); ok {
		return string(v), true
	}

	return "", false
}

// PrimitiveValueList returns the values of a primitive field regardless of whether it is
// single or multi valued. A single value is returned as a one element list.
func (fs Fields) PrimitiveValueList(typeName string) []string {
	f, ok := fs.lookup(typeName, isPrimitive)
	if !ok {
		return []string{}
	}

	switch v := f.Value.(type) {
	case Single:
		return []string{string(v)}
	case Multi:
		return append([]string{}, v...)
	}

	return []string{}
}

// MultipleValueList returns the values of any multi valued, non compound field, such as
// the controlled vocabulary field "language".
func (fs Fields) MultipleValueList(typeName string) []string {
	f, ok := fs.lookup(typeName, isMultiple)
	if !ok {
		return []string{}
	}

	if v, ok := f.Value.(Multi); ok {
		return append([]string{}, v...)
	}

	return []string{}
}

// CompoundValues returns the entries of a compound field.
func (fs Fields) CompoundValues(typeName string) []CompoundEntry {
	f, ok := fs.lookup(typeName, isCompound)
	if !ok {
		return []CompoundEntry{}
	}

	if v, ok := f.Value.(Compounds); ok {
		return v
	}

	return []CompoundEntry{}
}
