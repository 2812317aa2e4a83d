package codec

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/kbukum/restsense/reflection"
)

// KeepTag is the struct tag key read by JSON when ignoring default values.
// `restful:"keep"` writes the field even when it holds its zero value.
const KeepTag = "restful"

const maxDepth = 64

var errMaxDepth = errors.New("codec: maximum nesting depth exceeded")

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// JSON encodes bodies with encoding/json.
type JSON struct {
	// IgnoreDefaultValues drops zero-valued struct fields from the output.
	IgnoreDefaultValues bool
}

func (j JSON) Serialize(v any) ([]byte, error) {
	if !j.IgnoreDefaultValues {
		return json.Marshal(v)
	}
	pruned, err := prune(reflect.ValueOf(v), 0)
	if err != nil {
		return nil, err
	}
	return json.Marshal(pruned)
}

func (JSON) Deserialize(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// member is one written field of an object.
type member struct {
	name  string
	value any
}

// object keeps struct fields in declaration order when marshaled.
type object []member

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// prune converts v into a value whose JSON form omits zero-valued fields.
func prune(v reflect.Value, depth int) (any, error) {
	if depth > maxDepth {
		return nil, errMaxDepth
	}
	if !v.IsValid() {
		return nil, nil
	}
	if m, ok := selfMarshaler(v); ok {
		return m, nil
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return prune(v.Elem(), depth+1)
	case reflect.Struct:
		return pruneStruct(v, depth)
	case reflect.Map:
		if v.IsNil() {
			return nil, nil
		}
		out := reflect.MakeMapWithSize(reflect.MapOf(v.Type().Key(), reflect.TypeFor[any]()), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			val, err := prune(iter.Value(), depth+1)
			if err != nil {
				return nil, err
			}
			elem := reflect.New(reflect.TypeFor[any]()).Elem()
			if val != nil {
				elem.Set(reflect.ValueOf(val))
			}
			out.SetMapIndex(iter.Key(), elem)
		}
		return out.Interface(), nil
	case reflect.Slice:
		if v.IsNil() {
			return nil, nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Interface(), nil
		}
		fallthrough
	case reflect.Array:
		out := make([]any, v.Len())
		for i := range out {
			val, err := prune(v.Index(i), depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	default:
		return v.Interface(), nil
	}
}

func pruneStruct(v reflect.Value, depth int) (any, error) {
	// A zero value of the type stands in for v, which may be unexported.
	sample := reflect.Zero(v.Type()).Interface()
	attrs := reflection.Default().Attributes

	tags, err := attrs.RetrieveAttributes(reflection.AttributeModel{Object: sample, Key: "json"})
	if err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	keeps, err := attrs.RetrieveAttributes(reflection.AttributeModel{Object: sample, Key: KeepTag})
	if err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}

	direct := make(map[string]bool, len(tags))
	for _, pa := range tags {
		if !pa.Property.Anonymous || pa.Attribute.Name != "" {
			direct[fieldName(pa)] = true
		}
	}

	out := object{}
	for i, pa := range tags {
		attr := pa.Attribute
		if attr.Ignored() {
			continue
		}
		field := pa.Property
		fv := v.FieldByIndex(field.Index)
		keep := keeps[i].Attribute.Name == "keep" || keeps[i].Attribute.HasFlag("keep")

		if field.Anonymous && attr.Name == "" && embeddedStruct(field.Type) {
			if fv.Kind() == reflect.Pointer && fv.IsNil() {
				continue
			}
			inner, err := prune(fv, depth+1)
			if err != nil {
				return nil, err
			}
			if obj, ok := inner.(object); ok {
				for _, m := range obj {
					if !direct[m.name] {
						out = append(out, m)
					}
				}
			}
			continue
		}
		if !field.IsExported() {
			continue
		}
		if fv.IsZero() && !keep {
			continue
		}
		if attr.HasFlag("omitempty") && emptyValue(fv) {
			continue
		}

		val, err := prune(fv, depth+1)
		if err != nil {
			return nil, err
		}
		if attr.HasFlag("string") {
			val = quoted(val)
		}
		out = append(out, member{name: fieldName(pa), value: val})
	}
	return out, nil
}

func fieldName(pa reflection.PropertyAttribute) string {
	if pa.Attribute.Name != "" {
		return pa.Attribute.Name
	}
	return pa.Property.Name
}

// emptyValue reports whether encoding/json's omitempty would drop v.
func emptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}

func embeddedStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// quoted applies the ",string" option to scalar values.
func quoted(val any) any {
	switch val.(type) {
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		b, err := json.Marshal(val)
		if err != nil {
			return val
		}
		return string(b)
	default:
		return val
	}
}

// selfMarshaler returns v when its type encodes itself, so that values such
// as time.Time keep their own JSON form.
func selfMarshaler(v reflect.Value) (any, bool) {
	t := v.Type()
	if !v.CanInterface() || t.Kind() == reflect.Interface {
		return nil, false
	}
	if t.Kind() == reflect.Pointer && v.IsNil() {
		return nil, false
	}
	if t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType) {
		return v.Interface(), true
	}
	if v.CanAddr() {
		pt := reflect.PointerTo(t)
		if pt.Implements(jsonMarshalerType) || pt.Implements(textMarshalerType) {
			return v.Addr().Interface(), true
		}
	}
	return nil, false
}
