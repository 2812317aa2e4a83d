package reflection

import (
	"reflect"
	"strings"
)

// Attribute is a parsed struct tag of the form `key:"name,flag,option=value"`.
type Attribute struct {
	// Key is the tag key, e.g. "json" or "form".
	Key string
	// Present reports whether the field carries the tag at all.
	Present bool
	// Raw is the unparsed tag value.
	Raw string
	// Name is the first comma-separated element.
	Name string
	// Flags holds bare options such as "omitempty".
	Flags []string
	// Values holds key=value options such as "filename=Name".
	Values map[string]string
}

// ParseAttribute parses a raw tag value.
func ParseAttribute(key, raw string, present bool) Attribute {
	a := Attribute{Key: key, Present: present, Raw: raw}
	if raw == "" {
		return a
	}
	parts := strings.Split(raw, ",")
	a.Name = strings.TrimSpace(parts[0])
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if k, v, ok := strings.Cut(p, "="); ok {
			if a.Values == nil {
				a.Values = make(map[string]string)
			}
			a.Values[k] = v
			continue
		}
		a.Flags = append(a.Flags, p)
	}
	return a
}

// HasFlag reports whether the attribute carries a bare option.
func (a Attribute) HasFlag(flag string) bool {
	for _, f := range a.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Value returns a key=value option.
func (a Attribute) Value(key string) (string, bool) {
	v, ok := a.Values[key]
	return v, ok
}

// Ignored reports whether the tag opts the field out entirely (`key:"-"`).
func (a Attribute) Ignored() bool {
	return a.Raw == "-"
}

// PropertyModel is the input and output of property orchestration. Callers
// set Object; the orchestration fills Type and Properties.
type PropertyModel struct {
	Object     any
	Type       reflect.Type
	Properties []reflect.StructField
}

// AttributeModel asks for the attribute Key on every property of Object.
type AttributeModel struct {
	Object any
	Key    string
}

// PropertyAttribute pairs a property with its parsed attribute.
type PropertyAttribute struct {
	Property  reflect.StructField
	Attribute Attribute
}
