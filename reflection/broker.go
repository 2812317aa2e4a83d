package reflection

import (
	"fmt"
	"reflect"
)

// Broker performs the raw reflective calls. Services own validation and
// error categorization; the broker only talks to the reflect package.
type Broker interface {
	// TypeOf returns the dynamic type of obj with pointers dereferenced.
	TypeOf(obj any) reflect.Type
	// Fields returns the properties of a struct type in declaration order.
	Fields(t reflect.Type) ([]reflect.StructField, error)
	// Tag returns the value of the struct tag key on field.
	Tag(field reflect.StructField, key string) (string, bool)
}

// NewBroker returns the reflect-backed Broker.
func NewBroker() Broker {
	return reflectBroker{}
}

type reflectBroker struct{}

func (reflectBroker) TypeOf(obj any) reflect.Type {
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// Fields keeps exported fields and embedded structs, whose exported fields
// are promoted even when the embedded type itself is unexported.
func (reflectBroker) Fields(t reflect.Type) ([]reflect.StructField, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}
	fields := make([]reflect.StructField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.IsExported() || f.Anonymous {
			fields = append(fields, f)
		}
	}
	return fields, nil
}

func (reflectBroker) Tag(field reflect.StructField, key string) (string, bool) {
	return field.Tag.Lookup(key)
}
