package codec

import (
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/kbukum/restsense/reflection"
)

// FormTag is the struct tag key read by EncodeForm.
const FormTag = "form"

// EncodeForm builds a multipart body from the `form` tags of a struct.
//
// Tag options:
//   - file: the field ([]byte, string or io.Reader) is sent as a file part
//   - filename=Field: the file name is read from the named string field
//   - contenttype=mime: content type of the file part
//   - omitempty: zero values are skipped
//
// Fields without a tag use the Go field name; `form:"-"` skips the field.
// Non-scalar values are sent as JSON.
func EncodeForm(v any) (*MultipartBody, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("codec: encode form: %w", reflection.ErrNilObject)
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, fmt.Errorf("codec: encode form: %w", reflection.ErrNilObject)
	}

	attrs, err := reflection.Default().Attributes.RetrieveAttributes(reflection.AttributeModel{Object: v, Key: FormTag})
	if err != nil {
		return nil, fmt.Errorf("codec: encode form: %w", err)
	}

	body := &MultipartBody{Fields: make(map[string]string)}
	for _, pa := range attrs {
		attr, field := pa.Attribute, pa.Property
		if attr.Ignored() || !field.IsExported() {
			continue
		}
		fv := rv.FieldByIndex(field.Index)
		if attr.HasFlag("omitempty") && fv.IsZero() {
			continue
		}
		name := attr.Name
		if name == "" {
			name = field.Name
		}

		if attr.HasFlag("file") {
			file, err := fileField(rv, fv, name, attr)
			if err != nil {
				return nil, err
			}
			body.Files = append(body.Files, file)
			continue
		}

		s, err := formValue(fv)
		if err != nil {
			return nil, fmt.Errorf("codec: encode form field %q: %w", name, err)
		}
		body.Fields[name] = s
	}
	return body, nil
}

func fileField(parent, fv reflect.Value, name string, attr reflection.Attribute) (FileField, error) {
	file := FileField{FieldName: name, FileName: name}
	if ct, ok := attr.Value("contenttype"); ok {
		file.ContentType = ct
	}
	if ref, ok := attr.Value("filename"); ok {
		fn := parent.FieldByName(ref)
		if !fn.IsValid() || fn.Kind() != reflect.String {
			return FileField{}, fmt.Errorf("codec: form field %q: filename field %q is not a string field", name, ref)
		}
		if fn.String() != "" {
			file.FileName = fn.String()
		}
	}

	switch data := fv.Interface().(type) {
	case []byte:
		file.Data = data
	case string:
		file.Data = []byte(data)
	case io.Reader:
		file.Reader = data
	case nil:
	default:
		return FileField{}, fmt.Errorf("%w: form file field %q has type %T", ErrUnsupportedType, name, data)
	}
	return file, nil
}

func formValue(v reflect.Value) (string, error) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", nil
		}
		v = v.Elem()
	}
	if tm, ok := v.Interface().(encoding.TextMarshaler); ok {
		b, err := tm.MarshalText()
		return string(b), err
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits()), nil
	default:
		b, err := json.Marshal(v.Interface())
		return string(b), err
	}
}
