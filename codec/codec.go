package codec

import (
	"errors"
	"strings"
)

// ErrUnsupportedType is returned when a codec cannot handle a value's type.
var ErrUnsupportedType = errors.New("codec: unsupported type")

// Serializer turns a value into a request body.
type Serializer interface {
	Serialize(v any) ([]byte, error)
}

// Deserializer decodes a response body into v, which must be a pointer.
type Deserializer interface {
	Deserialize(data []byte, v any) error
}

// Codec both serializes and deserializes.
type Codec interface {
	Serializer
	Deserializer
}

// SerializerFunc adapts a function to Serializer.
type SerializerFunc func(v any) ([]byte, error)

// Serialize calls f(v).
func (f SerializerFunc) Serialize(v any) ([]byte, error) { return f(v) }

// DeserializerFunc adapts a function to Deserializer.
type DeserializerFunc func(data []byte, v any) error

// Deserialize calls f(data, v).
func (f DeserializerFunc) Deserialize(data []byte, v any) error { return f(data, v) }

// ForMediaType picks the codec matching a media type. Anything that is not
// recognizably YAML or plain text is treated as JSON.
func ForMediaType(mediaType string, ignoreDefaultValues bool) Codec {
	mt := strings.ToLower(mediaType)
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	mt = strings.TrimSpace(mt)

	switch {
	case strings.Contains(mt, "yaml"):
		return YAML{}
	case mt == "text/plain":
		return Text{}
	default:
		return JSON{IgnoreDefaultValues: ignoreDefaultValues}
	}
}
