// Package codec holds the pluggable request/response body encoders used by
// the httpclient and rest packages.
//
// A Codec is any value that can both Serialize and Deserialize. Plain
// functions can be adapted with SerializerFunc and DeserializerFunc:
//
//	upper := codec.SerializerFunc(func(v any) ([]byte, error) {
//	    return []byte(strings.ToUpper(v.(string))), nil
//	})
//
// JSON with IgnoreDefaultValues drops every struct field that holds its zero
// value, recursing into nested values. A field tagged `restful:"keep"` is
// written even when zero, unless `omitempty` drops it as encoding/json would.
//
// EncodeForm builds a multipart/form-data body from `form` struct tags:
//
//	type Upload struct {
//	    Title    string `form:"title"`
//	    Data     []byte `form:"file,file,filename=FileName,contenttype=image/png"`
//	    FileName string `form:"-"`
//	}
package codec
