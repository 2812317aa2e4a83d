// Package reflection reads attributes (struct tags) off the properties
// (exported struct fields) of arbitrary values. The codec package uses it to
// honor serialization options such as ignoring default values and to build
// multipart form bodies from tagged structs.
//
// Three foundation services each wrap one reflective operation exposed by a
// Broker:
//
//   - TypeService resolves the (pointer-dereferenced) type of a value
//   - PropertyService lists the properties of a struct type
//   - AttributeService parses one struct tag of a property
//
// Two orchestration services compose them. Every service reports failures
// as *Error, categorized by Kind, so callers can tell a bad input
// (validation) from a failing dependency or an internal fault:
//
//	props, err := reflection.Default().Properties.RetrieveProperties(
//	    reflection.PropertyModel{Object: payload})
//	if reflection.IsDependencyValidation(err) {
//	    // payload is not a struct
//	}
package reflection
