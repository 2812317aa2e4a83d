package reflection

import "reflect"

// AttributeService reads one attribute (struct tag) off a property.
type AttributeService interface {
	RetrieveAttribute(field reflect.StructField, key string) (Attribute, error)
}

type attributeService struct {
	broker Broker
}

// NewAttributeService creates an AttributeService backed by broker.
func NewAttributeService(broker Broker) AttributeService {
	return &attributeService{broker: broker}
}

// RetrieveAttribute returns the parsed tag. A property without the tag yields
// an Attribute with Present=false rather than an error.
func (s *attributeService) RetrieveAttribute(field reflect.StructField, key string) (attr Attribute, err error) {
	const op = "attribute.RetrieveAttribute"
	defer recoverService(op, "attribute", &err)

	if field.Name == "" {
		return Attribute{}, newError(op, KindValidation, "attribute", ErrNoField)
	}
	if key == "" {
		return Attribute{}, newError(op, KindValidation, "attribute", ErrEmptyTagKey)
	}
	raw, ok := s.broker.Tag(field, key)
	return ParseAttribute(key, raw, ok), nil
}
