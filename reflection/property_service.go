package reflection

import "reflect"

// PropertyService lists the properties of a struct type.
type PropertyService interface {
	RetrieveProperties(t reflect.Type) ([]reflect.StructField, error)
}

type propertyService struct {
	broker Broker
}

// NewPropertyService creates a PropertyService backed by broker.
func NewPropertyService(broker Broker) PropertyService {
	return &propertyService{broker: broker}
}

func (s *propertyService) RetrieveProperties(t reflect.Type) (fields []reflect.StructField, err error) {
	const op = "property.RetrieveProperties"
	defer recoverService(op, "property", &err)

	if t == nil {
		return nil, newError(op, KindValidation, "property", ErrNilType)
	}
	fields, err = s.broker.Fields(t)
	if err != nil {
		return nil, foundationError(op, "property", err)
	}
	return fields, nil
}
