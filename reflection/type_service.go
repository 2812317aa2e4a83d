package reflection

import "reflect"

// TypeService resolves the type of a value.
type TypeService interface {
	RetrieveType(obj any) (reflect.Type, error)
}

type typeService struct {
	broker Broker
}

// NewTypeService creates a TypeService backed by broker.
func NewTypeService(broker Broker) TypeService {
	return &typeService{broker: broker}
}

// RetrieveType returns the type of obj with pointers dereferenced.
func (s *typeService) RetrieveType(obj any) (t reflect.Type, err error) {
	const op = "type.RetrieveType"
	defer recoverService(op, "type", &err)

	if obj == nil {
		return nil, newError(op, KindValidation, "type", ErrNilObject)
	}
	return s.broker.TypeOf(obj), nil
}
