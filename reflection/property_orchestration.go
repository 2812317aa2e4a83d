package reflection

// PropertyOrchestrationService resolves the type of an object and lists its
// properties.
type PropertyOrchestrationService interface {
	RetrieveProperties(model PropertyModel) (PropertyModel, error)
}

type propertyOrchestrationService struct {
	types      TypeService
	properties PropertyService
}

// NewPropertyOrchestrationService composes a TypeService and a PropertyService.
func NewPropertyOrchestrationService(types TypeService, properties PropertyService) PropertyOrchestrationService {
	return &propertyOrchestrationService{types: types, properties: properties}
}

// RetrieveProperties fills model.Type and model.Properties. The property
// service is not consulted when the type cannot be resolved.
func (s *propertyOrchestrationService) RetrieveProperties(model PropertyModel) (PropertyModel, error) {
	const op = "property_orchestration.RetrieveProperties"
	const subject = "property orchestration"

	if model.Object == nil {
		return PropertyModel{}, newError(op, KindValidation, subject, ErrNilObject)
	}

	t, err := s.types.RetrieveType(model.Object)
	if err != nil {
		return PropertyModel{}, orchestrationError(op, subject, err)
	}

	fields, err := s.properties.RetrieveProperties(t)
	if err != nil {
		return PropertyModel{}, orchestrationError(op, subject, err)
	}

	model.Type = t
	model.Properties = fields
	return model, nil
}
