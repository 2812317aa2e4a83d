package reflection

// AttributeOrchestrationService reads one attribute off every property of an
// object.
type AttributeOrchestrationService interface {
	RetrieveAttributes(model AttributeModel) ([]PropertyAttribute, error)
}

type attributeOrchestrationService struct {
	properties PropertyOrchestrationService
	attributes AttributeService
}

// NewAttributeOrchestrationService composes property orchestration with an
// AttributeService.
func NewAttributeOrchestrationService(properties PropertyOrchestrationService, attributes AttributeService) AttributeOrchestrationService {
	return &attributeOrchestrationService{properties: properties, attributes: attributes}
}

// RetrieveAttributes returns the properties of model.Object in declaration
// order, each paired with its model.Key attribute (possibly not present).
func (s *attributeOrchestrationService) RetrieveAttributes(model AttributeModel) ([]PropertyAttribute, error) {
	const op = "attribute_orchestration.RetrieveAttributes"
	const subject = "attribute orchestration"

	if model.Object == nil {
		return nil, newError(op, KindValidation, subject, ErrNilObject)
	}
	if model.Key == "" {
		return nil, newError(op, KindValidation, subject, ErrEmptyTagKey)
	}

	props, err := s.properties.RetrieveProperties(PropertyModel{Object: model.Object})
	if err != nil {
		return nil, orchestrationError(op, subject, err)
	}

	result := make([]PropertyAttribute, 0, len(props.Properties))
	for _, p := range props.Properties {
		attr, err := s.attributes.RetrieveAttribute(p, model.Key)
		if err != nil {
			return nil, orchestrationError(op, subject, err)
		}
		result = append(result, PropertyAttribute{Property: p, Attribute: attr})
	}
	return result, nil
}
