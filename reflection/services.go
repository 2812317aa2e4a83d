package reflection

import "sync"

// Services bundles the foundation and orchestration services over one broker.
type Services struct {
	Types      TypeService
	Fields     PropertyService
	Tags       AttributeService
	Properties PropertyOrchestrationService
	Attributes AttributeOrchestrationService
}

// New wires every service over broker.
func New(broker Broker) *Services {
	types := NewTypeService(broker)
	fields := NewPropertyService(broker)
	tags := NewAttributeService(broker)
	properties := NewPropertyOrchestrationService(types, fields)
	return &Services{
		Types:      types,
		Fields:     fields,
		Tags:       tags,
		Properties: properties,
		Attributes: NewAttributeOrchestrationService(properties, tags),
	}
}

var defaultServices = sync.OnceValue(func() *Services {
	return New(NewBroker())
})

// Default returns the process-wide services backed by the reflect broker.
func Default() *Services {
	return defaultServices()
}
