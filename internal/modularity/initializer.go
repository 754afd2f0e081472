package modularity

import (
	"fmt"

	"bootkit/internal/container"
	"bootkit/internal/faults"
	"bootkit/pkg/logging"
)

// ModuleInitializer builds and initializes one module.
type ModuleInitializer interface {
	Initialize(info ModuleInfo) error
}

// Initializer is the default ModuleInitializer. It builds modules from a
// TypeRegistry, fills their `inject:"<key>"` fields from the container, then
// calls Initialize.
type Initializer struct {
	types    *TypeRegistry
	resolver container.Resolver
	logger   logging.Facade
}

// NewInitializer creates an initializer.
func NewInitializer(types *TypeRegistry, resolver container.Resolver, logger logging.Facade) *Initializer {
	if types == nil {
		types = NewTypeRegistry()
	}
	return &Initializer{types: types, resolver: resolver, logger: logger}
}

// InitializerImplementation is the default registration for
// container.KeyModuleInitializer. The type registry is taken from
// container.KeyModuleTypeRegistry when registered.
var InitializerImplementation = container.Impl("ModuleInitializer", func(r container.Resolver) (any, error) {
	logger, err := container.ResolveAs[logging.Facade](r, container.KeyLogger)
	if err != nil {
		return nil, err
	}

	var types *TypeRegistry
	if r.HasRegistration(container.KeyModuleTypeRegistry) {
		types, err = container.ResolveAs[*TypeRegistry](r, container.KeyModuleTypeRegistry)
		if err != nil {
			return nil, err
		}
	}

	c, err := container.ResolveAs[*container.Container](r, container.KeyContainer)
	if err != nil {
		return nil, err
	}
	return NewInitializer(types, c, logger), nil
})

// Initialize implements ModuleInitializer.
func (i *Initializer) Initialize(info ModuleInfo) error {
	op := fmt.Sprintf("initialize module %s", info.Name)

	module, err := i.types.New(info.TypeName())
	if err != nil {
		return faults.New(faults.KindModuleInitialize, op, err)
	}

	if err := container.PopulateFrom(i.resolver, module); err != nil {
		return faults.New(faults.KindModuleInitialize, op, err)
	}

	if err := module.Initialize(); err != nil {
		return faults.New(faults.KindModuleInitialize, op, err)
	}

	if i.logger != nil {
		i.logger.Log(fmt.Sprintf("Module %s initialized.", info.Name), logging.CategoryDebug, logging.PriorityLow)
	}
	return nil
}
