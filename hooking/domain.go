package hooking

// Named describes an object that has a name.
type Named interface {
	Name() string
}

// NamedHookable represent something both have a name and can be hooked.
type NamedHookable interface {
	Named
	Hookable
}

// Domain is a named hookable object. Instruments publish their spans to a
// domain and tracers hook to it.
type Domain struct {
	*HookableBase

	name string
}

// NewDomain creates a new Domain.
func NewDomain(name string) *Domain {
	if name == "" {
		panic("domain must have a name")
	}

	return &Domain{
		HookableBase: NewHookableBase(),
		name:         name,
	}
}

// Name returns the name of the domain.
func (d *Domain) Name() string {
	return d.name
}

var _ NamedHookable = (*Domain)(nil)
