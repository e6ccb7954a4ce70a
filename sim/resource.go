package sim

import "reflect"

// Resource provides typed access to a single value stored in Resources.
// Declare it as a field on a System; the Scheduler calls Init on
// registration.
type Resource[T any] struct {
	resources *Resources
	entry     *resourceEntry
}

// NewResource creates an accessor bound to resources. If the resource does
// not exist yet it is created from initializer, or from the zero value.
func NewResource[T any](resources *Resources, initializer ...T) *Resource[T] {
	res := &Resource[T]{}
	res.Init(resources)
	if res.entry == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		resources.Add(&value)
		res.refresh()
	}
	return res
}

// Init binds the accessor to a resource table.
func (r *Resource[T]) Init(resources *Resources) {
	r.resources = resources
	r.refresh()
}

// Get returns the stored value, or nil when it has not been added.
func (r *Resource[T]) Get() *T {
	if r.entry == nil {
		r.refresh()
	}
	if r.entry == nil {
		return nil
	}
	return (*T)(r.entry.dataPtr)
}

// Exists reports whether the resource has been added.
func (r *Resource[T]) Exists() bool {
	if r.entry == nil {
		r.refresh()
	}
	return r.entry != nil
}

func (r *Resource[T]) refresh() {
	if r.resources == nil {
		return
	}
	r.entry = r.resources.lookup(reflect.TypeFor[T]())
}
