package sim

import (
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

type resourceEntry struct {
	typ     reflect.Type
	dataPtr unsafe.Pointer
	// keeps the value reachable for the collector
	owner any
}

// Resources is a table of process-wide values keyed by their type. Each type
// holds at most one value. Systems reach resources through Resource fields.
type Resources struct {
	entries *intmap.Map[int, *resourceEntry]
	order   []reflect.Type
}

// NewResources creates an empty resource table.
func NewResources() *Resources {
	return &Resources{
		entries: intmap.New[int, *resourceEntry](16),
	}
}

// Add stores value in the table. Passing a pointer shares the pointee with
// the caller; any other value is copied. Adding a type that already exists
// replaces the stored value and every Resource accessor observes the change.
func (r *Resources) Add(value any) {
	if value == nil {
		panic("sim: cannot add a nil resource")
	}

	rv := reflect.ValueOf(value)
	var typ reflect.Type
	var ptr reflect.Value
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			panic("sim: cannot add a nil resource pointer of type " + rv.Type().String())
		}
		typ = rv.Type().Elem()
		ptr = rv
	} else {
		typ = rv.Type()
		ptr = reflect.New(typ)
		ptr.Elem().Set(rv)
	}

	id := typeId(typ)
	if entry, ok := r.entries.Get(id); ok {
		entry.dataPtr = ptr.UnsafePointer()
		entry.owner = ptr.Interface()
		return
	}

	r.entries.Put(id, &resourceEntry{
		typ:     typ,
		dataPtr: ptr.UnsafePointer(),
		owner:   ptr.Interface(),
	})
	r.order = append(r.order, typ)
}

// Read loads the resource matching the pointee type of ptr, which must be a
// pointer to a pointer. It returns false when no such resource exists.
//
//	var session *engine.Session
//	resources.Read(&session)
func (r *Resources) Read(ptr any) bool {
	pv := reflect.ValueOf(ptr)
	if pv.Kind() != reflect.Pointer || pv.Elem().Kind() != reflect.Pointer {
		panic("sim: Read requires a pointer to a pointer")
	}

	typ := pv.Elem().Type().Elem()
	entry := r.lookup(typ)
	if entry == nil {
		return false
	}

	pv.Elem().Set(reflect.NewAt(typ, entry.dataPtr))
	return true
}

// Has reports whether a resource of type t is stored.
func (r *Resources) Has(t reflect.Type) bool {
	return r.lookup(t) != nil
}

// Len returns the number of stored resources.
func (r *Resources) Len() int {
	return len(r.order)
}

// Types returns the stored resource types in insertion order.
func (r *Resources) Types() []reflect.Type {
	types := make([]reflect.Type, len(r.order))
	copy(types, r.order)
	return types
}

func (r *Resources) lookup(t reflect.Type) *resourceEntry {
	entry, ok := r.entries.Get(typeId(t))
	if !ok {
		return nil
	}
	return entry
}
