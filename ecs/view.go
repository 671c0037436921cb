package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View describes a combination of components as a struct. Every field of T
// must be either a pointer to a component type or an EntityId, which
// receives the id of the matched entity. Embedded pointer fields are always
// required; named pointer fields may be tagged `ecs:"optional"` and are nil
// when the entity lacks that component.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	idOffset    uintptr
	hasId       bool
}

// NewView builds a view over storage for the struct type T.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		isOptional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			isOptional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	return v
}

// Get returns the view of a single entity, or nil if it is missing a
// required component.
func (v *View[T]) Get(id EntityId) *T {
	archetype, ok := v.storage.archetypes.Get(id.ArchetypeId())
	if !ok || !v.matchesArchetype(archetype) {
		return nil
	}

	var result T
	if !v.populate(unsafe.Pointer(&result), archetype, int(id.Index()), v.columnIndices(archetype)) {
		return nil
	}
	return &result
}

// Iter yields the view of every matching entity, archetype by archetype in
// creation order.
func (v *View[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, archetype := range v.storage.order {
			if !v.matchesArchetype(archetype) {
				continue
			}
			for item := range v.iterArchetype(archetype) {
				if !yield(item) {
					return
				}
			}
		}
	}
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq[T] {
	return func(yield func(T) bool) {
		if len(archetype.columns) == 0 {
			return
		}

		indices := v.columnIndices(archetype)
		var result T
		resultPtr := unsafe.Pointer(&result)

		for slot := range archetype.columns[0].Iter() {
			if !v.populate(resultPtr, archetype, slot, indices) {
				continue
			}
			if !yield(result) {
				return
			}
		}
	}
}

func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, t := range v.types {
		if !v.optional[i] && !archetype.HasComponent(t) {
			return false
		}
	}
	return true
}

func (v *View[T]) columnIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, t := range v.types {
		indices[i] = archetype.columnIndex(t)
	}
	return indices
}

// populate writes component pointers for one slot into the struct at ptr.
func (v *View[T]) populate(ptr unsafe.Pointer, archetype *Archetype, slot int, indices []int) bool {
	for i, colIdx := range indices {
		fieldPtr := unsafe.Add(ptr, v.fieldOffset[i])

		var component any
		if colIdx != -1 {
			component = archetype.columns[colIdx].Get(slot)
		}

		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}

	if v.hasId {
		*(*EntityId)(unsafe.Add(ptr, v.idOffset)) = NewEntityId(archetype.id, uint32(slot))
	}
	return true
}
