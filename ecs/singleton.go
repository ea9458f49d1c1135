package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton caches access to one stored value of type T. Systems declare
// Singleton fields and the Scheduler initializes them on Register.
type Singleton[T any] struct {
	storage       *Storage
	componentPtr  unsafe.Pointer
	componentType reflect.Type
}

// NewSingleton returns an accessor for T, storing initializer (or the zero
// value) first when storage holds no T yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	componentType := reflect.TypeFor[T]()

	entry := storage.getSingletonEntry(componentType)
	if entry == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
		entry = storage.getSingletonEntry(componentType)
	}

	return &Singleton[T]{
		storage:       storage,
		componentPtr:  entry.dataPtr,
		componentType: componentType,
	}
}

// Init binds the accessor to storage. Called by the Scheduler.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentType = reflect.TypeFor[T]()
	s.updateCache()
}

// Get returns the stored value, or nil when none exists
func (s *Singleton[T]) Get() *T {
	if !s.Exists() {
		return nil
	}
	return (*T)(s.componentPtr)
}

// Exists reports whether storage currently holds a T
func (s *Singleton[T]) Exists() bool {
	// revalidate every time; RemoveSingleton can drop the entry behind our back
	s.updateCache()
	return s.componentPtr != nil
}

func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(s.componentType); entry != nil {
		s.componentPtr = entry.dataPtr
	} else {
		s.componentPtr = nil
	}
}
