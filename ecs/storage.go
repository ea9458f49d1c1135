package ecs

import (
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// singletonEntry holds one heap-allocated singleton value
type singletonEntry struct {
	typ     reflect.Type
	value   reflect.Value // pointer to the stored value
	dataPtr unsafe.Pointer
}

// Storage holds the singleton state shared by systems. Values are keyed by
// their concrete type; each type has at most one instance.
type Storage struct {
	singletons *intmap.Map[int, *singletonEntry]
	order      []reflect.Type
}

// NewStorage creates an empty storage
func NewStorage() *Storage {
	return &Storage{
		singletons: intmap.New[int, *singletonEntry](16),
	}
}

// AddSingleton stores value under its type. If a value of that type already
// exists it is overwritten in place, so pointers handed out earlier stay valid.
func (s *Storage) AddSingleton(value any) {
	valueType := reflect.TypeOf(value)
	if valueType == nil {
		panic("cannot add nil singleton")
	}
	if valueType.Kind() == reflect.Ptr {
		panic("singletons are stored by value, got pointer " + valueType.String())
	}

	if entry := s.getSingletonEntry(valueType); entry != nil {
		entry.value.Elem().Set(reflect.ValueOf(value))
		return
	}

	ptr := reflect.New(valueType)
	ptr.Elem().Set(reflect.ValueOf(value))

	s.singletons.Put(typeId(valueType), &singletonEntry{
		typ:     valueType,
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	})
	s.order = append(s.order, valueType)
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	entry, ok := s.singletons.Get(typeId(t))
	if !ok {
		return nil
	}
	return entry
}

// ReadSingleton points *out at the stored singleton of type T, where out is a **T.
// It reports false and leaves out untouched when no such singleton exists.
func (s *Storage) ReadSingleton(out any) bool {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	entry := s.getSingletonEntry(rv.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	rv.Elem().Set(entry.value)
	return true
}

// RemoveSingleton drops the singleton of the given type. Cached Singleton
// accessors notice on their next Get.
func (s *Storage) RemoveSingleton(t reflect.Type) bool {
	id := typeId(t)
	if _, ok := s.singletons.Get(id); !ok {
		return false
	}
	s.singletons.Del(id)

	for i, typ := range s.order {
		if typ == t {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// SingletonCount is the number of stored singletons
func (s *Storage) SingletonCount() int {
	return s.singletons.Len()
}

// EachSingleton calls fn with every singleton in insertion order. The value
// passed is a pointer to the stored data.
func (s *Storage) EachSingleton(fn func(t reflect.Type, value any)) {
	for _, t := range s.order {
		entry := s.getSingletonEntry(t)
		if entry == nil {
			continue
		}
		fn(t, entry.value.Interface())
	}
}

// StorageStats summarizes the storage contents for debug displays
type StorageStats struct {
	SingletonCount int
	SingletonTypes []string
}

// CollectStats gathers a snapshot of the storage contents
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		SingletonCount: s.SingletonCount(),
		SingletonTypes: make([]string, 0, len(s.order)),
	}
	for _, t := range s.order {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	return stats
}

// iface mirrors the runtime layout of an interface value
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// typeId is the address of the runtime type descriptor behind t
func typeId(t reflect.Type) int {
	ptr := (*iface)(unsafe.Pointer(&t)).data
	return int(uintptr(ptr))
}

// ReadSingletonOf returns the stored singleton of type T, or nil
func ReadSingletonOf[T any](s *Storage) *T {
	entry := s.getSingletonEntry(reflect.TypeFor[T]())
	if entry == nil {
		return nil
	}
	return (*T)(entry.dataPtr)
}
