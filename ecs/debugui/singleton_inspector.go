package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/snek/ecs"
)

// SingletonInspector lists every singleton in a storage and lets numeric,
// boolean and string fields be edited in place.
type SingletonInspector struct {
	cache *ReflectionCache
}

func NewSingletonInspector() *SingletonInspector {
	return &SingletonInspector{cache: globalReflectionCache}
}

func (si *SingletonInspector) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Singletons", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Count: %d", storage.SingletonCount()))
	imgui.Separator()

	storage.EachSingleton(func(t reflect.Type, value any) {
		if imgui.TreeNodeStr(t.String()) {
			si.renderValue(t.String(), reflect.ValueOf(value).Elem())
			imgui.TreePop()
		}
	})

	imgui.End()
}

func (si *SingletonInspector) renderValue(id string, val reflect.Value) {
	fields := si.cache.GetFields(val.Type())
	if len(fields) == 0 {
		imgui.Text(FormatValue(val))
		return
	}
	for _, field := range fields {
		fieldVal := val.Field(field.Index)
		if field.IsPointer && !fieldVal.IsNil() {
			fieldVal = fieldVal.Elem()
		}
		si.renderField(id+"."+field.Name, field, fieldVal)
	}
}

func (si *SingletonInspector) renderField(id string, field FieldInfo, val reflect.Value) {
	name := field.Name
	if field.IsPointer && val.Kind() == reflect.Ptr && val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var v int32
		if val.CanInt() {
			v = int32(val.Int())
		} else {
			v = int32(val.Uint())
		}
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt("##"+id, &v) {
			Assign(val, int64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat("##"+id, &v) {
			Assign(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+"##"+id, &v) {
			Assign(val, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			si.renderValue(id, val)
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %s", name, FormatValue(val)))
	}
}

// Assign stores v into dst when dst is settable and v fits its kind.
// Negative values are rejected for unsigned fields and out of range values
// for any sized integer.
func Assign(dst reflect.Value, v any) bool {
	if !dst.CanSet() {
		return false
	}

	switch x := v.(type) {
	case int64:
		switch {
		case dst.CanInt():
			if dst.OverflowInt(x) {
				return false
			}
			dst.SetInt(x)
		case dst.CanUint():
			if x < 0 || dst.OverflowUint(uint64(x)) {
				return false
			}
			dst.SetUint(uint64(x))
		default:
			return false
		}
	case float64:
		if !dst.CanFloat() || dst.OverflowFloat(x) {
			return false
		}
		dst.SetFloat(x)
	case bool:
		if dst.Kind() != reflect.Bool {
			return false
		}
		dst.SetBool(x)
	case string:
		if dst.Kind() != reflect.String {
			return false
		}
		dst.SetString(x)
	default:
		return false
	}
	return true
}

// FormatValue renders values the inspector cannot edit
func FormatValue(val reflect.Value) string {
	if !val.IsValid() {
		return "<invalid>"
	}
	switch val.Kind() {
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("[%d items]", val.Len())
	case reflect.Map:
		return fmt.Sprintf("map[%d items]", val.Len())
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return val.Type().String()
	case reflect.Interface, reflect.Ptr:
		if val.IsNil() {
			return "nil"
		}
	case reflect.Struct:
		if val.NumField() > 0 && len(globalReflectionCache.GetFields(val.Type())) == 0 {
			return fmt.Sprintf("%s (opaque)", val.Type())
		}
	}
	if s, ok := val.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", val.Interface())
}
