package debugui

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tuning struct {
	BaseSpeed int
	Retries   uint8
	Scale     float32
	Paused    bool
	Label     string
	Origin    *point
	Trail     []point
	hidden    int
}

type point struct {
	X, Y int
}

type opaque struct {
	cells []point
}

func TestReflectionCacheGetFields(t *testing.T) {
	cache := NewReflectionCache()

	fields := cache.GetFields(reflect.TypeFor[tuning]())
	require.Len(t, fields, 7)

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"BaseSpeed", "Retries", "Scale", "Paused", "Label", "Origin", "Trail"}, names)

	origin := fields[5]
	assert.True(t, origin.IsPointer)
	assert.True(t, origin.IsStruct)
	assert.Equal(t, reflect.TypeFor[point](), origin.Type)
	assert.True(t, fields[6].IsSlice)

	again := cache.GetFields(reflect.TypeFor[tuning]())
	assert.Same(t, &fields[0], &again[0])

	assert.Empty(t, cache.GetFields(reflect.TypeFor[int]()))
	assert.Empty(t, cache.GetFields(reflect.TypeFor[opaque]()))
}

func TestAssign(t *testing.T) {
	v := &tuning{}
	val := reflect.ValueOf(v).Elem()

	assert.True(t, Assign(val.FieldByName("BaseSpeed"), int64(42)))
	assert.Equal(t, 42, v.BaseSpeed)

	assert.True(t, Assign(val.FieldByName("Retries"), int64(7)))
	assert.Equal(t, uint8(7), v.Retries)
	assert.False(t, Assign(val.FieldByName("Retries"), int64(-1)))
	assert.False(t, Assign(val.FieldByName("Retries"), int64(300)))
	assert.Equal(t, uint8(7), v.Retries)

	assert.True(t, Assign(val.FieldByName("Scale"), 1.5))
	assert.InDelta(t, 1.5, v.Scale, 1e-6)

	assert.True(t, Assign(val.FieldByName("Paused"), true))
	assert.True(t, v.Paused)

	assert.True(t, Assign(val.FieldByName("Label"), "fast"))
	assert.Equal(t, "fast", v.Label)

	assert.False(t, Assign(val.FieldByName("Label"), int64(1)), "kind mismatch")
	assert.False(t, Assign(val.FieldByName("hidden"), int64(1)), "unexported")
	assert.False(t, Assign(reflect.ValueOf(tuning{}).Field(0), int64(1)), "not addressable")
}

type named int

func (n named) String() string { return "named" }

func TestFormatValue(t *testing.T) {
	var err error
	cases := []struct {
		name string
		val  reflect.Value
		want string
	}{
		{"invalid", reflect.Value{}, "<invalid>"},
		{"slice", reflect.ValueOf([]point{{1, 2}, {3, 4}}), "[2 items]"},
		{"map", reflect.ValueOf(map[string]int{"a": 1}), "map[1 items]"},
		{"nil pointer", reflect.ValueOf((*point)(nil)), "nil"},
		{"nil error", reflect.ValueOf(&err).Elem(), "nil"},
		{"error", reflect.ValueOf(errors.New("boom")), "boom"},
		{"stringer", reflect.ValueOf(named(3)), "named"},
		{"struct", reflect.ValueOf(point{1, 2}), "{1 2}"},
		{"opaque", reflect.ValueOf(opaque{}), "debugui.opaque (opaque)"},
		{"func", reflect.ValueOf(func() {}), "func()"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatValue(tc.val))
		})
	}
}

func TestSchedulerStatsWindowRecord(t *testing.T) {
	w := NewSchedulerStatsWindow(4)

	assert.InDelta(t, 2.5, w.Record(0.010), 1e-4)
	assert.InDelta(t, 5.0, w.Record(0.010), 1e-4)
	w.Record(0.010)
	w.Record(0.010)
	assert.InDelta(t, 10.0, w.Record(0.010), 1e-4, "history wraps")
}
