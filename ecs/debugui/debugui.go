// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// Windows are registered as render items in a singleton and drawn by ImguiSystem each frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/snek/ecs"
)

// ImguiItem holds a Dear ImGui render function.
type ImguiItem struct {
	Name   string
	Render func()
}

// ImguiItems is the singleton list of everything drawn each frame.
type ImguiItems struct {
	Items []ImguiItem
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton.
// Check it before handling game input so typing into a widget does not steer.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// AddItem registers a render function on storage
func AddItem(storage *ecs.Storage, item ImguiItem) {
	items := ecs.NewSingleton[ImguiItems](storage)
	items.Get().Items = append(items.Get().Items, item)
}

// ImguiSystem defers every registered render function and refreshes the
// ImguiInputState singleton.
type ImguiSystem struct {
	Items      ecs.Singleton[ImguiItems]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	items := i.Items.Get()
	if items == nil {
		return
	}
	for _, item := range items.Items {
		frame.Commands.Defer(item.Render)
	}
}
