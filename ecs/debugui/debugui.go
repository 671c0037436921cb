// Package debugui draws Dear ImGui debug windows from inside the ECS. Windows
// are ImguiItem entities; ImguiSystem queues their render functions so they
// run after the frame's systems have updated the world.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/cometlane/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState records whether ImGui wants the mouse or keyboard this
// frame. Game input handling should back off when a capture flag is set.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes ImguiInputState and defers every ImguiItem render.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Iter() {
		frame.Commands.Defer(item.ImguiItem.Render)
	}
}

// RegisterComponents registers the component types used by this package.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// Spawn adds the input-state singleton and a performance window for storage
// and the given schedulers.
func Spawn(storage *ecs.Storage, schedulers ...*ecs.Scheduler) {
	ecs.NewSingleton(storage, ImguiInputState{})

	stats := NewPerformanceStats(120)
	timer := NewFrameTimer()
	storage.Spawn(ImguiItem{
		Render: func() {
			stats.Render(storage, schedulers, timer.GetDeltaTime())
		},
	})
}
