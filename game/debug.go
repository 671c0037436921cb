package game

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/cometlane/ecs/debugui"
)

// spawnStateWindow adds an ImGui window showing the ship, comet and
// game-over flag.
func spawnStateWindow(w *World) {
	w.Storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Comet Lane")
			defer imgui.End()

			state := w.State()
			ship, shipSprite := w.Ship()
			comet, cometSprite := w.Comet()
			if ship == nil || comet == nil {
				imgui.Text("world not populated")
				return
			}

			imgui.Text(fmt.Sprintf("Frame: %d (%.1fs)", state.Frame, state.Elapsed))
			imgui.Text(fmt.Sprintf("Ship: lane %d at (%.1f, %.1f)", ship.Lane, shipSprite.Position.X(), shipSprite.Position.Y()))
			imgui.Text(fmt.Sprintf("Comet: lane %d at (%.1f, %.1f)", comet.Lane, cometSprite.Position.X(), cometSprite.Position.Y()))
			imgui.Text(fmt.Sprintf("Game over: %t", state.GameOver))
		},
	})
}
