package game

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// Spaceship marks the player sprite and records its lane
// (0 left, 1 middle, 2 right).
type Spaceship struct {
	Lane int
}

// Comet marks the falling obstacle and records the lane it falls in.
type Comet struct {
	Lane int
}

// GameState is the world singleton for the game-over flag.
type GameState struct {
	GameOver bool
	Frame    uint64
	Elapsed  float64
}

// Input holds the keys pressed since the previous update. InputSystem
// consumes and clears it.
type Input struct {
	Left    bool
	Right   bool
	Restart bool
}

// Random is the world's lane picker.
type Random struct {
	*rand.Rand
}

// Screen is the render target for the current Draw call.
type Screen struct {
	Image *ebiten.Image
}

type shipView struct {
	*Spaceship
	*Sprite
}

type cometView struct {
	*Comet
	*Sprite
}
