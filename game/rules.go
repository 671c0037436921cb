package game

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// MoveSpaceship puts the ship in lane and centres it horizontally there.
func MoveSpaceship(cfg Config, ship *Spaceship, sprite *Sprite, lane int) {
	ship.Lane = lane
	sprite.Position[0] = cfg.LaneCenterX(lane)
}

// ResetComet drops the comet back in above the top edge of a random lane.
// Its texture is kept.
func ResetComet(cfg Config, comet *Comet, sprite *Sprite, rng *rand.Rand) {
	lane := rng.IntN(LaneCount)
	comet.Lane = lane
	sprite.SetupSprite(
		sprite.Texture,
		mgl32.Vec3{cfg.LaneCenterX(lane), float32(cfg.Height) + cfg.CometMargin, 0},
		mgl32.Vec3{cfg.SpriteSize, cfg.SpriteSize, 1},
	)
}

// Collides reports whether the comet hits the ship: both in the same lane
// and the comet's y strictly inside the window
// (ship.y - comet.height, ship.y + ship.height).
func Collides(ship Spaceship, shipSprite Sprite, comet Comet, cometSprite Sprite) bool {
	y := cometSprite.Position.Y()
	return y < shipSprite.Position.Y()+shipSprite.Dimensions.Y() &&
		y > shipSprite.Position.Y()-cometSprite.Dimensions.Y() &&
		comet.Lane == ship.Lane
}

// Outcome reports what one UpdateGame step did.
type Outcome struct {
	Collided bool
	Reset    bool
}

// UpdateGame advances the comet by dt seconds, tests for a collision and
// recycles the comet once it has left the bottom of the screen. A collision
// sets state.GameOver; the reset check still runs in the same step.
func UpdateGame(cfg Config, state *GameState, ship shipView, comet cometView, rng *rand.Rand, dt float64) Outcome {
	var out Outcome

	comet.Sprite.Position[1] -= cfg.CometSpeed * float32(dt)

	if Collides(*ship.Spaceship, *ship.Sprite, *comet.Comet, *comet.Sprite) {
		state.GameOver = true
		out.Collided = true
	}

	if comet.Sprite.Position.Y() < -cfg.CometMargin {
		ResetComet(cfg, comet.Comet, comet.Sprite, rng)
		out.Reset = true
	}

	return out
}
