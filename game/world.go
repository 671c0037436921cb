package game

import (
	"log/slog"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/cometlane/ecs"
	"github.com/plus3/cometlane/ecs/debugui"
)

// World is the game simulation without any window: the storage holding the
// ship, the comet and the singletons, plus the update scheduler.
type World struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	config Config
	ships  *ecs.View[shipView]
	comets *ecs.View[cometView]
	state  *ecs.Singleton[GameState]
	input  *ecs.Singleton[Input]
	random *ecs.Singleton[Random]
}

// NewWorld spawns the ship in the middle lane and the comet above a random
// lane. Textures may be nil, for example when running headless, and a nil
// rng is replaced by a randomly seeded one.
func NewWorld(cfg Config, rng *rand.Rand, log *slog.Logger, shipTexture, cometTexture *ebiten.Image) *World {
	if log == nil {
		log = slog.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Spaceship](registry)
	ecs.RegisterComponent[Comet](registry)
	ecs.RegisterComponent[Sprite](registry)
	debugui.RegisterComponents(registry)

	storage := ecs.NewStorage(registry)

	w := &World{
		Storage: storage,
		config:  cfg,
		ships:   ecs.NewView[shipView](storage),
		comets:  ecs.NewView[cometView](storage),
		state:   ecs.NewSingleton(storage, GameState{}),
		input:   ecs.NewSingleton(storage, Input{}),
		random:  ecs.NewSingleton(storage, Random{Rand: rng}),
	}

	var shipSprite Sprite
	shipSprite.SetupSprite(shipTexture,
		mgl32.Vec3{float32(cfg.Width) / 2, cfg.ShipY, 0},
		mgl32.Vec3{cfg.SpriteSize, cfg.SpriteSize, 1},
	)
	ship := Spaceship{}
	MoveSpaceship(cfg, &ship, &shipSprite, LaneCount/2)
	storage.Spawn(ship, shipSprite)

	// the comet keeps its texture across resets, so set it first
	cometSprite := Sprite{Texture: cometTexture}
	comet := Comet{}
	ResetComet(cfg, &comet, &cometSprite, rng)
	storage.Spawn(comet, cometSprite)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&InputSystem{Config: cfg, Log: log})
	scheduler.Register(&CometSystem{Config: cfg, Log: log})
	scheduler.Register(&TraceSystem{Log: log})
	w.Scheduler = scheduler

	return w
}

// Step runs one update of dt seconds.
func (w *World) Step(dt float64) {
	w.Scheduler.Once(dt)
}

// Press buffers key presses for the next Step. Presses accumulate until
// consumed.
func (w *World) Press(in Input) {
	buf := w.input.Get()
	buf.Left = buf.Left || in.Left
	buf.Right = buf.Right || in.Right
	buf.Restart = buf.Restart || in.Restart
}

// State returns the game-state singleton.
func (w *World) State() *GameState {
	return w.state.Get()
}

// Config returns the configuration the world was built with.
func (w *World) Config() Config {
	return w.config
}

// Ship returns the player's lane marker and sprite.
func (w *World) Ship() (*Spaceship, *Sprite) {
	for v := range w.ships.Iter() {
		return v.Spaceship, v.Sprite
	}
	return nil, nil
}

// Comet returns the obstacle's lane marker and sprite.
func (w *World) Comet() (*Comet, *Sprite) {
	for v := range w.comets.Iter() {
		return v.Comet, v.Sprite
	}
	return nil, nil
}

// MoveSpaceship moves the ship to lane directly, bypassing input and the
// lane bounds check.
func (w *World) MoveSpaceship(lane int) {
	ship, sprite := w.Ship()
	MoveSpaceship(w.config, ship, sprite, lane)
}

// ResetComet re-spawns the comet above a random lane.
func (w *World) ResetComet() {
	comet, sprite := w.Comet()
	ResetComet(w.config, comet, sprite, w.random.Get().Rand)
}
