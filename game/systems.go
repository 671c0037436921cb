package game

import (
	"log/slog"

	"github.com/plus3/cometlane/ecs"
)

// InputSystem applies the lane changes and restart requests buffered in the
// Input singleton.
type InputSystem struct {
	Ship   ecs.Query[shipView]
	Comet  ecs.Query[cometView]
	Input  ecs.Singleton[Input]
	State  ecs.Singleton[GameState]
	Random ecs.Singleton[Random]
	Config Config
	Log    *slog.Logger
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	in := s.Input.Get()
	pressed := *in
	*in = Input{}

	ship, ok := s.Ship.First()
	if !ok {
		return
	}
	state := s.State.Get()

	if state.GameOver {
		if pressed.Restart && !s.Config.ExitOnGameOver {
			comet, ok := s.Comet.First()
			if !ok {
				return
			}
			state.GameOver = false
			MoveSpaceship(s.Config, ship.Spaceship, ship.Sprite, LaneCount/2)
			ResetComet(s.Config, comet.Comet, comet.Sprite, s.Random.Get().Rand)
			s.Log.Info("restart")
		}
		return
	}

	if pressed.Left && ship.Lane > 0 {
		MoveSpaceship(s.Config, ship.Spaceship, ship.Sprite, ship.Lane-1)
		s.Log.Debug("ship moved", "lane", ship.Lane)
	}
	if pressed.Right && ship.Lane < LaneCount-1 {
		MoveSpaceship(s.Config, ship.Spaceship, ship.Sprite, ship.Lane+1)
		s.Log.Debug("ship moved", "lane", ship.Lane)
	}
}

// CometSystem runs UpdateGame once per frame until the game is over.
type CometSystem struct {
	Ship   ecs.Query[shipView]
	Comet  ecs.Query[cometView]
	State  ecs.Singleton[GameState]
	Random ecs.Singleton[Random]
	Config Config
	Log    *slog.Logger
}

func (s *CometSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if state.GameOver {
		return
	}

	ship, ok := s.Ship.First()
	if !ok {
		return
	}
	comet, ok := s.Comet.First()
	if !ok {
		return
	}

	state.Frame++
	state.Elapsed += frame.DeltaTime

	out := UpdateGame(s.Config, state, ship, comet, s.Random.Get().Rand, frame.DeltaTime)
	if out.Collided {
		s.Log.Info("Game Over!", "lane", ship.Lane, "frame", state.Frame)
	}
	if out.Reset {
		s.Log.Debug("comet reset", "lane", comet.Lane)
	}
}

// TraceSystem logs both sprite positions every frame at debug level.
type TraceSystem struct {
	Ship  ecs.Query[shipView]
	Comet ecs.Query[cometView]
	Log   *slog.Logger
}

func (s *TraceSystem) Execute(frame *ecs.UpdateFrame) {
	ship, ok := s.Ship.First()
	if !ok {
		return
	}
	comet, ok := s.Comet.First()
	if !ok {
		return
	}

	s.Log.Debug("positions",
		"tick", frame.Tick,
		slog.Group("ship", "x", ship.Position.X(), "y", ship.Position.Y()),
		slog.Group("comet", "x", comet.Position.X(), "y", comet.Position.Y()),
	)
}
