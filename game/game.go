package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/cometlane/ecs"
	"github.com/plus3/cometlane/ecs/debugui"
	debugui_ebiten "github.com/plus3/cometlane/ecs/debugui/ebiten"
	"golang.org/x/image/colornames"
)

// Game implements ebiten.Game on top of a World. Update feeds keyboard
// presses into the world and steps it; Draw runs a separate render
// scheduler against the same storage.
type Game struct {
	world  *World
	render *ecs.Scheduler
	screen *ecs.Singleton[Screen]
	config Config
	log    *slog.Logger

	imgui      *ecs.Singleton[debugui_ebiten.ImguiBackend]
	imguiInput *ecs.Singleton[debugui.ImguiInputState]
}

// NewGame loads the shader and both textures and builds the world. Asset
// failures are logged and degrade rendering; they do not stop the game.
func NewGame(cfg Config, log *slog.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	shader, err := SetupShader()
	if err != nil {
		log.Error("shader setup failed, using fixed-function draw", "err", err)
	}

	shipTexture := loadTextureOrPlaceholder(log, cfg.ShipTexture, builtinShipTexture, colornames.Lightsteelblue)
	cometTexture := loadTextureOrPlaceholder(log, cfg.CometTexture, builtinCometTexture, colornames.Sienna)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Debug("seeding lane picker", "seed", seed)
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))

	world := NewWorld(cfg, rng, log, shipTexture, cometTexture)

	render := ecs.NewScheduler(world.Storage)
	renderSystem := &RenderSystem{
		Shader:     shader,
		Projection: Projection(float32(cfg.Width), float32(cfg.Height)),
	}
	if !cfg.ExitOnGameOver {
		renderSystem.RestartHint = "GAME OVER - press R to restart"
	}
	render.Register(renderSystem)

	g := &Game{
		world:  world,
		render: render,
		screen: ecs.NewSingleton(world.Storage, Screen{}),
		config: cfg,
		log:    log,
	}

	if cfg.DebugUI {
		g.imgui = ecs.NewSingleton(world.Storage, debugui_ebiten.NewImguiBackend(cfg.Title, g.windowWidth(), g.windowHeight()))
		debugui.Spawn(world.Storage, world.Scheduler, render)
		world.Scheduler.Register(&debugui.ImguiSystem{})
		spawnStateWindow(world)
		g.imguiInput = ecs.NewSingleton[debugui.ImguiInputState](world.Storage)
	}

	return g, nil
}

func (g *Game) windowWidth() int {
	return int(float64(g.config.Width) * g.config.Scale)
}

func (g *Game) windowHeight() int {
	return int(float64(g.config.Height) * g.config.Scale)
}

// World exposes the simulation.
func (g *Game) World() *World {
	return g.world
}

// Run opens the window and blocks until the game ends.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.windowWidth(), g.windowHeight())
	ebiten.SetWindowTitle(g.config.Title)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.imgui != nil {
		g.imgui.Get().BeginFrame()
		defer g.imgui.Get().EndFrame()
	}

	if !g.keyboardCaptured() {
		g.world.Press(Input{
			Left:    inpututil.IsKeyJustPressed(ebiten.KeyLeft),
			Right:   inpututil.IsKeyJustPressed(ebiten.KeyRight),
			Restart: inpututil.IsKeyJustPressed(ebiten.KeyR),
		})
	}

	g.world.Step(1.0 / float64(ebiten.TPS()))

	if g.world.State().GameOver && g.config.ExitOnGameOver {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) keyboardCaptured() bool {
	if g.imguiInput == nil {
		return false
	}
	state := g.imguiInput.Get()
	return state != nil && state.WantCaptureKeyboard
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Get().Image = screen
	g.render.Once(0)

	if g.imgui != nil {
		g.imgui.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Get().Layout(g.config.Width, g.config.Height)
	}
	return g.config.Width, g.config.Height
}
