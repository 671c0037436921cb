package game

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/cometlane/ecs"
	"golang.org/x/image/colornames"
)

//go:embed shaders/sprite.kage
var spriteShaderSource []byte

//go:embed textures/*.png
var builtinTextures embed.FS

const (
	builtinShipTexture  = "textures/spaceship.png"
	builtinCometTexture = "textures/asteroid.png"
)

// SetupShader compiles the sprite shader.
func SetupShader() (*ebiten.Shader, error) {
	shader, err := ebiten.NewShader(spriteShaderSource)
	if err != nil {
		return nil, fmt.Errorf("compile sprite shader: %w", err)
	}
	return shader, nil
}

// DecodeTexture reads and decodes the image name from fsys.
func DecodeTexture(fsys fs.FS, name string) (image.Image, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read texture %s: %w", name, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", name, err)
	}
	return img, nil
}

// textureSource resolves a configured texture path. An empty path selects
// the built-in texture.
func textureSource(path, builtin string) (fs.FS, string) {
	if path == "" {
		return builtinTextures, builtin
	}
	return os.DirFS(filepath.Dir(path)), filepath.Base(path)
}

// LoadTexture uploads the image at path (or the built-in texture when path
// is empty) to the GPU.
func LoadTexture(path, builtin string) (*ebiten.Image, error) {
	fsys, name := textureSource(path, builtin)
	img, err := DecodeTexture(fsys, name)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// loadTextureOrPlaceholder logs a failed load and substitutes a flat square
// so the sprite still draws.
func loadTextureOrPlaceholder(log *slog.Logger, path, builtin string, fallback color.Color) *ebiten.Image {
	tex, err := LoadTexture(path, builtin)
	if err == nil {
		return tex
	}
	log.Warn("failed to load texture", "path", path, "err", err)
	return ebiten.NewImageFromImage(PlaceholderImage(64, fallback))
}

// PlaceholderImage is a size×size square filled with c.
func PlaceholderImage(size int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// spriteVertices converts a projected quad into ebiten vertices sampling the
// whole of a texture of the given size.
func spriteVertices(quad [4]QuadVertex, texW, texH float32) []ebiten.Vertex {
	vertices := make([]ebiten.Vertex, len(quad))
	for i, q := range quad {
		vertices[i] = ebiten.Vertex{
			DstX:   q.Dst.X(),
			DstY:   q.Dst.Y(),
			SrcX:   q.Tex.X() * texW,
			SrcY:   q.Tex.Y() * texH,
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}
	return vertices
}

// DrawSprite draws spr onto dst through shader. A nil shader falls back to
// ebiten's built-in textured draw.
func DrawSprite(dst *ebiten.Image, spr *Sprite, shader *ebiten.Shader, projection mgl32.Mat4) {
	if spr.Texture == nil {
		return
	}

	bounds := dst.Bounds()
	quad := spr.ScreenQuad(projection, float32(bounds.Dx()), float32(bounds.Dy()))
	tb := spr.Texture.Bounds()
	vertices := spriteVertices(quad, float32(tb.Dx()), float32(tb.Dy()))

	if shader == nil {
		dst.DrawTriangles(vertices, quadIndices, spr.Texture, &ebiten.DrawTrianglesOptions{})
		return
	}

	op := &ebiten.DrawTrianglesShaderOptions{}
	op.Images[0] = spr.Texture
	op.Uniforms = map[string]any{
		"OffsetTex": []float32{spr.TexOffset.X(), spr.TexOffset.Y()},
	}
	dst.DrawTrianglesShader(vertices, quadIndices, shader, op)
}

// RenderSystem clears the screen and draws the ship, then the comet.
type RenderSystem struct {
	Screen ecs.Singleton[Screen]
	State  ecs.Singleton[GameState]
	Ship   ecs.Query[shipView]
	Comet  ecs.Query[cometView]

	Shader     *ebiten.Shader
	Projection mgl32.Mat4
	// RestartHint is shown over the last frame once the game is over.
	RestartHint string
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	if screen == nil || screen.Image == nil {
		return
	}

	screen.Image.Fill(colornames.Black)

	for ship := range s.Ship.Iter() {
		DrawSprite(screen.Image, ship.Sprite, s.Shader, s.Projection)
	}
	for comet := range s.Comet.Iter() {
		DrawSprite(screen.Image, comet.Sprite, s.Shader, s.Projection)
	}

	if state := s.State.Get(); state != nil && state.GameOver && s.RestartHint != "" {
		ebitenutil.DebugPrintAt(screen.Image, s.RestartHint, 8, 8)
	}
}
