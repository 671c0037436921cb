package game

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBuiltinTexturesDecode(t *testing.T) {
	for _, name := range []string{builtinShipTexture, builtinCometTexture} {
		t.Run(name, func(t *testing.T) {
			img, err := DecodeTexture(builtinTextures, name)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())
		})
	}
}

func TestDecodeTexture(t *testing.T) {
	rgb := image.NewRGBA(image.Rect(0, 0, 4, 2))
	rgb.Set(1, 1, colornames.Red)

	fsys := fstest.MapFS{
		"ship.png":   {Data: encodePNG(t, rgb)},
		"broken.png": {Data: []byte("not an image")},
	}

	img, err := DecodeTexture(fsys, "ship.png")
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	r, _, _, a := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)

	_, err = DecodeTexture(fsys, "missing.png")
	assert.ErrorContains(t, err, "read texture missing.png")

	_, err = DecodeTexture(fsys, "broken.png")
	assert.ErrorContains(t, err, "decode texture broken.png")
}

func TestTextureSource(t *testing.T) {
	fsys, name := textureSource("", builtinShipTexture)
	assert.Equal(t, builtinShipTexture, name)
	_, err := DecodeTexture(fsys, name)
	assert.NoError(t, err)

	_, name = textureSource("../textures/spaceship.png", builtinShipTexture)
	assert.Equal(t, "spaceship.png", name)
}

func TestPlaceholderImage(t *testing.T) {
	img := PlaceholderImage(8, colornames.Sienna)

	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
	assert.Equal(t, color.RGBAModel.Convert(colornames.Sienna), img.At(7, 7))
}

func TestSpriteVertices(t *testing.T) {
	var s Sprite
	s.SetupSprite(nil, mgl32.Vec3{400, 300, 0}, mgl32.Vec3{100, 100, 1})

	vertices := spriteVertices(s.ScreenQuad(Projection(800, 600), 800, 600), 64, 32)
	require.Len(t, vertices, 4)

	assert.InDelta(t, 350.0, vertices[0].DstX, 1e-3)
	assert.InDelta(t, 250.0, vertices[0].DstY, 1e-3)
	assert.Equal(t, float32(0), vertices[0].SrcX)
	assert.Equal(t, float32(0), vertices[0].SrcY)

	assert.InDelta(t, 450.0, vertices[3].DstX, 1e-3)
	assert.InDelta(t, 350.0, vertices[3].DstY, 1e-3)
	assert.Equal(t, float32(64), vertices[3].SrcX)
	assert.Equal(t, float32(32), vertices[3].SrcY)

	for _, v := range vertices {
		assert.Equal(t, float32(1), v.ColorA)
	}
	assert.Equal(t, []uint16{0, 1, 2, 1, 2, 3}, quadIndices)
}
