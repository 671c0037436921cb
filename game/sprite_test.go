package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec2(t *testing.T, want, got mgl32.Vec2) {
	t.Helper()
	assert.InDelta(t, want.X(), got.X(), 1e-3, "x of %v", got)
	assert.InDelta(t, want.Y(), got.Y(), 1e-3, "y of %v", got)
}

func TestSetupSpriteResetsAngle(t *testing.T) {
	s := Sprite{Angle: 45}
	s.SetupSprite(nil, mgl32.Vec3{1, 2, 0}, mgl32.Vec3{3, 4, 1})

	assert.Zero(t, s.Angle)
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, s.Position)
	assert.Equal(t, mgl32.Vec3{3, 4, 1}, s.Dimensions)
}

func TestScreenQuadAxisAligned(t *testing.T) {
	var s Sprite
	s.SetupSprite(nil, mgl32.Vec3{400, 50, 0}, mgl32.Vec3{50, 50, 1})

	quad := s.ScreenQuad(Projection(800, 600), 800, 600)

	// y up in the world, y down on screen: world y 25..75 is screen 525..575
	assertVec2(t, mgl32.Vec2{375, 525}, quad[0].Dst)
	assertVec2(t, mgl32.Vec2{425, 525}, quad[1].Dst)
	assertVec2(t, mgl32.Vec2{375, 575}, quad[2].Dst)
	assertVec2(t, mgl32.Vec2{425, 575}, quad[3].Dst)

	// texture rows are flipped so the image's top row sits at the quad's top
	assert.Equal(t, mgl32.Vec2{0, 0}, quad[0].Tex)
	assert.Equal(t, mgl32.Vec2{1, 0}, quad[1].Tex)
	assert.Equal(t, mgl32.Vec2{0, 1}, quad[2].Tex)
	assert.Equal(t, mgl32.Vec2{1, 1}, quad[3].Tex)
}

func TestScreenQuadScalesToTarget(t *testing.T) {
	var s Sprite
	s.SetupSprite(nil, mgl32.Vec3{400, 300, 0}, mgl32.Vec3{800, 600, 1})

	// a full-screen sprite rendered to a target twice the logical size
	quad := s.ScreenQuad(Projection(800, 600), 1600, 1200)

	assertVec2(t, mgl32.Vec2{0, 0}, quad[0].Dst)
	assertVec2(t, mgl32.Vec2{1600, 1200}, quad[3].Dst)
}

func TestScreenQuadRotated(t *testing.T) {
	var s Sprite
	s.SetupSprite(nil, mgl32.Vec3{400, 300, 0}, mgl32.Vec3{100, 50, 1})
	s.Angle = 90

	quad := s.ScreenQuad(Projection(800, 600), 800, 600)

	// top-left corner (-50, 25) rotates counter-clockwise to (-25, -50)
	assertVec2(t, mgl32.Vec2{375, 350}, quad[0].Dst)
	// bottom-right corner (50, -25) rotates to (25, 50)
	assertVec2(t, mgl32.Vec2{425, 250}, quad[3].Dst)
}

func TestModelTranslatesCentre(t *testing.T) {
	var s Sprite
	s.SetupSprite(nil, mgl32.Vec3{10, 20, 0}, mgl32.Vec3{5, 5, 1})

	centre := s.Model().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.Equal(t, mgl32.Vec4{10, 20, 0, 1}, centre)
}
