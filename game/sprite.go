package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is a textured quad. Position is the quad centre in world
// coordinates (origin bottom-left, y up); Dimensions scales the unit quad.
type Sprite struct {
	Texture    *ebiten.Image
	Position   mgl32.Vec3
	Dimensions mgl32.Vec3
	// Angle is a rotation about the z axis, in degrees.
	Angle float32
	// TexOffset is added to every sampled texture position, in source pixels.
	TexOffset mgl32.Vec2
}

// SetupSprite (re)initialises the sprite in place and clears its rotation.
func (s *Sprite) SetupSprite(texture *ebiten.Image, pos, dim mgl32.Vec3) {
	s.Texture = texture
	s.Position = pos
	s.Dimensions = dim
	s.Angle = 0
}

// Model is translate · rotate · scale.
func (s *Sprite) Model() mgl32.Mat4 {
	return mgl32.Translate3D(s.Position.X(), s.Position.Y(), s.Position.Z()).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(s.Angle))).
		Mul4(mgl32.Scale3D(s.Dimensions.X(), s.Dimensions.Y(), s.Dimensions.Z()))
}

// quadCorners is the unit quad in triangle-strip order with its texture
// coordinates (s, t): top-left, top-right, bottom-left, bottom-right.
var quadCorners = [4]struct {
	pos mgl32.Vec4
	tex mgl32.Vec2
}{
	{mgl32.Vec4{-0.5, 0.5, 0, 1}, mgl32.Vec2{0, 1}},
	{mgl32.Vec4{0.5, 0.5, 0, 1}, mgl32.Vec2{1, 1}},
	{mgl32.Vec4{-0.5, -0.5, 0, 1}, mgl32.Vec2{0, 0}},
	{mgl32.Vec4{0.5, -0.5, 0, 1}, mgl32.Vec2{1, 0}},
}

// quadIndices turns the 4-vertex strip into two triangles.
var quadIndices = []uint16{0, 1, 2, 1, 2, 3}

// Projection maps world coordinates (0..width, 0..height) to clip space.
func Projection(width, height float32) mgl32.Mat4 {
	return mgl32.Ortho(0, width, 0, height, -1, 1)
}

// QuadVertex is one corner of a sprite after projection: a destination
// pixel on a width×height target (y down) and a texture coordinate with t
// already flipped so row 0 is the top of the image.
type QuadVertex struct {
	Dst mgl32.Vec2
	Tex mgl32.Vec2
}

// ScreenQuad runs the vertex stage: projection · model · corner, then
// clip space to target pixels.
func (s *Sprite) ScreenQuad(projection mgl32.Mat4, width, height float32) [4]QuadVertex {
	mvp := projection.Mul4(s.Model())

	var out [4]QuadVertex
	for i, corner := range quadCorners {
		clip := mvp.Mul4x1(corner.pos)
		ndc := clip.Vec3().Mul(1 / clip.W())
		out[i] = QuadVertex{
			Dst: mgl32.Vec2{(ndc.X() + 1) / 2 * width, (1 - ndc.Y()) / 2 * height},
			Tex: mgl32.Vec2{corner.tex.X(), 1 - corner.tex.Y()},
		}
	}
	return out
}
