package render

import (
	"math"

	mgl "github.com/go-gl/mathgl/mgl32"
)

const (
	FieldOfView = 45 // degrees
	ZNear       = 0.1
	ZFar        = 100.0
)

// Perspective is the projection all demos use.
func Perspective(aspect float32) mgl.Mat4 {
	return mgl.Perspective(mgl.DegToRad(FieldOfView), aspect, ZNear, ZFar)
}

// ModelView moves the model to depth z and then rotates it about the X, Y
// and Z axes by the given fractions of a full turn.
func ModelView(z float32, xRatio, yRatio, zRatio float64) mgl.Mat4 {
	m := mgl.Translate3D(0, 0, z)
	if xRatio != 0 {
		m = m.Mul4(mgl.HomogRotate3DX(turn(xRatio)))
	}
	if yRatio != 0 {
		m = m.Mul4(mgl.HomogRotate3DY(turn(yRatio)))
	}
	if zRatio != 0 {
		m = m.Mul4(mgl.HomogRotate3DZ(turn(zRatio)))
	}
	return m
}

func turn(ratio float64) float32 {
	return float32(2 * math.Pi * ratio)
}
