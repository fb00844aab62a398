// Package viewer holds the display state of the image viewer. It has no
// windowing dependency so the key handling and matrix math can be tested.
package viewer

import "math"

// Action is one viewer command, normally bound to a key
type Action int

const (
	ScaleUp        Action = iota // Double both axes
	ScaleDown                    // Halve both axes
	ScaleXUp                     // Double x
	ScaleXDown                   // Halve x
	ScaleYUp                     // Double y
	ScaleYDown                   // Halve y
	TranslateRight               // Move +1 in x
	TranslateLeft                // Move -1 in x
	TranslateUp                  // Move +1 in y
	TranslateDown                // Move -1 in y
	ShearXUp                     // Shear x factor +1
	ShearXDown                   // Shear x factor -1
	ShearYUp                     // Shear y factor +1
	ShearYDown                   // Shear y factor -1
	RotateCCW                    // Rotate +RotationStep
	RotateCW                     // Rotate -RotationStep
	Reset                        // Restore the identity transform
)

// RotationStep is the rotation applied by one RotateCCW/RotateCW, in radians
const RotationStep = 0.5

// Transform is the accumulated 2-D view transform. Units are normalized
// device coordinates: the image quad spans [-1, 1] on both axes with y up.
type Transform struct {
	ScaleX, ScaleY         float64
	ShearX, ShearY         float64
	TranslateX, TranslateY float64
	Rotation               float64 // Radians, counterclockwise
}

// NewTransform returns the identity transform
func NewTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Apply updates the transform for one action
func (t *Transform) Apply(action Action) {
	switch action {
	case ScaleUp:
		t.ScaleX *= 2
		t.ScaleY *= 2
	case ScaleDown:
		t.ScaleX /= 2
		t.ScaleY /= 2
	case ScaleXUp:
		t.ScaleX *= 2
	case ScaleXDown:
		t.ScaleX /= 2
	case ScaleYUp:
		t.ScaleY *= 2
	case ScaleYDown:
		t.ScaleY /= 2
	case TranslateRight:
		t.TranslateX++
	case TranslateLeft:
		t.TranslateX--
	case TranslateUp:
		t.TranslateY++
	case TranslateDown:
		t.TranslateY--
	case ShearXUp:
		t.ShearX++
	case ShearXDown:
		t.ShearX--
	case ShearYUp:
		t.ShearY++
	case ShearYDown:
		t.ShearY--
	case RotateCCW:
		t.Rotation += RotationStep
	case RotateCW:
		t.Rotation -= RotationStep
	case Reset:
		*t = NewTransform()
	}
}

// Affine is a 2-D affine map: x' = A*x + B*y + TX, y' = C*x + D*y + TY
type Affine struct {
	A, B, TX float64
	C, D, TY float64
}

// Identity returns the identity map
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Then returns the map that applies m first and next second
func (m Affine) Then(next Affine) Affine {
	return Affine{
		A:  next.A*m.A + next.B*m.C,
		B:  next.A*m.B + next.B*m.D,
		TX: next.A*m.TX + next.B*m.TY + next.TX,
		C:  next.C*m.A + next.D*m.C,
		D:  next.C*m.B + next.D*m.D,
		TY: next.C*m.TX + next.D*m.TY + next.TY,
	}
}

// Apply maps a point
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.TX, m.C*x + m.D*y + m.TY
}

// Matrix returns scale · shear · translate · rotate, so a vertex is rotated
// first and scaled last. ShearX adds x to y; ShearY adds y to x.
func (t Transform) Matrix() Affine {
	sin, cos := math.Sincos(t.Rotation)
	rotate := Affine{A: cos, B: -sin, C: sin, D: cos}
	translate := Affine{A: 1, D: 1, TX: t.TranslateX, TY: t.TranslateY}
	shear := Affine{A: 1, B: t.ShearY, C: t.ShearX, D: 1}
	scale := Affine{A: t.ScaleX, D: t.ScaleY}

	return rotate.Then(translate).Then(shear).Then(scale)
}

// ImageToScreen maps image pixel coordinates (y down) of an imageW x imageH
// image through the transform onto a screenW x screenH window (y down)
func (t Transform) ImageToScreen(imageW, imageH, screenW, screenH int) Affine {
	toNDC := Affine{
		A: 2 / float64(imageW), TX: -1,
		D: -2 / float64(imageH), TY: 1,
	}
	toScreen := Affine{
		A: float64(screenW) / 2, TX: float64(screenW) / 2,
		D: -float64(screenH) / 2, TY: float64(screenH) / 2,
	}
	return toNDC.Then(t.Matrix()).Then(toScreen)
}
