package viz

import (
	"math"

	"github.com/san-kum/spheremd/internal/geom"
)

// Camera rotates the sphere and projects points onto the canvas.
// Projection is orthographic; the sphere always fills most of the
// shorter canvas dimension, scaled by Zoom.
type Camera struct {
	RotX, RotY float64
	Zoom       float64
}

func NewCamera() *Camera {
	return &Camera{Zoom: 1.0}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(4, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.25, c.Zoom/1.2) }

func (c *Camera) rotate(p geom.Vec3) geom.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p
}

// Project maps a point to sub-pixel canvas coordinates. The returned
// depth is the rotated Z; positive means the point faces the viewer.
func (c *Camera) Project(p geom.Vec3, canvas *Canvas) (x, y int, depth float64) {
	rot := c.rotate(p)
	sw, sh := canvas.Width*2, canvas.Height*4
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	scale := c.Zoom * minDim / 2.4
	x = int(rot.X*scale) + sw/2
	y = int(-rot.Y*scale) + sh/2
	return x, y, rot.Z
}

// DrawSphere draws the outline plus equator and prime meridian as
// orientation cues. Hidden arc segments (depth < 0) are skipped.
func (c *Camera) DrawSphere(canvas *Canvas) {
	const segments = 90

	// Outline circle is rotation-invariant, draw it directly.
	sw, sh := canvas.Width*2, canvas.Height*4
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	radius := c.Zoom * minDim / 2.4
	for i := 0; i < segments; i++ {
		a0 := 2 * math.Pi * float64(i) / segments
		a1 := 2 * math.Pi * float64(i+1) / segments
		canvas.Line(
			int(radius*math.Cos(a0))+sw/2, int(radius*math.Sin(a0))+sh/2,
			int(radius*math.Cos(a1))+sw/2, int(radius*math.Sin(a1))+sh/2,
		)
	}

	circles := []func(float64) geom.Vec3{
		func(a float64) geom.Vec3 { return geom.Vec3{X: math.Cos(a), Y: math.Sin(a), Z: 0} }, // equator
		func(a float64) geom.Vec3 { return geom.Vec3{X: math.Cos(a), Y: 0, Z: math.Sin(a)} }, // meridian
	}
	for _, circle := range circles {
		for i := 0; i < segments; i++ {
			a0 := 2 * math.Pi * float64(i) / segments
			a1 := 2 * math.Pi * float64(i+1) / segments
			x0, y0, d0 := c.Project(circle(a0), canvas)
			x1, y1, d1 := c.Project(circle(a1), canvas)
			if d0 < 0 || d1 < 0 {
				continue
			}
			canvas.Line(x0, y0, x1, y1)
		}
	}
}
