package viz

import "math"

// Camera performs a simple perspective projection of world-space points onto
// the canvas. It sits on the +Z axis at Distance, looking at the origin.
type Camera struct {
	FOV      float64 // Vertical field of view, degrees
	Aspect   float64 // Width / height, updated on viewport resize
	Distance float64

	Width  int
	Height int

	focal float64
}

// NewCamera creates a camera with an uninitialized viewport; call SetViewport
// before projecting.
func NewCamera(fov, distance float64) *Camera {
	return &Camera{
		FOV:      fov,
		Distance: distance,
	}
}

// SetViewport updates the pixel dimensions and the aspect ratio. It touches
// nothing but the camera itself.
func (c *Camera) SetViewport(width, height int) {
	c.Width = width
	c.Height = height
	if height > 0 {
		c.Aspect = float64(width) / float64(height)
	}
	c.focal = float64(height) / 2 / math.Tan(c.FOV*math.Pi/180/2)
}

// Project maps a world-space point to canvas coordinates. Returns ok=false
// for points at or behind the near plane.
func (c *Camera) Project(p Vec3) (x, y float64, ok bool) {
	zc := c.Distance - p.Z
	if zc < CameraNear {
		return 0, 0, false
	}
	x = float64(c.Width)/2 + p.X*c.focal/zc
	y = float64(c.Height)/2 - p.Y*c.focal/zc
	return x, y, true
}
