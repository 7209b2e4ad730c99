package geometry

import "github.com/df07/go-smallpt/pkg/core"

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Position   core.Vec3 `json:"position"`
	Direction  core.Vec3 `json:"direction"`
	FOVScale   float64   `json:"fovScale"`   // Height of the image plane at unit distance
	NearOffset float64   `json:"nearOffset"` // Distance rays travel before they start
}

// DefaultCameraConfig returns the camera of the classic Cornell-sphere scene
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:   core.NewVec3(50, 52, 295.6),
		Direction:  core.NewVec3(0, -0.042612, -1),
		FOVScale:   0.5135,
		NearOffset: 140,
	}
}

// Camera generates primary rays for an image of a fixed size
type Camera struct {
	position   core.Vec3
	direction  core.Vec3
	cx, cy     core.Vec3
	nearOffset float64
	width      int
	height     int
}

// NewCamera creates a camera for a width x height image
func NewCamera(config CameraConfig, width, height int) *Camera {
	direction := config.Direction.Normalize()
	cx := core.NewVec3(float64(width)*config.FOVScale/float64(height), 0, 0)
	cy := cx.Cross(direction).Normalize().Multiply(config.FOVScale)

	return &Camera{
		position:   config.Position,
		direction:  direction,
		cx:         cx,
		cy:         cy,
		nearOffset: config.NearOffset,
		width:      width,
		height:     height,
	}
}

// GetRay returns the ray through pixel (x, y), where y = 0 is the top row,
// offset by (sx, sy) in pixel units from the pixel's corner
func (c *Camera) GetRay(x, y int, sx, sy float64) core.Ray {
	dirX := (sx+float64(x))/float64(c.width) - 0.5
	dirY := (sy+float64(c.height-y-1))/float64(c.height) - 0.5
	dir := c.cx.Multiply(dirX).Add(c.cy.Multiply(dirY)).Add(c.direction).Normalize()
	return core.NewRay(c.position.Add(dir.Multiply(c.nearOffset)), dir)
}
