package renderer

import (
	"fmt"

	"github.com/lumen-render/lumen/pkg/core"
)

// CameraConfig positions a perspective camera in the world.
type CameraConfig struct {
	Eye    core.Vec3
	Target core.Vec3
	Up     core.Vec3
	FOV    float64 // vertical field of view in degrees
	Width  int
	Height int
}

// DefaultCameraConfig frames the built-in scenes from the front.
func DefaultCameraConfig(width, height int) CameraConfig {
	return CameraConfig{
		Eye:    core.NewVec3(0, -8, 2),
		Target: core.NewVec3(0, 0, 0.8),
		Up:     core.NewVec3(0, 0, 1),
		FOV:    40,
		Width:  width,
		Height: height,
	}
}

// Camera generates primary rays through film pixels. Raster positions go
// through the inverse projection into camera space, then out to the
// world via the look-at placement.
type Camera struct {
	Eye core.Vec3

	width          int
	height         int
	cameraToWorld  core.Matrix4x4
	rasterToCamera core.Matrix4x4
}

// NewCamera builds a camera from its configuration.
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("camera resolution must be positive, got %dx%d", config.Width, config.Height)
	}
	if config.FOV <= 0 || config.FOV >= 180 {
		return nil, fmt.Errorf("camera fov must be in (0, 180) degrees, got %f", config.FOV)
	}
	if config.Target.Subtract(config.Eye).LengthSquared() == 0 {
		return nil, fmt.Errorf("camera eye and target coincide at %v", config.Eye)
	}

	aspect := float64(config.Width) / float64(config.Height)
	cameraToRaster := core.ScreenSpace(config.Width, config.Height).
		Multiply(core.Perspective(core.Radians(config.FOV), aspect, 0.1, 1000))
	rasterToCamera, err := cameraToRaster.Inverse()
	if err != nil {
		return nil, fmt.Errorf("camera projection: %w", err)
	}

	return &Camera{
		Eye:            config.Eye,
		width:          config.Width,
		height:         config.Height,
		cameraToWorld:  core.LookAt(config.Eye, config.Target, config.Up),
		rasterToCamera: rasterToCamera,
	}, nil
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.height }

// GenerateRay returns the world-space ray through pixel (px, py). The
// jitter offsets shift the sample inside the pixel footprint; (0, 0)
// aims through the pixel center.
func (c *Camera) GenerateRay(px, py int, jitterX, jitterY float64) core.Ray {
	raster := core.NewVec3(
		float64(px)+0.5+jitterX,
		float64(py)+0.5+jitterY,
		0,
	)
	target := c.rasterToCamera.TransformPoint(raster)
	direction := c.cameraToWorld.TransformVector(target.Normalize()).Normalize()
	return core.NewRay(c.Eye, direction)
}
