package scene

import (
	"fmt"
	"math"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
	"github.com/lumen-render/lumen/pkg/material"
)

// environmentGridSize is the lat-long resolution of the sampling
// distribution built for the procedural sky.
const environmentGridSize = 64

// Default builds the standard three-sphere showcase over a ground plane.
func Default() (*Scene, error) {
	ground := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	matte := material.NewLambertian(core.NewColor(0.7, 0.3, 0.3))
	metal := material.NewTorranceSparrow(
		core.NewColor(0.9, 0.75, 0.4),
		0.2,
		material.FresnelConductor{Eta: core.NewColor(0.2, 0.9, 1.4), K: core.NewColor(3.9, 2.5, 2.1)},
	)
	glossy := material.NewAshikhminShirley(
		core.NewColor(0.2, 0.3, 0.7),
		core.NewColor(0.9, 0.9, 0.9),
		0.1,
	)

	left, err := place(geometry.NewSphere(1.0), core.Translate(-2.2, 0, 1))
	if err != nil {
		return nil, err
	}
	center, err := place(geometry.NewSphere(1.0), core.Translate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	right, err := place(geometry.NewSphere(1.0), core.Translate(2.2, 0, 1))
	if err != nil {
		return nil, err
	}

	return &Scene{
		Primitives: []Primitive{
			{Shape: geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), Material: ground},
			{Shape: left, Material: matte},
			{Shape: center, Material: metal},
			{Shape: right, Material: glossy},
		},
		Environment: NewEnvironment(
			core.NewColor(1.0, 1.0, 1.0),
			core.NewColor(0.5, 0.7, 1.0),
			environmentGridSize, environmentGridSize,
		),
	}, nil
}

// Quadrics builds a showcase of the analytic quadric and quartic shapes.
func Quadrics() (*Scene, error) {
	ground := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	red := material.NewLambertian(core.NewColor(0.8, 0.2, 0.2))
	green := material.NewLambertian(core.NewColor(0.2, 0.7, 0.3))
	gold := material.NewTorranceSparrow(
		core.NewColor(1.0, 0.85, 0.45),
		0.15,
		material.FresnelConductor{Eta: core.NewColor(0.14, 0.37, 1.44), K: core.NewColor(3.98, 2.39, 1.6)},
	)
	blue := material.NewAshikhminShirley(
		core.NewColor(0.15, 0.25, 0.6),
		core.NewColor(0.8, 0.8, 0.8),
		0.08,
	)

	cylinder, err := geometry.NewCylinder(0.6, 0, 1.5)
	if err != nil {
		return nil, err
	}
	cone, err := geometry.NewCone(0.7, 1.6)
	if err != nil {
		return nil, err
	}
	paraboloid, err := geometry.NewParaboloid(0.6, 0, 1.2)
	if err != nil {
		return nil, err
	}
	torus, err := geometry.NewTorus(0.7, 0.25)
	if err != nil {
		return nil, err
	}

	placedCylinder, err := place(cylinder, core.Translate(-3, 0, 0))
	if err != nil {
		return nil, err
	}
	placedCone, err := place(cone, core.Translate(-1, 0, 0))
	if err != nil {
		return nil, err
	}
	placedParaboloid, err := place(paraboloid, core.Translate(1, 0, 0))
	if err != nil {
		return nil, err
	}
	// Stand the torus on edge so the hole faces the camera.
	placedTorus, err := place(torus, core.Translate(3, 0, 0.95).Multiply(core.RotateX(math.Pi/2)))
	if err != nil {
		return nil, err
	}

	return &Scene{
		Primitives: []Primitive{
			{Shape: geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), Material: ground},
			{Shape: placedCylinder, Material: red},
			{Shape: placedCone, Material: gold},
			{Shape: placedParaboloid, Material: green},
			{Shape: placedTorus, Material: blue},
		},
		Environment: NewEnvironment(
			core.NewColor(0.9, 0.9, 1.0),
			core.NewColor(0.3, 0.5, 0.9),
			environmentGridSize, environmentGridSize,
		),
	}, nil
}

// Build returns the named built-in scene.
func Build(name string) (*Scene, error) {
	switch name {
	case "default":
		return Default()
	case "quadrics":
		return Quadrics()
	default:
		return nil, fmt.Errorf("unknown scene %q (want default or quadrics)", name)
	}
}

func place(shape geometry.Shape, objectToWorld core.Matrix4x4) (geometry.Shape, error) {
	return geometry.NewTransformed(shape, objectToWorld)
}
