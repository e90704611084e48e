package renderer

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
	"github.com/lumen-render/lumen/pkg/scene"
)

// shadowEpsilon offsets secondary ray origins off the surface to avoid
// self-intersection.
const shadowEpsilon = 1e-3

// Raytracer intersects rays with a scene and shades the hits against the
// environment. Stateless apart from the scene reference, so one instance
// is safe to share across workers.
type Raytracer struct {
	scene *scene.Scene
}

// NewRaytracer creates a raytracer for the given scene
func NewRaytracer(s *scene.Scene) *Raytracer {
	return &Raytracer{scene: s}
}

// IntersectScene returns the closest hit along the ray, with the
// primitive's material attached. Linear scan over the primitive list.
func (rt *Raytracer) IntersectScene(ray core.Ray) (*geometry.HitRecord, bool) {
	var closest *geometry.HitRecord
	closestT := math.Inf(1)

	for _, prim := range rt.scene.Primitives {
		hit, ok := prim.Shape.Hit(ray, shadowEpsilon, closestT)
		if !ok {
			continue
		}
		hit.Material = prim.Material
		closest = hit
		closestT = hit.T
	}
	return closest, closest != nil
}

// occluded reports whether anything blocks the ray before tMax.
func (rt *Raytracer) occluded(ray core.Ray, tMax float64) bool {
	for _, prim := range rt.scene.Primitives {
		if _, ok := prim.Shape.Hit(ray, shadowEpsilon, tMax); ok {
			return true
		}
	}
	return false
}

// RayColor computes the radiance arriving along a primary ray. Misses
// return the environment directly; hits are shaded against it.
func (rt *Raytracer) RayColor(ray core.Ray, sampler core.Sampler) core.Color {
	hit, ok := rt.IntersectScene(ray)
	if !ok {
		return rt.scene.Environment.Radiance(ray.Direction)
	}
	return rt.Shade(ray, hit, sampler)
}

// Shade estimates the radiance leaving the hit point toward the viewer
// using direct environment lighting. Both the environment and the BSDF
// are importance sampled, combined with the power heuristic.
func (rt *Raytracer) Shade(ray core.Ray, hit *geometry.HitRecord, sampler core.Sampler) core.Color {
	if hit.Material == nil {
		return core.Black
	}

	wo := ray.Direction.Negate().Normalize()
	env := rt.scene.Environment
	result := core.Black

	// Environment sample with BSDF density for the MIS weight.
	if wi, radiance, lightPDF, ok := env.Sample(sampler.Get2D()); ok && lightPDF > 0 {
		cosTheta := wi.Dot(hit.Normal)
		if cosTheta > 0 && !rt.occluded(core.NewRay(hit.Point, wi), math.Inf(1)) {
			f := hit.Material.Evaluate(wo, wi, hit.Normal)
			if !f.IsBlack() {
				bsdfPDF := hit.Material.PDF(wo, wi, hit.Normal)
				weight := powerHeuristic(1, lightPDF, 1, bsdfPDF)
				result = result.Add(
					f.MultiplyColor(radiance).Multiply(cosTheta * weight / lightPDF),
				)
			}
		}
	}

	// BSDF sample with environment density for the MIS weight.
	if wi, bsdfPDF, ok := hit.Material.Sample(wo, hit.Normal, sampler.Get2D()); ok && bsdfPDF > 0 {
		cosTheta := wi.Dot(hit.Normal)
		if cosTheta > 0 && !rt.occluded(core.NewRay(hit.Point, wi), math.Inf(1)) {
			f := hit.Material.Evaluate(wo, wi, hit.Normal)
			if !f.IsBlack() {
				lightPDF := env.PDF(wi)
				weight := powerHeuristic(1, bsdfPDF, 1, lightPDF)
				result = result.Add(
					f.MultiplyColor(env.Radiance(wi)).Multiply(cosTheta * weight / bsdfPDF),
				)
			}
		}
	}

	return result
}

// powerHeuristic is the beta=2 multiple importance sampling weight.
func powerHeuristic(nf float64, fPdf float64, ng float64, gPdf float64) float64 {
	f, g := nf*fPdf, ng*gPdf
	denom := f*f + g*g
	if denom == 0 {
		return 0
	}
	return f * f / denom
}
