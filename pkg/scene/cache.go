package scene

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zlib"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
	"github.com/lumen-render/lumen/pkg/material"
)

// The cache flattens the closed set of shape and material types into
// tagged records so scenes round-trip through gob without exposing any
// package internals. Placement matrices use the fixed-width binary
// matrix encoding.

type sceneRecord struct {
	Primitives []primitiveRecord
	Horizon    core.Color
	Zenith     core.Color
	EnvWidth   int
	EnvHeight  int
}

type primitiveRecord struct {
	Shape    shapeRecord
	Material materialRecord
}

type shapeRecord struct {
	Kind      string
	Params    []float64
	Points    []core.Vec3
	Transform []byte       // marshaled Matrix4x4, kind "transformed" only
	Inner     *shapeRecord // wrapped shape, kind "transformed" only
}

type materialRecord struct {
	Kind          string
	Colors        []core.Color
	Params        []float64
	Fresnel       string
	FresnelColors []core.Color
	FresnelParams []float64
	Lobes         []materialRecord
	Weights       []float64
}

// Save writes the scene to w as a zlib-compressed gob stream.
func (s *Scene) Save(w io.Writer) error {
	record := sceneRecord{
		Horizon:   s.Environment.Horizon,
		Zenith:    s.Environment.Zenith,
		EnvWidth:  s.Environment.distribution.width,
		EnvHeight: s.Environment.distribution.height,
	}

	for i, prim := range s.Primitives {
		sr, err := encodeShape(prim.Shape)
		if err != nil {
			return fmt.Errorf("scene cache: primitive %d: %w", i, err)
		}
		mr, err := encodeMaterial(prim.Material)
		if err != nil {
			return fmt.Errorf("scene cache: primitive %d: %w", i, err)
		}
		record.Primitives = append(record.Primitives, primitiveRecord{Shape: *sr, Material: *mr})
	}

	zw := zlib.NewWriter(w)
	if err := gob.NewEncoder(zw).Encode(&record); err != nil {
		zw.Close()
		return fmt.Errorf("scene cache: encode: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("scene cache: flush: %w", err)
	}
	return nil
}

// Load reads a scene previously written by Save.
func Load(r io.Reader) (*Scene, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("scene cache: open stream: %w", err)
	}
	defer zr.Close()

	var record sceneRecord
	if err := gob.NewDecoder(zr).Decode(&record); err != nil {
		return nil, fmt.Errorf("scene cache: decode: %w", err)
	}

	s := &Scene{
		Environment: NewEnvironment(record.Horizon, record.Zenith, record.EnvWidth, record.EnvHeight),
	}
	for i, pr := range record.Primitives {
		shape, err := decodeShape(&pr.Shape)
		if err != nil {
			return nil, fmt.Errorf("scene cache: primitive %d: %w", i, err)
		}
		mat, err := decodeMaterial(&pr.Material)
		if err != nil {
			return nil, fmt.Errorf("scene cache: primitive %d: %w", i, err)
		}
		s.Primitives = append(s.Primitives, Primitive{Shape: shape, Material: mat})
	}
	return s, nil
}

// SaveFile writes the scene cache to disk.
func (s *Scene) SaveFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("scene cache: %w", err)
	}
	defer file.Close()
	return s.Save(file)
}

// LoadFile reads a scene cache from disk.
func LoadFile(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene cache: %w", err)
	}
	defer file.Close()
	return Load(file)
}

func encodeShape(shape geometry.Shape) (*shapeRecord, error) {
	switch sh := shape.(type) {
	case *geometry.Sphere:
		return &shapeRecord{Kind: "sphere", Params: []float64{sh.Radius, sh.ZMin, sh.ZMax, sh.PhiMax}}, nil
	case *geometry.Cylinder:
		return &shapeRecord{Kind: "cylinder", Params: []float64{sh.Radius, sh.ZMin, sh.ZMax, sh.PhiMax}}, nil
	case *geometry.Cone:
		return &shapeRecord{Kind: "cone", Params: []float64{sh.Radius, sh.Height, sh.PhiMax}}, nil
	case *geometry.Paraboloid:
		return &shapeRecord{Kind: "paraboloid", Params: []float64{sh.Radius, sh.ZMin, sh.ZMax, sh.PhiMax}}, nil
	case *geometry.Torus:
		return &shapeRecord{Kind: "torus", Params: []float64{sh.MajorRadius, sh.MinorRadius}}, nil
	case *geometry.Disc:
		return &shapeRecord{Kind: "disc", Params: []float64{sh.Height, sh.InnerRadius, sh.OuterRadius, sh.PhiMax}}, nil
	case *geometry.Plane:
		return &shapeRecord{Kind: "plane", Points: []core.Vec3{sh.Point, sh.Normal}}, nil
	case *geometry.Triangle:
		return &shapeRecord{Kind: "triangle", Points: []core.Vec3{sh.V0, sh.V1, sh.V2}}, nil
	case *geometry.Box:
		return &shapeRecord{Kind: "box", Points: []core.Vec3{sh.Min, sh.Max}}, nil
	case *geometry.Transformed:
		inner, err := encodeShape(sh.Shape)
		if err != nil {
			return nil, err
		}
		transform, err := sh.ObjectToWorld().MarshalBinary()
		if err != nil {
			return nil, err
		}
		return &shapeRecord{Kind: "transformed", Transform: transform, Inner: inner}, nil
	default:
		return nil, fmt.Errorf("unsupported shape type %T", shape)
	}
}

// shapeArity validates a record's field counts before any indexing, so a
// corrupt cache surfaces as a decode error instead of a panic.
func shapeArity(r *shapeRecord, params, points int) error {
	if len(r.Params) != params || len(r.Points) != points {
		return fmt.Errorf("shape %q: want %d params and %d points, got %d and %d",
			r.Kind, params, points, len(r.Params), len(r.Points))
	}
	return nil
}

func decodeShape(r *shapeRecord) (geometry.Shape, error) {
	switch r.Kind {
	case "sphere":
		if err := shapeArity(r, 4, 0); err != nil {
			return nil, err
		}
		return geometry.NewPartialSphere(r.Params[0], r.Params[1], r.Params[2], r.Params[3])
	case "cylinder":
		if err := shapeArity(r, 4, 0); err != nil {
			return nil, err
		}
		return geometry.NewPartialCylinder(r.Params[0], r.Params[1], r.Params[2], r.Params[3])
	case "cone":
		if err := shapeArity(r, 3, 0); err != nil {
			return nil, err
		}
		return geometry.NewPartialCone(r.Params[0], r.Params[1], r.Params[2])
	case "paraboloid":
		if err := shapeArity(r, 4, 0); err != nil {
			return nil, err
		}
		return geometry.NewPartialParaboloid(r.Params[0], r.Params[1], r.Params[2], r.Params[3])
	case "torus":
		if err := shapeArity(r, 2, 0); err != nil {
			return nil, err
		}
		return geometry.NewTorus(r.Params[0], r.Params[1])
	case "disc":
		if err := shapeArity(r, 4, 0); err != nil {
			return nil, err
		}
		return geometry.NewAnnulus(r.Params[0], r.Params[1], r.Params[2], r.Params[3])
	case "plane":
		if err := shapeArity(r, 0, 2); err != nil {
			return nil, err
		}
		return geometry.NewPlane(r.Points[0], r.Points[1]), nil
	case "triangle":
		if err := shapeArity(r, 0, 3); err != nil {
			return nil, err
		}
		return geometry.NewTriangle(r.Points[0], r.Points[1], r.Points[2]), nil
	case "box":
		if err := shapeArity(r, 0, 2); err != nil {
			return nil, err
		}
		return geometry.NewBox(r.Points[0], r.Points[1])
	case "transformed":
		if r.Inner == nil {
			return nil, fmt.Errorf("shape %q: missing inner shape", r.Kind)
		}
		inner, err := decodeShape(r.Inner)
		if err != nil {
			return nil, err
		}
		var objectToWorld core.Matrix4x4
		if err := objectToWorld.UnmarshalBinary(r.Transform); err != nil {
			return nil, err
		}
		return geometry.NewTransformed(inner, objectToWorld)
	default:
		return nil, fmt.Errorf("unknown shape kind %q", r.Kind)
	}
}

func encodeMaterial(mat material.Material) (*materialRecord, error) {
	switch m := mat.(type) {
	case *material.Lambertian:
		return &materialRecord{Kind: "lambertian", Colors: []core.Color{m.Albedo}}, nil
	case *material.TorranceSparrow:
		r := &materialRecord{
			Kind:   "torrance-sparrow",
			Colors: []core.Color{m.Reflectance},
			Params: []float64{m.Distribution.Alpha},
		}
		if err := encodeFresnel(m.Fresnel, r); err != nil {
			return nil, err
		}
		return r, nil
	case *material.AshikhminShirley:
		return &materialRecord{
			Kind:   "ashikhmin-shirley",
			Colors: []core.Color{m.Rd, m.Rs},
			Params: []float64{m.Distribution.Alpha},
		}, nil
	case *material.MixBSDF:
		r := &materialRecord{Kind: "mix", Weights: m.Weights()}
		for _, lobe := range m.Lobes() {
			lr, err := encodeMaterial(lobe)
			if err != nil {
				return nil, err
			}
			r.Lobes = append(r.Lobes, *lr)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unsupported material type %T", mat)
	}
}

func encodeFresnel(fresnel material.Fresnel, r *materialRecord) error {
	switch f := fresnel.(type) {
	case material.FresnelDielectric:
		r.Fresnel = "dielectric"
		r.FresnelParams = []float64{f.EtaI, f.EtaT}
	case material.FresnelConductor:
		r.Fresnel = "conductor"
		r.FresnelColors = []core.Color{f.Eta, f.K}
	case material.FresnelNoOp:
		r.Fresnel = "noop"
	default:
		return fmt.Errorf("unsupported fresnel type %T", fresnel)
	}
	return nil
}

func decodeFresnel(r *materialRecord) (material.Fresnel, error) {
	switch r.Fresnel {
	case "dielectric":
		if len(r.FresnelParams) != 2 {
			return nil, fmt.Errorf("fresnel %q: want 2 params, got %d", r.Fresnel, len(r.FresnelParams))
		}
		return material.FresnelDielectric{EtaI: r.FresnelParams[0], EtaT: r.FresnelParams[1]}, nil
	case "conductor":
		if len(r.FresnelColors) != 2 {
			return nil, fmt.Errorf("fresnel %q: want 2 colors, got %d", r.Fresnel, len(r.FresnelColors))
		}
		return material.FresnelConductor{Eta: r.FresnelColors[0], K: r.FresnelColors[1]}, nil
	case "noop":
		return material.FresnelNoOp{}, nil
	default:
		return nil, fmt.Errorf("unknown fresnel kind %q", r.Fresnel)
	}
}

func materialArity(r *materialRecord, colors, params int) error {
	if len(r.Colors) != colors || len(r.Params) != params {
		return fmt.Errorf("material %q: want %d colors and %d params, got %d and %d",
			r.Kind, colors, params, len(r.Colors), len(r.Params))
	}
	return nil
}

func decodeMaterial(r *materialRecord) (material.Material, error) {
	switch r.Kind {
	case "lambertian":
		if err := materialArity(r, 1, 0); err != nil {
			return nil, err
		}
		return material.NewLambertian(r.Colors[0]), nil
	case "torrance-sparrow":
		if err := materialArity(r, 1, 1); err != nil {
			return nil, err
		}
		fresnel, err := decodeFresnel(r)
		if err != nil {
			return nil, err
		}
		return &material.TorranceSparrow{
			Reflectance:  r.Colors[0],
			Distribution: material.TrowbridgeReitz{Alpha: r.Params[0]},
			Fresnel:      fresnel,
		}, nil
	case "ashikhmin-shirley":
		if err := materialArity(r, 2, 1); err != nil {
			return nil, err
		}
		return &material.AshikhminShirley{
			Rd:           r.Colors[0],
			Rs:           r.Colors[1],
			Distribution: material.TrowbridgeReitz{Alpha: r.Params[0]},
		}, nil
	case "mix":
		if len(r.Lobes) == 0 || len(r.Lobes) != len(r.Weights) {
			return nil, fmt.Errorf("material %q: want matching non-empty lobes and weights, got %d and %d",
				r.Kind, len(r.Lobes), len(r.Weights))
		}
		lobes := make([]material.Material, 0, len(r.Lobes))
		for i := range r.Lobes {
			lobe, err := decodeMaterial(&r.Lobes[i])
			if err != nil {
				return nil, err
			}
			lobes = append(lobes, lobe)
		}
		return material.NewMixBSDF(lobes, r.Weights), nil
	default:
		return nil, fmt.Errorf("unknown material kind %q", r.Kind)
	}
}
