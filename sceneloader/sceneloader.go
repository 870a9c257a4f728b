// Package sceneloader builds a scene.Scene from a YAML scene file or
// from one of the procedural generators (Random, Sandbox), resolving
// named texture/material references the way the reference's
// `SceneData`/`TryInto<Scene>` does.
package sceneloader

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sakarias88/racer-tracer/databus"
	"github.com/sakarias88/racer-tracer/geometry"
	"github.com/sakarias88/racer-tracer/material"
	"github.com/sakarias88/racer-tracer/scene"
	"github.com/sakarias88/racer-tracer/texture"
	"github.com/sakarias88/racer-tracer/tracerr"
	"github.com/sakarias88/racer-tracer/vec3"
)

// loadImageFile decodes a PNG or JPEG texture file, the two formats
// registered below via their stdlib decoders.
func loadImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newLoadErr("%s: %v", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, newLoadErr("%s: %v", path, err)
	}
	return img, nil
}

const scenePrefix = "sceneloader: "

func newLoadErr(format string, args ...any) error {
	return tracerr.New(tracerr.KindSceneLoad, scenePrefix+format, args...)
}

func newMaterialErr(key string) error {
	return tracerr.New(tracerr.KindUnknownMaterial, scenePrefix+"unknown material key: %s", key)
}

// textureData is one named entry of a scene file's texture table.
type textureData struct {
	Kind      string    `yaml:"kind"`
	Color     vec3.Vec3 `yaml:"color,omitempty"`
	Even      string    `yaml:"even,omitempty"`
	Odd       string    `yaml:"odd,omitempty"`
	Path      string    `yaml:"path,omitempty"`
	Scale     float64   `yaml:"scale,omitempty"`
	Depth     int       `yaml:"depth,omitempty"`
}

// materialData is one named entry of a scene file's material table.
type materialData struct {
	Kind            string  `yaml:"kind"`
	Texture         string  `yaml:"texture,omitempty"`
	Color           vec3.Vec3 `yaml:"color,omitempty"`
	Fuzz            float64 `yaml:"fuzz,omitempty"`
	RefractionIndex float64 `yaml:"refraction_index,omitempty"`
}

// geometryData is one entry of a scene file's object list. Only the
// fields relevant to Kind are populated; a RotateY/Translate wraps
// another geometryData by value so the YAML tree mirrors the runtime
// Primitive composition one-to-one.
type geometryData struct {
	Kind     string        `yaml:"kind"`
	Pos      vec3.Vec3     `yaml:"pos,omitempty"`
	Radius   float64       `yaml:"radius,omitempty"`
	Material string        `yaml:"material,omitempty"`
	Min, Max vec3.Vec3     `yaml:"min,omitempty"`
	X0, X1   float64       `yaml:"x0,omitempty"`
	Y0, Y1   float64       `yaml:"y0,omitempty"`
	Z0, Z1   float64       `yaml:"z0,omitempty"`
	K        float64       `yaml:"k,omitempty"`
	Degrees  float64       `yaml:"degrees,omitempty"`
	Offset   vec3.Vec3     `yaml:"offset,omitempty"`
	Child    *geometryData `yaml:"child,omitempty"`
}

// sceneData is the top-level scene file shape.
type sceneData struct {
	Textures  map[string]textureData  `yaml:"textures"`
	Materials map[string]materialData `yaml:"materials"`
	Geometry  []geometryData          `yaml:"geometry"`
}

func buildTexture(id string, data map[string]textureData, resolved map[string]texture.Texture, rng *rand.Rand) (texture.Texture, error) {
	if t, ok := resolved[id]; ok {
		return t, nil
	}
	d, ok := data[id]
	if !ok {
		return nil, newLoadErr("unknown texture key: %s", id)
	}
	var t texture.Texture
	switch d.Kind {
	case "solid_color":
		t = texture.NewSolidColor(d.Color)
	case "checkered":
		even, err := buildTexture(d.Even, data, resolved, rng)
		if err != nil {
			return nil, err
		}
		odd, err := buildTexture(d.Odd, data, resolved, rng)
		if err != nil {
			return nil, err
		}
		t = texture.NewCheckered(even, odd)
	case "noise":
		scale := d.Scale
		if scale == 0 {
			scale = 1
		}
		depth := d.Depth
		if depth == 0 {
			depth = 7
		}
		t = texture.NewNoise(d.Color, scale, depth, rng)
	case "image":
		img, err := loadImageFile(d.Path)
		if err != nil {
			return nil, err
		}
		t = texture.NewImage(img)
	default:
		return nil, newLoadErr("unknown texture kind: %s", d.Kind)
	}
	resolved[id] = t
	return t, nil
}

func buildMaterial(id string, data sceneData, textures map[string]texture.Texture, rng *rand.Rand) (geometry.Material, error) {
	d, ok := data.Materials[id]
	if !ok {
		return nil, newMaterialErr(id)
	}
	switch d.Kind {
	case "lambertian":
		if d.Texture != "" {
			tex, err := buildTexture(d.Texture, data.Textures, textures, rng)
			if err != nil {
				return nil, err
			}
			return material.NewLambertian(tex), nil
		}
		return material.NewLambertianColor(d.Color), nil
	case "metal":
		if d.Texture != "" {
			tex, err := buildTexture(d.Texture, data.Textures, textures, rng)
			if err != nil {
				return nil, err
			}
			return material.NewMetal(tex, d.Fuzz), nil
		}
		return material.NewMetalColor(d.Color, d.Fuzz), nil
	case "dielectric":
		return material.NewDielectric(d.RefractionIndex), nil
	case "diffuse_light":
		if d.Texture != "" {
			tex, err := buildTexture(d.Texture, data.Textures, textures, rng)
			if err != nil {
				return nil, err
			}
			return material.NewDiffuseLight(tex), nil
		}
		return material.NewDiffuseLightColor(d.Color), nil
	default:
		return nil, newLoadErr("unknown material kind: %s", d.Kind)
	}
}

func buildPrimitive(d geometryData, timeA, timeB float64) (geometry.Primitive, error) {
	switch d.Kind {
	case "sphere":
		return geometry.NewSphere(d.Radius), nil
	case "xy_rect":
		return geometry.NewXYRect(d.X0, d.X1, d.Y0, d.Y1, d.K), nil
	case "xz_rect":
		return geometry.NewXZRect(d.X0, d.X1, d.Z0, d.Z1, d.K), nil
	case "yz_rect":
		return geometry.NewYZRect(d.Y0, d.Y1, d.Z0, d.Z1, d.K), nil
	case "box":
		return geometry.NewBox(d.Min, d.Max), nil
	case "rotate_y":
		if d.Child == nil {
			return nil, newLoadErr("rotate_y requires a child")
		}
		child, err := buildPrimitive(*d.Child, timeA, timeB)
		if err != nil {
			return nil, err
		}
		return geometry.NewRotateY(child, d.Degrees), nil
	case "translate":
		if d.Child == nil {
			return nil, newLoadErr("translate requires a child")
		}
		child, err := buildPrimitive(*d.Child, timeA, timeB)
		if err != nil {
			return nil, err
		}
		return geometry.NewTranslate(child, d.Offset), nil
	default:
		return nil, newLoadErr("unknown geometry kind: %s", d.Kind)
	}
}

// FromFile loads a YAML scene file and populates a new scene.Scene.
func FromFile(path string, writer databus.DataWriter[scene.ObjectEvent], timeA, timeB float64, rng *rand.Rand) (*scene.Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, newLoadErr("%s: %v", path, err)
	}
	var data sceneData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, newLoadErr("%s: %v", path, err)
	}

	textures := map[string]texture.Texture{}
	s := scene.New(writer, timeA, timeB)
	for _, g := range data.Geometry {
		mat, err := buildMaterial(g.Material, data, textures, rng)
		if err != nil {
			return nil, err
		}
		prim, err := buildPrimitive(g, timeA, timeB)
		if err != nil {
			return nil, err
		}
		s.Add(g.Pos, mat, prim)
	}
	return s, nil
}

// NewRandom builds the classic Ray-Tracing-in-One-Weekend final scene: a
// large checkered ground plane under a field of small randomly placed
// and materialed spheres, with three signature large spheres at the
// center. Useful for smoke-testing the renderer without a scene file.
func NewRandom(writer databus.DataWriter[scene.ObjectEvent], timeA, timeB float64, rng *rand.Rand) *scene.Scene {
	s := scene.New(writer, timeA, timeB)

	ground := texture.NewCheckered(
		texture.NewSolidColor(vec3.New(0.2, 0.3, 0.1)),
		texture.NewSolidColor(vec3.New(0.9, 0.9, 0.9)),
	)
	s.Add(vec3.New(0, -1000, 0), material.NewLambertian(ground), geometry.NewSphere(1000))

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := vec3.New(float64(a)+0.9*rng.Float64(), 0.2, float64(b)+0.9*rng.Float64())
			if center.Sub(vec3.New(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}
			chooseMat := rng.Float64()
			switch {
			case chooseMat < 0.8:
				albedo := vec3.RandomInUnitSphere(rng).Mul(vec3.RandomInUnitSphere(rng))
				s.Add(center, material.NewLambertianColor(albedo), geometry.NewSphere(0.2))
			case chooseMat < 0.95:
				albedo := vec3.New(0.5+0.5*rng.Float64(), 0.5+0.5*rng.Float64(), 0.5+0.5*rng.Float64())
				fuzz := rng.Float64() * 0.5
				s.Add(center, material.NewMetalColor(albedo, fuzz), geometry.NewSphere(0.2))
			default:
				s.Add(center, material.NewDielectric(1.5), geometry.NewSphere(0.2))
			}
		}
	}

	s.Add(vec3.New(0, 1, 0), material.NewDielectric(1.5), geometry.NewSphere(1.0))
	s.Add(vec3.New(-4, 1, 0), material.NewLambertianColor(vec3.New(0.4, 0.2, 0.1)), geometry.NewSphere(1.0))
	s.Add(vec3.New(4, 1, 0), material.NewMetalColor(vec3.New(0.7, 0.6, 0.5), 0.0), geometry.NewSphere(1.0))

	return s
}

// NewSandbox builds a small fixed scene for quick interactive
// experimentation: a ground plane, one sphere of each material kind and
// an emissive rectangle acting as a light.
func NewSandbox(writer databus.DataWriter[scene.ObjectEvent], timeA, timeB float64) *scene.Scene {
	s := scene.New(writer, timeA, timeB)

	s.Add(vec3.New(0, -1000, 0), material.NewLambertianColor(vec3.New(0.5, 0.5, 0.5)), geometry.NewSphere(1000))
	s.Add(vec3.New(-2, 1, 0), material.NewLambertianColor(vec3.New(0.8, 0.2, 0.2)), geometry.NewSphere(1))
	s.Add(vec3.New(0, 1, 0), material.NewDielectric(1.5), geometry.NewSphere(1))
	s.Add(vec3.New(2, 1, 0), material.NewMetalColor(vec3.New(0.8, 0.8, 0.8), 0.05), geometry.NewSphere(1))
	s.Add(vec3.New(0, 5, 0), material.NewDiffuseLightColor(vec3.New(4, 4, 4)), geometry.NewXZRect(-2, 2, -2, 2, 5))

	return s
}
