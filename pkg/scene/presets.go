package scene

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/material"
	"github.com/taigrr/prism/pkg/math3d"
)

// CameraSpec describes where a scene wants to be viewed from.
type CameraSpec struct {
	From math3d.Vec3
	To   math3d.Vec3
	Up   math3d.Vec3
	FOV  float64 // radians
}

// ViewTransform returns the world-to-camera matrix for the camera placement.
func (c CameraSpec) ViewTransform() math3d.Mat4 {
	return math3d.LookAt(c.From, c.To, c.Up)
}

// DefaultCamera frames the unit spheres of the default world.
func DefaultCamera() CameraSpec {
	return CameraSpec{
		From: math3d.V3(0, 1.5, -5),
		To:   math3d.V3(0, 0, 0),
		Up:   math3d.Up(),
		FOV:  math.Pi / 3,
	}
}

var presets = map[string]func() (*World, CameraSpec){
	"default":     func() (*World, CameraSpec) { return Default(), DefaultCamera() },
	"reflections": reflectionsPreset,
	"glass":       glassPreset,
	"mirrors":     mirrorsPreset,
}

// PresetNames lists the built-in scenes in alphabetical order.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(presets))
}

// Preset builds a fresh copy of a built-in scene.
func Preset(name string) (*World, CameraSpec, error) {
	build, ok := presets[name]
	if !ok {
		return nil, CameraSpec{}, fmt.Errorf("unknown preset %q (have %v)", name, PresetNames())
	}
	w, cam := build()
	return w, cam, nil
}

func checkeredFloor(a, b material.Color) geometry.Shape {
	floor := geometry.NewPlane()
	floor.Name = "floor"
	floor.Material.Specular = 0
	floor.Material.Pattern = material.Checkers(a, b)
	// Keep y=0 in the middle of a checker cell so rounding noise on the
	// plane can't flip cells.
	floor.Material.Pattern.SetTransform(math3d.Translate(math3d.V3(0, -0.5, 0)))
	return floor
}

func sphereAt(name string, center math3d.Vec3, radius float64) geometry.Shape {
	s := geometry.NewSphere()
	s.Name = name
	s.SetTransform(math3d.Translate(center).Mul(math3d.ScaleUniform(radius)))
	return s
}

func reflectionsPreset() (*World, CameraSpec) {
	floor := checkeredFloor(material.RGB(0.35, 0.35, 0.35), material.RGB(0.65, 0.65, 0.65))
	floor.Material.Reflective = 0.3

	mirror := sphereAt("mirror", math3d.V3(-0.5, 1, 0.5), 1)
	mirror.Material = material.Mirror()

	red := sphereAt("red", math3d.V3(1.5, 0.5, -0.5), 0.5)
	red.Material.Color = material.RGB(0.9, 0.2, 0.1)
	red.Material.Diffuse = 0.7
	red.Material.Specular = 0.3
	red.Material.Reflective = 0.1

	blue := sphereAt("blue", math3d.V3(-1.7, 0.33, -0.75), 0.33)
	blue.Material.Color = material.RGB(0.2, 0.4, 1)
	blue.Material.Diffuse = 0.7
	blue.Material.Specular = 0.3

	w := New(NewPointLight(math3d.V3(-10, 10, -10), material.White), floor, mirror, red, blue)
	return w, CameraSpec{
		From: math3d.V3(0, 1.5, -5),
		To:   math3d.V3(0, 1, 0),
		Up:   math3d.Up(),
		FOV:  math.Pi / 3,
	}
}

func glassPreset() (*World, CameraSpec) {
	floor := checkeredFloor(material.RGB(0.15, 0.15, 0.15), material.RGB(0.85, 0.85, 0.85))

	wall := geometry.NewPlane()
	wall.Name = "wall"
	wall.SetTransform(math3d.Translate(math3d.V3(0, 0, 10)).Mul(math3d.RotateX(math.Pi / 2)))
	wall.Material.Pattern = material.Stripes(material.RGB(0.9, 0.8, 0.3), material.RGB(0.3, 0.5, 0.9))
	wall.Material.Specular = 0

	glass := sphereAt("glass", math3d.V3(0, 1, 0), 1)
	glass.Material = material.GlassMaterial()
	glass.Material.Color = material.RGB(0.1, 0.1, 0.1)

	bubble := sphereAt("bubble", math3d.V3(0, 1, 0), 0.5)
	bubble.Material = material.GlassMaterial()
	bubble.Material.Color = material.Black
	bubble.Material.RefractiveIndex = material.Air

	w := New(NewPointLight(math3d.V3(-4.9, 4.9, -1), material.White), floor, wall, glass, bubble)
	return w, CameraSpec{
		From: math3d.V3(0, 2.5, -4.5),
		To:   math3d.V3(0, 1, 0),
		Up:   math3d.Up(),
		FOV:  math.Pi / 3,
	}
}

func mirrorsPreset() (*World, CameraSpec) {
	floor := checkeredFloor(material.RGB(0.2, 0.25, 0.2), material.RGB(0.7, 0.8, 0.7))

	left := geometry.NewPlane()
	left.Name = "left mirror"
	left.SetTransform(math3d.Translate(math3d.V3(-3, 0, 0)).Mul(math3d.RotateZ(math.Pi / 2)))
	left.Material = material.Mirror()

	right := geometry.NewPlane()
	right.Name = "right mirror"
	right.SetTransform(math3d.Translate(math3d.V3(3, 0, 0)).Mul(math3d.RotateZ(math.Pi / 2)))
	right.Material = material.Mirror()

	ball := sphereAt("ball", math3d.V3(0, 1, 0), 1)
	ball.Material.Color = material.RGB(1, 0.6, 0.1)
	ball.Material.Diffuse = 0.7
	ball.Material.Specular = 0.4

	w := New(NewPointLight(math3d.V3(0, 8, -6), material.White), floor, left, right, ball)
	return w, CameraSpec{
		From: math3d.V3(-1, 2, -6),
		To:   math3d.V3(0.5, 1, 0),
		Up:   math3d.Up(),
		FOV:  math.Pi / 2.5,
	}
}
