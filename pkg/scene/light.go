// Package scene assembles shapes and a light into a World and shades rays
// against it, recursing through reflection and refraction.
package scene

import (
	"github.com/taigrr/prism/pkg/material"
	"github.com/taigrr/prism/pkg/math3d"
)

// PointLight is a light with no size, emitting Intensity in every direction.
type PointLight struct {
	Position  math3d.Vec3
	Intensity material.Color
}

// NewPointLight creates a point light.
func NewPointLight(position math3d.Vec3, intensity material.Color) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}
