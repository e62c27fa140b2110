package scene

import (
	"math"

	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/material"
	"github.com/taigrr/prism/pkg/math3d"
)

// Lighting evaluates the Phong model for one light at a surface point. The
// base color comes from the shape so patterns resolve in object space.
// Channels are not clamped.
func Lighting(shape *geometry.Shape, light PointLight, point, eye, normal math3d.Vec3, inShadow bool) material.Color {
	m := shape.Material
	effective := shape.ColorAt(point).Mul(light.Intensity)
	ambient := effective.Scale(m.Ambient)
	if inShadow {
		return ambient
	}

	lightV := light.Position.Sub(point).Normalize()
	lightDotNormal := lightV.Dot(normal)
	if lightDotNormal < 0 {
		return ambient
	}

	diffuse := effective.Scale(m.Diffuse * lightDotNormal)

	var specular material.Color
	reflectDotEye := lightV.Negate().Reflect(normal).Dot(eye)
	if reflectDotEye > 0 {
		specular = light.Intensity.Scale(m.Specular * math.Pow(reflectDotEye, m.Shininess))
	}

	return ambient.Add(diffuse).Add(specular)
}
