package material

// Refractive indices of common media.
const (
	Vacuum  = 1.0
	Air     = 1.00029
	Water   = 1.333
	Glass   = 1.52
	Diamond = 2.417
)

// Material holds the Phong parameters of a surface plus its reflective and
// refractive behavior. Pattern, when set, replaces Color as the base color.
type Material struct {
	Color   Color
	Pattern *Pattern

	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64

	Reflective      float64 // 0 = matte, 1 = mirror
	Transparency    float64 // 0 = opaque
	RefractiveIndex float64
}

// Default returns the material new shapes start with.
func Default() Material {
	return Material{
		Color:           White,
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		RefractiveIndex: Vacuum,
	}
}

// GlassMaterial returns a clear, strongly reflective glass.
func GlassMaterial() Material {
	return Material{
		Color:           White,
		Ambient:         0.1,
		Diffuse:         0.1,
		Specular:        1,
		Shininess:       300,
		Reflective:      0.9,
		Transparency:    1,
		RefractiveIndex: 1.5,
	}
}

// Mirror returns a dark, fully reflective material.
func Mirror() Material {
	m := Default()
	m.Color = Black
	m.Diffuse = 0.1
	m.Ambient = 0
	m.Reflective = 1
	return m
}
