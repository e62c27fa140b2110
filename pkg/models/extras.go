package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/taigrr/prism/pkg/material"
	"github.com/taigrr/prism/pkg/math3d"
)

// Everything glTF cannot say about a prism scene travels under the "prism"
// key of a node's or material's extras.

type prismExtras struct {
	Shape string       `json:"shape,omitempty"`
	Light *lightExtras `json:"light,omitempty"`
}

type lightExtras struct {
	Intensity *jsonColor `json:"intensity,omitempty"`
}

type materialExtras struct {
	Color           *jsonColor     `json:"color,omitempty"`
	Ambient         *float64       `json:"ambient,omitempty"`
	Diffuse         *float64       `json:"diffuse,omitempty"`
	Specular        *float64       `json:"specular,omitempty"`
	Shininess       *float64       `json:"shininess,omitempty"`
	Reflective      *float64       `json:"reflective,omitempty"`
	Transparency    *float64       `json:"transparency,omitempty"`
	RefractiveIndex *float64       `json:"refractiveIndex,omitempty"`
	Pattern         *patternExtras `json:"pattern,omitempty"`
}

type patternExtras struct {
	Kind      string       `json:"kind"`
	A         jsonColor    `json:"a"`
	B         jsonColor    `json:"b"`
	Transform *[16]float64 `json:"transform,omitempty"`
}

// jsonColor is written as [r, g, b] and read from either that or a hex
// string such as "#ff8800". Lights are often brighter than 1, which hex
// cannot express.
type jsonColor material.Color

func (c jsonColor) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{c.R, c.G, c.B})
}

func (c *jsonColor) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		parsed, err := material.ParseHex(hex)
		if err != nil {
			return err
		}
		*c = jsonColor(parsed)
		return nil
	}

	var rgb []float64
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("color must be a hex string or [r, g, b]: %w", err)
	}
	if len(rgb) != 3 {
		return fmt.Errorf("color has %d components, want 3", len(rgb))
	}
	*c = jsonColor{R: rgb[0], G: rgb[1], B: rgb[2]}
	return nil
}

// decodeExtras unpacks the "prism" entry of a glTF extras value into v.
// It reports false when there is no such entry.
func decodeExtras(extras any, v any) (bool, error) {
	if extras == nil {
		return false, nil
	}
	raw, err := json.Marshal(extras)
	if err != nil {
		return false, fmt.Errorf("encode extras: %w", err)
	}

	var wrapper struct {
		Prism json.RawMessage `json:"prism"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		// Extras may be any JSON value; only objects can carry ours.
		return false, nil
	}
	if len(wrapper.Prism) == 0 || string(wrapper.Prism) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(wrapper.Prism, v); err != nil {
		return false, fmt.Errorf("decode prism extras: %w", err)
	}
	return true, nil
}

func materialToExtras(m material.Material) materialExtras {
	color := jsonColor(m.Color)
	ex := materialExtras{
		Color:           &color,
		Ambient:         &m.Ambient,
		Diffuse:         &m.Diffuse,
		Specular:        &m.Specular,
		Shininess:       &m.Shininess,
		Reflective:      &m.Reflective,
		Transparency:    &m.Transparency,
		RefractiveIndex: &m.RefractiveIndex,
	}
	if p := m.Pattern; p != nil {
		t := [16]float64(p.Transform())
		ex.Pattern = &patternExtras{
			Kind:      p.Kind.String(),
			A:         jsonColor(p.A),
			B:         jsonColor(p.B),
			Transform: &t,
		}
	}
	return ex
}

func (ex materialExtras) apply(m *material.Material) error {
	if ex.Color != nil {
		m.Color = material.Color(*ex.Color)
	}
	for _, f := range []struct {
		src *float64
		dst *float64
	}{
		{ex.Ambient, &m.Ambient},
		{ex.Diffuse, &m.Diffuse},
		{ex.Specular, &m.Specular},
		{ex.Shininess, &m.Shininess},
		{ex.Reflective, &m.Reflective},
		{ex.Transparency, &m.Transparency},
		{ex.RefractiveIndex, &m.RefractiveIndex},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}

	if ex.Pattern == nil {
		return nil
	}
	kind, err := material.ParsePatternKind(ex.Pattern.Kind)
	if err != nil {
		return err
	}
	p := material.NewPattern(kind, material.Color(ex.Pattern.A), material.Color(ex.Pattern.B))
	if t := ex.Pattern.Transform; t != nil {
		pm := math3d.Mat4(*t)
		if pm == (math3d.Mat4{}) {
			return errors.New("pattern transform is all zeros")
		}
		p.SetTransform(pm)
	}
	m.Pattern = p
	return nil
}
