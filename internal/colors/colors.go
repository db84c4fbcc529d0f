// Package colors resolves color specifications into per-element attributes.
//
// A caller picks the kind of coloring explicitly: one Solid color, explicit
// PerElement colors, or Scalars to be mapped through a lookup ramp at render
// time. Resolve checks the spec against the element count and produces an
// Attribute that geometry can carry.
package colors

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

var (
	// ErrLength is returned when a per-element spec does not match the
	// number of elements it colors.
	ErrLength = errors.New("colors: length does not match element count")

	// ErrRange is returned when a float color component is outside [0,1].
	ErrRange = errors.New("colors: component outside [0,1]")
)

// Spec is one of Solid, PerElement, PerElementBytes or Scalars.
type Spec interface {
	resolve(n int) (Attribute, error)
}

// Solid colors every element with one RGB color in [0,1].
type Solid struct {
	RGB [3]float32
}

// PerElement gives every element its own RGB color in [0,1].
type PerElement struct {
	RGB [][3]float32
}

// PerElementBytes gives every element its own 0-255 RGB color.
type PerElementBytes struct {
	RGB [][3]uint8
}

// Scalars assigns every element a value to be mapped through a ramp.
type Scalars struct {
	Values []float32
}

// Attribute is a resolved per-element array: explicit 8-bit colors or a
// scalar field. Exactly one of RGB and Scalars is set.
type Attribute struct {
	RGB     [][3]uint8
	Scalars []float32
}

// Mapped reports whether the attribute is a scalar field that still has to
// be mapped to colors.
func (a Attribute) Mapped() bool {
	return a.Scalars != nil
}

// Len returns the number of elements covered.
func (a Attribute) Len() int {
	if a.Scalars != nil {
		return len(a.Scalars)
	}
	return len(a.RGB)
}

// Clone returns a deep copy.
func (a Attribute) Clone() Attribute {
	var c Attribute
	if a.RGB != nil {
		c.RGB = append([][3]uint8(nil), a.RGB...)
	}
	if a.Scalars != nil {
		c.Scalars = append([]float32(nil), a.Scalars...)
	}
	return c
}

// Resolve expands spec to an attribute covering n elements.
func Resolve(spec Spec, n int) (Attribute, error) {
	if spec == nil {
		return Attribute{}, errors.New("colors: nil spec")
	}
	return spec.resolve(n)
}

func (s Solid) resolve(n int) (Attribute, error) {
	c, err := rgbBytes(s.RGB)
	if err != nil {
		return Attribute{}, err
	}
	out := make([][3]uint8, n)
	for i := range out {
		out[i] = c
	}
	return Attribute{RGB: out}, nil
}

func (s PerElement) resolve(n int) (Attribute, error) {
	if len(s.RGB) != n {
		return Attribute{}, fmt.Errorf("%w: %d colors for %d elements", ErrLength, len(s.RGB), n)
	}
	out := make([][3]uint8, n)
	for i, c := range s.RGB {
		b, err := rgbBytes(c)
		if err != nil {
			return Attribute{}, fmt.Errorf("colors: element %d: %w", i, err)
		}
		out[i] = b
	}
	return Attribute{RGB: out}, nil
}

func (s PerElementBytes) resolve(n int) (Attribute, error) {
	if len(s.RGB) != n {
		return Attribute{}, fmt.Errorf("%w: %d colors for %d elements", ErrLength, len(s.RGB), n)
	}
	return Attribute{RGB: append([][3]uint8(nil), s.RGB...)}, nil
}

func (s Scalars) resolve(n int) (Attribute, error) {
	if len(s.Values) != n {
		return Attribute{}, fmt.Errorf("%w: %d scalars for %d elements", ErrLength, len(s.Values), n)
	}
	return Attribute{Scalars: append([]float32{}, s.Values...)}, nil
}

func rgbBytes(c [3]float32) ([3]uint8, error) {
	var out [3]uint8
	for k, v := range c {
		if math32.IsNaN(v) || v < 0 || v > 1 {
			return out, fmt.Errorf("%w: %v", ErrRange, c)
		}
		out[k] = ToByte(v)
	}
	return out, nil
}

// ToByte maps a [0,1] component to 0-255 with rounding.
func ToByte(v float32) uint8 {
	v = math32.Max(0, math32.Min(1, v))
	return uint8(math32.Floor(v*255 + 0.5))
}
