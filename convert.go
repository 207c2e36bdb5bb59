package glide

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Converter bijects a domain value to and from a fixed-size float64 vector.
// Trajectories are computed in vector space so interpolation and velocity
// arithmetic work uniformly across value types.
type Converter interface {
	// Dim is the vector length this converter produces and accepts.
	Dim() int

	// ToVector maps a domain value into vector space. A value the converter
	// cannot represent returns a *ConverterMismatchError.
	ToVector(v any) ([]float64, error)

	// FromVector maps a vector back to a domain value. The vector length
	// must equal Dim.
	FromVector(vec []float64) (any, error)
}

// Float64Converter converts float64 values to one-dimensional vectors.
type Float64Converter struct{}

// Dim returns 1.
func (Float64Converter) Dim() int { return 1 }

// ToVector wraps the float in a single-component vector.
func (Float64Converter) ToVector(v any) ([]float64, error) {
	f, ok := v.(float64)
	if !ok {
		return nil, &ConverterMismatchError{Value: v, Want: "float64"}
	}
	return []float64{f}, nil
}

// FromVector unwraps the single component.
func (Float64Converter) FromVector(vec []float64) (any, error) {
	if len(vec) != 1 {
		return nil, &ConverterMismatchError{Value: vec, Want: "1-component vector"}
	}
	return vec[0], nil
}

var _ Converter = Float64Converter{}

// IntConverter converts int values to one-dimensional vectors. Vector
// components are rounded to the nearest integer on the way back, so an
// animating int cell steps through whole values.
type IntConverter struct{}

// Dim returns 1.
func (IntConverter) Dim() int { return 1 }

// ToVector widens the int to a single-component vector.
func (IntConverter) ToVector(v any) ([]float64, error) {
	i, ok := v.(int)
	if !ok {
		return nil, &ConverterMismatchError{Value: v, Want: "int"}
	}
	return []float64{float64(i)}, nil
}

// FromVector rounds the single component to the nearest int.
func (IntConverter) FromVector(vec []float64) (any, error) {
	if len(vec) != 1 {
		return nil, &ConverterMismatchError{Value: vec, Want: "1-component vector"}
	}
	return int(math.Round(vec[0])), nil
}

var _ Converter = IntConverter{}

// ColorConverter converts colorful.Color values through CIE Lab space, so
// interpolation between colors is perceptually uniform rather than a
// straight RGB crossfade.
type ColorConverter struct{}

// Dim returns 3.
func (ColorConverter) Dim() int { return 3 }

// ToVector maps the color to its Lab coordinates.
func (ColorConverter) ToVector(v any) ([]float64, error) {
	c, ok := v.(colorful.Color)
	if !ok {
		return nil, &ConverterMismatchError{Value: v, Want: "colorful.Color"}
	}
	l, a, b := c.Lab()
	return []float64{l, a, b}, nil
}

// FromVector reconstructs a color from Lab coordinates, clamped into the
// RGB gamut so intermediate frames stay displayable.
func (ColorConverter) FromVector(vec []float64) (any, error) {
	if len(vec) != 3 {
		return nil, &ConverterMismatchError{Value: vec, Want: "3-component vector"}
	}
	return colorful.Lab(vec[0], vec[1], vec[2]).Clamped(), nil
}

var _ Converter = ColorConverter{}
