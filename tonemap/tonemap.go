// Package tonemap implements the four HDR-to-displayable color operators:
// Reinhard (extended), Hable (Uncharted 2), ACES (Narkowicz fit) and the
// identity None operator.
package tonemap

import "github.com/sakarias88/racer-tracer/vec3"

// ToneMap maps a linear-light HDR color to a displayable color.
type ToneMap interface {
	ToneMap(c vec3.Color) vec3.Color
}

// luminanceWeights are the Rec. 709 relative luminance coefficients used
// by Reinhard's change-of-luminance step.
var luminanceWeights = vec3.New(0.2126, 0.7152, 0.0722)

// Reinhard implements the extended Reinhard operator, which preserves hue
// and saturation by scaling the color toward a new luminance rather than
// clamping channels independently.
type Reinhard struct {
	maxWhitePow float64
}

// NewReinhard returns a Reinhard operator with the given maximum
// displayable white luminance.
func NewReinhard(maxWhite float64) *Reinhard {
	return &Reinhard{maxWhitePow: maxWhite * maxWhite}
}

func luminance(c vec3.Color) float64 { return c.Dot(luminanceWeights) }

// ToneMap implements ToneMap.
func (r *Reinhard) ToneMap(c vec3.Color) vec3.Color {
	lOld := luminance(c)
	if lOld == 0 {
		return c
	}
	lNew := lOld * (1 + lOld/r.maxWhitePow) / (1 + lOld)
	return c.Scale(lNew / lOld)
}

// HableData bundles the Uncharted-2 filmic curve's shoulder/linear/toe
// coefficients.
type HableData struct {
	ShoulderStrength float64
	LinearStrength   float64
	LinearAngle      float64
	ToeStrength      float64
	ToeNumerator     float64
	ToeDenominator   float64
}

// DefaultHableData returns the reference implementation's default curve
// coefficients.
func DefaultHableData() HableData {
	return HableData{
		ShoulderStrength: 0.15,
		LinearStrength:   0.5,
		LinearAngle:      0.1,
		ToeStrength:      0.2,
		ToeNumerator:     0.02,
		ToeDenominator:   0.3,
	}
}

// Hable implements the Uncharted-2 filmic tone curve, normalized so that
// LinearWhitePoint maps to 1.0 after an exposure-bias premultiplication.
type Hable struct {
	data         HableData
	toeAngle     float64
	exposureBias float64
	whiteScale   float64
}

// NewHable returns a Hable operator built from data, exposureBias and
// linearWhitePoint.
func NewHable(data HableData, exposureBias, linearWhitePoint float64) *Hable {
	toeAngle := data.ToeNumerator / data.ToeDenominator
	h := &Hable{data: data, toeAngle: toeAngle, exposureBias: exposureBias}
	h.whiteScale = 1.0 / hablePartial(linearWhitePoint, data, toeAngle)
	return h
}

func hablePartial(x float64, d HableData, toeAngle float64) float64 {
	a, b, c := d.ShoulderStrength, d.LinearStrength, d.LinearAngle
	dd, e, f := d.ToeStrength, d.ToeNumerator, d.ToeDenominator
	return ((x*(a*x+c*b)+dd*e)/(x*(a*x+b)+dd*f)) - toeAngle
}

// ToneMap implements ToneMap.
func (h *Hable) ToneMap(c vec3.Color) vec3.Color {
	exposed := c.Scale(h.exposureBias)
	mapped := vec3.New(
		hablePartial(exposed.X(), h.data, h.toeAngle),
		hablePartial(exposed.Y(), h.data, h.toeAngle),
		hablePartial(exposed.Z(), h.data, h.toeAngle),
	)
	return mapped.Scale(h.whiteScale)
}

// Matrix3 is a 3x3 matrix applied to a color as a linear color-space
// transform, row-major.
type Matrix3 [3]vec3.Vec3

// Aces implements the Narkowicz ACES filmic fit: an input color-space
// transform, a per-channel rational curve, and an output transform.
type Aces struct {
	Input, Output Matrix3
}

// DefaultAcesInput returns the reference sRGB-to-ACES approximation matrix.
func DefaultAcesInput() Matrix3 {
	return Matrix3{
		vec3.New(0.59719, 0.35458, 0.04823),
		vec3.New(0.07600, 0.90834, 0.01566),
		vec3.New(0.02840, 0.13383, 0.83777),
	}
}

// DefaultAcesOutput returns the reference ACES-to-sRGB approximation matrix.
func DefaultAcesOutput() Matrix3 {
	return Matrix3{
		vec3.New(1.60475, -0.53108, -0.07367),
		vec3.New(-0.10208, 1.10813, -0.00605),
		vec3.New(-0.00327, -0.07276, 1.07602),
	}
}

// NewAces returns an Aces operator with the given input/output matrices.
func NewAces(input, output Matrix3) *Aces {
	return &Aces{Input: input, Output: output}
}

func mulMatrix3(m Matrix3, c vec3.Color) vec3.Color {
	return vec3.New(m[0].Dot(c), m[1].Dot(c), m[2].Dot(c))
}

func rttAndOdtFit(c vec3.Color) vec3.Color {
	a := c.Mul(c.Add(vec3.New(0.0245786, 0.0245786, 0.0245786))).Sub(vec3.New(0.000090537, 0.000090537, 0.000090537))
	b := c.Scale(0.983729).Add(vec3.New(0.4329510, 0.4329510, 0.4329510)).Mul(c).Add(vec3.New(0.238081, 0.238081, 0.238081))
	return vec3.New(a.X()/b.X(), a.Y()/b.Y(), a.Z()/b.Z())
}

// ToneMap implements ToneMap.
func (a *Aces) ToneMap(c vec3.Color) vec3.Color {
	return mulMatrix3(a.Output, rttAndOdtFit(mulMatrix3(a.Input, c)))
}

// None is the identity operator.
type None struct{}

// NewNone returns the identity tone-map operator.
func NewNone() None { return None{} }

// ToneMap implements ToneMap.
func (None) ToneMap(c vec3.Color) vec3.Color { return c }
