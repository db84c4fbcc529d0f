package raster

import (
	"math"

	"meshscene/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters. Directions are in
// camera space: +x right, +y up, +z towards the viewer.
type LightConfig struct {
	LightDir  mathutil.Vec3
	RimDir    mathutil.Vec3
	ViewDir   mathutil.Vec3
	HalfMain  mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient   float64
	Hemi      float64
	Direct    float64
	Rim       float64
	SpecInt   float64
	SpecPow   float64
	Exposure  float64
	SRGBGamma float64
	InvGamma  float64
}

// DefaultLightConfig returns a key light above-right of the camera with a
// dimmer rim light behind the subject.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{0.35, 0.5, 0.8}.Normalize()
	rimDir := mathutil.Vec3{-0.5, 0.4, -0.75}.Normalize()
	viewDir := mathutil.Vec3{0, 0, -1}

	halfMain := lightDir.Sub(viewDir).Normalize()

	return LightConfig{
		LightDir:  lightDir,
		RimDir:    rimDir,
		ViewDir:   viewDir,
		HalfMain:  halfMain,
		Ambient:   0.35,
		Hemi:      0.25,
		Direct:    0.75,
		Rim:       0.20,
		SpecInt:   0.25,
		SpecPow:   24.0,
		Exposure:  1.0,
		SRGBGamma: 2.2,
		InvGamma:  1.0 / 2.2,
	}
}

// ComputeShade returns the combined lighting scalar for a camera-space
// normal. Surfaces are lit from both sides.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	// Lambertian (abs for double-sided)
	ndlMain := math.Abs(normal.Dot(lc.LightDir))
	ndlRim := math.Abs(normal.Dot(lc.RimDir))

	// Hemisphere fill
	hemi := (1.0-math.Abs(normal[1]))*0.5 + 0.5
	hemiLight := hemi * lc.Hemi

	// Blinn-Phong specular
	ndh := math.Abs(normal.Dot(lc.HalfMain))
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// Apply lights an sRGB color: decode to linear, scale by shade, tone map
// and encode back. The result is in 0..255.
func (lc *LightConfig) Apply(c [3]uint8, shade float64) [3]float64 {
	var out [3]float64
	for k := 0; k < 3; k++ {
		l := srgbToLinear[c[k]] * shade * lc.Exposure
		out[k] = math.Pow(ACESTonemap(l), lc.InvGamma) * 255
	}
	return out
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func flat(c [3]uint8) [3]float64 {
	return [3]float64{float64(c[0]), float64(c[1]), float64(c[2])}
}
