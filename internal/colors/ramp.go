package colors

import "github.com/chewxy/math32"

// Hue range of a freshly built lookup table: low values red, high values blue.
const (
	rampHueLow  = 0.0
	rampHueHigh = 0.66667
)

// NaNColor is used for scalars that are NaN.
var NaNColor = [3]uint8{128, 0, 0}

// Range returns the smallest and largest non-NaN value. ok is false when
// values holds no finite number.
func Range(values []float32) (lo, hi float32, ok bool) {
	lo, hi = math32.Inf(1), math32.Inf(-1)
	for _, v := range values {
		if math32.IsNaN(v) {
			continue
		}
		lo = math32.Min(lo, v)
		hi = math32.Max(hi, v)
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// NormalizeMax divides values by their NaN-ignoring maximum. Values are
// returned unchanged (copied) when the maximum is zero or missing.
func NormalizeMax(values []float32) []float32 {
	out := append([]float32(nil), values...)
	_, hi, ok := Range(values)
	if !ok || hi == 0 {
		return out
	}
	for i := range out {
		out[i] /= hi
	}
	return out
}

// Ramp maps v over [lo,hi] onto the default hue ramp.
func Ramp(v, lo, hi float32) [3]uint8 {
	if math32.IsNaN(v) {
		return NaNColor
	}
	t := float32(0)
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	t = math32.Max(0, math32.Min(1, t))
	return hsvToRGB(rampHueLow+t*(rampHueHigh-rampHueLow), 1, 1)
}

// MapScalars maps every value through Ramp using the field's own range.
func MapScalars(values []float32) [][3]uint8 {
	lo, hi, _ := Range(values)
	out := make([][3]uint8, len(values))
	for i, v := range values {
		out[i] = Ramp(v, lo, hi)
	}
	return out
}

func hsvToRGB(h, s, v float32) [3]uint8 {
	h6 := h * 6
	i := math32.Floor(h6)
	f := h6 - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	u := v * (1 - s*(1-f))

	var r, g, b float32
	switch int(i) % 6 {
	case 0:
		r, g, b = v, u, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, u
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = u, p, v
	default:
		r, g, b = v, p, q
	}
	return [3]uint8{ToByte(r), ToByte(g), ToByte(b)}
}
