package alert

import "math"

// Color is a background category token understood by the alert stylesheet.
type Color string

const (
	Primary   Color = "primary"
	Secondary Color = "secondary"
	Success   Color = "success"
	Danger    Color = "danger"
	Warning   Color = "warning"
	Info      Color = "info"
	Light     Color = "light"
	Dark      Color = "dark"
)

// colors is the fixed ordering used for numeric resolution (1-based).
var colors = [...]Color{Primary, Secondary, Success, Danger, Warning, Info, Light, Dark}

// Colors returns the valid tokens in their fixed order.
func Colors() []Color {
	out := make([]Color, len(colors))
	copy(out, colors[:])
	return out
}

// Valid reports whether c is one of the known tokens.
func (c Color) Valid() bool {
	for _, v := range colors {
		if v == c {
			return true
		}
	}
	return false
}

func (c Color) String() string {
	return string(c)
}

// Resolve maps input to a Color. Integers in [1, 8] select by position,
// whole floats are treated as integers, and strings must match a token exactly.
// Anything else yields fallback, or Primary when fallback is not valid either.
func Resolve(input any, fallback Color) Color {
	if !fallback.Valid() {
		fallback = Primary
	}

	switch v := input.(type) {
	case Color:
		if v.Valid() {
			return v
		}
	case string:
		if c := Color(v); c.Valid() {
			return c
		}
	case int:
		return byIndex(int64(v), fallback)
	case int8:
		return byIndex(int64(v), fallback)
	case int16:
		return byIndex(int64(v), fallback)
	case int32:
		return byIndex(int64(v), fallback)
	case int64:
		return byIndex(v, fallback)
	case uint:
		return byIndex(int64(min(v, math.MaxInt32)), fallback)
	case uint8:
		return byIndex(int64(v), fallback)
	case uint16:
		return byIndex(int64(v), fallback)
	case uint32:
		return byIndex(int64(v), fallback)
	case uint64:
		return byIndex(int64(min(v, math.MaxInt32)), fallback)
	case float32:
		return byFloat(float64(v), fallback)
	case float64:
		return byFloat(v, fallback)
	}
	return fallback
}

func byIndex(n int64, fallback Color) Color {
	if n < 1 || n > int64(len(colors)) {
		return fallback
	}
	return colors[n-1]
}

func byFloat(f float64, fallback Color) Color {
	if math.IsNaN(f) || f != math.Trunc(f) || f < 1 || f > float64(len(colors)) {
		return fallback
	}
	return byIndex(int64(f), fallback)
}
