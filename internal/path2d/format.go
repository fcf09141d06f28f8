package path2d

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// PiConstant is the target-language spelling of π.
const PiConstant = "M_PI"

var numPrefix = regexp.MustCompile(`-?\d+\.?\d?`)

// FormatNum renders v for generated code: the integer part and at most one
// fractional digit, truncated (not rounded), always with a decimal point.
//
//	3       -> "3.0"
//	3.14159 -> "3.1"
//	-0.05   -> "-0.0"
func FormatNum(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	m := numPrefix.FindString(s)
	switch {
	case m == "":
		return s
	case strings.HasSuffix(m, "."):
		return m + "0"
	case !strings.Contains(m, "."):
		return m + ".0"
	}
	return m
}

// FormatRadians renders an angle as a multiple of π after normalizing it
// into [0, 2π): 0 is "0.0f", π is PiConstant, anything else is
// "M_PI * <fraction>f".
func FormatRadians(a float64) string {
	n := normalizeAngle(a)
	frac := FormatNum(n / math.Pi)
	switch frac {
	case "0.0":
		return "0.0f"
	case "1.0":
		return PiConstant
	}
	return PiConstant + " * " + frac + "f"
}

func normalizeAngle(a float64) float64 {
	const twoPi = 2 * math.Pi
	n := math.Mod(a, twoPi)
	if n < 0 {
		n += twoPi
	}
	if n >= twoPi {
		n = 0
	}
	return n
}

func formatVec(p *Point) string {
	return "vec2( " + FormatNum(p.Pos.X) + ", " + FormatNum(p.Pos.Y) + " )"
}
