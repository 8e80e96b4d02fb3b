// Package color converts design token color values to canonical sRGB hex.
package color

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const oklchPrefix = "oklch("

// chromaReference is the chroma that 100% maps to in CSS Color 4.
const chromaReference = 0.4

var (
	// cssNumber is the CSS <number> token: no hex floats, digit separators,
	// or named infinities.
	cssNumber = regexp.MustCompile(`^[+-]?(\d+|\d*\.\d+)([eE][+-]?\d+)?$`)

	errNotOKLCH      = errors.New("not an oklch() color")
	errUnterminated  = errors.New("missing closing parenthesis")
	errComponentSize = errors.New("expected lightness, chroma and hue")
)

// OKLCH holds a parsed oklch() color. H is in degrees, Alpha in [0,1].
type OKLCH struct {
	L     float64
	C     float64
	H     float64
	Alpha float64
}

// ParseOKLCH parses the CSS Color 4 form `oklch(L C H [/ A])`.
func ParseOKLCH(s string) (OKLCH, error) {
	s = strings.TrimSpace(s)
	if len(s) < len(oklchPrefix) || !strings.EqualFold(s[:len(oklchPrefix)], oklchPrefix) {
		return OKLCH{}, errNotOKLCH
	}
	if !strings.HasSuffix(s, ")") {
		return OKLCH{}, errUnterminated
	}

	body := s[len(oklchPrefix) : len(s)-1]
	channels, alphaPart, hasAlpha := strings.Cut(body, "/")

	parts := strings.Fields(channels)
	if len(parts) != 3 {
		return OKLCH{}, fmt.Errorf("%w, got %d components", errComponentSize, len(parts))
	}

	l, err := parseComponent(parts[0], 1)
	if err != nil {
		return OKLCH{}, fmt.Errorf("lightness: %w", err)
	}
	c, err := parseComponent(parts[1], chromaReference)
	if err != nil {
		return OKLCH{}, fmt.Errorf("chroma: %w", err)
	}
	h, err := parseHue(parts[2])
	if err != nil {
		return OKLCH{}, fmt.Errorf("hue: %w", err)
	}

	alpha := 1.0
	if hasAlpha {
		alphaFields := strings.Fields(alphaPart)
		if len(alphaFields) != 1 {
			return OKLCH{}, errors.New("alpha: expected a single value")
		}
		alpha, err = parseComponent(alphaFields[0], 1)
		if err != nil {
			return OKLCH{}, fmt.Errorf("alpha: %w", err)
		}
	}

	return OKLCH{
		L:     clamp(l, 0, 1),
		C:     math.Max(c, 0),
		H:     h,
		Alpha: clamp(alpha, 0, 1),
	}, nil
}

// Color converts to sRGB. The result may be out of gamut.
func (o OKLCH) Color() colorful.Color {
	return colorful.OkLch(o.L, o.C, o.H)
}

// Hex returns the gamut-clipped color as lowercase #rrggbb.
func (o OKLCH) Hex() string {
	return o.Color().Clamped().Hex()
}

// OKLCHToHex parses an oklch() string and formats it as lowercase #rrggbb.
func OKLCHToHex(s string) (string, error) {
	parsed, err := ParseOKLCH(s)
	if err != nil {
		return "", err
	}
	return parsed.Hex(), nil
}

// parseComponent reads a number or percentage; 100% maps to ref.
func parseComponent(tok string, ref float64) (float64, error) {
	if strings.EqualFold(tok, "none") {
		return 0, nil
	}
	if pct, ok := strings.CutSuffix(tok, "%"); ok {
		v, err := parseNumber(pct)
		if err != nil {
			return 0, err
		}
		return v / 100 * ref, nil
	}
	return parseNumber(tok)
}

func parseHue(tok string) (float64, error) {
	if strings.EqualFold(tok, "none") {
		return 0, nil
	}

	lower := strings.ToLower(tok)
	scale := 1.0
	for _, unit := range []struct {
		suffix string
		scale  float64
	}{
		{"deg", 1},
		{"grad", 360.0 / 400.0},
		{"rad", 180 / math.Pi},
		{"turn", 360},
	} {
		if strings.HasSuffix(lower, unit.suffix) {
			lower = strings.TrimSuffix(lower, unit.suffix)
			scale = unit.scale
			break
		}
	}

	v, err := parseNumber(lower)
	if err != nil {
		return 0, err
	}

	deg := math.Mod(v*scale, 360)
	if deg < 0 {
		deg += 360
	}
	return deg, nil
}

func parseNumber(tok string) (float64, error) {
	if !cssNumber.MatchString(tok) {
		return 0, fmt.Errorf("invalid number %q", tok)
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", tok)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", tok)
	}
	return v, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
