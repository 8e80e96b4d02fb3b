package color

import (
	"errors"
	"strings"

	"github.com/alexisbeaulieu97/tokenhex/internal/tokens"
	tokenerrors "github.com/alexisbeaulieu97/tokenhex/pkg/errors"
)

// HexCase controls how pass-through hex strings are reported.
type HexCase string

const (
	// HexCaseLower lowercases every reported hex value.
	HexCaseLower HexCase = "lower"
	// HexCasePreserve reports pass-through hex values exactly as authored.
	// Hex derived from oklch() is lowercase either way.
	HexCasePreserve HexCase = "preserve"
)

var (
	errNotAColor   = errors.New("value is neither a hex nor an oklch() color")
	errNoColorData = errors.New("object has no usable hex or oklch field")
)

// Options configures a Normalizer.
type Options struct {
	HexCase HexCase
}

// Normalizer maps token values to hex strings.
type Normalizer struct {
	hexCase HexCase
}

// NewNormalizer builds a Normalizer. An empty HexCase means HexCaseLower.
func NewNormalizer(opts Options) *Normalizer {
	hexCase := opts.HexCase
	if hexCase == "" {
		hexCase = HexCaseLower
	}
	return &Normalizer{hexCase: hexCase}
}

// Normalize returns the hex form of v. Failures are *errors.ConversionError
// with reason conversion_failed or conversion_failed_or_missing_hex.
func (n *Normalizer) Normalize(v tokens.Value) (string, error) {
	switch v.Kind {
	case tokens.ValueString:
		return n.fromString(v.Text)
	case tokens.ValueObject:
		return n.fromObject(v.Object)
	default:
		return "", tokenerrors.NewConversionError(tokenerrors.ReasonMissingHex, errNoColorData)
	}
}

func (n *Normalizer) fromString(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	switch {
	case tokens.IsOKLCH(s):
		hex, err := OKLCHToHex(s)
		if err != nil {
			return "", tokenerrors.NewConversionError(tokenerrors.ReasonConversionFailed, err)
		}
		return hex, nil
	case strings.HasPrefix(s, "#"):
		return n.passThrough(s), nil
	default:
		return "", tokenerrors.NewConversionError(tokenerrors.ReasonConversionFailed, errNotAColor)
	}
}

// fromObject checks hex, then oklch/okLch, then the first own string field
// that looks like a color.
func (n *Normalizer) fromObject(obj *tokens.Node) (string, error) {
	if obj == nil || obj.Kind != tokens.KindObject {
		return "", tokenerrors.NewConversionError(tokenerrors.ReasonMissingHex, errNoColorData)
	}

	if hex := obj.Get(tokens.KeyHex); hex != nil && hex.Kind == tokens.KindString && hex.Str != "" {
		return n.passThrough(hex.Str), nil
	}

	for _, key := range []string{tokens.KeyOKLCH, tokens.KeyOkLch} {
		if field := obj.Get(key); field != nil && field.Kind == tokens.KindString && field.Str != "" {
			return n.fromString(field.Str)
		}
	}

	for _, f := range obj.Fields {
		if f.Value == nil || f.Value.Kind != tokens.KindString {
			continue
		}
		if tokens.IsColorString(f.Value.Str) {
			return n.fromString(f.Value.Str)
		}
	}

	return "", tokenerrors.NewConversionError(tokenerrors.ReasonMissingHex, errNoColorData)
}

func (n *Normalizer) passThrough(hex string) string {
	if n.hexCase == HexCasePreserve {
		return hex
	}
	return strings.ToLower(hex)
}
