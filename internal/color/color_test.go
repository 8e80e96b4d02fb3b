package color

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/tokenhex/internal/tokens"
	tokenerrors "github.com/alexisbeaulieu97/tokenhex/pkg/errors"
)

var canonicalHex = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestParseOKLCH(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want OKLCH
	}{
		{name: "plain numbers", in: "oklch(0.7 0.15 150)", want: OKLCH{L: 0.7, C: 0.15, H: 150, Alpha: 1}},
		{name: "percentages", in: "oklch(50% 50% 90)", want: OKLCH{L: 0.5, C: 0.2, H: 90, Alpha: 1}},
		{name: "uppercase name and padding", in: "  OKLCH( 0.5   0.1  20 )  ", want: OKLCH{L: 0.5, C: 0.1, H: 20, Alpha: 1}},
		{name: "alpha", in: "oklch(0.5 0.1 20 / 50%)", want: OKLCH{L: 0.5, C: 0.1, H: 20, Alpha: 0.5}},
		{name: "none components", in: "oklch(none none none)", want: OKLCH{Alpha: 1}},
		{name: "turn hue", in: "oklch(0.5 0.1 0.5turn)", want: OKLCH{L: 0.5, C: 0.1, H: 180, Alpha: 1}},
		{name: "negative hue wraps", in: "oklch(0.5 0.1 -90deg)", want: OKLCH{L: 0.5, C: 0.1, H: 270, Alpha: 1}},
		{name: "grad hue", in: "oklch(0.5 0.1 100grad)", want: OKLCH{L: 0.5, C: 0.1, H: 90, Alpha: 1}},
		{name: "exponent and leading dot", in: "oklch(.5 1e-1 +2E1)", want: OKLCH{L: 0.5, C: 0.1, H: 20, Alpha: 1}},
		{name: "lightness clamps", in: "oklch(1.5 -0.2 10)", want: OKLCH{L: 1, C: 0, H: 10, Alpha: 1}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseOKLCH(tc.in)
			require.NoError(t, err)
			require.InDelta(t, tc.want.L, got.L, 1e-9)
			require.InDelta(t, tc.want.C, got.C, 1e-9)
			require.InDelta(t, tc.want.H, got.H, 1e-9)
			require.InDelta(t, tc.want.Alpha, got.Alpha, 1e-9)
		})
	}
}

func TestParseOKLCHRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"oklch(garbage)",
		"oklch(not-a-color)",
		"oklch(0.5 0.1)",
		"oklch(0.5 0.1 20 30)",
		"oklch(0.5 0.1 20",
		"oklch(0.5, 0.1, 20)",
		"oklch(NaN 0.1 20)",
		"oklch(Inf 0.1 20)",
		"oklch(1e999 0.1 20)",
		"oklch(0x1p-1 0.1 20)",
		"oklch(0.5 0x_1p0 20)",
		"oklch(0.5 0.1 1_0deg)",
		"oklch(1. 0.1 20)",
		"oklch(0.5 0.1 20 / )",
		"oklch(0.5 0.1 20 / 1 2)",
		"oklab(0.5 0.1 0.1)",
		"#ffffff",
	} {
		_, err := ParseOKLCH(in)
		require.Error(t, err, in)
	}
}

func TestOKLCHToHex(t *testing.T) {
	t.Parallel()

	hex, err := OKLCHToHex("oklch(1 0 0)")
	require.NoError(t, err)
	require.Equal(t, "#ffffff", hex)

	hex, err = OKLCHToHex("oklch(0 0 0)")
	require.NoError(t, err)
	require.Equal(t, "#000000", hex)

	hex, err = OKLCHToHex("oklch(50% 0 0)")
	require.NoError(t, err)
	require.Equal(t, "#636363", hex)

	for _, in := range []string{
		"oklch(0.7 0.15 150)",
		"oklch(0.9 0.4 300)",
		"oklch(0.2 0.37 20 / 0.3)",
	} {
		hex, err := OKLCHToHex(in)
		require.NoError(t, err)
		require.Regexp(t, canonicalHex, hex, in)
	}
}

func TestNormalizeStrings(t *testing.T) {
	t.Parallel()

	lower := NewNormalizer(Options{})
	preserve := NewNormalizer(Options{HexCase: HexCasePreserve})

	hex, err := lower.Normalize(tokens.StringValue("#aabbcc"))
	require.NoError(t, err)
	require.Equal(t, "#aabbcc", hex)

	hex, err = lower.Normalize(tokens.StringValue("#FF00AA"))
	require.NoError(t, err)
	require.Equal(t, "#ff00aa", hex)

	hex, err = preserve.Normalize(tokens.StringValue("#FF00AA"))
	require.NoError(t, err)
	require.Equal(t, "#FF00AA", hex)

	hex, err = preserve.Normalize(tokens.StringValue("oklch(1 0 0)"))
	require.NoError(t, err)
	require.Equal(t, "#ffffff", hex)

	hex, err = lower.Normalize(tokens.StringValue(" oklch(0.7 0.15 150) "))
	require.NoError(t, err)
	require.Regexp(t, canonicalHex, hex)
}

func TestNormalizeFailures(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(Options{})
	cases := []struct {
		name   string
		value  tokens.Value
		reason string
	}{
		{name: "unparseable oklch", value: tokens.StringValue("oklch(garbage)"), reason: tokenerrors.ReasonConversionFailed},
		{name: "hex float lightness", value: tokens.StringValue("oklch(0x1p-1 0.1 20)"), reason: tokenerrors.ReasonConversionFailed},
		{name: "plain string", value: tokens.StringValue("red"), reason: tokenerrors.ReasonConversionFailed},
		{
			name:   "object oklch field fails",
			value:  tokens.ObjectValue(tokens.NewObject(tokens.Field{Key: "oklch", Value: tokens.NewString("oklch(bad)")})),
			reason: tokenerrors.ReasonConversionFailed,
		},
		{
			name:   "object without usable fields",
			value:  tokens.ObjectValue(tokens.NewObject(tokens.Field{Key: "hex", Value: tokens.NewBool(true)}, tokens.Field{Key: "name", Value: tokens.NewString("brand")})),
			reason: tokenerrors.ReasonMissingHex,
		},
		{name: "zero value", value: tokens.Value{}, reason: tokenerrors.ReasonMissingHex},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			hex, err := n.Normalize(tc.value)
			require.Empty(t, hex)
			var convErr *tokenerrors.ConversionError
			require.ErrorAs(t, err, &convErr)
			require.Equal(t, tc.reason, convErr.Reason)
		})
	}
}

func TestNormalizeObjects(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(Options{})
	preserve := NewNormalizer(Options{HexCase: HexCasePreserve})

	accent := tokens.ObjectValue(tokens.NewObject(tokens.Field{Key: "hex", Value: tokens.NewString("#FF00AA")}))
	hex, err := preserve.Normalize(accent)
	require.NoError(t, err)
	require.Equal(t, "#FF00AA", hex)

	hex, err = n.Normalize(accent)
	require.NoError(t, err)
	require.Equal(t, "#ff00aa", hex)

	hexWins := tokens.ObjectValue(tokens.NewObject(
		tokens.Field{Key: "oklch", Value: tokens.NewString("oklch(0 0 0)")},
		tokens.Field{Key: "hex", Value: tokens.NewString("#123456")},
	))
	hex, err = n.Normalize(hexWins)
	require.NoError(t, err)
	require.Equal(t, "#123456", hex)

	okLch := tokens.ObjectValue(tokens.NewObject(tokens.Field{Key: "okLch", Value: tokens.NewString("oklch(1 0 0)")}))
	hex, err = n.Normalize(okLch)
	require.NoError(t, err)
	require.Equal(t, "#ffffff", hex)

	fallback := tokens.ObjectValue(tokens.NewObject(
		tokens.Field{Key: "oklch", Value: tokens.NewNumber(1)},
		tokens.Field{Key: "description", Value: tokens.NewString("brand")},
		tokens.Field{Key: "value", Value: tokens.NewString("oklch(0 0 0)")},
		tokens.Field{Key: "alt", Value: tokens.NewString("#ffffff")},
	))
	hex, err = n.Normalize(fallback)
	require.NoError(t, err)
	require.Equal(t, "#000000", hex, "first matching field in document order wins")
}
