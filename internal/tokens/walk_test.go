package tokens

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type pair struct {
	Path   string
	Source string
	Kind   ValueKind
}

func collect(t *testing.T, doc *Document) []pair {
	t.Helper()
	var out []pair
	for path, value := range Walk(doc) {
		out = append(out, pair{Path: path, Source: value.Source(), Kind: value.Kind})
	}
	return out
}

func mustDecode(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Decode([]byte(src), "tokens.json", FormatJSON)
	require.NoError(t, err)
	return doc
}

func TestWalkClassifiesLeaves(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
		want []pair
	}{
		{
			name: "empty document yields nothing",
			src:  `{}`,
			want: nil,
		},
		{
			name: "oklch and hex strings",
			src:  `{"color":{"primary":"oklch(0.7 0.15 150)","accent":"#FF00AA","short":"#abc"}}`,
			want: []pair{
				{Path: "color.primary", Source: "oklch(0.7 0.15 150)", Kind: ValueString},
				{Path: "color.accent", Source: "#FF00AA", Kind: ValueString},
				{Path: "color.short", Source: "#abc", Kind: ValueString},
			},
		},
		{
			name: "case-insensitive prefix and surrounding whitespace",
			src:  `{"a":"  OKLCH(0.5 0.1 20) ","b":" #12345678 "}`,
			want: []pair{
				{Path: "a", Source: "  OKLCH(0.5 0.1 20) ", Kind: ValueString},
				{Path: "b", Source: " #12345678 ", Kind: ValueString},
			},
		},
		{
			name: "non color values are skipped",
			src:  `{"spacing":{"sm":"4px","md":8},"font":"Inter","flag":true,"none":null,"tooLong":"#123456789","tooShort":"#12"}`,
			want: nil,
		},
		{
			name: "structured objects are terminal",
			src:  `{"color":{"accent":{"hex":"#FF00AA","nested":{"deep":"#000000"}},"brand":{"okLch":"oklch(0.5 0.2 30)"}}}`,
			want: []pair{
				{Path: "color.accent", Source: `{"hex":"#FF00AA","nested":{"deep":"#000000"}}`, Kind: ValueObject},
				{Path: "color.brand", Source: `{"okLch":"oklch(0.5 0.2 30)"}`, Kind: ValueObject},
			},
		},
		{
			name: "falsy color keys do not make an object terminal",
			src:  `{"group":{"hex":"","oklch":null,"inner":"#fff"}}`,
			want: []pair{
				{Path: "group.inner", Source: "#fff", Kind: ValueString},
			},
		},
		{
			name: "arrays are traversed by index",
			src:  `{"ramp":["#000","plain",{"hex":"#111"}]}`,
			want: []pair{
				{Path: "ramp.0", Source: "#000", Kind: ValueString},
				{Path: "ramp.2", Source: `{"hex":"#111"}`, Kind: ValueObject},
			},
		},
		{
			name: "keys keep document order",
			src:  `{"z":"#000","a":"#111","m":{"y":"#222","b":"#333"}}`,
			want: []pair{
				{Path: "z", Source: "#000", Kind: ValueString},
				{Path: "a", Source: "#111", Kind: ValueString},
				{Path: "m.y", Source: "#222", Kind: ValueString},
				{Path: "m.b", Source: "#333", Kind: ValueString},
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := collect(t, mustDecode(t, tc.src))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("walk mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWalkIsRestartable(t *testing.T) {
	t.Parallel()

	doc := mustDecode(t, `{"a":"#000","b":{"c":"oklch(0.1 0 0)"}}`)
	first := collect(t, doc)
	second := collect(t, doc)
	require.Len(t, first, 2)
	require.Equal(t, first, second)
}

func TestWalkStopsEarly(t *testing.T) {
	t.Parallel()

	doc := mustDecode(t, `{"a":"#000","b":{"c":"#111","d":"#222"},"e":"#333"}`)
	var seen []string
	for path := range Walk(doc) {
		seen = append(seen, path)
		if path == "b.c" {
			break
		}
	}
	require.Equal(t, []string{"a", "b.c"}, seen)
}

func TestWalkNilDocument(t *testing.T) {
	t.Parallel()

	for range Walk(nil) {
		t.Fatal("nil document must not yield")
	}
}

func TestWalkPathsAreUnique(t *testing.T) {
	t.Parallel()

	doc := mustDecode(t, `{"a":"#000","a":"#111","b":{"c":"#222"}}`)
	seen := map[string]int{}
	for path := range Walk(doc) {
		seen[path]++
	}
	require.Equal(t, map[string]int{"a": 1, "b.c": 1}, seen)
}

func TestColorPredicates(t *testing.T) {
	t.Parallel()

	require.True(t, IsHexColor("#aabbcc"))
	require.True(t, IsHexColor(" #ABC "))
	require.False(t, IsHexColor("aabbcc"))
	require.False(t, IsHexColor("#ggg"))
	require.True(t, IsOKLCH("oklch(0.5 0.1 10)"))
	require.True(t, IsOKLCH("OkLcH(garbage)"))
	require.False(t, IsOKLCH("oklab(0.5 0.1 0.1)"))
	require.False(t, IsOKLCH("okl"))

	require.True(t, IsColorObject(NewObject(Field{Key: "oklch", Value: NewString("oklch(0 0 0)")})))
	require.True(t, IsColorObject(NewObject(Field{Key: "hex", Value: NewNumber(1)})))
	require.False(t, IsColorObject(NewObject(Field{Key: "hex", Value: NewBool(false)})))
	require.False(t, IsColorObject(NewString("#fff")))
}
