package tokens

import (
	"iter"
	"regexp"
	"strconv"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)

// color object keys, in the order the normalizer prefers them.
const (
	KeyHex   = "hex"
	KeyOKLCH = "oklch"
	KeyOkLch = "okLch"
)

// ValueKind discriminates the two shapes a color token can take.
type ValueKind uint8

const (
	ValueString ValueKind = iota + 1
	ValueObject
)

// Value is a color leaf found by Walk: either a color string or a structured
// color object carrying hex/oklch fields.
type Value struct {
	Kind   ValueKind
	Text   string
	Object *Node
}

// StringValue wraps a string color leaf.
func StringValue(s string) Value { return Value{Kind: ValueString, Text: s} }

// ObjectValue wraps a structured color leaf.
func ObjectValue(n *Node) Value { return Value{Kind: ValueObject, Object: n} }

// Source returns the raw token as written: the string itself, or the object
// encoded as compact JSON.
func (v Value) Source() string {
	switch v.Kind {
	case ValueString:
		return v.Text
	case ValueObject:
		data, err := v.Object.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(data)
	default:
		return ""
	}
}

// IsHexColor reports whether s, once trimmed, is '#' followed by 3 to 8 hex digits.
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(strings.TrimSpace(s))
}

// IsOKLCH reports whether s, once trimmed, starts with "oklch(" in any case.
func IsOKLCH(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) >= 6 && strings.EqualFold(s[:6], "oklch(")
}

// IsColorString reports whether a string leaf is a color token.
func IsColorString(s string) bool {
	return IsOKLCH(s) || IsHexColor(s)
}

// IsColorObject reports whether an object is a terminal color token.
func IsColorObject(n *Node) bool {
	if n == nil || n.Kind != KindObject {
		return false
	}
	return n.Get(KeyOKLCH).Truthy() || n.Get(KeyOkLch).Truthy() || n.Get(KeyHex).Truthy()
}

// Walk returns every color leaf of doc as (path, value) pairs, depth-first in
// document order. Each range over the result re-traverses the document.
func Walk(doc *Document) iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if doc == nil || doc.Root == nil {
			return
		}
		walkChildren(doc.Root, "", yield)
	}
}

func walkChildren(n *Node, prefix string, yield func(string, Value) bool) bool {
	switch n.Kind {
	case KindObject:
		for _, f := range n.Fields {
			if !visit(joinPath(prefix, f.Key), f.Value, yield) {
				return false
			}
		}
	case KindArray:
		for i, item := range n.Items {
			if !visit(joinPath(prefix, strconv.Itoa(i)), item, yield) {
				return false
			}
		}
	}
	return true
}

func visit(path string, n *Node, yield func(string, Value) bool) bool {
	if n == nil {
		return true
	}

	switch n.Kind {
	case KindString:
		if IsColorString(n.Str) {
			return yield(path, StringValue(n.Str))
		}
	case KindObject:
		if IsColorObject(n) {
			return yield(path, ObjectValue(n))
		}
		return walkChildren(n, path, yield)
	case KindArray:
		return walkChildren(n, path, yield)
	}
	return true
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
