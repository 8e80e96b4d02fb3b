package tokens

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind identifies the shape of a Node.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "null"
	}
}

// Field is a single key of an object node. Fields keep document order.
type Field struct {
	Key   string
	Value *Node
}

// Node is one value in a token document.
type Node struct {
	Kind   Kind
	Str    string
	Num    float64
	Bool   bool
	Fields []Field
	Items  []*Node

	// numText keeps the literal so re-encoding does not reformat numbers.
	numText string
}

// Document is a decoded token tree whose root is always an object.
type Document struct {
	Root *Node
}

// NewString returns a string node.
func NewString(s string) *Node { return &Node{Kind: KindString, Str: s} }

// NewNumber returns a number node.
func NewNumber(f float64) *Node { return &Node{Kind: KindNumber, Num: f} }

// NewBool returns a bool node.
func NewBool(b bool) *Node { return &Node{Kind: KindBool, Bool: b} }

// NewObject returns an object node with the given fields. Later duplicates
// overwrite earlier values but keep the earlier position.
func NewObject(fields ...Field) *Node {
	n := &Node{Kind: KindObject}
	for _, f := range fields {
		n.set(f.Key, f.Value)
	}
	return n
}

// NewArray returns an array node.
func NewArray(items ...*Node) *Node { return &Node{Kind: KindArray, Items: items} }

// Get returns the value stored under key, or nil when n is not an object or
// the key is absent.
func (n *Node) Get(key string) *Node {
	if n == nil || n.Kind != KindObject {
		return nil
	}
	for _, f := range n.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// Truthy reports whether the node counts as set when classifying color
// objects: non-empty strings, non-zero numbers, true, and any object or array.
func (n *Node) Truthy() bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case KindString:
		return n.Str != ""
	case KindNumber:
		return n.Num != 0 && n.Num == n.Num
	case KindBool:
		return n.Bool
	case KindObject, KindArray:
		return true
	default:
		return false
	}
}

func (n *Node) set(key string, value *Node) {
	for i := range n.Fields {
		if n.Fields[i].Key == key {
			n.Fields[i].Value = value
			return
		}
	}
	n.Fields = append(n.Fields, Field{Key: key, Value: value})
}

// MarshalJSON encodes the node as compact JSON in document order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) encode(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}

	switch n.Kind {
	case KindString:
		return encodeString(buf, n.Str)
	case KindNumber:
		if n.numText != "" {
			buf.WriteString(n.numText)
		} else {
			buf.WriteString(strconv.FormatFloat(n.Num, 'g', -1, 64))
		}
	case KindBool:
		buf.WriteString(strconv.FormatBool(n.Bool))
	case KindObject:
		buf.WriteByte('{')
		for i, f := range n.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, f.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := f.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindArray:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		buf.WriteString("null")
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	var scratch bytes.Buffer
	enc := json.NewEncoder(&scratch)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(scratch.Bytes(), "\n"))
	return nil
}
