package tokens

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	tokenerrors "github.com/alexisbeaulieu97/tokenhex/pkg/errors"
)

// Format selects the decoder for a token document.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	yamlLineRegex = regexp.MustCompile(`line (\d+)`)

	errRootNotObject = stdErrors.New("token document root must be an object")
	errAliasCycle    = stdErrors.New("alias refers to a node that contains it")
	errAliasBudget   = stdErrors.New("alias expansion exceeds the document size limit")
)

// Alias expansion may produce at most this many nodes per input byte, with
// a floor so small documents can still reuse anchors freely.
const (
	yamlNodesPerByte = 64
	yamlMinNodes     = 10000
)

// DetectFormat resolves FormatAuto from the file extension. Unknown
// extensions decode as JSON.
func DetectFormat(path string, format Format) Format {
	if format != "" && format != FormatAuto {
		return format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses data into a Document. path is only used for error messages
// and format detection.
func Decode(data []byte, path string, format Format) (*Document, error) {
	var (
		root *Node
		err  error
	)

	switch DetectFormat(path, format) {
	case FormatYAML:
		root, err = decodeYAML(data)
		if err != nil {
			return nil, tokenerrors.NewParseError(path, extractYAMLLine(err), err)
		}
	case FormatJSON:
		var line int
		root, line, err = decodeJSON(data)
		if err != nil {
			return nil, tokenerrors.NewParseError(path, line, err)
		}
	default:
		return nil, tokenerrors.NewParseError(path, 0, fmt.Errorf("unsupported format %q", format))
	}

	if root == nil || root.Kind != KindObject {
		return nil, tokenerrors.NewParseError(path, 0, errRootNotObject)
	}

	return &Document{Root: root}, nil
}

func decodeJSON(data []byte) (*Node, int, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := readJSONValue(dec)
	if err != nil {
		if stdErrors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, jsonErrorLine(data, dec, err), err
	}

	if _, err := dec.Token(); !stdErrors.Is(err, io.EOF) {
		if err == nil {
			err = stdErrors.New("unexpected data after top-level value")
		}
		return nil, jsonErrorLine(data, dec, err), err
	}

	return root, 0, nil
}

func readJSONValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := &Node{Kind: KindObject}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				child, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.set(key, child)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := &Node{Kind: KindArray}
			for dec.More() {
				child, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Items = append(arr.Items, child)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", v)
		}
	case string:
		return NewString(v), nil
	case json.Number:
		f, _ := v.Float64()
		return &Node{Kind: KindNumber, Num: f, numText: v.String()}, nil
	case bool:
		return NewBool(v), nil
	case nil:
		return &Node{Kind: KindNull}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func jsonErrorLine(data []byte, dec *json.Decoder, err error) int {
	offset := dec.InputOffset()
	var syntaxErr *json.SyntaxError
	if stdErrors.As(err, &syntaxErr) {
		offset = syntaxErr.Offset
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}

func decodeYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return nil, errRootNotObject
	}
	b := &yamlBuilder{
		expanding: make(map[*yaml.Node]bool),
		budget:    max(len(data)*yamlNodesPerByte, yamlMinNodes),
	}
	return b.build(&doc)
}

// yamlBuilder converts yaml nodes into a token tree, expanding aliases.
// expanding holds the collection nodes on the current path so an alias back
// into one of them is reported instead of recursing forever.
type yamlBuilder struct {
	expanding map[*yaml.Node]bool
	budget    int
}

func (b *yamlBuilder) build(n *yaml.Node) (*Node, error) {
	if n == nil {
		return &Node{Kind: KindNull}, nil
	}
	b.budget--
	if b.budget < 0 {
		return nil, fmt.Errorf("line %d: %w", n.Line, errAliasBudget)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &Node{Kind: KindNull}, nil
		}
		return b.build(n.Content[0])
	case yaml.AliasNode:
		if b.expanding[n.Alias] {
			return nil, fmt.Errorf("line %d: %w", n.Line, errAliasCycle)
		}
		return b.build(n.Alias)
	case yaml.MappingNode:
		b.expanding[n] = true
		defer delete(b.expanding, n)

		obj := &Node{Kind: KindObject}
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valueNode := n.Content[i], n.Content[i+1]
			value, err := b.build(valueNode)
			if err != nil {
				return nil, err
			}
			if keyNode.ShortTag() == "!!merge" {
				mergeInto(obj, value)
				continue
			}
			obj.set(keyNode.Value, value)
		}
		return obj, nil
	case yaml.SequenceNode:
		b.expanding[n] = true
		defer delete(b.expanding, n)

		arr := &Node{Kind: KindArray}
		for _, item := range n.Content {
			child, err := b.build(item)
			if err != nil {
				return nil, err
			}
			arr.Items = append(arr.Items, child)
		}
		return arr, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node", n.Line)
	}
}

func yamlScalar(n *yaml.Node) (*Node, error) {
	switch n.ShortTag() {
	case "!!null":
		return &Node{Kind: KindNull}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return NewBool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return NewNumber(f), nil
	default:
		return NewString(n.Value), nil
	}
}

// mergeInto applies a YAML merge key: explicit keys win over merged ones.
func mergeInto(obj, src *Node) {
	var sources []*Node
	switch src.Kind {
	case KindObject:
		sources = []*Node{src}
	case KindArray:
		sources = src.Items
	}
	for _, s := range sources {
		if s == nil || s.Kind != KindObject {
			continue
		}
		for _, f := range s.Fields {
			if obj.Get(f.Key) == nil {
				obj.set(f.Key, f.Value)
			}
		}
	}
}

func extractYAMLLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
