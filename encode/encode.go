// Package encode renders sanitized node trees as YAML.
//
// Collections nested at or below the inline level are written in flow style
// so deep structures stay compact, mirroring how a dumper with an "inline"
// parameter behaves. Objects become mappings holding a class label and
// either their accessors or their iterated elements.
//
// In HTML mode every piece of user text is escaped and class labels are
// rendered as <span title="Full">Short</span>, so the output can be placed
// into a page without further processing.
package encode

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/brother79/dumpy/node"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 2

// NotInvoked is shown for accessors that were discovered but require
// arguments.
const NotInvoked = "(not invoked)"

// MoreKey holds the truncation message of a truncated mapping.
const MoreKey = node.MoreKey

const (
	classKey     = "class"
	accessorsKey = "accessors"
	iterableKey  = "iterable"
)

// ThresholdFunc maps a sanitization depth to the nesting level where
// collections switch to flow style.
type ThresholdFunc func(depth int) int

// InlineThreshold is the default ThresholdFunc: 2*depth+1.
func InlineThreshold(depth int) int {
	return 2*depth + 1
}

// Options configure an Encoder.
type Options struct {
	// Indent is the number of spaces per level. Values below 2 select
	// DefaultIndent.
	Indent int

	// HTML escapes user text and renders class labels as HTML.
	HTML bool
}

// Encoder converts node trees to YAML text. It is immutable and safe for
// concurrent use.
type Encoder struct {
	indent int
	html   bool
}

// New creates an Encoder.
func New(opts Options) *Encoder {
	indent := opts.Indent
	if indent < 2 || indent > 9 {
		indent = DefaultIndent
	}
	return &Encoder{indent: indent, html: opts.HTML}
}

// HTML reports whether the encoder escapes for HTML.
func (e *Encoder) HTML() bool {
	return e.html
}

// Encode renders n. Collections at nesting level inline or deeper are
// written in flow style; the root is level zero.
func (e *Encoder) Encode(n node.Node, inline int) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(e.indent)
	if err := enc.Encode(e.Document(n, inline)); err != nil {
		return "", fmt.Errorf("encode %s node: %w", kindOf(n), err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("flush encoder: %w", err)
	}
	return buf.String(), nil
}

// Document builds the YAML document for n without serializing it.
func (e *Encoder) Document(n node.Node, inline int) *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{e.build(n, 0, inline)},
	}
}

func (e *Encoder) build(n node.Node, level, inline int) *yaml.Node {
	switch n := n.(type) {
	case nil, node.Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: node.NullText}
	case *node.Container:
		return e.container(n, level, inline)
	case *node.Object:
		return e.object(n, level, inline)
	default:
		text, _ := node.Text(n)
		return e.str(text)
	}
}

func (e *Encoder) container(c *node.Container, level, inline int) *yaml.Node {
	out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if c.Layout == node.LayoutMap {
		out.Kind, out.Tag = yaml.MappingNode, "!!map"
	}
	if level >= inline || (c.Len() == 0 && !c.Truncated()) {
		out.Style = yaml.FlowStyle
	}
	for _, entry := range c.Entries {
		v := e.build(entry.Value, level+1, inline)
		if out.Kind == yaml.MappingNode {
			out.Content = append(out.Content, e.str(entry.Key), v)
		} else {
			out.Content = append(out.Content, v)
		}
	}
	if c.Truncated() {
		if out.Kind == yaml.MappingNode {
			out.Content = append(out.Content, e.str(MoreKey))
		}
		out.Content = append(out.Content, e.str(c.More))
	}
	return out
}

func (e *Encoder) object(o *node.Object, level, inline int) *yaml.Node {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	flow := level >= inline
	if flow {
		out.Style = yaml.FlowStyle
	}
	out.Content = append(out.Content, e.str(classKey), e.label(o, flow))

	switch body := o.Body.(type) {
	case *node.Iterable:
		elems := body.Elements
		if elems == nil {
			elems = node.NewContainer(node.LayoutSeq)
		}
		out.Content = append(out.Content, e.str(iterableKey), e.container(elems, level+1, inline))
	case *node.Accessors:
		acc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if level+1 >= inline || len(body.Entries) == 0 {
			acc.Style = yaml.FlowStyle
		}
		for _, entry := range body.Entries {
			v := e.str(NotInvoked)
			if entry.Invoked() {
				v = e.build(entry.Value, level+2, inline)
			}
			acc.Content = append(acc.Content, e.str(entry.Signature), v)
		}
		out.Content = append(out.Content, e.str(accessorsKey), acc)
	}
	return out
}

// label renders the class of an object. Plain block output carries the
// qualified name as a line comment; flow output has no room for comments
// and shows the qualified name itself.
func (e *Encoder) label(o *node.Object, flow bool) *yaml.Node {
	if e.html {
		text := fmt.Sprintf(`<span title="%s">%s</span>`,
			html.EscapeString(validText(o.FullName)), html.EscapeString(validText(o.ClassName)))
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: text}
	}
	if flow || o.FullName == "" || o.FullName == o.ClassName {
		name := o.FullName
		if name == "" {
			name = o.ClassName
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: validText(name)}
	}
	return &yaml.Node{
		Kind:        yaml.ScalarNode,
		Tag:         "!!str",
		Value:       validText(o.ClassName),
		LineComment: "# " + singleLine(validText(o.FullName)),
	}
}

func (e *Encoder) str(s string) *yaml.Node {
	s = validText(s)
	if e.html {
		s = html.EscapeString(s)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// validText replaces invalid UTF-8 sequences, which yaml.v3 refuses to
// emit as strings.
func validText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func kindOf(n node.Node) string {
	if n == nil {
		return node.KindNull.String()
	}
	return n.Kind().String()
}
