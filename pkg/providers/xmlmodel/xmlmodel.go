// Package xmlmodel implements a model provider that turns an XML document
// into a generic map tree templates can walk.
//
// Conversion rules:
//   - the root element becomes a map with its name under "_name"
//   - attributes are collected under "@attr"
//   - child elements are keyed by local name; repeated names become []any
//   - an element with neither attributes nor children collapses to its text
//   - mixed text inside an element with structure is kept under "#text"
//   - a root child named "_name" (or "__name", ...) is stored with one more
//     leading underscore so it cannot clash with the root name
package xmlmodel

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/common"
	"github.com/cecil-the-coder/razorpad-kit/pkg/types"
)

const (
	NameKey = "_name"
	AttrKey = "@attr"
	TextKey = "#text"
)

// XMLModelProviderFactory creates XML model providers. It registers under the
// key "xml".
type XMLModelProviderFactory struct {
	XML  string
	File string
}

// NewFactory returns a factory with no model source.
func NewFactory() *XMLModelProviderFactory {
	return &XMLModelProviderFactory{}
}

// Create implements types.ModelProviderFactory.
func (f *XMLModelProviderFactory) Create() types.ModelProvider {
	return &ModelProvider{XML: f.XML, File: f.File}
}

// ModelProvider decodes an XML document into a map tree.
type ModelProvider struct {
	XML  string
	File string
}

// GetModel parses the configured source.
func (p *ModelProvider) GetModel() (any, error) {
	data, err := common.Source{Inline: p.XML, File: p.File}.Read(types.ProviderTypeXML)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

type element struct {
	name     string
	attrs    map[string]any
	children map[string][]*element
	order    []string
	text     strings.Builder
}

func newElement(start xml.StartElement) *element {
	el := &element{name: start.Name.Local}
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		if el.attrs == nil {
			el.attrs = make(map[string]any, len(start.Attr))
		}
		el.attrs[a.Name.Local] = a.Value
	}
	return el
}

func (e *element) add(child *element) {
	if e.children == nil {
		e.children = make(map[string][]*element)
	}
	if _, seen := e.children[child.name]; !seen {
		e.order = append(e.order, child.name)
	}
	e.children[child.name] = append(e.children[child.name], child)
}

func (e *element) value() any {
	if e.attrs == nil && len(e.children) == 0 {
		return strings.TrimSpace(e.text.String())
	}
	return e.toMap()
}

func (e *element) toMap() map[string]any {
	m := make(map[string]any, len(e.order)+2)
	if e.attrs != nil {
		m[AttrKey] = e.attrs
	}
	for _, name := range e.order {
		kids := e.children[name]
		if len(kids) == 1 {
			m[name] = kids[0].value()
			continue
		}
		list := make([]any, 0, len(kids))
		for _, k := range kids {
			list = append(list, k.value())
		}
		m[name] = list
	}
	if text := strings.TrimSpace(e.text.String()); text != "" {
		m[TextKey] = text
	}
	return m
}

// Decode converts an XML document into a map tree. Blank input yields an
// empty map.
func Decode(data []byte) (any, error) {
	if common.IsBlank(data) {
		return map[string]any{}, nil
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		root  *element
		stack []*element
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, types.NewParseError(types.ProviderTypeXML, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := newElement(t)
			switch {
			case len(stack) > 0:
				stack[len(stack)-1].add(el)
			case root != nil:
				return nil, types.NewParseError(types.ProviderTypeXML, errors.New("multiple root elements"))
			default:
				root = el
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, types.NewParseError(types.ProviderTypeXML, errors.New("no root element"))
	}
	if len(stack) > 0 {
		return nil, types.NewParseError(types.ProviderTypeXML, io.ErrUnexpectedEOF)
	}
	m := root.toMap()
	escapeNameKeys(m)
	m[NameKey] = root.name
	return m, nil
}

// escapeNameKeys moves root children spelled like NameKey (one or more
// underscores followed by "name") under a key with one more leading
// underscore, so the root name never replaces element content.
func escapeNameKeys(m map[string]any) {
	var keys []string
	for k := range m {
		if strings.HasPrefix(k, "_") && strings.TrimLeft(k, "_") == "name" {
			keys = append(keys, k)
		}
	}
	// Longest first, so every target key is already free.
	slices.SortFunc(keys, func(a, b string) int { return len(b) - len(a) })
	for _, k := range keys {
		m["_"+k] = m[k]
		delete(m, k)
	}
}
