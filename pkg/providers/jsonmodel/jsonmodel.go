// Package jsonmodel implements the JSON model provider, which is also the
// registry's built-in default factory.
package jsonmodel

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/common"
	"github.com/cecil-the-coder/razorpad-kit/pkg/types"
)

// JSONModelProviderFactory creates JSON model providers reading either the
// inline JSON text or File. It registers under the key "json".
type JSONModelProviderFactory struct {
	JSON string
	File string
}

// NewFactory returns a factory with no model source; its providers produce
// an empty object.
func NewFactory() *JSONModelProviderFactory {
	return &JSONModelProviderFactory{}
}

// Create implements types.ModelProviderFactory.
func (f *JSONModelProviderFactory) Create() types.ModelProvider {
	return &ModelProvider{JSON: f.JSON, File: f.File}
}

// ModelProvider decodes a JSON document into a generic value.
type ModelProvider struct {
	JSON string
	File string
}

// GetModel parses the configured source. Objects decode to map[string]any
// and numbers to json.Number so integer precision survives.
func (p *ModelProvider) GetModel() (any, error) {
	data, err := common.Source{Inline: p.JSON, File: p.File}.Read(types.ProviderTypeJSON)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode converts raw JSON into a generic value. Blank input yields an empty
// object.
func Decode(data []byte) (any, error) {
	if common.IsBlank(data) {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var model any
	if err := dec.Decode(&model); err != nil {
		return nil, types.NewParseError(types.ProviderTypeJSON, err)
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, types.NewParseError(types.ProviderTypeJSON, err)
	}
	return model, nil
}
