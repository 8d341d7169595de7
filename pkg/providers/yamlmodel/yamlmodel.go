// Package yamlmodel implements a model provider backed by YAML documents.
package yamlmodel

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/common"
	"github.com/cecil-the-coder/razorpad-kit/pkg/types"
)

// YAMLModelProviderFactory creates YAML model providers. It registers under
// the key "yaml".
type YAMLModelProviderFactory struct {
	YAML string
	File string
}

// NewFactory returns a factory with no model source.
func NewFactory() *YAMLModelProviderFactory {
	return &YAMLModelProviderFactory{}
}

// Create implements types.ModelProviderFactory.
func (f *YAMLModelProviderFactory) Create() types.ModelProvider {
	return &ModelProvider{YAML: f.YAML, File: f.File}
}

// ModelProvider decodes a YAML document into a generic value.
type ModelProvider struct {
	YAML string
	File string
}

// GetModel parses the configured source.
func (p *ModelProvider) GetModel() (any, error) {
	data, err := common.Source{Inline: p.YAML, File: p.File}.Read(types.ProviderTypeYAML)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode converts the first YAML document in data into a generic value.
// Mappings decode to map[string]any. Blank input yields an empty map.
func Decode(data []byte) (any, error) {
	if common.IsBlank(data) {
		return map[string]any{}, nil
	}

	var model any
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&model); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, types.NewParseError(types.ProviderTypeYAML, err)
	}
	if model == nil {
		return map[string]any{}, nil
	}
	return model, nil
}
