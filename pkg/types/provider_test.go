package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelProviderFunc(t *testing.T) {
	want := map[string]any{"name": "razor"}
	var p ModelProvider = ModelProviderFunc(func() (any, error) { return want, nil })

	got, err := p.GetModel()
	assert.NoError(t, err)
	assert.Equal(t, want, got)

	boom := errors.New("boom")
	p = ModelProviderFunc(func() (any, error) { return nil, boom })
	_, err = p.GetModel()
	assert.Same(t, boom, err)
}

func TestKnownProviderTypes(t *testing.T) {
	assert.Equal(t, []ProviderType{
		ProviderTypeJSON,
		ProviderTypeXML,
		ProviderTypeYAML,
		ProviderTypeRemote,
	}, KnownProviderTypes())
}
