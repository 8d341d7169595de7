package types

import (
	"context"
	"errors"
)

// ProviderType names a built-in model provider.
type ProviderType string

const (
	ProviderTypeJSON   ProviderType = "json"
	ProviderTypeXML    ProviderType = "xml"
	ProviderTypeYAML   ProviderType = "yaml"
	ProviderTypeRemote ProviderType = "remote"
)

// KnownProviderTypes lists the built-in provider types in catalogue order.
func KnownProviderTypes() []ProviderType {
	return []ProviderType{ProviderTypeJSON, ProviderTypeXML, ProviderTypeYAML, ProviderTypeRemote}
}

// ModelProvider produces the data object bound into a template evaluation.
// The returned value has no fixed shape; it is handed to the template engine
// untouched. Failures are provider specific and are not interpreted by the
// registry or the document.
type ModelProvider interface {
	GetModel() (any, error)
}

// ContextModelProvider is implemented by providers whose model production
// blocks (network, large files) and can honour cancellation.
type ContextModelProvider interface {
	ModelProvider
	GetModelContext(ctx context.Context) (any, error)
}

// ModelProviderFactory constructs a fresh ModelProvider on every call.
type ModelProviderFactory interface {
	Create() ModelProvider
}

// TypeNamer lets a factory report the implementation name used to derive its
// registry key instead of the reflected Go type name.
type TypeNamer interface {
	TypeName() string
}

// ModelProviderFunc adapts a function to the ModelProvider interface.
type ModelProviderFunc func() (any, error)

// GetModel calls f.
func (f ModelProviderFunc) GetModel() (any, error) { return f() }

// ErrNilFactories is returned when a registry is constructed without a
// factory list.
var ErrNilFactories = errors.New("model provider factories are required")
