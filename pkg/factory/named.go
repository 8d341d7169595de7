package factory

import "github.com/cecil-the-coder/razorpad-kit/pkg/types"

// NamedFactory gives an existing factory a different type name, and so a
// different registry key.
type NamedFactory struct {
	types.ModelProviderFactory
	name string
}

// Named wraps factory so that it reports typeName. Configured providers use
// it to register several sources of the same kind side by side.
func Named(typeName string, factory types.ModelProviderFactory) *NamedFactory {
	return &NamedFactory{ModelProviderFactory: factory, name: typeName}
}

// TypeName implements types.TypeNamer.
func (n *NamedFactory) TypeName() string { return n.name }

// Unwrap returns the wrapped factory.
func (n *NamedFactory) Unwrap() types.ModelProviderFactory { return n.ModelProviderFactory }
