package factory

import (
	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/jsonmodel"
	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/xmlmodel"
	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/yamlmodel"
	"github.com/cecil-the-coder/razorpad-kit/pkg/types"
)

// BuiltinFactories returns fresh JSON, XML and YAML factories with no
// source attached, in that order. Remote sources need a URL and are only
// registered from configuration.
func BuiltinFactories() []types.ModelProviderFactory {
	return []types.ModelProviderFactory{
		jsonmodel.NewFactory(),
		xmlmodel.NewFactory(),
		yamlmodel.NewFactory(),
	}
}

// RegisterBuiltinFactories adds the built-in factories to r. Keys already
// taken keep their existing factory.
func RegisterBuiltinFactories(r *ModelProviders) {
	for _, f := range BuiltinFactories() {
		r.Add(f)
	}
}
