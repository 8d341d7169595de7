package factory

import (
	"reflect"
	"strings"

	"github.com/cecil-the-coder/razorpad-kit/pkg/types"
)

// DefaultFactorySuffixes returns the type-name suffixes trimmed when deriving
// a registry key.
func DefaultFactorySuffixes() []string {
	return []string{"ModelProviderFactory", "ProviderFactory", "Factory"}
}

// FactoryName strips the longest matching suffix from typeName, once. The
// match is exact and case-sensitive; when no suffix matches typeName is
// returned unchanged. With no suffixes the defaults are used.
func FactoryName(typeName string, suffixes ...string) string {
	if len(suffixes) == 0 {
		suffixes = DefaultFactorySuffixes()
	}
	longest := ""
	for _, s := range suffixes {
		if s != "" && len(s) > len(longest) && strings.HasSuffix(typeName, s) {
			longest = s
		}
	}
	return strings.TrimSuffix(typeName, longest)
}

// RegistryKey is the lowercased FactoryName of typeName.
func RegistryKey(typeName string, suffixes ...string) string {
	return strings.ToLower(FactoryName(typeName, suffixes...))
}

// LookupKey normalizes a name supplied to Create or GetProviderFactory.
// Lookup names are only lowercased, never suffix-trimmed.
func LookupKey(name string) string {
	return strings.ToLower(name)
}

// TypeNameOf reports the implementation name of factory: TypeName when it
// implements types.TypeNamer, otherwise its Go type name with pointers
// dereferenced.
func TypeNameOf(factory types.ModelProviderFactory) string {
	if namer, ok := factory.(types.TypeNamer); ok {
		return namer.TypeName()
	}
	t := reflect.TypeOf(factory)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}
