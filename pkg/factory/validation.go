package factory

import (
	"errors"
	"fmt"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/cecil-the-coder/razorpad-kit/pkg/config"
	"github.com/cecil-the-coder/razorpad-kit/pkg/logging"
	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/jsonmodel"
	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/remote"
	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/xmlmodel"
	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/yamlmodel"
	"github.com/cecil-the-coder/razorpad-kit/pkg/types"
)

// ValidateConfig checks cfg before any factory is built.
func ValidateConfig(cfg *config.Config) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	return cfg.Validate()
}

// FactoryFromEntry builds the factory described by one provider entry. A
// named entry is wrapped with Named so that it registers under its name.
func FactoryFromEntry(entry config.ProviderEntry, l logging.Logger) (types.ModelProviderFactory, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if l == nil {
		l = logging.Nop()
	}

	var f types.ModelProviderFactory
	switch entry.Type {
	case types.ProviderTypeJSON:
		f = &jsonmodel.JSONModelProviderFactory{JSON: entry.Data, File: entry.File}
	case types.ProviderTypeXML:
		f = &xmlmodel.XMLModelProviderFactory{XML: entry.Data, File: entry.File}
	case types.ProviderTypeYAML:
		f = &yamlmodel.YAMLModelProviderFactory{YAML: entry.Data, File: entry.File}
	case types.ProviderTypeRemote:
		f = remote.NewFactory(remoteConfig(entry), remote.WithLogger(l.With("provider", entry.Name)))
	default:
		return nil, fmt.Errorf("unknown provider type %q", entry.Type)
	}

	if entry.Name != "" {
		return Named(entry.Name, f), nil
	}
	return f, nil
}

func remoteConfig(entry config.ProviderEntry) remote.Config {
	cfg := remote.Config{
		URL:               entry.URL,
		Format:            entry.Format,
		Headers:           entry.Headers,
		UserAgent:         entry.UserAgent,
		Timeout:           entry.Timeout(),
		MaxRetries:        entry.MaxRetries,
		RequestsPerMinute: entry.RequestsPerMinute,
		CacheTTL:          entry.CacheTTL(),
		BearerToken:       entry.BearerToken,
	}
	if cc := entry.ClientCredentials; cc != nil {
		cfg.ClientCredentials = &clientcredentials.Config{
			ClientID:     cc.ClientID,
			ClientSecret: cc.ClientSecret,
			TokenURL:     cc.TokenURL,
			Scopes:       cc.Scopes,
		}
	}
	return cfg
}

// NewFromConfig builds a registry from cfg: configured providers first, in
// file order, then the built-in factories. Because the first registration
// under a key wins, a configured provider shadows the built-in of the same
// name. A non-empty default_provider must name a registered key and becomes
// the registry's fallback.
func NewFromConfig(cfg *config.Config, opts ...Option) (*ModelProviders, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if len(cfg.FactorySuffixes) > 0 {
		opts = append(opts, WithFactorySuffixes(cfg.FactorySuffixes...))
	}
	r := MustNew([]types.ModelProviderFactory{}, opts...)

	for i, entry := range cfg.Providers {
		f, err := FactoryFromEntry(entry, r.logger)
		if err != nil {
			return nil, fmt.Errorf("providers[%d]: %w", i, err)
		}
		r.Add(f)
	}
	RegisterBuiltinFactories(r)

	if cfg.DefaultProvider != "" {
		f := r.GetProviderFactory(cfg.DefaultProvider)
		if f == nil {
			return nil, fmt.Errorf("default_provider %q is not registered", cfg.DefaultProvider)
		}
		r.defaultFactory = f
	}
	return r, nil
}
