package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cecil-the-coder/razorpad-kit/pkg/config"
	"github.com/cecil-the-coder/razorpad-kit/pkg/factory"
	"github.com/cecil-the-coder/razorpad-kit/pkg/logging"
)

// app carries what every subcommand needs once the root has loaded its
// configuration.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     config.Config
	logger  logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:          "razorpad",
		Short:        "Inspect template documents and their model providers",
		Long:         `razorpad resolves data model providers by name and shows the model and document details a template would be compiled with.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: ./razorpad.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	_ = a.v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		newProvidersCmd(a),
		newModelCmd(a),
		newInspectCmd(a),
	)
	return rootCmd
}

func (a *app) load(cmd *cobra.Command) error {
	defaults := config.Defaults()
	a.v.SetDefault("default_provider", defaults.DefaultProvider)
	a.v.SetDefault("log.level", defaults.Log.Level)
	a.v.SetEnvPrefix("RAZORPAD")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("razorpad")
		a.v.SetConfigType("yaml")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	a.cfg = defaults
	if err := a.v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}

	level, err := logging.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		return err
	}
	a.logger = logging.New(cmd.ErrOrStderr(), level)
	factory.SetLogger(a.logger)
	return nil
}

// registry builds the provider registry from the loaded configuration plus
// any extra entries, which take precedence over same-named providers.
func (a *app) registry(extra ...config.ProviderEntry) (*factory.ModelProviders, error) {
	cfg := a.cfg
	cfg.Providers = append(append([]config.ProviderEntry{}, extra...), a.cfg.Providers...)
	return factory.NewFromConfig(&cfg, factory.WithLogger(a.logger))
}
