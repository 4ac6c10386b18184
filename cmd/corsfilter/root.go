package main

import (
	"fmt"
	"os"

	"github.com/jub0bs/corsfilter/internal/config"
	"github.com/spf13/cobra"
)

var (
	// global flags
	cfgFile   string
	overrides []string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "corsfilter",
	Short: "Cross-Origin Resource Sharing (CORS) filter",
	Long: `Corsfilter enforces a Cross-Origin Resource Sharing (CORS) policy.

A policy is a set of properties (allowOrigin, supportedMethods,
supportedHeaders, exposedHeaders, supportsCredentials, maxAge,
allowGenericHttpRequests, allowOriginSuffixMatching), read from a YAML
file and from --set overrides. Properties may carry a "cors." prefix.
Absent properties take their default values.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "policy file path (YAML)")
	rootCmd.PersistentFlags().StringArrayVar(&overrides, "set", nil, "override a property (name=value); repeatable")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadProperties returns the properties found in the policy file, if any,
// with the overrides applied.
func loadProperties() (map[string]string, error) {
	props := map[string]string{}
	if cfgFile != "" {
		var err error
		if props, err = config.Load(cfgFile); err != nil {
			return nil, err
		}
	}
	over, err := config.ParseOverrides(overrides)
	if err != nil {
		return nil, err
	}
	return config.Merge(props, over), nil
}
