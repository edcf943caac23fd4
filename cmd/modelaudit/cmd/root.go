// Package cmd implements the modelaudit command tree.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/modelaudit/pkg/errors"
	"github.com/agentstation/modelaudit/pkg/logging"
	"github.com/agentstation/modelaudit/pkg/registry"
)

var (
	configFile   string
	verboseFlag  bool
	quietFlag    bool
	outputFlag   string
	manifestFlag string
	testsDirFlag string
	docsDirFlag  string

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "modelaudit",
	Short: "Static consistency auditor for model libraries",
	Long: `Modelaudit is a build-time consistency auditor for large model libraries.

It reconciles three independent enumerations (the model classes the library
defines, the classes its test suites declare common-test coverage for, and
the classes its documentation pages reference) against maintained exception
lists, and fails with one itemized report per check.

It is intended to run as a blocking CI step: any discrepancy fails the build
until coverage is added or an explicit exception is recorded.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	if err := rootCmd.Execute(); err != nil {
		// Audit failures have already been printed in full; cobra prints
		// the summary line either way.
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ./.modelaudit.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "only log warnings and errors")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&manifestFlag, "manifest", "", "registry manifest file exported by the model library")
	rootCmd.PersistentFlags().StringVar(&testsDirFlag, "tests-dir", "tests", "directory containing the test corpus")
	rootCmd.PersistentFlags().StringVar(&docsDirFlag, "docs-dir", "docs/source/model_doc", "directory containing the doc corpus")

	for flag, key := range map[string]string{
		"manifest":  "manifest",
		"tests-dir": "tests_dir",
		"docs-dir":  "docs_dir",
	} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("Failed to bind %s flag: %v", flag, err))
		}
	}
}

// initConfig reads in the config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".modelaudit")
	}

	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.SetEnvPrefix("MODELAUDIT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil && verboseFlag {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// configureLogging sets up the logging system based on flags and environment.
func configureLogging() {
	level := zerolog.InfoLevel
	if verboseFlag {
		level = zerolog.DebugLevel
	}
	if quietFlag {
		level = zerolog.WarnLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}

	cfg := logging.DefaultConfig()
	cfg.Level = level.String()
	cfg.AddCaller = level <= zerolog.DebugLevel
	logging.Configure(cfg)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envFile); err == nil && verboseFlag {
			fmt.Fprintf(os.Stderr, "Loaded %s\n", envFile)
		}
	}
}

// loadSnapshot returns the library surface to audit: the YAML manifest when
// one is configured, else whatever model library linked this binary and
// self-registered.
func loadSnapshot() (registry.Snapshot, error) {
	if manifest := viper.GetString("manifest"); manifest != "" {
		return registry.LoadManifest(manifest)
	}
	snapshot := registry.Default().Snapshot()
	if err := snapshot.Validate(); err != nil {
		return registry.Snapshot{}, errors.NewConfigError("registry",
			"no model classes registered; pass --manifest or link a model library", nil)
	}
	return snapshot, nil
}
