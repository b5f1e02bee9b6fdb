package cmd

import (
	"github.com/spf13/cobra"
)

// CommandContext holds the global flags of one invocation.
// Commands never read package-level flag variables; they build a
// CommandContext from the cobra command instead.
type CommandContext struct {
	// Output control
	Format  string
	NoColor bool

	// Configuration overrides
	ConfigPath     string
	APIURL         string
	LogLevel       string
	LogFormat      string
	StrictContract bool
	MetricsFile    string
	Ephemeral      bool
}

// NewCommandContext extracts the global flags from cmd.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}

	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return nil, err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	apiURL, err := cmd.Flags().GetString("api-url")
	if err != nil {
		return nil, err
	}

	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, err
	}

	logFormat, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return nil, err
	}

	strict, err := cmd.Flags().GetBool("strict-contract")
	if err != nil {
		return nil, err
	}

	metricsFile, err := cmd.Flags().GetString("metrics-file")
	if err != nil {
		return nil, err
	}

	ephemeral, err := cmd.Flags().GetBool("ephemeral")
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Format:         format,
		NoColor:        noColor,
		ConfigPath:     configPath,
		APIURL:         apiURL,
		LogLevel:       logLevel,
		LogFormat:      logFormat,
		StrictContract: strict,
		MetricsFile:    metricsFile,
		Ephemeral:      ephemeral,
	}, nil
}

func addGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.adminctl/config.yaml)")
	flags.String("api-url", "", "backend base URL (overrides api_url)")
	flags.StringP("format", "o", "text", "output format: text, json or yaml")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: text or json")
	flags.Bool("no-color", false, "disable colored output")
	flags.Bool("strict-contract", false, "validate every backend response against the API contract")
	flags.String("metrics-file", "", "write Prometheus metrics to this file on exit")
	flags.Bool("ephemeral", false, "keep the session in memory only")
}
