// Package cmd implements the command-line interface for scrapefeed.
// It provides the root command and subcommands for extracting feed
// items from HTML and working with selectors and date formats.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/scrapefeed/internal/config"
	"github.com/jonesrussell/scrapefeed/internal/logger"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug mode for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "scrapefeed",
		Short: "Selector-driven feed extraction from HTML",
		Long: `Extract structured feed items from HTML pages using CSS selectors,
test and synthesize selectors, and match date formats.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scrapefeed version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newSelectorCommand())
	rootCmd.AddCommand(newDateCommand())
	rootCmd.AddCommand(newProfilesCommand())
	rootCmd.AddCommand(newServeCommand())
}

// loadDeps loads configuration and builds the logger shared by commands.
func loadDeps() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize configuration: %w", err)
	}

	if debug {
		cfg.App.Debug = true
		cfg.Logger.Level = logger.DebugLevel
		cfg.Logger.Development = true
	}

	return cfg, logger.New(&cfg.Logger), nil
}

// readInput reads HTML from the named file, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input file: %w", err)
	}

	return string(data), nil
}
