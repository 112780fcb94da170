package cmd

import (
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/scrapefeed/internal/profiles"
)

func newProfilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage scrape profiles",
	}

	cmd.AddCommand(newProfilesListCommand())

	return cmd
}

func newProfilesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured scrape profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfilesList()
		},
	}
}

func runProfilesList() error {
	cfg, log, err := loadDeps()
	if err != nil {
		return err
	}

	loader := profiles.NewLoader(cfg.Extractor.ProfilesFile)
	all, err := loader.Load()
	if err != nil {
		return err
	}

	log.Debug("Loaded profiles", "count", len(all), "file", cfg.Extractor.ProfilesFile)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "URL", "Mode", "Item Selector", "Excludes"})

	for i := range all {
		p := &all[i]
		t.AppendRow(table.Row{
			p.Name,
			p.URL,
			string(p.Config.Mode),
			p.Config.List.Item,
			strings.Join(p.Config.Exclude, ", "),
		})
	}

	t.Render()
	return nil
}
