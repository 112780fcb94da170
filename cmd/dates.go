package cmd

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/scrapefeed/internal/datefmt"
)

func newDateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dates",
		Short: "Work with date format patterns",
	}

	cmd.AddCommand(newDateTestCommand())

	return cmd
}

func newDateTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test <value> <format>...",
		Short: "Try date format patterns against a sample value",
		Long: `Try each date format pattern against the sample value and report
which ones match and what they parse to. Patterns use placeholders
like %Y, %m, %d, %H, %M, %S.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDateTest(args[0], args[1:])
		},
	}
}

func runDateTest(value string, formats []string) error {
	now := time.Now()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Format", "Matched", "Parsed", "Reason"})

	for _, format := range formats {
		m, err := datefmt.Compile(format)
		if err != nil {
			t.AppendRow(table.Row{format, false, "", err.Error()})
			continue
		}

		result := m.Match(value, now)
		parsed := ""
		if result.Value != nil {
			parsed = result.Value.Format(time.RFC3339)
		}
		t.AppendRow(table.Row{format, result.Matched, parsed, result.Reason})
	}

	t.Render()
	return nil
}
