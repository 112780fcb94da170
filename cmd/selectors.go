package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/scrapefeed/internal/dom"
	"github.com/jonesrussell/scrapefeed/internal/selector"
)

func newSelectorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selector",
		Short: "Test, validate, and synthesize CSS selectors",
	}

	cmd.AddCommand(newSelectorTestCommand())
	cmd.AddCommand(newSelectorValidateCommand())
	cmd.AddCommand(newSelectorSynthesizeCommand())

	return cmd
}

func newSelectorTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test <file> <selector>...",
		Short: "Show match counts and sample texts for selectors",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelectorTest(args[0], args[1:])
		},
	}
}

func runSelectorTest(path string, selectors []string) error {
	rawHTML, err := readInput(path)
	if err != nil {
		return err
	}

	doc, err := dom.Parse(rawHTML)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Selector", "Count", "Samples"})

	for _, sel := range selectors {
		result := selector.Evaluate(doc, sel)
		t.AppendRow(table.Row{sel, result.Count, strings.Join(result.Samples, "\n")})
	}

	t.Render()
	return nil
}

func newSelectorValidateCommand() *cobra.Command {
	var (
		itemSel string
		linkSel string
		mode    string
	)

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that item and link selectors cohere on a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelectorValidate(args[0], itemSel, linkSel, selector.Mode(mode))
		},
	}

	cmd.Flags().StringVar(&itemSel, "item", "", "item container selector")
	cmd.Flags().StringVar(&linkSel, "link", "", "link selector")
	cmd.Flags().StringVar(&mode, "mode", "list", "extraction mode (list or detail)")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

func runSelectorValidate(path, itemSel, linkSel string, mode selector.Mode) error {
	rawHTML, err := readInput(path)
	if err != nil {
		return err
	}

	doc, err := dom.Parse(rawHTML)
	if err != nil {
		return err
	}

	report := selector.ValidateListSelectors(doc, itemSel, linkSel, mode)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Items", "Items With Links", "Warning"})
	warning := string(report.Warning)
	if warning == "" {
		warning = "none"
	}
	t.AppendRow(table.Row{report.TotalItems, report.ItemsWithLinks, warning})
	t.Render()

	return nil
}

func newSelectorSynthesizeCommand() *cobra.Command {
	var denyPrefixes []string

	cmd := &cobra.Command{
		Use:   "synthesize <file> <target>",
		Short: "Build selectors describing the first element matched by target",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelectorSynthesize(args[0], args[1], denyPrefixes)
		},
	}

	cmd.Flags().StringSliceVar(&denyPrefixes, "deny-class-prefix", nil,
		"additional class prefixes to ignore when building selectors")

	return cmd
}

func runSelectorSynthesize(path, target string, denyPrefixes []string) error {
	appCfg, _, err := loadDeps()
	if err != nil {
		return err
	}

	rawHTML, err := readInput(path)
	if err != nil {
		return err
	}

	doc, err := dom.Parse(rawHTML)
	if err != nil {
		return err
	}

	matches := doc.QueryAll(target)
	if len(matches) == 0 {
		return fmt.Errorf("target selector %q matched no elements", target)
	}

	filter := selector.DefaultClassFilter().
		WithExtraPrefixes(appCfg.Extractor.DenyClassPrefixes...).
		WithExtraPrefixes(denyPrefixes...)
	specific := selector.SynthesizeSpecific(matches[0], filter)
	general := selector.SynthesizeGeneral(matches[0], filter)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Kind", "Selector", "Matches"})
	t.AppendRow(table.Row{"specific", specific, selector.Evaluate(doc, specific).Count})
	t.AppendRow(table.Row{"general", general, selector.Evaluate(doc, general).Count})
	t.Render()

	return nil
}
