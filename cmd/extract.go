package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/scrapefeed/internal/config"
	"github.com/jonesrussell/scrapefeed/internal/extract"
	"github.com/jonesrussell/scrapefeed/internal/profiles"
	"github.com/jonesrussell/scrapefeed/internal/selector"
)

// extractFlags holds the selector configuration flags for the extract
// command.
type extractFlags struct {
	baseURL     string
	profile     string
	mode        string
	item        string
	title       string
	link        string
	description string
	date        string
	image       string
	author      string
	categories  string
	content     string
	exclude     []string
	dateFormats []string
}

func newExtractCommand() *cobra.Command {
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract feed items from an HTML file",
		Long: `Extract structured feed items from an HTML file using CSS selectors.
Selectors come from flags or from a named profile. Use "-" to read
from stdin. Results are written to stdout as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.baseURL, "base-url", "", "base URL for resolving relative links")
	cmd.Flags().StringVar(&flags.profile, "profile", "", "named profile to load selectors from")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "extraction mode (list or detail; default from profile)")
	cmd.Flags().StringVar(&flags.item, "item", "", "item container selector")
	cmd.Flags().StringVar(&flags.title, "title", "", "title selector")
	cmd.Flags().StringVar(&flags.link, "link", "", "link selector")
	cmd.Flags().StringVar(&flags.description, "description", "", "description selector")
	cmd.Flags().StringVar(&flags.date, "date", "", "date selector")
	cmd.Flags().StringVar(&flags.image, "image", "", "image selector")
	cmd.Flags().StringVar(&flags.author, "author", "", "author selector")
	cmd.Flags().StringVar(&flags.categories, "categories", "", "categories selector")
	cmd.Flags().StringVar(&flags.content, "content", "", "detail content selector")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "selectors for regions to exclude")
	cmd.Flags().StringSliceVar(&flags.dateFormats, "date-format", nil, "date format patterns to try")

	return cmd
}

func runExtract(path string, flags *extractFlags) error {
	appCfg, log, err := loadDeps()
	if err != nil {
		return err
	}

	rawHTML, err := readInput(path)
	if err != nil {
		return err
	}

	cfg, err := buildConfig(appCfg, flags)
	if err != nil {
		return err
	}

	extractor := extract.New(log.WithComponent("extract"))

	if cfg.Mode == selector.ModeDetail {
		item, diag, detailErr := extractor.ExtractDetail(rawHTML, flags.baseURL, cfg, time.Now())
		if detailErr != nil {
			return detailErr
		}
		return writeJSON(map[string]any{"item": item, "diagnostics": diag})
	}

	items, diag, err := extractor.Extract(rawHTML, flags.baseURL, cfg, time.Now())
	if err != nil {
		return err
	}

	return writeJSON(map[string]any{"items": items, "diagnostics": diag})
}

// buildConfig assembles the extraction config from a profile, flags, and
// application defaults. Flags override profile values.
func buildConfig(appCfg *config.Config, flags *extractFlags) (extract.Config, error) {
	var cfg extract.Config

	if flags.profile != "" {
		loader := profiles.NewLoader(appCfg.Extractor.ProfilesFile)
		profile, err := loader.Find(flags.profile)
		if err != nil {
			return extract.Config{}, fmt.Errorf("load profile: %w", err)
		}
		cfg = profile.Config
	}

	if flags.mode != "" {
		cfg.Mode = selector.Mode(flags.mode)
	}
	overrideSelector(&cfg.List.Item, flags.item)
	overrideSelector(&cfg.List.Title, flags.title)
	overrideSelector(&cfg.List.Link, flags.link)
	overrideSelector(&cfg.List.Description, flags.description)
	overrideSelector(&cfg.List.Date, flags.date)
	overrideSelector(&cfg.List.Image, flags.image)
	overrideSelector(&cfg.List.Author, flags.author)
	overrideSelector(&cfg.List.Categories, flags.categories)
	overrideSelector(&cfg.Detail.Content, flags.content)
	if len(flags.exclude) > 0 {
		cfg.Exclude = flags.exclude
	}
	if len(flags.dateFormats) > 0 {
		cfg.DateFormats = flags.dateFormats
	}
	if len(cfg.DateFormats) == 0 {
		cfg.DateFormats = appCfg.Extractor.DateFormats
	}

	cfg = cfg.Default()
	if err := cfg.Validate(); err != nil {
		return extract.Config{}, err
	}

	return cfg, nil
}

func overrideSelector(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
