// Package extract turns raw HTML plus a selector configuration into
// structured feed items. It orchestrates selector evaluation, subtree
// exclusion, and date format matching over the matched item roots.
package extract

import (
	"errors"
	"strings"

	"github.com/jonesrussell/scrapefeed/internal/selector"
)

var (
	// ErrItemSelectorRequired indicates the list item selector is missing.
	ErrItemSelectorRequired = errors.New("item selector is required")
	// ErrInvalidMode indicates an unknown extraction mode.
	ErrInvalidMode = errors.New("mode must be list or detail")
)

// ListSelectors defines the CSS selectors applied to a listing page.
// Item is the only required field; every other selector is optional and
// its validity is discovered at evaluation time, never at assignment.
type ListSelectors struct {
	// Item matches the root element of each feed entry.
	Item string `json:"item" mapstructure:"item" yaml:"item"`
	// Title is the selector for the entry title.
	Title string `json:"title" mapstructure:"title" yaml:"title"`
	// Link is the selector for the entry link.
	Link string `json:"link" mapstructure:"link" yaml:"link"`
	// Description is the selector for the entry description.
	Description string `json:"description" mapstructure:"description" yaml:"description"`
	// Date is the selector for the entry date.
	Date string `json:"date" mapstructure:"date" yaml:"date"`
	// Image is the selector for the entry image.
	Image string `json:"image" mapstructure:"image" yaml:"image"`
	// Author is the selector for the entry author.
	Author string `json:"author" mapstructure:"author" yaml:"author"`
	// Categories is the selector for the entry categories.
	Categories string `json:"categories" mapstructure:"categories" yaml:"categories"`
}

// Validate validates the list selectors.
func (s *ListSelectors) Validate() error {
	if strings.TrimSpace(s.Item) == "" {
		return ErrItemSelectorRequired
	}

	return nil
}

// DetailSelectors defines the CSS selectors applied to a single-item
// detail page. Content is conventionally required for detail mode, but
// enforcing that is the caller's policy.
type DetailSelectors struct {
	// Title is the selector for the page title.
	Title string `json:"title" mapstructure:"title" yaml:"title"`
	// Description is the selector for the page description.
	Description string `json:"description" mapstructure:"description" yaml:"description"`
	// Content is the selector for the full article content.
	Content string `json:"content" mapstructure:"content" yaml:"content"`
	// Date is the selector for the publication date.
	Date string `json:"date" mapstructure:"date" yaml:"date"`
	// Image is the selector for the lead image.
	Image string `json:"image" mapstructure:"image" yaml:"image"`
	// Author is the selector for the author.
	Author string `json:"author" mapstructure:"author" yaml:"author"`
	// Categories is the selector for the categories.
	Categories string `json:"categories" mapstructure:"categories" yaml:"categories"`
}

// Config bundles everything one extraction call needs besides the HTML
// itself. DateFormats are tried strictly in order; the first
// structurally successful match wins.
type Config struct {
	Mode        selector.Mode   `json:"mode"         mapstructure:"mode"         yaml:"mode"`
	List        ListSelectors   `json:"list"         mapstructure:"list"         yaml:"list"`
	Detail      DetailSelectors `json:"detail"       mapstructure:"detail"       yaml:"detail"`
	Exclude     []string        `json:"exclude"      mapstructure:"exclude"      yaml:"exclude"`
	DateFormats []string        `json:"date_formats" mapstructure:"date_formats" yaml:"date_formats"`
	BaseURL     string          `json:"base_url"     mapstructure:"base_url"     yaml:"base_url"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Mode == "" {
		c.Mode = selector.ModeList
	}
	if !c.Mode.Valid() {
		return ErrInvalidMode
	}
	if c.Mode == selector.ModeDetail {
		return nil
	}

	return c.List.Validate()
}

// Default returns a copy with unset fields filled in: list mode, the
// exclusions most listing pages need, and the common date formats.
func (c *Config) Default() Config {
	cfg := *c
	if cfg.Mode == "" {
		cfg.Mode = selector.ModeList
	}
	if len(cfg.Exclude) == 0 {
		cfg.Exclude = []string{
			"script, style, noscript",
			".ad, .advertisement",
			"nav, .sidebar",
		}
	}
	if len(cfg.DateFormats) == 0 {
		cfg.DateFormats = []string{
			"%Y-%m-%d %H:%M:%S",
			"%Y-%m-%d %H:%M",
			"%Y-%m-%d",
			"%d/%m/%Y",
			"%m/%d/%y",
		}
	}

	return cfg
}
