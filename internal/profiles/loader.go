// Package profiles loads scrape profile definitions from files. A
// profile names a site and carries the selector configuration the
// extraction pipeline needs for it.
package profiles

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/jonesrussell/scrapefeed/internal/extract"
)

var (
	// ErrNoProfiles indicates no profiles were found in the file.
	ErrNoProfiles = errors.New("no profiles found in configuration")
	// ErrProfileNotFound indicates the named profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrMissingRequiredField indicates a required field is missing.
	ErrMissingRequiredField = errors.New("missing required field")
)

// Profile couples a named source with its extraction configuration.
type Profile struct {
	Name   string         `mapstructure:"name"`
	URL    string         `mapstructure:"url"`
	Config extract.Config `mapstructure:",squash"`
}

// profilesFile represents the structure of a profiles YAML file.
type profilesFile struct {
	Profiles []map[string]any `yaml:"profiles"`
}

// Loader handles loading and validating profile files.
type Loader struct {
	path string
}

// NewLoader creates a Loader for the given file path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and validates all profiles from the file. Profiles that do
// not decode or validate are dropped individually.
func (l *Loader) Load() ([]Profile, error) {
	raw, err := l.loadRaw()
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(raw))
	for _, entry := range raw {
		profile, convertErr := convert(entry)
		if convertErr != nil {
			continue
		}
		if validateErr := validate(&profile); validateErr != nil {
			continue
		}
		profiles = append(profiles, profile)
	}

	if len(profiles) == 0 {
		return nil, ErrNoProfiles
	}

	return profiles, nil
}

// Find returns the named profile.
func (l *Loader) Find(name string) (*Profile, error) {
	profiles, err := l.Load()
	if err != nil {
		return nil, err
	}

	for i := range profiles {
		if profiles[i].Name == name {
			return &profiles[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
}

// loadRaw reads the raw profile maps from the YAML file.
func (l *Loader) loadRaw() ([]map[string]any, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse profiles yaml: %w", err)
	}

	if len(file.Profiles) == 0 {
		return nil, ErrNoProfiles
	}

	return file.Profiles, nil
}

// convert decodes a raw profile map into a Profile.
func convert(src map[string]any) (Profile, error) {
	var profile Profile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &profile,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return Profile{}, fmt.Errorf("create decoder: %w", err)
	}

	if decodeErr := decoder.Decode(src); decodeErr != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", decodeErr)
	}

	return profile, nil
}

// validate checks the fields a usable profile needs.
func validate(profile *Profile) error {
	if profile.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingRequiredField)
	}

	if profile.URL != "" {
		u, err := url.Parse(profile.URL)
		if err != nil {
			return fmt.Errorf("invalid url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return errors.New("url must be http(s)")
		}
		if profile.Config.BaseURL == "" {
			profile.Config.BaseURL = profile.URL
		}
	}

	return profile.Config.Validate()
}
