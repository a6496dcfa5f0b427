// Package config provides configuration loading for panorama using TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"panorama/extract"
	"panorama/lang"
	"panorama/render"
	"panorama/sites"
)

// HTTP fetching settings
type Fetcher struct {
	UserAgent           string `toml:"userAgent"`
	TimeoutSeconds      int    `toml:"timeoutSeconds"`
	ProbeTimeoutSeconds int    `toml:"probeTimeoutSeconds"`
	ChromePath          string `toml:"chromePath"`
	BrowserFallback     bool   `toml:"browserFallback"`
}

// Site markup settings
type Site struct {
	Host       string   `toml:"host"`
	Captions   []string `toml:"captions"`   // classes excluded from article text
	Containers []string `toml:"containers"` // flat-text content wrappers, most specific first
}

// Pipeline settings
type Pipeline struct {
	Concurrency int `toml:"concurrency"` // parallel fetches; 0 = one per language
}

// Output settings
type Output struct {
	Mode  string `toml:"mode"`  // "full", "paragraph" or "" to ask
	Width int    `toml:"width"` // wrap width; 0 = no wrapping, -1 = terminal width
}

// Config is the main configuration struct
type Config struct {
	Fetcher  Fetcher           `toml:"fetcher"`
	Site     Site              `toml:"site"`
	Pipeline Pipeline          `toml:"pipeline"`
	Output   Output            `toml:"output"`
	Labels   map[string]string `toml:"labels"`
}

// Modes accepted in Output.Mode.
const (
	ModeFull      = "full"
	ModeParagraph = "paragraph"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Fetcher: Fetcher{
			UserAgent:           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36",
			TimeoutSeconds:      20,
			ProbeTimeoutSeconds: 10,
		},
		Site: Site{
			Host:       sites.Panorama.Host,
			Captions:   slices.Clone(extract.DefaultMarkerConfig.Captions),
			Containers: slices.Clone(extract.DefaultMarkerConfig.Containers),
		},
		Pipeline: Pipeline{
			Concurrency: 3,
		},
		Output: Output{
			Mode:  "",
			Width: 0,
		},
		Labels: map[string]string{},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "panorama"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads configuration, layering the file at path on top of defaults.
// An empty path means ConfigPath. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return cfg, nil // Return defaults if we can't determine path
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	var user Config
	md, err := toml.DecodeFile(path, &user)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	merged := merge(cfg, &user, md)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return merged, nil
}

// merge layers user config on top of defaults. Strings and numbers override
// when non-zero; booleans and lists override when the key is present.
func merge(defaults, user *Config, md toml.MetaData) *Config {
	result := *defaults
	result.Labels = make(map[string]string, len(defaults.Labels))
	for k, v := range defaults.Labels {
		result.Labels[k] = v
	}

	// Fetcher
	if user.Fetcher.UserAgent != "" {
		result.Fetcher.UserAgent = user.Fetcher.UserAgent
	}
	if user.Fetcher.TimeoutSeconds != 0 {
		result.Fetcher.TimeoutSeconds = user.Fetcher.TimeoutSeconds
	}
	if user.Fetcher.ProbeTimeoutSeconds != 0 {
		result.Fetcher.ProbeTimeoutSeconds = user.Fetcher.ProbeTimeoutSeconds
	}
	if user.Fetcher.ChromePath != "" {
		result.Fetcher.ChromePath = user.Fetcher.ChromePath
	}
	if md.IsDefined("fetcher", "browserFallback") {
		result.Fetcher.BrowserFallback = user.Fetcher.BrowserFallback
	}

	// Site
	if user.Site.Host != "" {
		result.Site.Host = user.Site.Host
	}
	if md.IsDefined("site", "captions") {
		result.Site.Captions = user.Site.Captions
	}
	if md.IsDefined("site", "containers") {
		result.Site.Containers = user.Site.Containers
	}

	// Pipeline
	if md.IsDefined("pipeline", "concurrency") {
		result.Pipeline.Concurrency = user.Pipeline.Concurrency
	}

	// Output
	if user.Output.Mode != "" {
		result.Output.Mode = user.Output.Mode
	}
	if md.IsDefined("output", "width") {
		result.Output.Width = user.Output.Width
	}

	for k, v := range user.Labels {
		result.Labels[k] = v
	}
	return &result
}

// Validate checks values that would otherwise fail later in the run.
func (c *Config) Validate() error {
	switch c.Output.Mode {
	case "", ModeFull, ModeParagraph:
	default:
		return fmt.Errorf("output.mode must be %q or %q, got %q", ModeFull, ModeParagraph, c.Output.Mode)
	}
	if c.Pipeline.Concurrency < 0 {
		return fmt.Errorf("pipeline.concurrency must not be negative, got %d", c.Pipeline.Concurrency)
	}
	if c.Fetcher.TimeoutSeconds < 0 || c.Fetcher.ProbeTimeoutSeconds < 0 {
		return fmt.Errorf("fetcher timeouts must not be negative")
	}
	for code := range c.Labels {
		if !lang.Valid(code) {
			return fmt.Errorf("labels: unknown language code %q", code)
		}
	}
	if _, err := extract.NewMarkers(c.MarkerConfig()); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	return nil
}

// MarkerConfig returns the default markers with the configured overrides.
func (c *Config) MarkerConfig() extract.MarkerConfig {
	m := extract.DefaultMarkerConfig
	m.Captions = c.Site.Captions
	m.Containers = c.Site.Containers
	return m
}

// SiteProfile returns the site profile described by the config. The
// built-in profile is returned unchanged when nothing was overridden.
func (c *Config) SiteProfile() (*sites.Site, error) {
	def := Default().Site
	if c.Site.Host == def.Host && slices.Equal(c.Site.Captions, def.Captions) &&
		slices.Equal(c.Site.Containers, def.Containers) {
		return sites.Panorama, nil
	}

	markers, err := extract.NewMarkers(c.MarkerConfig())
	if err != nil {
		return nil, err
	}
	return &sites.Site{
		Name:      sites.Panorama.Name + " (configured)",
		Host:      c.Site.Host,
		Languages: sites.Panorama.Languages,
		Markers:   markers,
	}, nil
}

// RenderLabels returns the default labels with the configured overrides.
func (c *Config) RenderLabels() render.Labels {
	labels := render.DefaultLabels()
	for code, label := range c.Labels {
		if label != "" {
			labels[lang.Code(code)] = label
		}
	}
	return labels
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --init-config to generate a user config file.
func DefaultTOML() string {
	return `# panorama configuration
# Save to ~/.config/panorama/config.toml and customize
# Only include settings you want to change from defaults

# HTTP fetching settings
[fetcher]
userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"
timeoutSeconds = 20           # Page fetch timeout
probeTimeoutSeconds = 10      # Existence check for sibling language URLs
chromePath = ""               # Path to Chrome/Chromium (empty = auto-detect)
browserFallback = false       # Retry blocked pages with headless Chrome

# Site markup
[site]
host = "taiwan-panorama.com"  # Only URLs on this host (or subdomains) are probed
captions = ["artiFoto", "artiFotoIf"]
containers = [".article", ".artiBox", ".text", "article", ".artiCont", ".artiTxt", ".artiCon"]

# Pipeline settings
[pipeline]
concurrency = 3               # Parallel fetches and probes (0 = one per language)

# Output settings
[output]
mode = ""                     # "full", "paragraph", or empty to ask
width = 0                     # Wrap width (0 = no wrapping, -1 = terminal width)

# Language labels shown in full-article mode
[labels]
# en = "English"
`
}
