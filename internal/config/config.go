package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration. It is loaded once
// at startup and passed by reference; nothing mutates it afterwards.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Data     DataConfig     `yaml:"data"`
	Cleaning CleaningConfig `yaml:"cleaning"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// ServerConfig holds HTTP server and storage settings
type ServerConfig struct {
	Port   string `yaml:"port"`
	DBPath string `yaml:"db_path"`
}

// DataConfig holds paths to the raw snapshot files
type DataConfig struct {
	Listings       string `yaml:"listings"`
	Calendar       string `yaml:"calendar"`
	Neighbourhoods string `yaml:"neighbourhoods"`
}

// CleaningConfig holds thresholds for the listing cleaning pipeline
type CleaningConfig struct {
	PriceMin   float64 `yaml:"price_min"`
	PriceMax   float64 `yaml:"price_max"`
	MinReviews int     `yaml:"min_reviews"`
}

// Segment defines one price tier as a half-open interval [Min, Max).
// Segments are declared in ascending order and must not overlap;
// assignment scans them in declared order and takes the first match.
type Segment struct {
	Name  string  `yaml:"name"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Label string  `yaml:"label"`
}

// AnalysisConfig holds analyzer parameters
type AnalysisConfig struct {
	Segments                []Segment `yaml:"segments"`
	HighSeasonMonths        []int     `yaml:"high_season_months"`
	LowSeasonMonths         []int     `yaml:"low_season_months"`
	TopHosts                int       `yaml:"top_hosts"`
	TopNeighborhoods        int       `yaml:"top_neighborhoods"`
	MinNeighborhoodListings int       `yaml:"min_neighborhood_listings"`
}

// Default returns the configuration used when no settings file is given
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:   ":8080",
			DBPath: "./data/market.db",
		},
		Data: DataConfig{
			Listings:       "./data/raw/listings.csv.gz",
			Calendar:       "./data/raw/calendar.csv.gz",
			Neighbourhoods: "./data/raw/neighbourhoods.geojson",
		},
		Cleaning: CleaningConfig{
			PriceMin:   10,
			PriceMax:   10000,
			MinReviews: 1,
		},
		Analysis: AnalysisConfig{
			Segments: []Segment{
				{Name: "budget", Min: 0, Max: 100, Label: "Budget"},
				{Name: "mid_range", Min: 100, Max: 250, Label: "Mid-Range"},
				{Name: "premium", Min: 250, Max: 500, Label: "Premium"},
				{Name: "luxury", Min: 500, Max: 100000, Label: "Luxury"},
			},
			HighSeasonMonths:        []int{3, 4, 5, 6, 9, 10},
			LowSeasonMonths:         []int{12, 1, 2},
			TopHosts:                20,
			TopNeighborhoods:        10,
			MinNeighborhoodListings: 3,
		},
	}
}

// Load reads settings.yaml (path from SETTINGS_PATH, falling back to
// ./settings.yaml, falling back to defaults when neither exists) and
// applies environment overrides for server settings.
func Load() (*Config, error) {
	path := os.Getenv("SETTINGS_PATH")
	if path == "" {
		path = "./settings.yaml"
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.Server.DBPath = dbPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks for configuration shapes the pipeline cannot work with
func (c *Config) Validate() error {
	if c.Cleaning.PriceMax < c.Cleaning.PriceMin {
		return fmt.Errorf("invalid price bounds: min %.2f > max %.2f",
			c.Cleaning.PriceMin, c.Cleaning.PriceMax)
	}
	for _, s := range c.Analysis.Segments {
		if s.Max < s.Min {
			return fmt.Errorf("invalid segment %q: min %.2f > max %.2f",
				s.Name, s.Min, s.Max)
		}
	}
	for _, m := range append(append([]int{}, c.Analysis.HighSeasonMonths...), c.Analysis.LowSeasonMonths...) {
		if m < 1 || m > 12 {
			return fmt.Errorf("invalid season month: %d", m)
		}
	}
	return nil
}
