// Package config loads the optional shelf.yaml settings file. All
// settings have defaults matching the original dataset, so running
// without a config file works out of the box.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "shelf.yaml"

// Config holds the batch settings.
type Config struct {
	// Inputs are the raw book list files; missing ones are skipped.
	Inputs []string `yaml:"inputs"`
	// Output is the database file consumed by the display page.
	Output string `yaml:"output"`
	// Locations is the allow-list of known reading locations.
	Locations []string `yaml:"locations"`
	// EnrichDelayMS is the minimum pause between metadata API calls.
	EnrichDelayMS int `yaml:"enrich_delay_ms"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Inputs: []string{"preparsed1.txt", "preparsed2.txt", "preparsed3.txt", "preparsed4.txt"},
		Output: "books_database.json",
		Locations: []string{
			"Bergisch Gladbach", "Sydney", "England", "Frankreich", "Berlin",
			"Autorenteam", "Schweden", "Göteborg", "Baskenland – Spanien",
			"Bonn-Arzt und Wissenschaftler", "Belfast", "Köln",
		},
		EnrichDelayMS: 500,
	}
}

// Load reads the config file at path, falling back to defaults when
// the file does not exist. Settings omitted from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// EnrichDelay returns the inter-call delay as a duration.
func (c Config) EnrichDelay() time.Duration {
	return time.Duration(c.EnrichDelayMS) * time.Millisecond
}
