package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

const defaultReportTitle = "Hardening Review"

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the YAML config at configPath. A missing file is not
// an error: the tool runs fine on compiled-in defaults. A present but
// unreadable or malformed file is fatal to the caller.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		applyDefaults(config)
		return config, nil
	}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}

	applyDefaults(config)
	return config, nil
}

func applyDefaults(c *Config) {
	if c.Report.Title == "" {
		c.Report.Title = defaultReportTitle
	}
}
