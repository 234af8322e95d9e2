package batch

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phonolab/wordsnip/internal/processor"
)

// Duration wraps time.Duration so YAML configs can say "90s" or "2m".
type Duration time.Duration

// UnmarshalYAML parses Go duration syntax.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Settings is the full batch configuration: the detection parameters plus
// the execution knobs. A YAML config file overrides any subset of fields;
// everything else keeps its default.
type Settings struct {
	Detection   processor.Config `yaml:",inline"`
	Workers     int              `yaml:"workers"`
	FileTimeout Duration         `yaml:"file_timeout"`
}

// DefaultSettings returns the defaults used without a config file.
func DefaultSettings() Settings {
	return Settings{
		Detection:   processor.DefaultConfig(),
		Workers:     4,
		FileTimeout: Duration(60 * time.Second),
	}
}

// LoadSettings reads a YAML config file over the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("config file %s: %w", path, err)
	}
	return s, nil
}

// Validate checks the execution knobs and the detection parameters.
func (s Settings) Validate() error {
	if err := s.Detection.Validate(); err != nil {
		return err
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}
	if s.FileTimeout <= 0 {
		return fmt.Errorf("file_timeout must be positive, got %s", time.Duration(s.FileTimeout))
	}
	return nil
}
