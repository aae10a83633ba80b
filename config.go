package vecsim

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	defaultGrainSize         = 1 << 12
	defaultMaxMemoryFraction = 0.5
	defaultKetCacheSize      = 128
)

// Config tunes the engine. Zero fields fall back to their defaults.
type Config struct {
	// Number of pool workers used for gate application.
	Workers int `yaml:"workers"`
	// Minimum number of amplitudes handed to a single worker job. Gate calls
	// on registers smaller than this run on the calling goroutine.
	GrainSize int `yaml:"grainSize"`
	// Fraction of physical memory a single register may occupy.
	MaxMemoryFraction float64 `yaml:"maxMemoryFraction"`
	// Number of constructed registers kept by a KetCache.
	KetCacheSize int `yaml:"ketCacheSize"`
	// Enables development logging when the engine builds its own logger.
	Debug bool `yaml:"debug"`
}

func NewConfig() *Config {
	cfg := Config{}.WithDefaults()
	return &cfg
}

// WithDefaults returns a copy of the Config with any missing fields set to
// their default values.
func (c Config) WithDefaults() Config {
	cpy := c
	if cpy.Workers <= 0 {
		cpy.Workers = runtime.NumCPU()
	}
	if cpy.GrainSize <= 0 {
		cpy.GrainSize = defaultGrainSize
	}
	if cpy.MaxMemoryFraction <= 0 || cpy.MaxMemoryFraction > 1 {
		cpy.MaxMemoryFraction = defaultMaxMemoryFraction
	}
	if cpy.KetCacheSize <= 0 {
		cpy.KetCacheSize = defaultKetCacheSize
	}
	return cpy
}

// LoadConfig reads a YAML config file and fills in defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	cfg = cfg.WithDefaults()
	return &cfg, nil
}
