package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/consol-monitoring/icingaplugin/pkg/check"
	"gopkg.in/yaml.v3"
)

// ErrUnknownLogLevel is returned for unsupported log levels.
var ErrUnknownLogLevel = errors.New("unknown log level")

// Config contains plugin settings read from a yaml file, ex.:
//
//	log level: info
//	thresholds:
//	  load1: { warning: 4, critical: 8 }
type Config struct {
	LogLevel   string               `yaml:"log level"`
	Thresholds map[string]Threshold `yaml:"thresholds"`
}

// Threshold is a warning / critical pair. The direction is taken from the order of both values.
type Threshold struct {
	Warning  float64 `yaml:"warning"`
	Critical float64 `yaml:"critical"`
}

// Load reads and validates the config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	conf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return conf, nil
}

// Parse reads and validates yaml config data. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	conf := &Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("yaml: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

// Validate checks the log level and all thresholds.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "", "off", "error", "info", "debug", "trace":
	default:
		return fmt.Errorf("%w: %s", ErrUnknownLogLevel, c.LogLevel)
	}

	for _, name := range c.ThresholdNames() {
		if err := c.Thresholds[name].Validate(); err != nil {
			return fmt.Errorf("threshold %s: %w", name, err)
		}
	}

	return nil
}

// Threshold returns the named threshold.
func (c *Config) Threshold(name string) (Threshold, bool) {
	thres, ok := c.Thresholds[name]

	return thres, ok
}

// ThresholdNames returns all threshold names sorted.
func (c *Config) ThresholdNames() []string {
	names := make([]string, 0, len(c.Thresholds))
	for name := range c.Thresholds {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Validate rejects equal warning and critical values.
func (t Threshold) Validate() error {
	if t.Warning == t.Critical {
		return fmt.Errorf("%w: warning=%v critical=%v", check.ErrInvalidThreshold, t.Warning, t.Critical)
	}

	return nil
}

// Evaluate checks the value against this threshold.
func (t Threshold) Evaluate(value float64) (check.Result, error) {
	return check.Evaluate(value, t.Warning, t.Critical)
}
