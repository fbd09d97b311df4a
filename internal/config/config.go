// Package config reads the optional YAML file holding dashboard view defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agalitsyn/taskdash/internal/model"
)

type Config struct {
	View     string         `yaml:"view"`
	Sort     SortConfig     `yaml:"sort"`
	Filters  FilterConfig   `yaml:"filters"`
	Schedule ScheduleConfig `yaml:"schedule"`
}

type SortConfig struct {
	Field     string `yaml:"field"`
	Direction string `yaml:"direction"`
}

// FilterConfig lists the values initially selected per dimension.
type FilterConfig struct {
	Status   []string `yaml:"status,omitempty"`
	Category []string `yaml:"category,omitempty"`
	Project  []string `yaml:"project,omitempty"`
	Tag      []string `yaml:"tag,omitempty"`
	Priority []string `yaml:"priority,omitempty"`
}

type ScheduleConfig struct {
	PixelsPerSlot float64 `yaml:"pixels_per_slot"`
	ClockInterval string  `yaml:"clock_interval"`
}

func Default() *Config {
	return &Config{
		View: "list",
		Sort: SortConfig{
			Field:     string(model.SortByPriority),
			Direction: string(model.SortDesc),
		},
		Schedule: ScheduleConfig{
			PixelsPerSlot: 64,
			ClockInterval: "1m",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.SortConfig(); err != nil {
		return err
	}
	if c.Schedule.PixelsPerSlot < 0 {
		return fmt.Errorf("pixels_per_slot must not be negative, got %v", c.Schedule.PixelsPerSlot)
	}
	if _, err := c.Schedule.Interval(); err != nil {
		return err
	}
	return nil
}

// Interval is the period of the schedule clock, one minute when unset.
func (s ScheduleConfig) Interval() (time.Duration, error) {
	if s.ClockInterval == "" {
		return time.Minute, nil
	}
	d, err := time.ParseDuration(s.ClockInterval)
	if err != nil {
		return 0, fmt.Errorf("bad clock_interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("clock_interval must be positive, got %s", d)
	}
	return d, nil
}

// SortConfig converts the sort section, falling back to the default sort
// for empty values.
func (c *Config) SortConfig() (model.SortConfig, error) {
	sc := model.DefaultSortConfig()
	if c.Sort.Field != "" {
		f, err := model.ParseSortField(c.Sort.Field)
		if err != nil {
			return sc, err
		}
		sc.Field = f
	}
	if c.Sort.Direction != "" {
		d, err := model.ParseSortDirection(c.Sort.Direction)
		if err != nil {
			return sc, err
		}
		sc.Direction = d
	}
	return sc, nil
}

func (c *Config) Selection() model.Selection {
	var sel model.Selection
	sel.Set(model.DimensionStatus, c.Filters.Status...)
	sel.Set(model.DimensionCategory, c.Filters.Category...)
	sel.Set(model.DimensionProject, c.Filters.Project...)
	sel.Set(model.DimensionTag, c.Filters.Tag...)
	priorities := make([]string, 0, len(c.Filters.Priority))
	for _, p := range c.Filters.Priority {
		priorities = append(priorities, string(model.ParsePriority(p)))
	}
	sel.Set(model.DimensionPriority, priorities...)
	return sel
}

// Marshal renders the config as YAML, for printing the effective defaults.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
