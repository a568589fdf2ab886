package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"simonwaldherr.de/go/themedemo/worker"
)

// File is the on-disk YAML layout:
//
//	settings:
//	  timeout: 30
//	schedule:
//	  worker_steps: 9
//	  worker_interval: 100ms
type File struct {
	Settings map[string]int `yaml:"settings"`
	Schedule ScheduleDTO    `yaml:"schedule"`
}

// ScheduleDTO mirrors worker.Schedule; nil fields keep the default.
type ScheduleDTO struct {
	WorkerSteps    *int           `yaml:"worker_steps"`
	WorkerInterval *time.Duration `yaml:"worker_interval"`
	MainSteps      *int           `yaml:"main_steps"`
	MainInterval   *time.Duration `yaml:"main_interval"`
}

// Config is the resolved configuration: defaults with the file applied on top.
type Config struct {
	Settings *Settings
	Schedule worker.Schedule
}

func Default() Config {
	return Config{Settings: Defaults(), Schedule: worker.DefaultSchedule()}
}

// Load reads path and merges it over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		kind := KindInvalid
		if errors.Is(err, os.ErrNotExist) {
			kind = KindNotFound
		}
		return Config{}, &Error{Op: "config.load", Kind: kind, Path: path, Err: err}
	}

	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Config{}, &Error{Op: "config.load", Kind: KindInvalid, Path: path, Err: err}
	}

	cfg.Settings.Merge(f.Settings)
	f.Schedule.apply(&cfg.Schedule)

	if err := cfg.Validate(); err != nil {
		return Config{}, &Error{Op: "config.load", Kind: KindInvalid, Path: path, Err: err}
	}
	return cfg, nil
}

func (d ScheduleDTO) apply(s *worker.Schedule) {
	if d.WorkerSteps != nil {
		s.WorkerSteps = *d.WorkerSteps
	}
	if d.WorkerInterval != nil {
		s.WorkerInterval = *d.WorkerInterval
	}
	if d.MainSteps != nil {
		s.MainSteps = *d.MainSteps
	}
	if d.MainInterval != nil {
		s.MainInterval = *d.MainInterval
	}
}

func (c Config) Validate() error {
	s := c.Schedule
	switch {
	case s.WorkerSteps < 0:
		return fmt.Errorf("schedule.worker_steps must be >= 0, got %d", s.WorkerSteps)
	case s.MainSteps < 0:
		return fmt.Errorf("schedule.main_steps must be >= 0, got %d", s.MainSteps)
	case s.WorkerInterval < 0:
		return fmt.Errorf("schedule.worker_interval must be >= 0, got %s", s.WorkerInterval)
	case s.MainInterval < 0:
		return fmt.Errorf("schedule.main_interval must be >= 0, got %s", s.MainInterval)
	}
	return nil
}
