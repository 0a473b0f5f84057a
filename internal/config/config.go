// Package config loads the scheduler's YAML configuration via viper,
// following the teacher's internal/config package: one root Config
// struct of nested sections, a Load(path) that binds viper to it, and
// validation applied once at load time rather than scattered through
// call sites.
package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/nodepool-sched/leafqueue/internal/logging"
	"github.com/nodepool-sched/leafqueue/pkg/queue"
	"github.com/nodepool-sched/leafqueue/pkg/resource"
	"github.com/spf13/viper"
)

// Config is the top-level configuration for a leafqueued process.
type Config struct {
	Logging logging.Config `yaml:"logging"`
	Cluster ClusterConfig   `yaml:"cluster"`
	Queues  []QueueSpec     `yaml:"queues"`
}

// ClusterConfig describes the external resource pool the queues are
// carved out of (node registry/heartbeat plumbing itself is out of
// scope — spec §1).
type ClusterConfig struct {
	TotalMemory            int64 `yaml:"total_memory"`
	SystemMaxApplications  int   `yaml:"system_max_applications"`
}

// QueueSpec is the YAML shape of one leaf queue's configuration,
// resolved into a queue.QueueConfig by Resolve.
type QueueSpec struct {
	QueueName              string  `yaml:"queue_name"`
	QueuePath              string  `yaml:"queue_path"`
	Capacity               float64 `yaml:"capacity"`
	MaxCapacity            float64 `yaml:"max_capacity"` // omit/negative => Undefined
	ParentAbsoluteCapacity float64 `yaml:"parent_absolute_capacity"`
	UserLimit              int     `yaml:"user_limit"`
	UserLimitFactor        float64 `yaml:"user_limit_factor"`
	MinimumAllocation      int64   `yaml:"minimum_allocation"`
}

// Default returns a Config with the same sane defaults the teacher's
// config applies when a section is absent from the file.
func Default() *Config {
	return &Config{
		Logging: logging.Config{Level: "info", Format: "text"},
		Cluster: ClusterConfig{
			TotalMemory:           0,
			SystemMaxApplications: 10000,
		},
	}
}

// Load reads path via viper (YAML), merges it over Default(), and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	// Decode by the yaml struct tags so snake_case keys map onto fields.
	if err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" }); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve turns one QueueSpec into a queue.QueueConfig, applying the
// same Undefined sentinel the core uses for an absent max capacity.
func (s QueueSpec) Resolve(systemMaxApplications int) queue.QueueConfig {
	maxCapacity := s.MaxCapacity
	if maxCapacity <= 0 {
		maxCapacity = queue.Undefined
	}
	return queue.NewQueueConfig(
		s.QueueName,
		s.QueuePath,
		s.Capacity,
		maxCapacity,
		s.ParentAbsoluteCapacity,
		s.UserLimit,
		s.UserLimitFactor,
		systemMaxApplications,
		resource.New(s.MinimumAllocation),
	)
}
