package config

import "fmt"

// Validate rejects an out-of-range Config at load time rather than
// letting a bad fraction silently produce a nonsensical QueueConfig —
// the same "validate once at load" idiom as the teacher's
// internal/config/validation.go.
func Validate(cfg *Config) error {
	if cfg.Cluster.SystemMaxApplications < 0 {
		return fmt.Errorf("cluster.system_max_applications must be >= 0")
	}

	seen := make(map[string]bool)
	for _, q := range cfg.Queues {
		if q.QueuePath == "" {
			return fmt.Errorf("queue %q: queue_path is required", q.QueueName)
		}
		if seen[q.QueuePath] {
			return fmt.Errorf("duplicate queue_path %q", q.QueuePath)
		}
		seen[q.QueuePath] = true

		if q.Capacity < 0 || q.Capacity > 1 {
			return fmt.Errorf("queue %q: capacity must be in [0,1], got %v", q.QueuePath, q.Capacity)
		}
		if q.ParentAbsoluteCapacity < 0 || q.ParentAbsoluteCapacity > 1 {
			return fmt.Errorf("queue %q: parent_absolute_capacity must be in [0,1], got %v", q.QueuePath, q.ParentAbsoluteCapacity)
		}
		if q.MaxCapacity > 1 {
			return fmt.Errorf("queue %q: max_capacity must be in (0,1] or unset, got %v", q.QueuePath, q.MaxCapacity)
		}
		if q.UserLimit < 1 || q.UserLimit > 100 {
			return fmt.Errorf("queue %q: user_limit must be in [1,100], got %v", q.QueuePath, q.UserLimit)
		}
		if q.UserLimitFactor < 0 {
			return fmt.Errorf("queue %q: user_limit_factor must be >= 0, got %v", q.QueuePath, q.UserLimitFactor)
		}
		if q.MinimumAllocation <= 0 {
			return fmt.Errorf("queue %q: minimum_allocation must be > 0, got %v", q.QueuePath, q.MinimumAllocation)
		}
	}
	return nil
}
