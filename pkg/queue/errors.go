package queue

import "github.com/pkg/errors"

// Sentinel admission errors (spec §7). Allocation-path failures never
// surface as errors — a heartbeat that hits a cap just returns
// resource.NONE (spec §4.6, §7).
var (
	ErrQueueFull     = errors.New("queue full: application count at capacity")
	ErrUserQueueFull = errors.New("user queue full: per-user application count at capacity")
)
