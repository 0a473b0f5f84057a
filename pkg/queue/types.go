// Package queue implements the leaf-queue allocation core: admission
// control, the capacity/limit evaluator, the locality selector, the
// per-heartbeat allocation loop, and bookkeeping, all guarded by a
// single queue-wide lock (spec §4–§5).
package queue

import (
	"math"

	"github.com/nodepool-sched/leafqueue/pkg/resource"
)

// Undefined marks an unset maxCapacity/absoluteMaxCapacity fraction —
// spec §3 requires it be treated as +∞ in capacity comparisons so it
// never causes a spurious rejection.
const Undefined = -1.0

// QueueConfig is the leaf queue's immutable configuration, derived once
// at construction time (spec §3). Config loading/parsing from YAML
// lives in internal/config; this struct is the already-resolved
// result that pkg/queue actually computes against.
type QueueConfig struct {
	QueueName string
	QueuePath string

	Capacity            float64 // fraction of parent's absolute share
	AbsoluteCapacity     float64 // fraction of the whole cluster
	MaxCapacity          float64 // Undefined, or in [0,1]
	AbsoluteMaxCapacity  float64 // +Inf when MaxCapacity is Undefined

	UserLimit       int     // percentage, [1,100]
	UserLimitFactor float64 // multiplier on queue capacity

	MaxApplications        int
	MaxApplicationsPerUser int

	MinimumAllocation resource.Resource
}

// NewQueueConfig resolves a QueueConfig the way the spec's derived
// fields are defined: absoluteCapacity/absoluteMaxCapacity scale the
// parent's absolute share, and the application caps scale off the
// resolved absoluteCapacity and the configured system-wide cap.
func NewQueueConfig(
	queueName, queuePath string,
	capacity, maxCapacity float64,
	parentAbsoluteCapacity float64,
	userLimit int,
	userLimitFactor float64,
	systemMaxApplications int,
	minimumAllocation resource.Resource,
) QueueConfig {
	absoluteCapacity := parentAbsoluteCapacity * capacity

	var absoluteMaxCapacity float64
	if maxCapacity == Undefined {
		absoluteMaxCapacity = math.Inf(1)
	} else {
		absoluteMaxCapacity = parentAbsoluteCapacity * maxCapacity
	}

	maxApplications := int(float64(systemMaxApplications) * absoluteCapacity)
	maxApplicationsPerUser := int(float64(maxApplications) * (float64(userLimit) / 100) * userLimitFactor)

	return QueueConfig{
		QueueName:              queueName,
		QueuePath:              queuePath,
		Capacity:               capacity,
		AbsoluteCapacity:       absoluteCapacity,
		MaxCapacity:            maxCapacity,
		AbsoluteMaxCapacity:    absoluteMaxCapacity,
		UserLimit:              userLimit,
		UserLimitFactor:        userLimitFactor,
		MaxApplications:        maxApplications,
		MaxApplicationsPerUser: maxApplicationsPerUser,
		MinimumAllocation:      minimumAllocation,
	}
}

// User is the per-user counter record (spec §3): consumed resource and
// active application count. Created lazily on first reference, removed
// once Applications drops to zero (invariant P5).
type User struct {
	Consumed     resource.Resource
	Applications int
}
