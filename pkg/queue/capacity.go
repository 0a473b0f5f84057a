package queue

import "github.com/nodepool-sched/leafqueue/pkg/resource"

// assignToQueue implements spec §4.3: grants iff the projected
// utilization after adding `required` stays at or below
// absoluteMaxCapacity. Undefined maxCapacity resolves to +Inf at
// construction (types.go), so this never spuriously denies when the
// queue has no configured ceiling. Caller must hold q.mu.
func (q *LeafQueue) assignToQueue(clusterResource, required resource.Resource) bool {
	denom := float64(clusterResource.Memory) * q.config.AbsoluteCapacity
	if denom <= 0 {
		// No cluster resource or no share to speak of: nothing fits.
		return false
	}
	projected := float64(q.usedResources.Memory+required.Memory) / denom
	return projected <= q.config.AbsoluteMaxCapacity
}

// assignToUser implements spec §4.3's per-user fair-share evaluation.
// Caller must hold q.mu.
func (q *LeafQueue) assignToUser(userName string, clusterResource, required resource.Resource) bool {
	if q.config.MinimumAllocation.Memory <= 0 {
		return false
	}

	queueCapacity := resource.DivideAndCeil(
		int64(q.config.AbsoluteCapacity*float64(clusterResource.Memory)),
		q.config.MinimumAllocation.Memory,
	)
	if required.Memory > queueCapacity {
		queueCapacity = required.Memory
	}

	consumed := q.usedResources.Memory

	var currentCapacity int64
	if consumed < queueCapacity {
		currentCapacity = queueCapacity
	} else {
		currentCapacity = consumed + required.Memory
	}

	activeUsers := int64(len(q.users))
	if activeUsers == 0 {
		activeUsers = 1
	}

	fairShareFloor := resource.DivideAndCeil(currentCapacity, activeUsers)
	userLimitFloor := resource.DivideAndCeil(int64(q.config.UserLimit)*currentCapacity, 100)
	floor := fairShareFloor
	if userLimitFloor > floor {
		floor = userLimitFloor
	}

	ceiling := int64(float64(queueCapacity) * q.config.UserLimitFactor)

	limit := floor
	if ceiling < limit {
		limit = ceiling
	}

	user, ok := q.users[userName]
	if !ok {
		return 0 <= limit
	}
	return user.Consumed.Memory <= limit
}
