package queue

import (
	"github.com/nodepool-sched/leafqueue/pkg/cluster"
	"github.com/nodepool-sched/leafqueue/pkg/resource"
)

// allocateResource implements spec §4.8: add r to usedResources and
// the user's consumed total, increment numContainers, and recompute
// the derived utilization/usedCapacity fractions. Caller must hold
// q.mu.
func (q *LeafQueue) allocateResource(clusterResource resource.Resource, userName string, r resource.Resource) {
	q.usedResources = q.usedResources.Add(r)
	q.numContainers++

	user := q.getOrCreateUserLocked(userName)
	user.Consumed = user.Consumed.Add(r)

	q.recomputeDerivedLocked(clusterResource)
	q.metrics.observe(q)
}

// releaseResource is the symmetric subtraction (spec §4.8), used by
// CompletedContainer. Sub is not clamping (resource.Resource.Sub), so
// callers must only release a capability that was actually granted;
// CompletedContainer enforces that by checking the application's own
// record of the container before calling in. Caller must hold q.mu.
func (q *LeafQueue) releaseResource(clusterResource resource.Resource, userName string, r resource.Resource) {
	q.usedResources = q.usedResources.Sub(r)
	if q.usedResources.Memory < 0 {
		q.usedResources = resource.NONE
	}
	if q.numContainers > 0 {
		q.numContainers--
	}

	if user, ok := q.users[userName]; ok {
		user.Consumed = user.Consumed.Sub(r)
		if user.Consumed.Memory < 0 {
			user.Consumed = resource.NONE
		}
	}

	q.recomputeDerivedLocked(clusterResource)
	q.metrics.observe(q)
}

// recomputeDerivedLocked refreshes utilization and usedCapacity
// (invariant 6: these are derived quantities, recomputed after every
// allocate/release). A zero or unconfigured denominator yields 0
// rather than NaN/±Inf leakage (spec §8 boundary: "no NaN/infinity
// leakage into utilization"). Caller must hold q.mu.
func (q *LeafQueue) recomputeDerivedLocked(clusterResource resource.Resource) {
	used := float64(q.usedResources.Memory)

	if absDenom := float64(clusterResource.Memory) * q.config.AbsoluteCapacity; absDenom > 0 {
		q.utilization = used / absDenom
	} else {
		q.utilization = 0
	}

	if capDenom := float64(clusterResource.Memory) * q.config.Capacity; capDenom > 0 {
		q.usedCapacity = used / capDenom
	} else {
		q.usedCapacity = 0
	}
}

// CompletedContainer implements spec §4.7: notify the application,
// release the container's capability back to the queue/user totals,
// then notify the parent after releasing the queue lock.
//
// Spec §8 P6 leaves the behavior of a completion for a container never
// previously allocated as an implementation choice to be pinned: this
// queue ignores it. app.CompletedContainer reports whether container
// matched one of its own granted containers; on no match, bookkeeping
// is left untouched and the parent is not notified — a duplicate or
// bogus completion is a no-op rather than driving usedResources or
// user.Consumed negative.
func (q *LeafQueue) CompletedContainer(clusterResource resource.Resource, container *cluster.Container, app cluster.Application) {
	q.mu.Lock()

	app.Lock()
	matched := app.CompletedContainer(container)
	app.Unlock()

	if !matched {
		q.mu.Unlock()
		q.logger.WithFields(map[string]interface{}{
			"queue":     q.config.QueuePath,
			"app":       app.ID(),
			"container": container.ID,
		}).Warn("ignoring completion for a container not previously allocated")
		return
	}

	q.releaseResource(clusterResource, app.UserName(), container.Capability)

	q.mu.Unlock()

	q.parent.CompletedContainer(clusterResource, container, app)
	q.logger.WithFields(map[string]interface{}{
		"queue":     q.config.QueuePath,
		"app":       app.ID(),
		"container": container.ID,
	}).Info("container completed")
}
