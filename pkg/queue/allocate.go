package queue

import (
	"github.com/nodepool-sched/leafqueue/pkg/cluster"
	"github.com/nodepool-sched/leafqueue/pkg/resource"
)

// AssignContainers is the allocation loop (spec §4.6): under the queue
// lock, walk applications in comparator order, and within each
// application's own lock walk priorities high-to-low. The off-switch
// request at each priority gates capacity/limit checks; a denial there
// ends the *entire* heartbeat's search (spec §9 Open Question 1 — kept
// as written, not "fixed" to continue to later applications). A
// priority that fails to place locally breaks to the next application
// rather than trying lower priorities of the same app (Open Question
// 2, also kept as written). At most one container is ever granted per
// call.
func (q *LeafQueue) AssignContainers(clusterResource resource.Resource, node cluster.Node) resource.Resource {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, app := range q.applications {
		app.Lock()
		granted, halt := q.tryApplication(clusterResource, node, app)
		app.Unlock()

		if !granted.IsNone() {
			return granted
		}
		if halt {
			return resource.NONE
		}
	}

	return resource.NONE
}

// tryApplication walks one application's priorities high to low. It
// returns the granted resource (resource.NONE if nothing was placed)
// and whether a capacity/limit denial should end the whole heartbeat's
// search rather than just moving on to the next application.
func (q *LeafQueue) tryApplication(clusterResource resource.Resource, node cluster.Node, app cluster.Application) (resource.Resource, bool) {
	for _, priority := range app.Priorities() {
		offSwitch := app.GetResourceRequest(priority, cluster.OffSwitchLocation)
		if !offSwitch.HasCapacity() {
			continue
		}

		if !q.assignToQueue(clusterResource, offSwitch.Capability) || !q.assignToUser(app.UserName(), clusterResource, offSwitch.Capability) {
			return resource.NONE, true
		}

		if granted := q.selectLocality(clusterResource, node, app, priority); !granted.IsNone() {
			q.allocateResource(clusterResource, app.UserName(), granted)
			return granted, false
		}

		// Locality selector found nothing at this (highest remaining
		// active) priority: stop considering lower priorities of this
		// application and move to the next one.
		break
	}
	return resource.NONE, false
}
