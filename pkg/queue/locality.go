package queue

import (
	"github.com/nodepool-sched/leafqueue/pkg/cluster"
	"github.com/nodepool-sched/leafqueue/pkg/resource"
)

// locationKey returns the request location string for (level, node)
// per spec §6: host name for DATA_LOCAL, rack name for RACK_LOCAL, "*"
// for OFF_SWITCH.
func locationKey(level cluster.LocalityType, node cluster.Node) string {
	switch level {
	case cluster.DataLocal:
		return node.HostName()
	case cluster.RackLocal:
		return node.RackName()
	default:
		return cluster.OffSwitchLocation
	}
}

// canAssign implements spec §4.4 step 2: the off-switch request must
// exist with capacity remaining regardless of level; RACK_LOCAL and
// DATA_LOCAL each require their own level-specific request to have
// capacity. Callers only reach the RACK_LOCAL/DATA_LOCAL cases after
// selectLocality has already confirmed a non-nil request for that
// level's key, so the lookups here always hit.
func canAssign(app cluster.Application, priority cluster.Priority, node cluster.Node, level cluster.LocalityType) bool {
	offSwitch := app.GetResourceRequest(priority, cluster.OffSwitchLocation)
	if !offSwitch.HasCapacity() {
		return false
	}

	switch level {
	case cluster.OffSwitch:
		return offSwitch.HasCapacity()
	case cluster.RackLocal:
		return app.GetResourceRequest(priority, node.RackName()).HasCapacity()
	case cluster.DataLocal:
		return app.GetResourceRequest(priority, node.HostName()).HasCapacity()
	default:
		return false
	}
}

// selectLocality implements spec §4.4: try DATA_LOCAL, then
// RACK_LOCAL, then OFF_SWITCH, in that order, and short-circuit on the
// first that yields a container. Caller must hold q.mu (app's lock is
// held by the allocation loop for the duration of this call).
func (q *LeafQueue) selectLocality(clusterResource resource.Resource, node cluster.Node, app cluster.Application, priority cluster.Priority) resource.Resource {
	levels := [...]cluster.LocalityType{cluster.DataLocal, cluster.RackLocal, cluster.OffSwitch}
	for _, level := range levels {
		key := locationKey(level, node)
		req := app.GetResourceRequest(priority, key)
		if req == nil {
			continue
		}
		if !canAssign(app, priority, node, level) {
			continue
		}
		if granted := q.assignContainer(node, app, priority, req, level); !granted.IsNone() {
			return granted
		}
	}
	return resource.NONE
}

// assignContainer implements spec §4.5: grant at most one container
// for req, minting a security token when the queue runs with security
// enabled. A zero-capability request is treated as a no-op rather than
// dividing by zero (spec §4.5 Edge case).
func (q *LeafQueue) assignContainer(node cluster.Node, app cluster.Application, priority cluster.Priority, req *cluster.ResourceRequest, localityType cluster.LocalityType) resource.Resource {
	if req.Capability.Memory <= 0 {
		return resource.NONE
	}

	available := node.AvailableResource().Memory / req.Capability.Memory
	if available <= 0 {
		return resource.NONE
	}

	containerID := app.NewContainerID()
	container := &cluster.Container{
		ID:         containerID,
		HostName:   node.HostName(),
		Capability: req.Capability,
	}

	if q.securityEnabled && q.secretManager != nil {
		identifier := []byte(q.config.QueuePath + "/" + node.HostName() + "/" + app.ID())
		if password, err := q.secretManager.CreatePassword(identifier); err == nil {
			container.Token = &cluster.ContainerToken{
				Identifier: identifier,
				Kind:       "ContainerToken",
				Password:   password,
				Service:    node.HostName(),
			}
		}
	}

	app.Allocate(localityType, node, priority, req, []*cluster.Container{container})
	node.AllocateContainer(app.ID(), []*cluster.Container{container})

	return container.Capability
}
