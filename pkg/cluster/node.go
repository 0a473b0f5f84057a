package cluster

import (
	"sync"

	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/nodepool-sched/leafqueue/pkg/resource"
)

// Node is the §6 collaborator interface the locality selector and
// allocation loop consult on every heartbeat. Node identity follows the
// teacher's WorkerManager convention of keying worker state by
// libp2p peer.ID rather than a bare string.
type Node interface {
	ID() peer.ID
	HostName() string
	RackName() string
	AvailableResource() resource.Resource
	AllocateContainer(appID string, containers []*Container)
}

// SimpleNode is an in-memory Node sufficient for tests and the
// `simulate` CLI; a real deployment's node registry and heartbeat
// plumbing live outside the queue core (spec §1 Out of scope).
type SimpleNode struct {
	mu        sync.Mutex
	id        peer.ID
	hostName  string
	rackName  string
	available resource.Resource
	allocated []*Container
}

// NewSimpleNode builds a SimpleNode with the given host/rack and
// initial available memory.
func NewSimpleNode(id peer.ID, hostName, rackName string, available resource.Resource) *SimpleNode {
	return &SimpleNode{
		id:        id,
		hostName:  hostName,
		rackName:  rackName,
		available: available,
	}
}

func (n *SimpleNode) ID() peer.ID { return n.id }

func (n *SimpleNode) HostName() string { return n.hostName }

func (n *SimpleNode) RackName() string { return n.rackName }

func (n *SimpleNode) AvailableResource() resource.Resource {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.available
}

// AllocateContainer records a granted container and reduces the node's
// advertised availability accordingly.
func (n *SimpleNode) AllocateContainer(appID string, containers []*Container) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, c := range containers {
		n.available = n.available.Sub(c.Capability)
		n.allocated = append(n.allocated, c)
	}
}

// Release gives memory back to the node, mirroring CompletedContainer
// on the queue side. Not part of the Node interface the core consumes;
// the simulate CLI never completes containers and does not call it.
func (n *SimpleNode) Release(c resource.Resource) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.available = n.available.Add(c)
}
