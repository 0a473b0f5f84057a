package cluster

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nodepool-sched/leafqueue/pkg/resource"
)

// Priority is an application's request priority; by convention higher
// numeric values are served first (spec §4.6: "descending-priority
// order").
type Priority int

// OffSwitchLocation is the location key used for a priority's off-switch
// request — "*" per spec §6.
const OffSwitchLocation = "*"

// ResourceRequest is one (priority, location) bucket of outstanding
// demand for an application.
type ResourceRequest struct {
	Location      string
	Capability    resource.Resource
	NumContainers int
}

// HasCapacity reports whether the request still has containers to
// place.
func (r *ResourceRequest) HasCapacity() bool {
	return r != nil && r.NumContainers > 0
}

// Application is the §6 collaborator the leaf queue drives on every
// heartbeat. Implementations must serialize their own internal state
// (priorities/requests) behind Lock/Unlock — the allocation loop takes
// this lock after the queue lock, never before (spec §5 Lock order).
type Application interface {
	ID() string
	UserName() string
	SubmittedAt() time.Time

	Lock()
	Unlock()

	// Priorities returns active priorities in descending-priority
	// order (highest first).
	Priorities() []Priority

	// GetResourceRequest returns the request for (priority, location),
	// or nil if there is none.
	GetResourceRequest(priority Priority, location string) *ResourceRequest

	NewContainerID() ContainerID

	// Allocate records that [containers] (always length 1 in this
	// core, per §4.5) were granted at the given locality/priority.
	Allocate(localityType LocalityType, node Node, priority Priority, req *ResourceRequest, containers []*Container)

	// CompletedContainer reports container as finished, returning true
	// iff it matched a container this application was previously
	// granted. A completion for a container never previously allocated
	// (a duplicate or bogus completion) returns false so the caller can
	// leave bookkeeping untouched (spec §8 P6).
	CompletedContainer(container *Container) bool

	ShowRequests() string
}

// SimpleApplication is an in-memory Application good enough to drive
// the queue core in tests and the simulate CLI. Real AM lifecycle
// (launch, restart, RPC-driven request updates) is out of scope
// (spec §1).
type SimpleApplication struct {
	mu sync.Mutex

	id          string
	userName    string
	submittedAt time.Time

	priorities []Priority
	requests   map[Priority]map[string]*ResourceRequest

	nextContainerSeq int64
	allocated        []*Container
}

// NewSimpleApplication creates an application with no requests yet; use
// AddRequest to populate demand before submitting it to a queue.
func NewSimpleApplication(userName string, submittedAt time.Time) *SimpleApplication {
	return &SimpleApplication{
		id:          uuid.NewString(),
		userName:    userName,
		submittedAt: submittedAt,
		requests:    make(map[Priority]map[string]*ResourceRequest),
	}
}

func (a *SimpleApplication) ID() string              { return a.id }
func (a *SimpleApplication) UserName() string        { return a.userName }
func (a *SimpleApplication) SubmittedAt() time.Time  { return a.submittedAt }
func (a *SimpleApplication) Lock()                   { a.mu.Lock() }
func (a *SimpleApplication) Unlock()                 { a.mu.Unlock() }

// AddRequest installs or replaces the request for (priority, location).
// Callers must hold the application's lock if the application is
// already live in a queue; SimpleApplication does not take it itself
// so callers can batch several AddRequest calls under one lock/unlock.
func (a *SimpleApplication) AddRequest(priority Priority, req *ResourceRequest) {
	if _, ok := a.requests[priority]; !ok {
		a.priorities = append(a.priorities, priority)
		sort.Slice(a.priorities, func(i, j int) bool { return a.priorities[i] > a.priorities[j] })
		a.requests[priority] = make(map[string]*ResourceRequest)
	}
	a.requests[priority][req.Location] = req
}

func (a *SimpleApplication) Priorities() []Priority {
	out := make([]Priority, len(a.priorities))
	copy(out, a.priorities)
	return out
}

func (a *SimpleApplication) GetResourceRequest(priority Priority, location string) *ResourceRequest {
	byLoc, ok := a.requests[priority]
	if !ok {
		return nil
	}
	return byLoc[location]
}

func (a *SimpleApplication) NewContainerID() ContainerID {
	a.nextContainerSeq++
	return ContainerID{AppID: a.id, Seq: a.nextContainerSeq}
}

func (a *SimpleApplication) Allocate(localityType LocalityType, node Node, priority Priority, req *ResourceRequest, containers []*Container) {
	a.allocated = append(a.allocated, containers...)
	if req != nil {
		req.NumContainers -= len(containers)
		if req.NumContainers < 0 {
			req.NumContainers = 0
		}
	}
}

func (a *SimpleApplication) CompletedContainer(container *Container) bool {
	for i, c := range a.allocated {
		if c.ID == container.ID {
			a.allocated = append(a.allocated[:i], a.allocated[i+1:]...)
			return true
		}
	}
	return false
}

func (a *SimpleApplication) ShowRequests() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := fmt.Sprintf("application %s (user=%s):\n", a.id, a.userName)
	for _, p := range a.priorities {
		for loc, req := range a.requests[p] {
			out += fmt.Sprintf("  priority=%d location=%s capability=%s numContainers=%d\n",
				p, loc, req.Capability, req.NumContainers)
		}
	}
	return out
}
