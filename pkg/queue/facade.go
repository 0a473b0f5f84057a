package queue

import (
	"sort"
	"sync"

	"github.com/nodepool-sched/leafqueue/pkg/cluster"
	"github.com/nodepool-sched/leafqueue/pkg/resource"
	"github.com/sirupsen/logrus"
)

// Comparator orders two applications for the queue's ordered
// application set; it returns true iff a must be served before b.
// FIFO (ascending submission time, then id) is the canonical policy
// (spec §3, §9), but the facade accepts any comparator with
// deterministic, total ordering.
type Comparator func(a, b cluster.Application) bool

// FIFO orders applications by ascending submission time, breaking ties
// by id.
func FIFO(a, b cluster.Application) bool {
	if !a.SubmittedAt().Equal(b.SubmittedAt()) {
		return a.SubmittedAt().Before(b.SubmittedAt())
	}
	return a.ID() < b.ID()
}

// LeafQueue is the facade described in spec §6: a single queue-wide
// lock guards usedResources/numContainers/utilization/usedCapacity/
// applications/users, mirroring the struct-of-sub-components-behind-
// one-mutex shape of the teacher's SchedulerManager.
type LeafQueue struct {
	mu sync.Mutex

	config QueueConfig

	usedResources resource.Resource
	usedCapacity  float64
	utilization   float64
	numContainers int

	applications []cluster.Application
	users        map[string]*User

	comparator Comparator
	parent     cluster.ParentQueue

	securityEnabled bool
	secretManager   cluster.SecretManager

	logger  *logrus.Entry
	metrics *Metrics
}

// Option configures optional LeafQueue behavior at construction.
type Option func(*LeafQueue)

// WithLogger attaches a logrus entry the facade logs submit/finish/
// complete events through; AssignContainers logs nothing. Core decision logic (capacity.go,
// locality.go) never takes a logger itself — only the facade boundary
// does, per SPEC_FULL's ambient-stack placement.
func WithLogger(logger *logrus.Entry) Option {
	return func(q *LeafQueue) { q.logger = logger }
}

// WithSecurity enables container-token minting via secretManager
// (spec §4.5 Security hook).
func WithSecurity(secretManager cluster.SecretManager) Option {
	return func(q *LeafQueue) {
		q.securityEnabled = true
		q.secretManager = secretManager
	}
}

// WithMetrics attaches a Metrics collector the facade updates from
// bookkeeping.
func WithMetrics(m *Metrics) Option {
	return func(q *LeafQueue) { q.metrics = m }
}

// NewLeafQueue constructs a LeafQueue. comparator defaults to FIFO when
// nil.
func NewLeafQueue(config QueueConfig, parent cluster.ParentQueue, comparator Comparator, opts ...Option) *LeafQueue {
	if comparator == nil {
		comparator = FIFO
	}
	q := &LeafQueue{
		config:     config,
		users:      make(map[string]*User),
		comparator: comparator,
		parent:     parent,
		logger:     logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// --- read accessors (spec §6) ---

func (q *LeafQueue) QueuePath() string { return q.config.QueuePath }

func (q *LeafQueue) Capacity() float64 {
	return q.config.Capacity
}

func (q *LeafQueue) AbsoluteCapacity() float64 {
	return q.config.AbsoluteCapacity
}

func (q *LeafQueue) Used() resource.Resource {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.usedResources
}

func (q *LeafQueue) Utilization() float64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.utilization
}

func (q *LeafQueue) UsedCapacity() float64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.usedCapacity
}

func (q *LeafQueue) NumApplications() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.applications)
}

func (q *LeafQueue) NumContainers() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.numContainers
}

// UserApplications returns the active application count for userName,
// or 0 if the user has no entry (invariant P5: users[u] exists iff
// u.applications > 0).
func (q *LeafQueue) UserApplications(userName string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if u, ok := q.users[userName]; ok {
		return u.Applications
	}
	return 0
}

// UserConsumed returns userName's consumed resource, or resource.NONE
// if the user has no entry.
func (q *LeafQueue) UserConsumed(userName string) resource.Resource {
	q.mu.Lock()
	defer q.mu.Unlock()
	if u, ok := q.users[userName]; ok {
		return u.Consumed
	}
	return resource.NONE
}

// ShowRequests is the diagnostic accessor spec §9 names alongside the
// Application collaborator's own showRequests(): it renders every
// application currently in the queue.
func (q *LeafQueue) ShowRequests() string {
	q.mu.Lock()
	apps := make([]cluster.Application, len(q.applications))
	copy(apps, q.applications)
	q.mu.Unlock()

	out := ""
	for _, app := range apps {
		out += app.ShowRequests()
	}
	return out
}

// --- internal helpers shared across admission/capacity/allocate ---

// getOrCreateUserLocked returns the User record for userName, creating
// it lazily if absent. Caller must hold q.mu.
func (q *LeafQueue) getOrCreateUserLocked(userName string) *User {
	u, ok := q.users[userName]
	if !ok {
		u = &User{}
		q.users[userName] = u
	}
	return u
}

// insertApplicationLocked inserts app into the ordered application set
// at its comparator-determined position. Caller must hold q.mu.
func (q *LeafQueue) insertApplicationLocked(app cluster.Application) {
	idx := sort.Search(len(q.applications), func(i int) bool {
		return !q.comparator(q.applications[i], app)
	})
	q.applications = append(q.applications, nil)
	copy(q.applications[idx+1:], q.applications[idx:])
	q.applications[idx] = app
}

// removeApplicationLocked removes app from the ordered application set
// by identity. Caller must hold q.mu.
func (q *LeafQueue) removeApplicationLocked(app cluster.Application) {
	for i, a := range q.applications {
		if a == app {
			q.applications = append(q.applications[:i], q.applications[i+1:]...)
			return
		}
	}
}
