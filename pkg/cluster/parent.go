package cluster

import (
	"sync"

	"github.com/nodepool-sched/leafqueue/pkg/resource"
)

// ParentQueue is the §6 collaborator notified of leaf-level events for
// tree-wide bookkeeping. The hierarchical parent/root queue tree itself
// is out of scope (spec §1); this package only provides the interface
// and a minimal aggregating implementation for tests/simulation.
type ParentQueue interface {
	AbsoluteCapacity() float64
	QueuePath() string
	SubmitApplication(app Application, user string)
	FinishApplication(app Application)
	CompletedContainer(cluster resource.Resource, container *Container, app Application)
}

// AggregatingParent is a minimal ParentQueue that just tallies
// submissions/finishes/completions it's told about, the way a root
// queue would roll up leaf-level events without re-implementing the
// leaf's own admission/capacity logic.
type AggregatingParent struct {
	mu sync.Mutex

	path             string
	absoluteCapacity float64

	submitted  int
	finished   int
	completed  int
}

// NewAggregatingParent builds a parent queue stub at queuePath with the
// given absolute capacity share.
func NewAggregatingParent(queuePath string, absoluteCapacity float64) *AggregatingParent {
	return &AggregatingParent{path: queuePath, absoluteCapacity: absoluteCapacity}
}

func (p *AggregatingParent) AbsoluteCapacity() float64 { return p.absoluteCapacity }

func (p *AggregatingParent) QueuePath() string { return p.path }

func (p *AggregatingParent) SubmitApplication(app Application, user string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.submitted++
}

func (p *AggregatingParent) FinishApplication(app Application) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finished++
}

func (p *AggregatingParent) CompletedContainer(cluster resource.Resource, container *Container, app Application) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed++
}

// Counts returns the running submit/finish/completion tallies, mainly
// for tests asserting the leaf notified its parent.
func (p *AggregatingParent) Counts() (submitted, finished, completed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.submitted, p.finished, p.completed
}
