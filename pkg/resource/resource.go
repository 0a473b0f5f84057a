// Package resource implements the integer arithmetic over the cluster's
// single fungible resource (memory) that the rest of the queue core is
// built on.
package resource

import "fmt"

// Resource is a non-negative quantity of cluster memory, in whatever
// integer unit the deployment standardizes on (MB is typical).
type Resource struct {
	Memory int64
}

// NONE is the sentinel zero resource returned when nothing was granted.
var NONE = Resource{Memory: 0}

// New returns a Resource with the given memory quantity.
func New(memory int64) Resource {
	return Resource{Memory: memory}
}

// IsNone reports whether r carries no memory.
func (r Resource) IsNone() bool {
	return r.Memory <= 0
}

// Add returns r + other.
func (r Resource) Add(other Resource) Resource {
	return Resource{Memory: r.Memory + other.Memory}
}

// Sub returns r - other. Callers that must never go negative (queue/user
// consumed totals) are responsible for not calling Sub past zero; Sub
// itself does not clamp, so a caller bug surfaces as a negative value
// rather than being silently hidden.
func (r Resource) Sub(other Resource) Resource {
	return Resource{Memory: r.Memory - other.Memory}
}

// GreaterThan reports whether r has strictly more memory than other.
func (r Resource) GreaterThan(other Resource) bool {
	return r.Memory > other.Memory
}

// String implements fmt.Stringer for logging.
func (r Resource) String() string {
	return fmt.Sprintf("<memory:%d>", r.Memory)
}

// DivideAndCeil returns ceil(a/b), defensively returning 0 when b is 0
// instead of panicking. The evaluator (assignToUser) denies a zero
// minimum allocation itself before dividing by it.
func DivideAndCeil(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	if a%b == 0 {
		return a / b
	}
	return a/b + 1
}
