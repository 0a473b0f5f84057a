package queue

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/nodepool-sched/leafqueue/pkg/cluster"
	"github.com/nodepool-sched/leafqueue/pkg/resource"
)

// TestInvariants_RandomEventSequences exercises spec §8's property-based
// invariants (P1, P3, P5) over random interleavings of submit, finish,
// heartbeat-driven allocation, and completion. gopter is a direct
// teacher dependency (go.mod) otherwise unused by the teacher's own
// tests; this is where SPEC_FULL puts it to work.
func TestInvariants_RandomEventSequences(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("P1,P3,P5 hold after every random op", prop.ForAll(
		func(ops []int) bool {
			cfg := NewQueueConfig("default", "root.default", 1.0, Undefined, 1.0, 100, 1.0, 30, resource.New(1))
			cfg.MaxApplicationsPerUser = 4
			parent := cluster.NewAggregatingParent("root", 1.0)
			q := NewLeafQueue(cfg, parent, nil)

			node := cluster.NewSimpleNode(peer.ID("prop-node"), "hostP", "rackP", resource.New(1_000_000))
			clusterResource := resource.New(1_000_000)
			users := []string{"u1", "u2", "u3"}

			var live []*cluster.SimpleApplication
			var outstanding []*cluster.Container
			seq := 0

			for _, op := range ops {
				switch op % 4 {
				case 0: // submit
					seq++
					user := users[op%len(users)]
					app := cluster.NewSimpleApplication(user, time.Unix(int64(seq), 0))
					app.AddRequest(1, &cluster.ResourceRequest{
						Location:      cluster.OffSwitchLocation,
						Capability:    resource.New(1),
						NumContainers: 5,
					})
					if err := q.SubmitApplication(app); err == nil {
						live = append(live, app)
					}
				case 1: // finish
					if len(live) == 0 {
						continue
					}
					idx := op % len(live)
					app := live[idx]
					q.FinishApplication(app)
					live = append(live[:idx], live[idx+1:]...)
				case 2: // heartbeat
					granted := q.AssignContainers(clusterResource, node)
					if !granted.IsNone() {
						outstanding = append(outstanding, &cluster.Container{
							Capability: granted,
						})
					}
				case 3: // complete
					if len(outstanding) == 0 || len(live) == 0 {
						continue
					}
					c := outstanding[0]
					outstanding = outstanding[1:]
					app := live[op%len(live)]
					q.CompletedContainer(clusterResource, c, app)
				}

				// P1
				if q.NumApplications() > cfg.MaxApplications {
					return false
				}
				for _, u := range users {
					if q.UserApplications(u) > cfg.MaxApplicationsPerUser {
						return false
					}
				}
				// P3
				if q.NumContainers() < 0 {
					return false
				}
				// P5
				for _, u := range users {
					count := q.UserApplications(u)
					_, exists := q.users[u]
					if (count > 0) != exists {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOfN(80, gen.IntRange(0, 1000)),
	))

	properties.TestingRun(t)
}
