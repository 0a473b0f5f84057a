package main

import (
	"fmt"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/nodepool-sched/leafqueue/internal/logging"
	"github.com/nodepool-sched/leafqueue/pkg/cluster"
	"github.com/nodepool-sched/leafqueue/pkg/queue"
	"github.com/nodepool-sched/leafqueue/pkg/resource"
	"github.com/spf13/cobra"
)

// simulateCmd drives a synthetic cluster against one in-memory leaf
// queue, exercising the scenarios spec §8 describes by hand — grounded
// in the teacher's cmd/simple-perf-test / cmd/performance-test driver
// loop shape.
func simulateCmd() *cobra.Command {
	var (
		nodes             int
		nodeMemory        int64
		clusterMemory     int64
		applications      int
		heartbeats        int
		heartbeatInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Drive a synthetic cluster against one leaf queue and print bookkeeping totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(logging.Config{Level: "info", Format: "text"})

			cfg := queue.NewQueueConfig("default", "root.default", 1.0, queue.Undefined, 1.0, 100, 1.0, 10000, resource.New(1))
			parent := cluster.NewAggregatingParent("root", 1.0)
			q := queue.NewLeafQueue(cfg, parent, nil, queue.WithLogger(logger.WithField("queue", cfg.QueuePath)))

			for i := 0; i < applications; i++ {
				app := cluster.NewSimpleApplication(fmt.Sprintf("user-%d", i%3), time.Unix(int64(i), 0))
				app.AddRequest(1, &cluster.ResourceRequest{
					Location:      cluster.OffSwitchLocation,
					Capability:    resource.New(1),
					NumContainers: 1000,
				})
				if err := q.SubmitApplication(app); err != nil {
					logger.WithError(err).Warn("application rejected")
				}
			}

			clusterResource := resource.New(clusterMemory)
			syntheticNodes := make([]*cluster.SimpleNode, nodes)
			for i := range syntheticNodes {
				syntheticNodes[i] = cluster.NewSimpleNode(
					peer.ID(fmt.Sprintf("sim-node-%d", i)),
					fmt.Sprintf("host-%d", i),
					fmt.Sprintf("rack-%d", i%4),
					resource.New(nodeMemory),
				)
			}

			for h := 0; h < heartbeats; h++ {
				for _, node := range syntheticNodes {
					granted := q.AssignContainers(clusterResource, node)
					if !granted.IsNone() {
						logger.WithField("node", node.HostName()).Infof("granted container of %s", granted)
					}
				}
				if heartbeatInterval > 0 {
					time.Sleep(heartbeatInterval)
				}
			}

			fmt.Printf("used=%s numContainers=%d utilization=%.4f usedCapacity=%.4f numApplications=%d\n",
				q.Used(), q.NumContainers(), q.Utilization(), q.UsedCapacity(), q.NumApplications())
			return nil
		},
	}

	cmd.Flags().IntVar(&nodes, "nodes", 4, "number of synthetic nodes")
	cmd.Flags().Int64Var(&nodeMemory, "node-memory", 16, "available memory per synthetic node")
	cmd.Flags().Int64Var(&clusterMemory, "cluster-memory", 64, "total cluster memory used in capacity checks")
	cmd.Flags().IntVar(&applications, "applications", 3, "number of synthetic applications to submit")
	cmd.Flags().IntVar(&heartbeats, "heartbeats", 20, "number of heartbeat rounds to drive")
	cmd.Flags().DurationVar(&heartbeatInterval, "heartbeat-interval", 0, "sleep between heartbeat rounds (0 = as fast as possible)")

	return cmd
}
