package main

import (
	"fmt"

	"github.com/nodepool-sched/leafqueue/internal/config"
	"github.com/nodepool-sched/leafqueue/internal/logging"
	"github.com/nodepool-sched/leafqueue/pkg/api"
	"github.com/nodepool-sched/leafqueue/pkg/cluster"
	"github.com/nodepool-sched/leafqueue/pkg/queue"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only queue accessor surface over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			logger := logging.New(cfg.Logging)
			reg := prometheus.NewRegistry()

			queues := make(map[string]*queue.LeafQueue, len(cfg.Queues))
			for _, spec := range cfg.Queues {
				resolved := spec.Resolve(cfg.Cluster.SystemMaxApplications)
				parent := cluster.NewAggregatingParent("root", spec.ParentAbsoluteCapacity)
				metrics := queue.NewMetrics(reg, resolved.QueuePath)
				q := queue.NewLeafQueue(resolved, parent, nil,
					queue.WithLogger(logger.WithField("queue", resolved.QueuePath)),
					queue.WithMetrics(metrics),
				)
				queues[resolved.QueuePath] = q
				logger.WithField("queue", resolved.QueuePath).Info("leaf queue configured")
			}

			server := api.NewServer(queues, reg)
			logger.WithField("listen", listen).Info("serving queue accessors")
			return server.Run(listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", ":8080", "address to serve the HTTP accessor surface on")
	return cmd
}
