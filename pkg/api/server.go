// Package api exposes the leaf queue's read-only accessors (spec §6)
// over HTTP, following the teacher's pkg/api gin-based router
// convention.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nodepool-sched/leafqueue/pkg/queue"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is a thin gin router over a set of leaf queues, keyed by
// queue path. It only ever reads queue state — submit/finish/allocate/
// complete remain driven by the scheduler's own event sources (spec
// §1 Out of scope: RPC serialization).
type Server struct {
	engine *gin.Engine
	queues map[string]*queue.LeafQueue
}

// NewServer builds a Server over queues, registering reg (if non-nil)
// at /metrics.
func NewServer(queues map[string]*queue.LeafQueue, reg *prometheus.Registry) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{engine: engine, queues: queues}

	engine.GET("/healthz", s.handleHealthz)
	engine.GET("/queues/:path", s.handleQueue)
	engine.GET("/queues", s.handleList)

	if reg != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	return s
}

// Run starts the HTTP server on addr, blocking until it exits.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "queues": len(s.queues)})
}

func (s *Server) handleList(c *gin.Context) {
	paths := make([]string, 0, len(s.queues))
	for path := range s.queues {
		paths = append(paths, path)
	}
	c.JSON(http.StatusOK, gin.H{"queues": paths})
}

func (s *Server) handleQueue(c *gin.Context) {
	path := c.Param("path")
	q, ok := s.queues[path]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such queue", "path": path})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"queuePath":        q.QueuePath(),
		"capacity":         q.Capacity(),
		"absoluteCapacity": q.AbsoluteCapacity(),
		"used":             q.Used().Memory,
		"utilization":      q.Utilization(),
		"usedCapacity":     q.UsedCapacity(),
		"numApplications":  q.NumApplications(),
		"numContainers":    q.NumContainers(),
		"requests":         q.ShowRequests(),
	})
}
