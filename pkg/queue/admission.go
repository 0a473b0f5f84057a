package queue

import (
	"github.com/nodepool-sched/leafqueue/pkg/cluster"
	"github.com/pkg/errors"
)

// SubmitApplication is the admission controller (spec §4.1). It
// rejects with ErrQueueFull once the queue's application cap is
// reached, then ErrUserQueueFull once the submitting user's
// per-user cap is reached. On acceptance, leaf state is mutated under
// the queue lock and the parent is notified only after the lock is
// released (spec §4.1, §5 Lock order).
func (q *LeafQueue) SubmitApplication(app cluster.Application) error {
	q.mu.Lock()

	if len(q.applications) >= q.config.MaxApplications {
		q.mu.Unlock()
		q.logger.WithField("queue", q.config.QueuePath).Warn("rejecting application submission: queue full")
		return errors.Wrapf(ErrQueueFull, "queue=%s", q.config.QueuePath)
	}

	// Peek the user's current count without creating a record: a
	// rejected submission must not leave a zombie zero-application User
	// entry behind (invariant P5, "users[u] exists iff u.applications >
	// 0") — that would both leak memory across repeated rejections and
	// dilute assignToUser's activeUsers count for every other user in
	// the queue.
	existingApplications := 0
	if existing, ok := q.users[app.UserName()]; ok {
		existingApplications = existing.Applications
	}
	if existingApplications >= q.config.MaxApplicationsPerUser {
		q.mu.Unlock()
		q.logger.WithFields(logFields(q, app)).Warn("rejecting application submission: user queue full")
		return errors.Wrapf(ErrUserQueueFull, "queue=%s user=%s", q.config.QueuePath, app.UserName())
	}

	user := q.getOrCreateUserLocked(app.UserName())
	user.Applications++
	q.insertApplicationLocked(app)
	q.metrics.observe(q)

	q.mu.Unlock()

	q.parent.SubmitApplication(app, app.UserName())
	q.logger.WithFields(logFields(q, app)).Info("application submitted")
	return nil
}

// FinishApplication removes app from the queue and decrements its
// user's application count, deleting the user entry once it reaches
// zero (spec §4.2, invariant P5).
func (q *LeafQueue) FinishApplication(app cluster.Application) {
	q.mu.Lock()

	q.removeApplicationLocked(app)

	if user, ok := q.users[app.UserName()]; ok {
		user.Applications--
		if user.Applications <= 0 {
			delete(q.users, app.UserName())
		}
	}
	q.metrics.observe(q)

	q.mu.Unlock()

	q.parent.FinishApplication(app)
	q.logger.WithFields(logFields(q, app)).Info("application finished")
}

func logFields(q *LeafQueue, app cluster.Application) map[string]interface{} {
	return map[string]interface{}{
		"queue": q.config.QueuePath,
		"app":   app.ID(),
		"user":  app.UserName(),
	}
}
