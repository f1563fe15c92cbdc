// Package digest implements the optional daily reminder sweep: every user
// with open todos gets an email with their current count.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/taskforge/todo-service/internal/email"
	"github.com/taskforge/todo-service/internal/metrics"
	"github.com/taskforge/todo-service/internal/repository"
)

type Digest struct {
	todos  repository.TodoRepository
	users  repository.UserRepository
	email  email.Sender
	sched  cron.Schedule
	logger *slog.Logger
}

// New parses the cron spec (standard 5-field format) and returns the digest
// worker. An invalid spec is a configuration error.
func New(todos repository.TodoRepository, users repository.UserRepository, emailSender email.Sender, cronSpec string, logger *slog.Logger) (*Digest, error) {
	sched, err := cron.ParseStandard(cronSpec)
	if err != nil {
		return nil, fmt.Errorf("parse digest cron spec: %w", err)
	}

	return &Digest{
		todos:  todos,
		users:  users,
		email:  emailSender,
		sched:  sched,
		logger: logger.With("component", "digest"),
	}, nil
}

// Start runs the digest loop until ctx is cancelled.
func (d *Digest) Start(ctx context.Context) {
	d.logger.Info("digest started", "next_run", d.sched.Next(time.Now()))

	for {
		timer := time.NewTimer(time.Until(d.sched.Next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			d.logger.Info("digest shut down")
			return
		case <-timer.C:
			d.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep. Exposed so a sweep can be triggered
// outside the cron loop.
func (d *Digest) RunOnce(ctx context.Context) {
	start := time.Now()
	defer func() {
		metrics.DigestCycleDuration.Observe(time.Since(start).Seconds())
	}()

	counts, err := d.todos.DigestCounts(ctx)
	if err != nil {
		d.logger.Error("digest counts", "error", err)
		return
	}

	for userID, n := range counts {
		user, err := d.users.FindByID(ctx, userID)
		if err != nil {
			d.logger.Error("digest find user", "user_id", userID, "error", err)
			metrics.DigestEmailsTotal.WithLabelValues("error").Inc()
			continue
		}

		body := fmt.Sprintf("<p>Hi %s, you have %d open todo(s) waiting for you.</p>", user.Name, n)
		if err := d.email.Send(ctx, user.Email, "Your todo reminder", body); err != nil {
			d.logger.Error("digest send", "user_id", userID, "error", err)
			metrics.DigestEmailsTotal.WithLabelValues("error").Inc()
			continue
		}
		metrics.DigestEmailsTotal.WithLabelValues("sent").Inc()
	}

	d.logger.Info("digest sweep complete", "users", len(counts))
}
