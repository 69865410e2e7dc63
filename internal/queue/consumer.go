package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github-slack-notifier/pkg/log"
)

// ConsumerConfig tunes the polling worker pool.
type ConsumerConfig struct {
	Workers      int
	PollInterval time.Duration
}

// Consumer polls the queue and dispatches claimed jobs to registered
// handlers. One handler per job kind.
type Consumer struct {
	q        Queue
	l        log.Logger
	cfg      ConsumerConfig
	handlers map[string]Handler
}

// NewConsumer creates a Consumer. Handlers are registered before Run.
func NewConsumer(q Queue, cfg ConsumerConfig, l log.Logger) *Consumer {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	return &Consumer{
		q:        q,
		l:        l,
		cfg:      cfg,
		handlers: make(map[string]Handler),
	}
}

// Register binds a handler to a job kind. Not safe to call after Run.
func (c *Consumer) Register(kind string, h Handler) {
	c.handlers[kind] = h
}

// Run starts the worker pool and blocks until ctx is canceled and all
// in-flight jobs have finished.
func (c *Consumer) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < c.cfg.Workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			c.runWorker(ctx, worker)
		}(i)
	}
	wg.Wait()
}

func (c *Consumer) runWorker(ctx context.Context, worker int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		jobs, err := c.q.Claim(ctx, 1)
		if err != nil {
			c.l.Errorf(ctx, "queue: worker %d claim: %v", worker, err)
			c.sleep(ctx)
			continue
		}
		if len(jobs) == 0 {
			c.sleep(ctx)
			continue
		}

		for _, job := range jobs {
			c.process(ctx, job)
		}
	}
}

// process runs one claimed job through its handler and settles the outcome.
func (c *Consumer) process(ctx context.Context, job Job) {
	handler, ok := c.handlers[job.Kind]
	if !ok {
		// Unroutable kind: retrying cannot help, park it as dead.
		c.l.Errorf(ctx, "queue: %v: %s (job %s)", ErrNoHandler, job.Kind, job.ID)
		if err := c.q.Fail(ctx, job, fmt.Errorf("%w: %s", ErrNoHandler, job.Kind)); err != nil {
			c.l.Errorf(ctx, "queue: fail job %s: %v", job.ID, err)
		}
		return
	}

	if err := c.runHandler(ctx, handler, job); err != nil {
		c.l.Warnf(ctx, "queue: job %s (%s) attempt %d failed: %v", job.ID, job.Kind, job.Attempts+1, err)
		if ferr := c.q.Fail(ctx, job, err); ferr != nil {
			c.l.Errorf(ctx, "queue: fail job %s: %v", job.ID, ferr)
		}
		return
	}

	if err := c.q.Complete(ctx, job.ID); err != nil {
		// The job ran but completion did not commit. The visibility
		// timeout will surface it again; delivery is at-least-once.
		c.l.Errorf(ctx, "queue: complete job %s: %v", job.ID, err)
	}
}

// runHandler converts a handler panic into a job error so a single bad
// payload cannot take a worker down.
func (c *Consumer) runHandler(ctx context.Context, h Handler, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, job)
}

func (c *Consumer) sleep(ctx context.Context) {
	t := time.NewTimer(c.cfg.PollInterval)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
