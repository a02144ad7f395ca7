package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// Worker long-running job
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker runs a handler on a fixed interval until ctx is done.
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick start tick
func (w *TickWorker) StartTick(ctx context.Context, onTick func(ctx context.Context) error) error {
	delay := w.Delay
	if delay <= 0 {
		delay = time.Second
	}

	errDelay := w.ErrDelay
	if errDelay <= 0 {
		errDelay = 5 * time.Second
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			next := delay
			if err := onTick(ctx); err != nil {
				next = errDelay
			}
			timer.Reset(next)
		}
	}
}

// OnWork job handler
type OnWork func() error

// BaseJob cron-driven job
type BaseJob struct {
	Cron      *cron.Cron
	IsRunning bool
	OnWork    OnWork
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	job.Cron.Stop()
	return nil
}

func (job *BaseJob) Run() {
	if job.IsRunning {
		return
	}

	job.IsRunning = true
	job.OnWork()
	job.IsRunning = false
}
