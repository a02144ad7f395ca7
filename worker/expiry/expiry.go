package expiry

import (
	"context"
	"time"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"
	"github.com/MAGNETO903/oracle-platform-hackathon/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

const expiredReason = "expired"

// Expiry rejects pending requests no answer arrived for within the TTL.
type Expiry struct {
	worker.BaseJob
	system   *core.System
	requests core.RequestStore
}

// New new expiry worker
func New(location string, system *core.System, requestStr core.RequestStore) *Expiry {
	expiry := Expiry{
		system:   system,
		requests: requestStr,
	}

	l, err := time.LoadLocation(location)
	if err != nil {
		l = time.UTC
	}
	expiry.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 30s"
	expiry.Cron.AddFunc(spec, expiry.BaseJob.Run)
	expiry.OnWork = func() error {
		return expiry.onWork(context.Background())
	}

	return &expiry
}

// Run run worker
func (w *Expiry) Run(ctx context.Context) error {
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	<-ctx.Done()
	return ctx.Err()
}

func (w *Expiry) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "expiry")

	if w.system.RequestTTL <= 0 {
		return nil
	}

	const limit = 100
	deadline := time.Now().Add(-w.system.RequestTTL)
	requests, err := w.requests.ListPendingBefore(ctx, deadline, limit)
	if err != nil {
		log.WithError(err).Errorln("list pending requests")
		return err
	}

	for _, req := range requests {
		if err := w.requests.MarkRejected(ctx, req.AssetID, req.Timestamp, expiredReason); err != nil {
			if err == core.ErrNoSuchRequest {
				// fulfilled between the list and the transition
				continue
			}

			log.WithError(err).Errorln("reject request:", req.AssetID, req.Timestamp)
			return err
		}

		log.Infoln("request expired:", req.Symbol, req.Timestamp)
	}

	return nil
}
