package signer

import (
	"context"
	"fmt"
	"time"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"
	"github.com/MAGNETO903/oracle-platform-hackathon/pkg/sigcheck"
	"github.com/MAGNETO903/oracle-platform-hackathon/worker"

	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// Config signer worker config
type Config struct {
	Batch    int   `json:"batch" valid:"required"`
	Capacity int64 `json:"capacity" valid:"required"`
}

// Worker observes pending requests and produces signed answers.
//
// Distinct keys are processed in parallel up to Capacity; a
// singleflight group keyed by (asset, timestamp) keeps one in-flight
// answer per key within the process.
type Worker struct {
	worker.TickWorker
	system  *core.System
	oracle  core.OracleService
	feed    core.PriceFeedService
	signKey string
	cfg     Config
	sf      singleflight.Group
}

// New new signer worker
func New(system *core.System, oracleSrv core.OracleService, feedSrv core.PriceFeedService, signKey string, cfg Config) *Worker {
	if cfg.Batch <= 0 {
		cfg.Batch = 100
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = 8
	}

	return &Worker{
		system:  system,
		oracle:  oracleSrv,
		feed:    feedSrv,
		signKey: signKey,
		cfg:     cfg,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "signer")

	requests, err := w.oracle.ListPending(ctx, w.cfg.Batch)
	if err != nil {
		log.WithError(err).Errorln("list pending requests")
		return err
	}

	if len(requests) == 0 {
		return nil
	}

	sem := semaphore.NewWeighted(w.cfg.Capacity)
	var g errgroup.Group
	for _, req := range requests {
		req := req
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			key := fmt.Sprintf("%s:%d", req.AssetID, req.Timestamp)
			_, err, _ := w.sf.Do(key, func() (interface{}, error) {
				return nil, w.handleRequest(ctx, req)
			})
			return err
		})
	}

	return g.Wait()
}

func (w *Worker) handleRequest(ctx context.Context, req *core.PriceRequest) error {
	log := logger.FromContext(ctx).WithField("worker", "signer").
		WithField("symbol", req.Symbol).
		WithField("timestamp", req.Timestamp)

	ticker, err := w.feed.PullPriceTicker(ctx, req.Symbol, time.Unix(req.Timestamp, 0))
	if err != nil {
		log.WithError(err).Errorln("pull price ticker")
		return err
	}

	if !ticker.Price.IsPositive() {
		log.Errorln("invalid ticker price:", ticker.Symbol, ":", ticker.Price)
		return core.ErrInvalidPrice
	}

	// refuse requests the feed cannot observe close enough; the
	// requester may start a fresh cycle once rejected
	if !w.fresh(req.Timestamp, ticker.Timestamp) {
		log.Infoln("stale request, rejecting:", req.Timestamp, "vs", ticker.Timestamp)
		return w.oracle.RejectRequest(ctx, req.AssetID, req.Timestamp, "stale")
	}

	assetID, err := core.ParseAssetID(req.AssetID)
	if err != nil {
		return err
	}

	digest, err := sigcheck.Digest(assetID, req.Timestamp, ticker.Price)
	if err != nil {
		return err
	}

	signature, err := sigcheck.Sign(digest, w.signKey)
	if err != nil {
		log.WithError(err).Errorln("sign answer")
		return err
	}

	answer := &core.SignedAnswer{
		AssetID:   req.AssetID,
		Timestamp: req.Timestamp,
		Price:     ticker.Price,
		Signature: signature,
	}

	if _, err := w.oracle.SubmitAnswer(ctx, answer); err != nil {
		switch err {
		case core.ErrAlreadyCommitted, core.ErrNoMatchingRequest, core.ErrNoSuchRequest:
			// answered or expired while in flight; next tick moves on
			log.Infoln("answer dropped:", err)
			return nil
		default:
			log.WithError(err).Errorln("submit answer")
			return err
		}
	}

	return nil
}

func (w *Worker) fresh(requested, observed int64) bool {
	if w.system.MaxPriceAge <= 0 {
		return true
	}

	diff := requested - observed
	if diff < 0 {
		diff = -diff
	}

	return time.Duration(diff)*time.Second <= w.system.MaxPriceAge
}
