package request

import (
	"context"
	"time"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type requestStore struct {
	db *db.DB
}

// New new request store
func New(db *db.DB) core.RequestStore {
	return &requestStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.PriceRequest{})
		if err := tx.AutoMigrate(core.PriceRequest{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Create records a pending request.
//
// A key held by a Pending or Fulfilled row is taken; a Rejected row is
// revived in place so the unique index keeps one row per key. Losing a
// create race surfaces as ErrDuplicateRequest, never as a second row.
func (s *requestStore) Create(ctx context.Context, req *core.PriceRequest) error {
	err := s.db.Tx(func(tx *db.DB) error {
		var existing core.PriceRequest
		err := tx.Update().Where("asset_id = ? AND timestamp = ?", req.AssetID, req.Timestamp).First(&existing).Error
		if store.IsErrNotFound(err) {
			req.State = core.RequestStatePending
			return tx.Update().Create(req).Error
		}
		if err != nil {
			return err
		}

		if existing.State != core.RequestStateRejected {
			return core.ErrDuplicateRequest
		}

		update := tx.Update().Model(core.PriceRequest{}).
			Where("asset_id = ? AND timestamp = ? AND state = ?", req.AssetID, req.Timestamp, core.RequestStateRejected).
			Updates(map[string]interface{}{
				"trace_id":  req.TraceID,
				"requester": req.Requester,
				"state":     core.RequestStatePending,
				"reason":    "",
				"version":   existing.Version + 1,
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return core.ErrDuplicateRequest
		}

		req.ID = existing.ID
		req.State = core.RequestStatePending
		req.Version = existing.Version + 1
		return nil
	})

	if err != nil && err != core.ErrDuplicateRequest {
		// a racing insert may fail on the unique index; the loser
		// observes the winner's row and reports a duplicate
		if _, ferr := s.Find(ctx, req.AssetID, req.Timestamp); ferr == nil {
			return core.ErrDuplicateRequest
		}
	}

	return err
}

func (s *requestStore) Find(ctx context.Context, assetID string, timestamp int64) (*core.PriceRequest, error) {
	var req core.PriceRequest
	err := s.db.View().Where("asset_id = ? AND timestamp = ?", assetID, timestamp).First(&req).Error
	if store.IsErrNotFound(err) {
		return nil, core.ErrNoSuchRequest
	}
	if err != nil {
		return nil, err
	}

	return &req, nil
}

func (s *requestStore) ListPending(ctx context.Context, limit int) ([]*core.PriceRequest, error) {
	var reqs []*core.PriceRequest
	if err := s.db.View().Where("state = ?", core.RequestStatePending).Order("id").Limit(limit).Find(&reqs).Error; err != nil {
		return nil, err
	}

	return reqs, nil
}

func (s *requestStore) ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]*core.PriceRequest, error) {
	var reqs []*core.PriceRequest
	if err := s.db.View().Where("state = ? AND created_at < ?", core.RequestStatePending, before).Order("id").Limit(limit).Find(&reqs).Error; err != nil {
		return nil, err
	}

	return reqs, nil
}

func (s *requestStore) MarkFulfilled(ctx context.Context, tx *db.DB, assetID string, timestamp int64) error {
	update := tx.Update().Model(core.PriceRequest{}).
		Where("asset_id = ? AND timestamp = ? AND state = ?", assetID, timestamp, core.RequestStatePending).
		Updates(map[string]interface{}{"state": core.RequestStateFulfilled})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return core.ErrNoSuchRequest
	}

	return nil
}

func (s *requestStore) MarkRejected(ctx context.Context, assetID string, timestamp int64, reason string) error {
	update := s.db.Update().Model(core.PriceRequest{}).
		Where("asset_id = ? AND timestamp = ? AND state = ?", assetID, timestamp, core.RequestStatePending).
		Updates(map[string]interface{}{"state": core.RequestStateRejected, "reason": reason})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return core.ErrNoSuchRequest
	}

	return nil
}
