package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// RequestState price request lifecycle state
type RequestState int

const (
	// RequestStatePending waiting for a signed answer
	RequestStatePending RequestState = iota + 1
	// RequestStateFulfilled answered and committed
	RequestStateFulfilled
	// RequestStateRejected expired or refused by the signer
	RequestStateRejected
)

// PriceRequest price request, keyed by (asset_id, timestamp)
type PriceRequest struct {
	ID        int64        `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	TraceID   string       `sql:"size:36" json:"trace_id,omitempty"`
	AssetID   string       `sql:"size:64;unique_index:idx_price_requests" json:"asset_id,omitempty"`
	Symbol    string       `sql:"size:64" json:"symbol,omitempty"`
	Timestamp int64        `sql:"default:0;unique_index:idx_price_requests" json:"timestamp,omitempty"`
	Requester string       `sql:"size:64" json:"requester,omitempty"`
	State     RequestState `sql:"default:1" json:"state,omitempty"`
	Reason    string       `sql:"size:128" json:"reason,omitempty"`
	Version   int64        `sql:"default:0" json:"version,omitempty"`
	CreatedAt time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	UpdatedAt time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`
}

// RequestStore request ledger store interface
//
// Create and the Mark transitions are the only mutations; both are
// conditional writes so concurrent calls on one key cannot both succeed.
type RequestStore interface {
	Create(ctx context.Context, req *PriceRequest) error
	Find(ctx context.Context, assetID string, timestamp int64) (*PriceRequest, error)
	ListPending(ctx context.Context, limit int) ([]*PriceRequest, error)
	ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]*PriceRequest, error)
	MarkFulfilled(ctx context.Context, tx *db.DB, assetID string, timestamp int64) error
	MarkRejected(ctx context.Context, assetID string, timestamp int64, reason string) error
}
