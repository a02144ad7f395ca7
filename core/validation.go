package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// ValidationRecord accepted price answer, immutable once written
type ValidationRecord struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	AssetID   string          `sql:"size:64;unique_index:idx_validations" json:"asset_id,omitempty"`
	Timestamp int64           `sql:"default:0;unique_index:idx_validations" json:"timestamp,omitempty"`
	Price     decimal.Decimal `sql:"type:decimal(20,8)" json:"price,omitempty"`
	Signature string          `sql:"size:130" json:"signature,omitempty"`
	Content   types.JSONText  `sql:"type:varchar(1024)" json:"content,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
}

// ValidationStore validation store interface, append only
type ValidationStore interface {
	Commit(ctx context.Context, tx *db.DB, record *ValidationRecord) error
	Find(ctx context.Context, assetID string, timestamp int64) (*ValidationRecord, error)
	Latest(ctx context.Context, assetID string) (*ValidationRecord, error)
}
