package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SignedAnswer price answer produced by the trusted signer.
//
// Not stored as-is: once verified it materializes a ValidationRecord.
type SignedAnswer struct {
	AssetID   string          `json:"asset_id,omitempty"`
	Timestamp int64           `json:"timestamp,omitempty"`
	Price     decimal.Decimal `json:"price,omitempty"`
	Signature string          `json:"signature,omitempty"`
}

// PriceTicker price observation from the feed
type PriceTicker struct {
	Provider  string          `json:"provider,omitempty"`
	Symbol    string          `json:"symbol,omitempty"`
	Price     decimal.Decimal `json:"price,omitempty"`
	Timestamp int64           `json:"timestamp,omitempty"`
}

// AnswerVerifier validates a signed answer against the trusted signer
// and the request ledger.
type AnswerVerifier interface {
	Verify(ctx context.Context, answer *SignedAnswer, expectedSigner string) error
}

// PriceFeedService pulls price observations for the signer worker
type PriceFeedService interface {
	PullPriceTicker(ctx context.Context, symbol string, t time.Time) (*PriceTicker, error)
}

// OracleService orchestrates the request/validate flow
type OracleService interface {
	RequestPrice(ctx context.Context, requester, pair string, timestamp int64) (*PriceRequest, error)
	SubmitAnswer(ctx context.Context, answer *SignedAnswer) (*ValidationRecord, error)
	RejectRequest(ctx context.Context, assetID string, timestamp int64, reason string) error
	ListPending(ctx context.Context, limit int) ([]*PriceRequest, error)
	GetValidatedPrice(ctx context.Context, pair string, timestamp int64) (*ValidationRecord, error)
	GetLatestPrice(ctx context.Context, pair string) (*ValidationRecord, error)
}
