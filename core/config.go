package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config oracle platform config
type Config struct {
	App       App       `json:"app"`
	DB        db.Config `json:"db"`
	Oracle    Oracle    `json:"oracle"`
	PriceFeed PriceFeed `json:"price_feed"`
}

// App app config
type App struct {
	Genesis  int64  `json:"genesis"`
	Location string `json:"location"`
}

// Oracle oracle protocol config
type Oracle struct {
	// Owner bootstrap registry owner, movable at runtime
	Owner string `json:"owner" valid:"required"`
	// Signer bootstrap trusted signer address
	Signer string `json:"signer" valid:"required"`
	// SignerKey hex secp256k1 private key, only set on the signer worker
	SignerKey string `json:"signer_key"`
	// MaxFutureSkewSeconds clock-skew tolerance for request timestamps
	MaxFutureSkewSeconds int64 `json:"max_future_skew_seconds"`
	// RequestTTLSeconds pending requests older than this get rejected
	RequestTTLSeconds int64 `json:"request_ttl_seconds"`
	// MaxPriceAgeSeconds signer refuses requests this far from its freshest tick
	MaxPriceAgeSeconds int64 `json:"max_price_age_seconds"`
}

// PriceFeed price feed config
type PriceFeed struct {
	EndPoint string `json:"end_point" valid:"required"`
}
