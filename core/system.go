package core

import "time"

// System stores system information.
type System struct {
	Genesis       int64
	Location      string
	MaxFutureSkew time.Duration
	RequestTTL    time.Duration
	MaxPriceAge   time.Duration
	Version       string
}
