package pricefeed

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"
	"github.com/MAGNETO903/oracle-platform-hackathon/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
)

// PriceFeedService pulls tickers from the configured feed endpoint
type PriceFeedService struct {
	Config *core.Config
}

// New new price feed service
func New(config *core.Config) core.PriceFeedService {
	return &PriceFeedService{Config: config}
}

// PullPriceTicker pull the price observation of a pair at t
func (s *PriceFeedService) PullPriceTicker(ctx context.Context, symbol string, t time.Time) (*core.PriceTicker, error) {
	endpoint := fmt.Sprintf("%s/api/tickers/%s?ts=%d", s.Config.PriceFeed.EndPoint, url.PathEscape(symbol), t.UTC().Unix())
	logger.FromContext(ctx).Debugln("pull price:", endpoint)

	resp, err := resthttp.Request(ctx).Get(endpoint)
	if err != nil {
		return nil, err
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, err
	}

	return &ticker, nil
}
