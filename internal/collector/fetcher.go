package collector

import (
	"context"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

// Fetcher defines the interface for loading OHLC bars.
//
// Implementations return bars in strictly ascending time order with no
// duplicate timestamps; the indicator engine relies on it.
type Fetcher interface {
	FetchBars(ctx context.Context, symbol, period, interval string) ([]model.OHLCV, error)
	Name() string
}
