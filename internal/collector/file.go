package collector

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bytedance/sonic"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

// periodBars maps a lookback period to a number of daily bars.
var periodBars = map[string]int{
	"1mo": 22,
	"3mo": 66,
	"6mo": 132,
	"1y":  252,
	"2y":  504,
	"5y":  1260,
}

// FileFetcher loads daily bars from <Dir>/<SYMBOL>.json.
type FileFetcher struct {
	Dir string
}

// NewFileFetcher creates a fetcher reading bar files under dir.
func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{Dir: dir}
}

func (f *FileFetcher) Name() string { return "file" }

// fileBar is the on-disk JSON shape; time is unix seconds.
type fileBar struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

func (f *FileFetcher) FetchBars(ctx context.Context, symbol, period, interval string) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sym := NormalizeSymbol(symbol)
	path := filepath.Join(f.Dir, sym+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", sym, ErrNoData)
		}
		return nil, fmt.Errorf("read bars %s: %w", path, err)
	}

	var raw []fileBar
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode bars %s: %w", path, err)
	}

	bars := cleanBars(raw)
	if n, ok := periodBars[period]; ok && len(bars) > n {
		bars = bars[len(bars)-n:]
	}
	return Resample(bars, interval)
}

// cleanBars sorts by time, drops bars with non-positive or non-finite prices
// and keeps the last bar for each duplicated timestamp.
func cleanBars(raw []fileBar) []model.OHLCV {
	sort.SliceStable(raw, func(i, j int) bool { return raw[i].Time < raw[j].Time })
	bars := make([]model.OHLCV, 0, len(raw))
	for _, r := range raw {
		if !validPrice(r.Open) || !validPrice(r.High) || !validPrice(r.Low) || !validPrice(r.Close) {
			continue
		}
		b := model.OHLCV{
			Time:   time.Unix(r.Time, 0).UTC(),
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		}
		if n := len(bars); n > 0 && bars[n-1].Time.Equal(b.Time) {
			bars[n-1] = b
			continue
		}
		bars = append(bars, b)
	}
	return bars
}

func validPrice(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
