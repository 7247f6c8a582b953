package collector

import (
	"fmt"
	"time"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

// Supported sampling intervals.
const (
	IntervalDaily   = "1d"
	IntervalWeekly  = "1wk"
	IntervalMonthly = "1mo"
)

// Resample converts daily bars to the given interval.
func Resample(daily []model.OHLCV, interval string) ([]model.OHLCV, error) {
	switch interval {
	case IntervalDaily, "":
		return daily, nil
	case IntervalWeekly:
		return aggregate(daily, func(t time.Time) int {
			y, w := t.ISOWeek()
			return y*100 + w
		}), nil
	case IntervalMonthly:
		return aggregate(daily, func(t time.Time) int {
			return t.Year()*100 + int(t.Month())
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInterval, interval)
	}
}

// aggregate merges consecutive bars sharing a bucket key. The merged bar
// carries the first bar's time and open and the last bar's close.
func aggregate(daily []model.OHLCV, key func(time.Time) int) []model.OHLCV {
	if len(daily) == 0 {
		return nil
	}
	var out []model.OHLCV
	cur := daily[0]
	curKey := key(cur.Time)
	for _, d := range daily[1:] {
		k := key(d.Time)
		if k != curKey {
			out = append(out, cur)
			cur, curKey = d, k
			continue
		}
		if d.High > cur.High {
			cur.High = d.High
		}
		if d.Low < cur.Low {
			cur.Low = d.Low
		}
		cur.Close = d.Close
		cur.Volume += d.Volume
	}
	return append(out, cur)
}
