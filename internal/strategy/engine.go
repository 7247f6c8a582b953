// Package strategy turns an indicator bundle into the overall signal shown
// next to it. It is a priority list, not a weighted score.
package strategy

import "github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"

// Evaluate returns the overall signal for b, or nil when b is nil.
func Evaluate(b *model.IndicatorBundle) *model.Signal {
	if b == nil {
		return nil
	}
	for _, r := range rules {
		if s := r(b); s != nil {
			return s
		}
	}
	return nil
}
