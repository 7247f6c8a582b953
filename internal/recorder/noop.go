package recorder

import "github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordQuote(_ *model.Quote) error       { return nil }
func (n *NoopRecorder) RecordSignal(_ *SignalEvent) error      { return nil }
func (n *NoopRecorder) LatestQuotes(_ int) ([]QuoteRow, error) { return nil, nil }
func (n *NoopRecorder) Close() error                           { return nil }
