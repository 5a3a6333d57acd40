package mediasync

import "time"

// Skip reasons passed to Observer.RecordSkip.
const (
	SkipFiltered   = "filtered"
	SkipUnreadable = "unreadable"
)

// Observer captures telemetry for sync operations.
type Observer interface {
	RecordUpload(duration time.Duration, sizeBytes int64, err error)
	RecordDelete(duration time.Duration, err error)
	RecordSkip(reason string)
}

type nopObserver struct{}

func (nopObserver) RecordUpload(time.Duration, int64, error) {}

func (nopObserver) RecordDelete(time.Duration, error) {}

func (nopObserver) RecordSkip(string) {}
