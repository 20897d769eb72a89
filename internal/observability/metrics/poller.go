package metrics

import (
	"context"
	"time"
)

type pollFunc = func(ctx context.Context) error

// RecordPollerDuration wraps a poll pass of the named poller. Successful
// passes also stamp poller_last_success_timestamp_seconds.
func RecordPollerDuration(poller string, f pollFunc) pollFunc {
	return func(ctx context.Context) error {
		startTime := time.Now()
		err := f(ctx)
		if !registered() {
			return err
		}

		pollerDurationHistogram.WithLabelValues(poller, status(err != nil).String()).
			Observe(time.Since(startTime).Seconds())
		if err == nil {
			pollerLastSuccessGauge.WithLabelValues(poller).SetToCurrentTime()
		}
		return err
	}
}
