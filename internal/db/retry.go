package db

import (
	"strings"
	"time"

	"github.com/banshee-data/bathy.report/internal/timeutil"
)

const (
	maxBusyRetries = 5
	busyBaseDelay  = 10 * time.Millisecond
)

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// retryOnBusy runs fn, retrying with exponential backoff on clock while
// SQLite reports the database as locked.
func retryOnBusy(clock timeutil.Clock, fn func() error) error {
	clock = timeutil.OrReal(clock)
	delay := busyBaseDelay
	var err error
	for attempt := 0; attempt < maxBusyRetries; attempt++ {
		if err = fn(); !isSQLiteBusy(err) {
			return err
		}
		if attempt < maxBusyRetries-1 {
			clock.Sleep(delay)
			delay *= 2
		}
	}
	return err
}
