// Package sqlxrepos implements the domain repositories on Postgres via sqlx.
package sqlxrepos

import (
	"strconv"
	"time"
)

func itoa(n int) string { return strconv.Itoa(n) }

// zeroAsEpoch maps Go's zero time onto the epoch sentinel the update queries
// use for "field not set".
func zeroAsEpoch(t time.Time) time.Time {
	if t.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return t
}
