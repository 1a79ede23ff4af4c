package ledger

import (
	"time"

	"github.com/candystand/CandyBot_Go/internal/clock"
)

// Candy lives roughly one month plus one day, anchored to local midnight.
// The two tiers apply the midnight anchor on opposite sides of the addition;
// the results only diverge across a DST transition, which the deployment
// zone does not have. Both orders are kept as-is.

// normalExpiry truncates to midnight first, then adds the horizon.
func normalExpiry(now time.Time, loc *time.Location) time.Time {
	return clock.StartOfDay(now, loc).AddDate(0, 1, 1)
}

// superExpiry adds the horizon first, then truncates to midnight.
func superExpiry(now time.Time, loc *time.Location) time.Time {
	return clock.StartOfDay(now.AddDate(0, 1, 1), loc)
}
