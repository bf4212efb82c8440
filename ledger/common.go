package ledger

import (
	"time"
)

// ToOccurredAt normalizes a timestamp to UTC with microsecond precision,
// matching what the storage engines can represent losslessly.
func ToOccurredAt(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
