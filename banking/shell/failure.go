package shell

import (
	"errors"

	"github.com/arelgame/coinhouse/ledger"
)

// FailureMessage converts an infrastructure error into a caller-facing
// failure message. Concurrency conflicts that survived all retries get a
// friendly "try again"; everything else surfaces its message as-is, since
// business errors carry no internal identifiers by construction.
func FailureMessage(operation string, err error) string {
	if errors.Is(err, ledger.ErrConcurrencyConflict) {
		return operation + " failed: the account is busy, please try again"
	}

	return operation + " failed: " + err.Error()
}
